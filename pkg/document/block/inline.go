/*
 * Copyright 2025 The Inkstone Authors. All rights reserved.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package block

import (
	"encoding/json"
	"fmt"

	"github.com/inkstone-notes/inkstone/api/types"
)

// NodeType is the type tag of an inline node.
type NodeType string

const (
	// NodeText is a run of text with optional marks.
	NodeText NodeType = "text"

	// NodeRef is a reference to another object or block.
	NodeRef NodeType = "ref"

	// NodeInlineCode is a span of code.
	NodeInlineCode NodeType = "inline_code"

	// NodeInlineMath is a span of math.
	NodeInlineMath NodeType = "inline_math"

	// NodeLink is an external link wrapping inline content.
	NodeLink NodeType = "link"
)

// Node is an inline node inside text-bearing block content.
type Node interface {
	NodeType() NodeType
}

// Mark is a formatting mark applied to a text node.
type Mark string

const (
	// MarkBold marks bold text.
	MarkBold Mark = "bold"

	// MarkItalic marks italic text.
	MarkItalic Mark = "italic"

	// MarkStrike marks struck-through text.
	MarkStrike Mark = "strike"

	// MarkUnderline marks underlined text.
	MarkUnderline Mark = "underline"
)

// Text is a run of text.
type Text struct {
	Value string `json:"value"`
	Marks []Mark `json:"marks,omitempty"`
}

// NodeType returns the type of this node.
func (Text) NodeType() NodeType { return NodeText }

// RefNode references another object, or a specific block within it when
// TargetBlockID is set.
type RefNode struct {
	TargetObjectID types.ID `json:"targetObjectId"`
	TargetBlockID  types.ID `json:"targetBlockId,omitempty"`
	Alias          string   `json:"alias,omitempty"`
}

// NodeType returns the type of this node.
func (RefNode) NodeType() NodeType { return NodeRef }

// InlineCode is a span of code.
type InlineCode struct {
	Value string `json:"value"`
}

// NodeType returns the type of this node.
func (InlineCode) NodeType() NodeType { return NodeInlineCode }

// InlineMath is a span of math source.
type InlineMath struct {
	Source string `json:"source"`
}

// NodeType returns the type of this node.
func (InlineMath) NodeType() NodeType { return NodeInlineMath }

// Link is an external link wrapping inline content.
type Link struct {
	URL    string `json:"url"`
	Title  string `json:"title,omitempty"`
	Inline Inline `json:"inline,omitempty"`
}

// NodeType returns the type of this node.
func (Link) NodeType() NodeType { return NodeLink }

// Inline is an ordered list of inline nodes. It marshals as a list of
// {type, data} envelopes so the union survives JSON round trips.
type Inline []Node

// nodeEnvelope is the wire form of a single inline node.
type nodeEnvelope struct {
	Type NodeType        `json:"type"`
	Data json.RawMessage `json:"data"`
}

// MarshalJSON implements json.Marshaler.
func (in Inline) MarshalJSON() ([]byte, error) {
	envelopes := make([]nodeEnvelope, 0, len(in))
	for _, node := range in {
		data, err := json.Marshal(node)
		if err != nil {
			return nil, fmt.Errorf("marshal inline node: %w", err)
		}
		envelopes = append(envelopes, nodeEnvelope{
			Type: node.NodeType(),
			Data: data,
		})
	}

	bytes, err := json.Marshal(envelopes)
	if err != nil {
		return nil, fmt.Errorf("marshal inline nodes: %w", err)
	}
	return bytes, nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (in *Inline) UnmarshalJSON(data []byte) error {
	var envelopes []nodeEnvelope
	if err := json.Unmarshal(data, &envelopes); err != nil {
		return fmt.Errorf("unmarshal inline nodes: %w", err)
	}

	nodes := make(Inline, 0, len(envelopes))
	for _, envelope := range envelopes {
		node, err := unmarshalNode(envelope)
		if err != nil {
			return err
		}
		nodes = append(nodes, node)
	}

	*in = nodes
	return nil
}

func unmarshalNode(envelope nodeEnvelope) (Node, error) {
	switch envelope.Type {
	case NodeText:
		var node Text
		if err := json.Unmarshal(envelope.Data, &node); err != nil {
			return nil, fmt.Errorf("unmarshal text node: %w", err)
		}
		return node, nil
	case NodeRef:
		var node RefNode
		if err := json.Unmarshal(envelope.Data, &node); err != nil {
			return nil, fmt.Errorf("unmarshal ref node: %w", err)
		}
		return node, nil
	case NodeInlineCode:
		var node InlineCode
		if err := json.Unmarshal(envelope.Data, &node); err != nil {
			return nil, fmt.Errorf("unmarshal inline code node: %w", err)
		}
		return node, nil
	case NodeInlineMath:
		var node InlineMath
		if err := json.Unmarshal(envelope.Data, &node); err != nil {
			return nil, fmt.Errorf("unmarshal inline math node: %w", err)
		}
		return node, nil
	case NodeLink:
		var node Link
		if err := json.Unmarshal(envelope.Data, &node); err != nil {
			return nil, fmt.Errorf("unmarshal link node: %w", err)
		}
		return node, nil
	default:
		return nil, fmt.Errorf("unknown inline node type %q", envelope.Type)
	}
}
