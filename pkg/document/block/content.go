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

// Content is the typed payload of a block. One implementation exists per
// block type. Content values are replaced wholesale by update operations
// and are never mutated in place.
type Content interface {
	// Type returns the block type this content belongs to.
	Type() Type
}

// Paragraph is the content of a paragraph block.
type Paragraph struct {
	Inline Inline `json:"inline,omitempty"`
}

// Type returns the block type of this content.
func (Paragraph) Type() Type { return TypeParagraph }

// Heading is the content of a heading block.
type Heading struct {
	Level  int    `json:"level"`
	Inline Inline `json:"inline,omitempty"`
}

// Type returns the block type of this content.
func (Heading) Type() Type { return TypeHeading }

// List is the content of a list container block. Items are child blocks.
type List struct {
	Ordered bool `json:"ordered"`
}

// Type returns the block type of this content.
func (List) Type() Type { return TypeList }

// ListItem is the content of a list item block. Checked is nil for
// non-checkable items.
type ListItem struct {
	Inline  Inline `json:"inline,omitempty"`
	Checked *bool  `json:"checked,omitempty"`
}

// Type returns the block type of this content.
func (ListItem) Type() Type { return TypeListItem }

// Blockquote is the content of a blockquote block.
type Blockquote struct {
	Inline Inline `json:"inline,omitempty"`
}

// Type returns the block type of this content.
func (Blockquote) Type() Type { return TypeBlockquote }

// Callout is the content of a callout block.
type Callout struct {
	Emoji  string `json:"emoji,omitempty"`
	Inline Inline `json:"inline,omitempty"`
}

// Type returns the block type of this content.
func (Callout) Type() Type { return TypeCallout }

// CodeBlock is the content of a fenced code block.
type CodeBlock struct {
	Language string `json:"language,omitempty"`
	Text     string `json:"text"`
}

// Type returns the block type of this content.
func (CodeBlock) Type() Type { return TypeCodeBlock }

// ThematicBreak is the content of a horizontal rule block.
type ThematicBreak struct{}

// Type returns the block type of this content.
func (ThematicBreak) Type() Type { return TypeThematicBreak }

// CellText is one table cell of inline content.
type CellText struct {
	Inline Inline `json:"inline,omitempty"`
}

// Table is the content of a table block.
type Table struct {
	Rows [][]CellText `json:"rows,omitempty"`
}

// Type returns the block type of this content.
func (Table) Type() Type { return TypeTable }

// MathBlock is the content of a display math block.
type MathBlock struct {
	Source string `json:"source"`
}

// Type returns the block type of this content.
func (MathBlock) Type() Type { return TypeMathBlock }

// FootnoteDef is the content of a footnote definition block.
type FootnoteDef struct {
	Label  string `json:"label"`
	Inline Inline `json:"inline,omitempty"`
}

// Type returns the block type of this content.
func (FootnoteDef) Type() Type { return TypeFootnoteDef }

// Attachment is the content of an attachment block. FileID points into the
// external blob store.
type Attachment struct {
	FileID  types.ID `json:"fileId"`
	Caption string   `json:"caption,omitempty"`
}

// Type returns the block type of this content.
func (Attachment) Type() Type { return TypeAttachment }

// contentEnvelope is the wire form of a content payload.
type contentEnvelope struct {
	Type Type            `json:"type"`
	Data json.RawMessage `json:"data"`
}

// MarshalContent encodes content as a {type, data} envelope.
func MarshalContent(c Content) ([]byte, error) {
	if c == nil {
		return nil, fmt.Errorf("marshal content: nil content")
	}

	data, err := json.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("marshal %s content: %w", c.Type(), err)
	}

	bytes, err := json.Marshal(contentEnvelope{
		Type: c.Type(),
		Data: data,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal content envelope: %w", err)
	}
	return bytes, nil
}

// UnmarshalContent decodes a {type, data} envelope into its typed content.
func UnmarshalContent(data []byte) (Content, error) {
	var envelope contentEnvelope
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, fmt.Errorf("unmarshal content envelope: %w", err)
	}

	switch envelope.Type {
	case TypeParagraph:
		var c Paragraph
		if err := json.Unmarshal(envelope.Data, &c); err != nil {
			return nil, fmt.Errorf("unmarshal paragraph content: %w", err)
		}
		return c, nil
	case TypeHeading:
		var c Heading
		if err := json.Unmarshal(envelope.Data, &c); err != nil {
			return nil, fmt.Errorf("unmarshal heading content: %w", err)
		}
		return c, nil
	case TypeList:
		var c List
		if err := json.Unmarshal(envelope.Data, &c); err != nil {
			return nil, fmt.Errorf("unmarshal list content: %w", err)
		}
		return c, nil
	case TypeListItem:
		var c ListItem
		if err := json.Unmarshal(envelope.Data, &c); err != nil {
			return nil, fmt.Errorf("unmarshal list item content: %w", err)
		}
		return c, nil
	case TypeBlockquote:
		var c Blockquote
		if err := json.Unmarshal(envelope.Data, &c); err != nil {
			return nil, fmt.Errorf("unmarshal blockquote content: %w", err)
		}
		return c, nil
	case TypeCallout:
		var c Callout
		if err := json.Unmarshal(envelope.Data, &c); err != nil {
			return nil, fmt.Errorf("unmarshal callout content: %w", err)
		}
		return c, nil
	case TypeCodeBlock:
		var c CodeBlock
		if err := json.Unmarshal(envelope.Data, &c); err != nil {
			return nil, fmt.Errorf("unmarshal code block content: %w", err)
		}
		return c, nil
	case TypeThematicBreak:
		return ThematicBreak{}, nil
	case TypeTable:
		var c Table
		if err := json.Unmarshal(envelope.Data, &c); err != nil {
			return nil, fmt.Errorf("unmarshal table content: %w", err)
		}
		return c, nil
	case TypeMathBlock:
		var c MathBlock
		if err := json.Unmarshal(envelope.Data, &c); err != nil {
			return nil, fmt.Errorf("unmarshal math block content: %w", err)
		}
		return c, nil
	case TypeFootnoteDef:
		var c FootnoteDef
		if err := json.Unmarshal(envelope.Data, &c); err != nil {
			return nil, fmt.Errorf("unmarshal footnote content: %w", err)
		}
		return c, nil
	case TypeAttachment:
		var c Attachment
		if err := json.Unmarshal(envelope.Data, &c); err != nil {
			return nil, fmt.Errorf("unmarshal attachment content: %w", err)
		}
		return c, nil
	default:
		return nil, fmt.Errorf("unknown block type %q", envelope.Type)
	}
}
