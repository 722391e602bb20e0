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
	"strings"

	"github.com/inkstone-notes/inkstone/api/types"
)

// Ref is an outgoing reference extracted from block content. BlockID is
// empty when the reference targets the whole object.
type Ref struct {
	ObjectID types.ID `json:"objectId"`
	BlockID  types.ID `json:"blockId,omitempty"`
}

// ExtractReferences collects every reference the content contains. It is
// total: content without references, including nil content, yields an
// empty result.
func ExtractReferences(c Content) []Ref {
	var refs []Ref

	switch c := c.(type) {
	case Paragraph:
		collectInlineRefs(c.Inline, &refs)
	case Heading:
		collectInlineRefs(c.Inline, &refs)
	case List:
		// List containers carry no inline content; items are blocks.
	case ListItem:
		collectInlineRefs(c.Inline, &refs)
	case Blockquote:
		collectInlineRefs(c.Inline, &refs)
	case Callout:
		collectInlineRefs(c.Inline, &refs)
	case CodeBlock:
	case ThematicBreak:
	case Table:
		for _, row := range c.Rows {
			for _, cell := range row {
				collectInlineRefs(cell.Inline, &refs)
			}
		}
	case MathBlock:
	case FootnoteDef:
		collectInlineRefs(c.Inline, &refs)
	case Attachment:
	}

	return refs
}

// ExtractPlainText concatenates the human-readable text the content
// contributes to search, excluding structural markup. It is total: content
// without text, including nil content, yields "".
func ExtractPlainText(c Content) string {
	sb := strings.Builder{}

	switch c := c.(type) {
	case Paragraph:
		writeInlineText(c.Inline, &sb)
	case Heading:
		writeInlineText(c.Inline, &sb)
	case List:
	case ListItem:
		writeInlineText(c.Inline, &sb)
	case Blockquote:
		writeInlineText(c.Inline, &sb)
	case Callout:
		writeInlineText(c.Inline, &sb)
	case CodeBlock:
		sb.WriteString(c.Text)
	case ThematicBreak:
	case Table:
		for i, row := range c.Rows {
			if i > 0 {
				sb.WriteString("\n")
			}
			for j, cell := range row {
				if j > 0 {
					sb.WriteString(" ")
				}
				writeInlineText(cell.Inline, &sb)
			}
		}
	case MathBlock:
		sb.WriteString(c.Source)
	case FootnoteDef:
		writeInlineText(c.Inline, &sb)
	case Attachment:
		sb.WriteString(c.Caption)
	}

	return sb.String()
}

func collectInlineRefs(in Inline, refs *[]Ref) {
	for _, node := range in {
		switch node := node.(type) {
		case RefNode:
			*refs = append(*refs, Ref{
				ObjectID: node.TargetObjectID,
				BlockID:  node.TargetBlockID,
			})
		case Link:
			collectInlineRefs(node.Inline, refs)
		}
	}
}

func writeInlineText(in Inline, sb *strings.Builder) {
	for _, node := range in {
		switch node := node.(type) {
		case Text:
			sb.WriteString(node.Value)
		case RefNode:
			sb.WriteString(node.Alias)
		case InlineCode:
			sb.WriteString(node.Value)
		case InlineMath:
			sb.WriteString(node.Source)
		case Link:
			writeInlineText(node.Inline, sb)
		}
	}
}
