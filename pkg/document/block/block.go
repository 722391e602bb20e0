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

// Package block defines the content model of a block document: the closed
// set of block types, their typed content payloads, and the pure
// extraction of references and searchable text from content.
package block

// Type is the type of a block. The set is closed; content payloads are a
// tagged union keyed by this type.
type Type string

const (
	// TypeParagraph is a plain paragraph of inline content.
	TypeParagraph Type = "paragraph"

	// TypeHeading is a heading with a level.
	TypeHeading Type = "heading"

	// TypeList is a list container; its items are child blocks.
	TypeList Type = "list"

	// TypeListItem is an item of a list, optionally checkable.
	TypeListItem Type = "list_item"

	// TypeBlockquote is a quoted passage.
	TypeBlockquote Type = "blockquote"

	// TypeCallout is a highlighted aside with an emoji.
	TypeCallout Type = "callout"

	// TypeCodeBlock is a fenced code block.
	TypeCodeBlock Type = "code_block"

	// TypeThematicBreak is a horizontal rule.
	TypeThematicBreak Type = "thematic_break"

	// TypeTable is a table of inline-content cells.
	TypeTable Type = "table"

	// TypeMathBlock is a display math block.
	TypeMathBlock Type = "math_block"

	// TypeFootnoteDef is a footnote definition.
	TypeFootnoteDef Type = "footnote_def"

	// TypeAttachment is a reference to a stored file.
	TypeAttachment Type = "attachment"
)

// Valid reports whether t is a member of the closed block type set.
func (t Type) Valid() bool {
	switch t {
	case TypeParagraph, TypeHeading, TypeList, TypeListItem, TypeBlockquote,
		TypeCallout, TypeCodeBlock, TypeThematicBreak, TypeTable,
		TypeMathBlock, TypeFootnoteDef, TypeAttachment:
		return true
	default:
		return false
	}
}

// String returns the string representation of the type.
func (t Type) String() string {
	return string(t)
}
