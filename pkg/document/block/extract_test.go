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

package block_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/inkstone-notes/inkstone/api/types"
	"github.com/inkstone-notes/inkstone/pkg/document/block"
)

func TestExtractReferences(t *testing.T) {
	target := types.NewID()
	targetBlock := types.NewID()

	t.Run("inline references test", func(t *testing.T) {
		content := block.Paragraph{Inline: block.Inline{
			block.Text{Value: "see "},
			block.RefNode{TargetObjectID: target, TargetBlockID: targetBlock},
		}}
		refs := block.ExtractReferences(content)
		assert.Equal(t, []block.Ref{{ObjectID: target, BlockID: targetBlock}}, refs)
	})

	t.Run("references inside links test", func(t *testing.T) {
		content := block.Blockquote{Inline: block.Inline{
			block.Link{URL: "https://example.com", Inline: block.Inline{
				block.RefNode{TargetObjectID: target},
			}},
		}}
		refs := block.ExtractReferences(content)
		assert.Equal(t, []block.Ref{{ObjectID: target}}, refs)
	})

	t.Run("table cells test", func(t *testing.T) {
		content := block.Table{Rows: [][]block.CellText{
			{
				{Inline: block.Inline{block.RefNode{TargetObjectID: target}}},
				{Inline: block.Inline{block.Text{Value: "plain"}}},
			},
		}}
		refs := block.ExtractReferences(content)
		assert.Len(t, refs, 1)
	})

	t.Run("reference-free content test", func(t *testing.T) {
		assert.Empty(t, block.ExtractReferences(block.CodeBlock{Text: "x := 1"}))
		assert.Empty(t, block.ExtractReferences(block.ThematicBreak{}))
		assert.Empty(t, block.ExtractReferences(nil))
	})
}

func TestExtractPlainText(t *testing.T) {
	t.Run("inline text test", func(t *testing.T) {
		content := block.Paragraph{Inline: block.Inline{
			block.Text{Value: "read ", Marks: []block.Mark{block.MarkBold}},
			block.RefNode{TargetObjectID: types.NewID(), Alias: "that note"},
			block.Text{Value: " and run "},
			block.InlineCode{Value: "go test"},
		}}
		assert.Equal(t, "read that note and run go test", block.ExtractPlainText(content))
	})

	t.Run("code and math test", func(t *testing.T) {
		assert.Equal(t, "fmt.Println()", block.ExtractPlainText(block.CodeBlock{
			Language: "go",
			Text:     "fmt.Println()",
		}))
		assert.Equal(t, `\sum_i x_i`, block.ExtractPlainText(block.MathBlock{
			Source: `\sum_i x_i`,
		}))
	})

	t.Run("table text test", func(t *testing.T) {
		content := block.Table{Rows: [][]block.CellText{
			{
				{Inline: block.Inline{block.Text{Value: "a"}}},
				{Inline: block.Inline{block.Text{Value: "b"}}},
			},
			{
				{Inline: block.Inline{block.Text{Value: "c"}}},
			},
		}}
		assert.Equal(t, "a b\nc", block.ExtractPlainText(content))
	})

	t.Run("textless content test", func(t *testing.T) {
		assert.Equal(t, "", block.ExtractPlainText(block.ThematicBreak{}))
		assert.Equal(t, "", block.ExtractPlainText(block.List{Ordered: true}))
		assert.Equal(t, "", block.ExtractPlainText(nil))
	})

	t.Run("attachment caption test", func(t *testing.T) {
		assert.Equal(t, "diagram", block.ExtractPlainText(block.Attachment{
			FileID:  types.NewID(),
			Caption: "diagram",
		}))
	})
}
