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

func TestContentUnion(t *testing.T) {
	t.Run("round trip test", func(t *testing.T) {
		content := block.Heading{
			Level: 2,
			Inline: block.Inline{
				block.Text{Value: "see ", Marks: []block.Mark{block.MarkItalic}},
				block.RefNode{TargetObjectID: types.NewID(), Alias: "elsewhere"},
				block.InlineMath{Source: "e^{i\\pi}"},
			},
		}

		data, err := block.MarshalContent(content)
		assert.NoError(t, err)

		decoded, err := block.UnmarshalContent(data)
		assert.NoError(t, err)
		assert.Equal(t, block.TypeHeading, decoded.Type())
		assert.Equal(t, content, decoded)
	})

	t.Run("unknown type test", func(t *testing.T) {
		_, err := block.UnmarshalContent([]byte(`{"type":"mystery","data":{}}`))
		assert.Error(t, err)

		_, err = block.UnmarshalContent([]byte(`not json`))
		assert.Error(t, err)
	})

	t.Run("type tags are exhaustive test", func(t *testing.T) {
		contents := []block.Content{
			block.Paragraph{},
			block.Heading{},
			block.List{},
			block.ListItem{},
			block.Blockquote{},
			block.Callout{},
			block.CodeBlock{},
			block.ThematicBreak{},
			block.Table{},
			block.MathBlock{},
			block.FootnoteDef{},
			block.Attachment{},
		}
		for _, content := range contents {
			assert.True(t, content.Type().Valid(), "%s", content.Type())

			data, err := block.MarshalContent(content)
			assert.NoError(t, err)
			decoded, err := block.UnmarshalContent(data)
			assert.NoError(t, err)
			assert.Equal(t, content.Type(), decoded.Type())
		}
	})
}
