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

package operations_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/inkstone-notes/inkstone/api/types"
	"github.com/inkstone-notes/inkstone/pkg/document/block"
	"github.com/inkstone-notes/inkstone/pkg/document/operations"
	"github.com/inkstone-notes/inkstone/pkg/document/orderkey"
)

func TestFingerprint(t *testing.T) {
	blockID := types.NewID()
	insert := operations.NewInsert(
		blockID, "",
		orderkey.Placement{Position: orderkey.End},
		block.TypeParagraph,
		block.Paragraph{Inline: block.Inline{block.Text{Value: "hello"}}},
	)

	t.Run("deterministic test", func(t *testing.T) {
		first, err := operations.Fingerprint([]operations.Operation{insert})
		assert.NoError(t, err)
		second, err := operations.Fingerprint([]operations.Operation{insert})
		assert.NoError(t, err)
		assert.Equal(t, first, second)
		assert.Len(t, first, 64)
	})

	t.Run("sensitive to content test", func(t *testing.T) {
		base, err := operations.Fingerprint([]operations.Operation{insert})
		assert.NoError(t, err)

		changed := operations.NewInsert(
			blockID, "",
			orderkey.Placement{Position: orderkey.End},
			block.TypeParagraph,
			block.Paragraph{Inline: block.Inline{block.Text{Value: "hello!"}}},
		)
		other, err := operations.Fingerprint([]operations.Operation{changed})
		assert.NoError(t, err)
		assert.NotEqual(t, base, other)
	})

	t.Run("sensitive to order test", func(t *testing.T) {
		update := operations.NewUpdate(blockID, block.Paragraph{})
		remove := operations.NewDelete(blockID)

		ab, err := operations.Fingerprint([]operations.Operation{update, remove})
		assert.NoError(t, err)
		ba, err := operations.Fingerprint([]operations.Operation{remove, update})
		assert.NoError(t, err)
		assert.NotEqual(t, ab, ba)
	})
}
