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

func TestValidate(t *testing.T) {
	t.Run("explicit key on insert test", func(t *testing.T) {
		insert := operations.NewInsert(
			"", "",
			orderkey.Placement{},
			block.TypeParagraph,
			block.Paragraph{Inline: block.Inline{block.Text{Value: "imported"}}},
		)
		insert.ExplicitKey = "a0"
		assert.NoError(t, insert.Validate())

		// A malformed imported key would poison the sibling group: every
		// later placement next to it fails when its bounds are checked.
		for _, key := range []string{"zz", "b0", "a00", "a0!"} {
			insert.ExplicitKey = key
			assert.ErrorIs(t, insert.Validate(), operations.ErrInvalidOperation)
		}
	})

	t.Run("explicit key on move test", func(t *testing.T) {
		move := operations.NewMove(types.NewID(), "", orderkey.Placement{})
		move.ExplicitKey = "a0V"
		assert.NoError(t, move.Validate())

		move.ExplicitKey = "zz"
		assert.ErrorIs(t, move.Validate(), operations.ErrInvalidOperation)
	})

	t.Run("placement without explicit key test", func(t *testing.T) {
		move := operations.NewMove(types.NewID(), "", orderkey.Placement{})
		assert.ErrorIs(t, move.Validate(), operations.ErrInvalidOperation)

		move.Placement = orderkey.Placement{Position: orderkey.Before}
		assert.ErrorIs(t, move.Validate(), operations.ErrInvalidOperation)

		move.Placement = orderkey.Placement{
			Position:  orderkey.Before,
			SiblingID: types.NewID(),
		}
		assert.NoError(t, move.Validate())
	})
}
