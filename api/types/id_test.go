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

package types_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/inkstone-notes/inkstone/api/types"
)

func TestID(t *testing.T) {
	t.Run("new ID test", func(t *testing.T) {
		id := types.NewID()
		assert.Len(t, id.String(), 26)
		assert.NoError(t, id.Validate())
	})

	t.Run("IDs sort by creation test", func(t *testing.T) {
		first := types.NewID()
		second := types.NewID()
		assert.True(t, first <= second)
	})

	t.Run("validate test", func(t *testing.T) {
		assert.ErrorIs(t, types.ID("").Validate(), types.ErrInvalidID)
		assert.ErrorIs(t, types.ID("not-a-ulid").Validate(), types.ErrInvalidID)
		// Lowercase is not canonical.
		assert.ErrorIs(t, types.ID("01arz3ndektsv4rrffq69g5fav").Validate(), types.ErrInvalidID)
	})
}
