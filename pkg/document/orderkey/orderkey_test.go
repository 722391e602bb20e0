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

package orderkey_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/inkstone-notes/inkstone/api/types"
	"github.com/inkstone-notes/inkstone/pkg/document/orderkey"
)

func TestBetween(t *testing.T) {
	t.Run("known midpoints test", func(t *testing.T) {
		cases := []struct {
			a, b, expected string
		}{
			{"", "", "a0"},
			{"a0", "", "a1"},
			{"", "a0", "Zz"},
			{"a0", "a1", "a0V"},
			{"a0", "a0V", "a0G"},
			{"a0V", "a1", "a0l"},
			{"a1", "a2", "a1V"},
			{"az", "", "b00"},
			{"Zz", "", "a0"},
		}
		for _, c := range cases {
			key, err := orderkey.Between(c.a, c.b)
			assert.NoError(t, err, "Between(%q, %q)", c.a, c.b)
			assert.Equal(t, c.expected, key, "Between(%q, %q)", c.a, c.b)
		}
	})

	t.Run("result is strictly between test", func(t *testing.T) {
		a, b := "a0", "a1"
		for i := 0; i < 50; i++ {
			mid, err := orderkey.Between(a, b)
			assert.NoError(t, err)
			assert.NoError(t, orderkey.Validate(mid))
			assert.True(t, a < mid && mid < b, "%q < %q < %q", a, mid, b)
			if i%2 == 0 {
				b = mid
			} else {
				a = mid
			}
		}
	})

	t.Run("appending keeps growing test", func(t *testing.T) {
		prev := ""
		for i := 0; i < 100; i++ {
			key, err := orderkey.Between(prev, "")
			assert.NoError(t, err)
			assert.NoError(t, orderkey.Validate(key))
			assert.True(t, prev < key)
			prev = key
		}
	})

	t.Run("prepending keeps shrinking test", func(t *testing.T) {
		prev := ""
		for i := 0; i < 100; i++ {
			key, err := orderkey.Between("", prev)
			assert.NoError(t, err)
			assert.NoError(t, orderkey.Validate(key))
			if prev != "" {
				assert.True(t, key < prev)
			}
			prev = key
		}
	})

	t.Run("invalid bounds test", func(t *testing.T) {
		_, err := orderkey.Between("a1", "a0")
		assert.ErrorIs(t, err, orderkey.ErrInvalidBounds)

		_, err = orderkey.Between("a0", "a0")
		assert.ErrorIs(t, err, orderkey.ErrInvalidBounds)

		_, err = orderkey.Between("not a key", "")
		assert.ErrorIs(t, err, orderkey.ErrInvalidKey)
	})
}

func TestValidate(t *testing.T) {
	t.Run("validate test", func(t *testing.T) {
		assert.NoError(t, orderkey.Validate("a0"))
		assert.NoError(t, orderkey.Validate("a0V"))
		assert.NoError(t, orderkey.Validate("Zz"))
		assert.NoError(t, orderkey.Validate("b00"))

		// Empty, bad head, truncated integer, trailing minimum digit.
		assert.ErrorIs(t, orderkey.Validate(""), orderkey.ErrInvalidKey)
		assert.ErrorIs(t, orderkey.Validate("5"), orderkey.ErrInvalidKey)
		assert.ErrorIs(t, orderkey.Validate("b0"), orderkey.ErrInvalidKey)
		assert.ErrorIs(t, orderkey.Validate("a00"), orderkey.ErrInvalidKey)
		assert.ErrorIs(t, orderkey.Validate("a0!"), orderkey.ErrInvalidKey)
	})
}

func TestAllocate(t *testing.T) {
	first := types.NewID()
	second := types.NewID()
	siblings := []orderkey.Sibling{
		{ID: first, Key: "a0"},
		{ID: second, Key: "a1"},
	}

	t.Run("placement test", func(t *testing.T) {
		key, err := orderkey.Allocate(nil, orderkey.Placement{Position: orderkey.End}, "")
		assert.NoError(t, err)
		assert.Equal(t, orderkey.InitialKey, key)

		key, err = orderkey.Allocate(siblings, orderkey.Placement{Position: orderkey.Start}, "")
		assert.NoError(t, err)
		assert.True(t, key < "a0")

		key, err = orderkey.Allocate(siblings, orderkey.Placement{Position: orderkey.End}, "")
		assert.NoError(t, err)
		assert.True(t, key > "a1")

		key, err = orderkey.Allocate(siblings, orderkey.Placement{
			Position:  orderkey.After,
			SiblingID: first,
		}, "")
		assert.NoError(t, err)
		assert.True(t, "a0" < key && key < "a1")

		key, err = orderkey.Allocate(siblings, orderkey.Placement{
			Position:  orderkey.Before,
			SiblingID: second,
		}, "")
		assert.NoError(t, err)
		assert.True(t, "a0" < key && key < "a1")
	})

	t.Run("explicit key test", func(t *testing.T) {
		key, err := orderkey.Allocate(siblings, orderkey.Placement{}, "a2")
		assert.NoError(t, err)
		assert.Equal(t, "a2", key)

		assert.True(t, orderkey.IsUnique(siblings, "a2"))
		assert.False(t, orderkey.IsUnique(siblings, "a1"))
	})

	t.Run("missing sibling test", func(t *testing.T) {
		_, err := orderkey.Allocate(siblings, orderkey.Placement{
			Position:  orderkey.Before,
			SiblingID: types.NewID(),
		}, "")
		assert.ErrorIs(t, err, orderkey.ErrSiblingNotFound)
	})

	t.Run("invalid placement test", func(t *testing.T) {
		_, err := orderkey.Allocate(siblings, orderkey.Placement{}, "")
		assert.ErrorIs(t, err, orderkey.ErrInvalidPlacement)
	})
}
