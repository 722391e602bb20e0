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

package document_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/inkstone-notes/inkstone/api/types"
	"github.com/inkstone-notes/inkstone/pkg/document"
)

func node(id, parentID types.ID, orderKey string) *document.BlockNode {
	return &document.BlockNode{ID: id, ParentID: parentID, OrderKey: orderKey}
}

func TestBuildTree(t *testing.T) {
	t.Run("nesting and order test", func(t *testing.T) {
		rootA := types.NewID()
		rootB := types.NewID()
		child := types.NewID()
		grandchild := types.NewID()

		// Deliberately shuffled input.
		roots := document.BuildTree([]*document.BlockNode{
			node(grandchild, child, "a0"),
			node(rootB, "", "a1"),
			node(child, rootA, "a0"),
			node(rootA, "", "a0"),
		})

		assert.Len(t, roots, 2)
		assert.Equal(t, rootA, roots[0].ID)
		assert.Equal(t, rootB, roots[1].ID)
		assert.Len(t, roots[0].Children, 1)
		assert.Equal(t, child, roots[0].Children[0].ID)
		assert.Equal(t, grandchild, roots[0].Children[0].Children[0].ID)
	})

	t.Run("missing parent surfaces at root test", func(t *testing.T) {
		orphan := types.NewID()
		roots := document.BuildTree([]*document.BlockNode{
			node(orphan, types.NewID(), "a0"),
		})

		assert.Len(t, roots, 1)
		assert.Equal(t, orphan, roots[0].ID)
	})

	t.Run("duplicate order key tiebreak test", func(t *testing.T) {
		first := types.ID("01ARZ3NDEKTSV4RRFFQ69G5FAA")
		second := types.ID("01ARZ3NDEKTSV4RRFFQ69G5FAB")

		roots := document.BuildTree([]*document.BlockNode{
			node(second, "", "a0"),
			node(first, "", "a0"),
		})
		assert.Equal(t, []types.ID{first, second}, []types.ID{roots[0].ID, roots[1].ID})
	})

	t.Run("empty input test", func(t *testing.T) {
		assert.Empty(t, document.BuildTree(nil))
	})
}
