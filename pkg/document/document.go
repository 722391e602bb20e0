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

// Package document provides the assembled, ordered block tree of an object
// as the read paths present it to callers.
package document

import (
	"sort"

	"github.com/inkstone-notes/inkstone/api/types"
	"github.com/inkstone-notes/inkstone/pkg/document/block"
)

// Document is the ordered block tree of one object together with the
// document version the tree was read at. Callers use DocVersion as the
// base version of their next patch.
type Document struct {
	// ObjectID is the object the tree belongs to.
	ObjectID types.ID `json:"objectId"`

	// DocVersion is the version the blocks were read at.
	DocVersion int64 `json:"docVersion"`

	// Blocks are the root-level blocks in sibling order.
	Blocks []*BlockNode `json:"blocks"`
}

// BlockNode is one block within an assembled tree.
type BlockNode struct {
	// ID is the block id.
	ID types.ID `json:"id"`

	// ParentID is the parent block id, empty at root level.
	ParentID types.ID `json:"parentId,omitempty"`

	// OrderKey is the block's order key among its siblings.
	OrderKey string `json:"orderKey"`

	// Type is the block type.
	Type block.Type `json:"type"`

	// Content is the typed content payload.
	Content block.Content `json:"-"`

	// Collapsed reports whether the block is collapsed in outline views.
	Collapsed bool `json:"collapsed,omitempty"`

	// Children are the block's children in sibling order.
	Children []*BlockNode `json:"children,omitempty"`
}

// BuildTree assembles flat nodes into a forest of root-level blocks.
// Sibling groups are ordered by plain string comparison of their order
// keys, with the id as a tiebreaker to keep assembly deterministic even
// if a duplicate key ever slipped in. The walk is iterative so deeply
// nested documents cannot exhaust the stack.
func BuildTree(nodes []*BlockNode) []*BlockNode {
	byID := make(map[types.ID]*BlockNode, len(nodes))
	for _, node := range nodes {
		byID[node.ID] = node
	}

	byParent := make(map[types.ID][]*BlockNode)
	for _, node := range nodes {
		parentID := node.ParentID
		if parentID != "" {
			if _, ok := byID[parentID]; !ok {
				// A node whose parent is not part of this read (e.g. the
				// parent is soft-deleted but the child was included) is
				// surfaced at root level rather than dropped.
				parentID = ""
			}
		}
		byParent[parentID] = append(byParent[parentID], node)
	}

	for _, group := range byParent {
		siblings := group
		sort.Slice(siblings, func(i, j int) bool {
			if siblings[i].OrderKey != siblings[j].OrderKey {
				return siblings[i].OrderKey < siblings[j].OrderKey
			}
			return siblings[i].ID < siblings[j].ID
		})
	}

	for _, node := range nodes {
		node.Children = byParent[node.ID]
	}

	return byParent[""]
}
