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

package database

import (
	"time"

	"github.com/inkstone-notes/inkstone/api/types"
	"github.com/inkstone-notes/inkstone/pkg/document/block"
)

// BlockInfo is a structure representing one block row of an object's
// content tree.
type BlockInfo struct {
	// ID is the unique ID of the block.
	ID types.ID `json:"id"`

	// ObjectID is the ID of the object the block belongs to.
	ObjectID types.ID `json:"object_id"`

	// ParentID is the ID of the parent block, empty for root-level blocks.
	// A non-empty parent must belong to the same object and be live.
	ParentID types.ID `json:"parent_id"`

	// OrderKey is the opaque sortable key ordering the block among its
	// siblings under plain string comparison. No two live siblings share
	// a key.
	OrderKey string `json:"order_key"`

	// Type is the block type.
	Type block.Type `json:"type"`

	// Content is the typed content payload. It is replaced wholesale by
	// update operations and never mutated in place, so copies may share it.
	Content block.Content `json:"-"`

	// Collapsed reports whether the block is collapsed in outline views.
	Collapsed bool `json:"collapsed"`

	// CreatedAt is the time when the block was created.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is the time when the block was last updated.
	UpdatedAt time.Time `json:"updated_at"`

	// RemovedAt is the time when the block was soft-deleted.
	RemovedAt time.Time `json:"removed_at"`
}

// IsRemoved returns true if the block is soft-deleted.
func (info *BlockInfo) IsRemoved() bool {
	return !info.RemovedAt.IsZero()
}

// DeepCopy creates a copy of this BlockInfo. Content is shared because it
// is immutable by convention.
func (info *BlockInfo) DeepCopy() *BlockInfo {
	if info == nil {
		return nil
	}

	copied := *info
	return &copied
}
