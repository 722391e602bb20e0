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
)

// RefEdgeInfo is a derived row representing "the source block references
// the target object (or a block within it)". The rows of a block are
// replaced every time its content changes and are never edited by hand.
type RefEdgeInfo struct {
	// ID is the unique ID of the edge row.
	ID types.ID `json:"id"`

	// SourceBlockID is the block containing the reference.
	SourceBlockID types.ID `json:"source_block_id"`

	// SourceObjectID is the object containing the source block.
	SourceObjectID types.ID `json:"source_object_id"`

	// TargetObjectID is the referenced object.
	TargetObjectID types.ID `json:"target_object_id"`

	// TargetBlockID is the referenced block, empty when the edge targets
	// the whole object.
	TargetBlockID types.ID `json:"target_block_id"`

	// CreatedAt is the time the edge was derived.
	CreatedAt time.Time `json:"created_at"`
}

// DeepCopy creates a deep copy of this RefEdgeInfo.
func (info *RefEdgeInfo) DeepCopy() *RefEdgeInfo {
	if info == nil {
		return nil
	}

	copied := *info
	return &copied
}
