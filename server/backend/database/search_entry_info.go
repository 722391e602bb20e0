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

// SearchEntryInfo is a derived row mapping a block to its extracted plain
// text. At most one row exists per block, and only for blocks with
// non-empty extracted text.
type SearchEntryInfo struct {
	// BlockID is the block the text was extracted from.
	BlockID types.ID `json:"block_id"`

	// ObjectID is the object containing the block.
	ObjectID types.ID `json:"object_id"`

	// Text is the extracted plain text.
	Text string `json:"text"`

	// UpdatedAt is the time the entry was last recomputed.
	UpdatedAt time.Time `json:"updated_at"`
}

// DeepCopy creates a deep copy of this SearchEntryInfo.
func (info *SearchEntryInfo) DeepCopy() *SearchEntryInfo {
	if info == nil {
		return nil
	}

	copied := *info
	return &copied
}
