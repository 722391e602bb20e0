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

package types

import "time"

// Backlink represents an incoming reference to an object: some block in
// another (or the same) object links to it.
type Backlink struct {
	// SourceObjectID is the object containing the referring block.
	SourceObjectID ID `json:"sourceObjectId"`

	// SourceBlockID is the referring block.
	SourceBlockID ID `json:"sourceBlockId"`

	// TargetBlockID is set when the reference targets a specific block
	// rather than the whole object.
	TargetBlockID ID `json:"targetBlockId,omitempty"`

	// CreatedAt is the time the edge was derived.
	CreatedAt time.Time `json:"createdAt"`
}

// SearchHit represents a single full-text search match.
type SearchHit struct {
	// ObjectID is the object containing the matching block.
	ObjectID ID `json:"objectId"`

	// BlockID is the matching block.
	BlockID ID `json:"blockId"`

	// Snippet is a short piece of the block's extracted text around the
	// first match.
	Snippet string `json:"snippet"`
}
