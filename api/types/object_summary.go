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

// ObjectSummary represents a summary of an object.
type ObjectSummary struct {
	// ID is the unique identifier of the object.
	ID ID `json:"id"`

	// TypeKey is the key of the object type, e.g. "note" or "daily".
	TypeKey string `json:"typeKey"`

	// Title is the title of the object.
	Title string `json:"title"`

	// DocVersion is the version of the object's block document. It is used
	// as the base version of the next patch submitted by the caller.
	DocVersion int64 `json:"docVersion"`

	// CreatedAt is the time when the object was created.
	CreatedAt time.Time `json:"createdAt"`

	// UpdatedAt is the time when the object was last updated.
	UpdatedAt time.Time `json:"updatedAt"`
}
