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

// ObjectInfo is a structure representing information of an object, the
// top-level container of a block document.
type ObjectInfo struct {
	// ID is the unique ID of the object.
	ID types.ID `json:"id"`

	// TypeKey is the key of the object type, e.g. "note" or "daily".
	TypeKey string `json:"type_key"`

	// Title is the title of the object.
	Title string `json:"title"`

	// DocVersion is the optimistic-concurrency counter of the object's
	// block document. It starts at 0 and increases by exactly 1 per
	// successfully applied patch.
	DocVersion int64 `json:"doc_version"`

	// CreatedAt is the time when the object was created.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is the time when the object was last updated.
	UpdatedAt time.Time `json:"updated_at"`

	// RemovedAt is the time when the object was soft-deleted.
	RemovedAt time.Time `json:"removed_at"`
}

// IncreaseDocVersion increases the document version of the object.
func (info *ObjectInfo) IncreaseDocVersion() int64 {
	info.DocVersion++
	return info.DocVersion
}

// IsRemoved returns true if the object is soft-deleted.
func (info *ObjectInfo) IsRemoved() bool {
	return !info.RemovedAt.IsZero()
}

// DeepCopy creates a deep copy of this ObjectInfo.
func (info *ObjectInfo) DeepCopy() *ObjectInfo {
	if info == nil {
		return nil
	}

	copied := *info
	return &copied
}

// ToSummary converts this ObjectInfo to an ObjectSummary.
func (info *ObjectInfo) ToSummary() *types.ObjectSummary {
	return &types.ObjectSummary{
		ID:         info.ID,
		TypeKey:    info.TypeKey,
		Title:      info.Title,
		DocVersion: info.DocVersion,
		CreatedAt:  info.CreatedAt,
		UpdatedAt:  info.UpdatedAt,
	}
}
