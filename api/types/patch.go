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

// PatchRequest is the envelope of a patch submission. The operation list
// itself travels beside it because operations are typed values, not plain
// fields.
type PatchRequest struct {
	// ObjectID is the object whose block document is being patched.
	ObjectID ID `json:"objectId" validate:"required"`

	// BaseDocVersion is the document version the operation list was computed
	// against. A stale base version fails the patch with CONFLICT_VERSION.
	BaseDocVersion int64 `json:"baseDocVersion" validate:"min=0"`

	// IdempotencyKey is an optional client-generated token. Resubmitting the
	// same token with the same operation list returns the stored result;
	// resubmitting it with a different list fails IDEMPOTENCY_CONFLICT.
	IdempotencyKey string `json:"idempotencyKey,omitempty" validate:"omitempty,max=128"`
}

// PatchResult is returned for a successfully applied patch. The touched
// block IDs are partitioned by operation kind for caller-side cache
// invalidation.
type PatchResult struct {
	// DocVersion is the document version after the patch.
	DocVersion int64 `json:"docVersion"`

	// InsertedBlockIDs are the IDs of blocks created by insert operations.
	InsertedBlockIDs []ID `json:"insertedBlockIds,omitempty"`

	// UpdatedBlockIDs are the IDs of blocks whose content was replaced.
	UpdatedBlockIDs []ID `json:"updatedBlockIds,omitempty"`

	// MovedBlockIDs are the IDs of blocks whose parent or order changed.
	MovedBlockIDs []ID `json:"movedBlockIds,omitempty"`

	// DeletedBlockIDs are the IDs of soft-deleted blocks, including every
	// descendant removed by the cascade.
	DeletedBlockIDs []ID `json:"deletedBlockIds,omitempty"`
}

// DeepCopy creates a deep copy of this PatchResult.
func (r *PatchResult) DeepCopy() *PatchResult {
	if r == nil {
		return nil
	}

	copied := &PatchResult{
		DocVersion: r.DocVersion,
	}
	copied.InsertedBlockIDs = append(copied.InsertedBlockIDs, r.InsertedBlockIDs...)
	copied.UpdatedBlockIDs = append(copied.UpdatedBlockIDs, r.UpdatedBlockIDs...)
	copied.MovedBlockIDs = append(copied.MovedBlockIDs, r.MovedBlockIDs...)
	copied.DeletedBlockIDs = append(copied.DeletedBlockIDs, r.DeletedBlockIDs...)

	return copied
}
