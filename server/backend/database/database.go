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

// Package database provides the storage interface for the block-document
// engine. A patch is applied as one transaction: either every operation
// and every derived-index write commits, or none do.
package database

import (
	"context"
	gotime "time"

	"github.com/inkstone-notes/inkstone/api/types"
	"github.com/inkstone-notes/inkstone/pkg/document/operations"
	"github.com/inkstone-notes/inkstone/pkg/errors"
)

var (
	// ErrObjectNotFound is returned when the object is absent or soft-deleted.
	ErrObjectNotFound = errors.NotFound("object not found").WithCode("NOT_FOUND_OBJECT")

	// ErrBlockNotFound is returned when the block is absent or soft-deleted.
	ErrBlockNotFound = errors.NotFound("block not found").WithCode("NOT_FOUND_BLOCK")

	// ErrValidation is returned for malformed operation input caught before
	// any mutation.
	ErrValidation = errors.InvalidArgument("invalid input").WithCode("VALIDATION")

	// ErrVersionConflict is returned when the base document version is
	// stale. The caller must re-read the document and recompute its
	// operation list against the current version.
	ErrVersionConflict = errors.FailedPrecond("stale base document version").WithCode("CONFLICT_VERSION")

	// ErrOrderKeyConflict is returned when an explicit order key collides
	// with an existing sibling.
	ErrOrderKeyConflict = errors.FailedPrecond("order key collides with a sibling").WithCode("CONFLICT_ORDERING")

	// ErrCycle is returned when a move would make a block its own ancestor.
	ErrCycle = errors.FailedPrecond("move would create a cycle").WithCode("INVARIANT_CYCLE")

	// ErrCrossObject is returned when an operation would attach a block
	// under a parent in a different object, or targets a block outside the
	// patched object.
	ErrCrossObject = errors.FailedPrecond("block belongs to a different object").WithCode("INVARIANT_CROSS_OBJECT")

	// ErrParentDeleted is returned when an operation targets a soft-deleted
	// parent block.
	ErrParentDeleted = errors.FailedPrecond("parent block is deleted").WithCode("INVARIANT_PARENT_DELETED")

	// ErrIdempotencyConflict is returned when an idempotency token is
	// reused with a different operation list.
	ErrIdempotencyConflict = errors.FailedPrecond("idempotency token reused with different operations").WithCode("IDEMPOTENCY_CONFLICT")

	// ErrInternal is returned for unexpected storage failures. It carries
	// an opaque request id in its metadata, never raw internals.
	ErrInternal = errors.Internal("internal storage error").WithCode("INTERNAL")
)

// IdempotencyCheck asks ApplyPatch to resolve an idempotency token inside
// the patch transaction.
type IdempotencyCheck struct {
	// Token is the client-generated idempotency token.
	Token string

	// Fingerprint is the digest of the submitted operation list.
	Fingerprint string

	// TTL is how long the stored record stays valid.
	TTL gotime.Duration
}

// Database is the storage engine for objects, blocks, and the derived
// reference and search indexes.
type Database interface {
	// Close closes all resources of this database.
	Close() error

	// CreateObjectInfo creates a new object with an empty block document at
	// version 0.
	CreateObjectInfo(ctx context.Context, typeKey, title string) (*ObjectInfo, error)

	// FindObjectInfoByID returns the object with the given id. Soft-deleted
	// objects are reported as ErrObjectNotFound.
	FindObjectInfoByID(ctx context.Context, objectID types.ID) (*ObjectInfo, error)

	// ListObjectInfos returns all live objects.
	ListObjectInfos(ctx context.Context) ([]*ObjectInfo, error)

	// UpdateObjectTitle renames the object.
	UpdateObjectTitle(ctx context.Context, objectID types.ID, title string) (*ObjectInfo, error)

	// RemoveObjectInfo soft-deletes the object, cascades the soft delete to
	// its live blocks, and drops their derived index rows.
	RemoveObjectInfo(ctx context.Context, objectID types.ID) error

	// ApplyPatch applies the operation list against the object's block
	// document in one transaction. The document version must match
	// baseDocVersion and is incremented by exactly 1 on success. On any
	// failure the transaction is rolled back and a typed error is returned.
	ApplyPatch(
		ctx context.Context,
		objectID types.ID,
		baseDocVersion int64,
		ops []operations.Operation,
		idem *IdempotencyCheck,
	) (*types.PatchResult, error)

	// FindBlockInfosByObjectID returns the flat block rows of the object,
	// including soft-deleted rows when includeRemoved is set.
	FindBlockInfosByObjectID(ctx context.Context, objectID types.ID, includeRemoved bool) ([]*BlockInfo, error)

	// FindObjectInfoWithBlocks returns the object and its flat block rows
	// from a single snapshot, so the document version always pairs with
	// the blocks it produced.
	FindObjectInfoWithBlocks(ctx context.Context, objectID types.ID, includeRemoved bool) (*ObjectInfo, []*BlockInfo, error)

	// FindBlockInfoByID returns a single live block of the object.
	FindBlockInfoByID(ctx context.Context, objectID, blockID types.ID) (*BlockInfo, error)

	// FindAncestorIDs returns the ancestor chain of the block from its
	// immediate parent up to the root.
	FindAncestorIDs(ctx context.Context, objectID, blockID types.ID) ([]types.ID, error)

	// FindRefEdgesByTargetObjectID returns the reference edges pointing at
	// the given object, i.e. its backlinks.
	FindRefEdgesByTargetObjectID(ctx context.Context, targetObjectID types.ID) ([]*RefEdgeInfo, error)

	// FindSearchEntries returns the search entries whose text contains the
	// query, case-insensitively.
	FindSearchEntries(ctx context.Context, query string) ([]*SearchEntryInfo, error)

	// PurgeExpiredIdempotencyInfos hard-deletes idempotency records that
	// expired before now and returns how many were removed.
	PurgeExpiredIdempotencyInfos(ctx context.Context, now gotime.Time) (int, error)

	// PurgeRemoved hard-deletes blocks and objects that were soft-deleted
	// before the given cutoff and returns how many rows were removed.
	PurgeRemoved(ctx context.Context, before gotime.Time) (int, error)
}
