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

// Package memory implements the database interface using an in-memory
// database. It is the store an embedding local-first process runs on;
// every patch is one memdb transaction, aborted wholesale on failure.
package memory

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	gotime "time"

	"github.com/hashicorp/go-memdb"
	"github.com/rs/xid"

	"github.com/inkstone-notes/inkstone/api/types"
	"github.com/inkstone-notes/inkstone/internal/logging"
	"github.com/inkstone-notes/inkstone/internal/metaerrors"
	"github.com/inkstone-notes/inkstone/pkg/document/operations"
	"github.com/inkstone-notes/inkstone/pkg/document/orderkey"
	"github.com/inkstone-notes/inkstone/server/backend/database"
)

// DB is an in-memory database backed by go-memdb.
type DB struct {
	db *memdb.MemDB
}

// New returns a new in-memory database.
func New() (*DB, error) {
	memDB, err := memdb.NewMemDB(schema)
	if err != nil {
		return nil, fmt.Errorf("new memdb: %w", err)
	}

	return &DB{
		db: memDB,
	}, nil
}

// Close closes the database.
func (d *DB) Close() error {
	return nil
}

// CreateObjectInfo creates a new object with an empty block document at
// version 0.
func (d *DB) CreateObjectInfo(
	_ context.Context,
	typeKey string,
	title string,
) (*database.ObjectInfo, error) {
	txn := d.db.Txn(true)
	defer txn.Abort()

	now := gotime.Now()
	info := &database.ObjectInfo{
		ID:         types.NewID(),
		TypeKey:    typeKey,
		Title:      title,
		DocVersion: 0,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := txn.Insert(tblObjects, info); err != nil {
		return nil, fmt.Errorf("insert object: %w", err)
	}

	txn.Commit()
	return info.DeepCopy(), nil
}

// FindObjectInfoByID returns the object with the given id.
func (d *DB) FindObjectInfoByID(
	_ context.Context,
	objectID types.ID,
) (*database.ObjectInfo, error) {
	txn := d.db.Txn(false)
	defer txn.Abort()

	info, err := findObjectInfo(txn, objectID)
	if err != nil {
		return nil, err
	}

	return info.DeepCopy(), nil
}

// ListObjectInfos returns all live objects.
func (d *DB) ListObjectInfos(_ context.Context) ([]*database.ObjectInfo, error) {
	txn := d.db.Txn(false)
	defer txn.Abort()

	iter, err := txn.Get(tblObjects, "id")
	if err != nil {
		return nil, fmt.Errorf("list objects: %w", err)
	}

	var infos []*database.ObjectInfo
	for raw := iter.Next(); raw != nil; raw = iter.Next() {
		info := raw.(*database.ObjectInfo)
		if info.IsRemoved() {
			continue
		}
		infos = append(infos, info.DeepCopy())
	}

	return infos, nil
}

// UpdateObjectTitle renames the object.
func (d *DB) UpdateObjectTitle(
	_ context.Context,
	objectID types.ID,
	title string,
) (*database.ObjectInfo, error) {
	txn := d.db.Txn(true)
	defer txn.Abort()

	info, err := findObjectInfo(txn, objectID)
	if err != nil {
		return nil, err
	}

	updated := info.DeepCopy()
	updated.Title = title
	updated.UpdatedAt = gotime.Now()
	if err := txn.Insert(tblObjects, updated); err != nil {
		return nil, fmt.Errorf("update object %s: %w", objectID, err)
	}

	txn.Commit()
	return updated.DeepCopy(), nil
}

// RemoveObjectInfo soft-deletes the object, cascades the soft delete to
// its live blocks, and drops their derived index rows.
func (d *DB) RemoveObjectInfo(_ context.Context, objectID types.ID) error {
	txn := d.db.Txn(true)
	defer txn.Abort()

	info, err := findObjectInfo(txn, objectID)
	if err != nil {
		return err
	}

	now := gotime.Now()
	blocks, err := blocksOfObject(txn, objectID)
	if err != nil {
		return err
	}

	var removedIDs []types.ID
	for _, blk := range blocks {
		if blk.IsRemoved() {
			continue
		}
		removed := blk.DeepCopy()
		removed.RemovedAt = now
		if err := txn.Insert(tblBlocks, removed); err != nil {
			return fmt.Errorf("remove block %s: %w", blk.ID, err)
		}
		removedIDs = append(removedIDs, blk.ID)
	}
	if err := dropRefs(txn, removedIDs); err != nil {
		return err
	}
	if err := dropSearch(txn, removedIDs); err != nil {
		return err
	}

	removed := info.DeepCopy()
	removed.RemovedAt = now
	removed.UpdatedAt = now
	if err := txn.Insert(tblObjects, removed); err != nil {
		return fmt.Errorf("remove object %s: %w", objectID, err)
	}

	txn.Commit()
	return nil
}

// ApplyPatch applies the operation list against the object's block
// document in one transaction. Operations are applied in order and each
// sees the effects of the ones before it. On success the document version
// advances by exactly 1; on any failure the transaction is aborted and
// the store is unchanged.
func (d *DB) ApplyPatch(
	ctx context.Context,
	objectID types.ID,
	baseDocVersion int64,
	ops []operations.Operation,
	idem *database.IdempotencyCheck,
) (*types.PatchResult, error) {
	txn := d.db.Txn(true)
	defer txn.Abort()

	now := gotime.Now()

	if idem != nil {
		stored, err := resolveIdempotency(txn, idem, now)
		if err != nil {
			return nil, err
		}
		if stored != nil {
			return stored, nil
		}
	}

	info, err := findObjectInfo(txn, objectID)
	if err != nil {
		return nil, err
	}
	if info.DocVersion != baseDocVersion {
		return nil, metaerrors.New(database.ErrVersionConflict, map[string]string{
			"expected": strconv.FormatInt(baseDocVersion, 10),
			"actual":   strconv.FormatInt(info.DocVersion, 10),
		})
	}

	result := &types.PatchResult{}
	for _, op := range ops {
		switch op := op.(type) {
		case *operations.Insert:
			err = d.applyInsert(txn, objectID, op, result, now)
		case *operations.Update:
			err = d.applyUpdate(txn, objectID, baseDocVersion, op, result, now)
		case *operations.Move:
			err = d.applyMove(txn, objectID, op, result, now)
		case *operations.Delete:
			err = d.applyDelete(txn, objectID, op, result, now)
		default:
			err = metaerrors.New(database.ErrValidation, map[string]string{
				"reason": fmt.Sprintf("unknown operation %T", op),
			})
		}
		if err != nil {
			return nil, err
		}
	}

	updated := info.DeepCopy()
	result.DocVersion = updated.IncreaseDocVersion()
	updated.UpdatedAt = now
	if err := txn.Insert(tblObjects, updated); err != nil {
		return nil, d.internalError(ctx, "store object", err)
	}

	if idem != nil {
		record := &database.IdempotencyInfo{
			Token:       idem.Token,
			ObjectID:    objectID,
			Fingerprint: idem.Fingerprint,
			Result:      result.DeepCopy(),
			CreatedAt:   now,
			ExpiresAt:   now.Add(idem.TTL),
		}
		if err := txn.Insert(tblIdempotency, record); err != nil {
			return nil, d.internalError(ctx, "store idempotency record", err)
		}
	}

	txn.Commit()
	return result, nil
}

// applyInsert creates a new block and indexes its content.
func (d *DB) applyInsert(
	txn *memdb.Txn,
	objectID types.ID,
	op *operations.Insert,
	result *types.PatchResult,
	now gotime.Time,
) error {
	blockID := op.BlockID
	if blockID == "" {
		blockID = types.NewID()
	} else {
		raw, err := txn.First(tblBlocks, "id", blockID.String())
		if err != nil {
			return fmt.Errorf("find block %s: %w", blockID, err)
		}
		if raw != nil {
			return metaerrors.New(database.ErrValidation, map[string]string{
				"reason":  "block id already exists",
				"blockId": blockID.String(),
			})
		}
	}

	if op.ParentID != "" {
		if err := resolveParent(txn, objectID, op.ParentID, true); err != nil {
			return err
		}
	}

	siblings, err := liveSiblings(txn, objectID, op.ParentID)
	if err != nil {
		return err
	}
	key, err := orderKeyFor(siblings, op.Placement, op.ExplicitKey)
	if err != nil {
		return err
	}

	blk := &database.BlockInfo{
		ID:        blockID,
		ObjectID:  objectID,
		ParentID:  op.ParentID,
		OrderKey:  key,
		Type:      op.Type,
		Content:   op.Content,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := txn.Insert(tblBlocks, blk); err != nil {
		return fmt.Errorf("insert block %s: %w", blockID, err)
	}

	if err := reindexRefs(txn, blk, now); err != nil {
		return err
	}
	if err := reindexSearch(txn, blk, now); err != nil {
		return err
	}

	result.InsertedBlockIDs = append(result.InsertedBlockIDs, blockID)
	return nil
}

// applyUpdate replaces a block's content and reindexes it.
func (d *DB) applyUpdate(
	txn *memdb.Txn,
	objectID types.ID,
	baseDocVersion int64,
	op *operations.Update,
	result *types.PatchResult,
	now gotime.Time,
) error {
	if op.ExpectedVersion != nil && *op.ExpectedVersion != baseDocVersion {
		return metaerrors.New(database.ErrVersionConflict, map[string]string{
			"expected": strconv.FormatInt(*op.ExpectedVersion, 10),
			"actual":   strconv.FormatInt(baseDocVersion, 10),
			"blockId":  op.BlockID.String(),
		})
	}

	blk, err := findLiveBlock(txn, objectID, op.BlockID)
	if err != nil {
		return err
	}
	if op.Content.Type() != blk.Type {
		return metaerrors.New(database.ErrValidation, map[string]string{
			"reason":  fmt.Sprintf("%s content for %s block", op.Content.Type(), blk.Type),
			"blockId": op.BlockID.String(),
		})
	}

	updated := blk.DeepCopy()
	updated.Content = op.Content
	updated.UpdatedAt = now
	if err := txn.Insert(tblBlocks, updated); err != nil {
		return fmt.Errorf("update block %s: %w", op.BlockID, err)
	}

	if err := reindexRefs(txn, updated, now); err != nil {
		return err
	}
	if err := reindexSearch(txn, updated, now); err != nil {
		return err
	}

	result.UpdatedBlockIDs = append(result.UpdatedBlockIDs, op.BlockID)
	return nil
}

// applyMove changes a block's parent and order key. Content and derived
// indexes are untouched.
func (d *DB) applyMove(
	txn *memdb.Txn,
	objectID types.ID,
	op *operations.Move,
	result *types.PatchResult,
	now gotime.Time,
) error {
	blk, err := findLiveBlock(txn, objectID, op.BlockID)
	if err != nil {
		return err
	}

	if op.NewParentID != "" {
		if err := resolveParent(txn, objectID, op.NewParentID, false); err != nil {
			return err
		}
	}

	cycle, err := wouldCreateCycle(txn, op.BlockID, op.NewParentID, objectID)
	if err != nil {
		return err
	}
	if cycle {
		return metaerrors.New(database.ErrCycle, map[string]string{
			"blockId":      op.BlockID.String(),
			"wouldBeUnder": op.NewParentID.String(),
		})
	}

	siblings, err := liveSiblings(txn, objectID, op.NewParentID)
	if err != nil {
		return err
	}
	// The moving block never counts as its own sibling.
	filtered := siblings[:0]
	for _, sib := range siblings {
		if sib.ID != op.BlockID {
			filtered = append(filtered, sib)
		}
	}
	key, err := orderKeyFor(filtered, op.Placement, op.ExplicitKey)
	if err != nil {
		return err
	}

	moved := blk.DeepCopy()
	moved.ParentID = op.NewParentID
	moved.OrderKey = key
	moved.UpdatedAt = now
	if err := txn.Insert(tblBlocks, moved); err != nil {
		return fmt.Errorf("move block %s: %w", op.BlockID, err)
	}

	result.MovedBlockIDs = append(result.MovedBlockIDs, op.BlockID)
	return nil
}

// applyDelete soft-deletes a block and all of its live descendants, and
// drops their derived index rows.
func (d *DB) applyDelete(
	txn *memdb.Txn,
	objectID types.ID,
	op *operations.Delete,
	result *types.PatchResult,
	now gotime.Time,
) error {
	if _, err := findLiveBlock(txn, objectID, op.BlockID); err != nil {
		return err
	}

	children, err := liveChildrenByParent(txn, objectID)
	if err != nil {
		return err
	}

	// Iterative cascade so deeply nested documents cannot exhaust the stack.
	var doomed []types.ID
	stack := []types.ID{op.BlockID}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		doomed = append(doomed, id)
		stack = append(stack, children[id]...)
	}

	for _, id := range doomed {
		raw, err := txn.First(tblBlocks, "id", id.String())
		if err != nil {
			return fmt.Errorf("find block %s: %w", id, err)
		}
		removed := raw.(*database.BlockInfo).DeepCopy()
		removed.RemovedAt = now
		removed.UpdatedAt = now
		if err := txn.Insert(tblBlocks, removed); err != nil {
			return fmt.Errorf("delete block %s: %w", id, err)
		}
	}

	if err := dropRefs(txn, doomed); err != nil {
		return err
	}
	if err := dropSearch(txn, doomed); err != nil {
		return err
	}

	result.DeletedBlockIDs = append(result.DeletedBlockIDs, doomed...)
	return nil
}

// FindBlockInfosByObjectID returns the flat block rows of the object.
func (d *DB) FindBlockInfosByObjectID(
	_ context.Context,
	objectID types.ID,
	includeRemoved bool,
) ([]*database.BlockInfo, error) {
	txn := d.db.Txn(false)
	defer txn.Abort()

	blocks, err := blocksOfObject(txn, objectID)
	if err != nil {
		return nil, err
	}

	var infos []*database.BlockInfo
	for _, blk := range blocks {
		if blk.IsRemoved() && !includeRemoved {
			continue
		}
		infos = append(infos, blk.DeepCopy())
	}

	return infos, nil
}

// FindObjectInfoWithBlocks returns the object and its flat block rows
// from one read transaction.
func (d *DB) FindObjectInfoWithBlocks(
	_ context.Context,
	objectID types.ID,
	includeRemoved bool,
) (*database.ObjectInfo, []*database.BlockInfo, error) {
	txn := d.db.Txn(false)
	defer txn.Abort()

	info, err := findObjectInfo(txn, objectID)
	if err != nil {
		return nil, nil, err
	}

	blocks, err := blocksOfObject(txn, objectID)
	if err != nil {
		return nil, nil, err
	}

	var infos []*database.BlockInfo
	for _, blk := range blocks {
		if blk.IsRemoved() && !includeRemoved {
			continue
		}
		infos = append(infos, blk.DeepCopy())
	}

	return info.DeepCopy(), infos, nil
}

// FindBlockInfoByID returns a single live block of the object.
func (d *DB) FindBlockInfoByID(
	_ context.Context,
	objectID types.ID,
	blockID types.ID,
) (*database.BlockInfo, error) {
	txn := d.db.Txn(false)
	defer txn.Abort()

	blk, err := findLiveBlock(txn, objectID, blockID)
	if err != nil {
		return nil, err
	}

	return blk.DeepCopy(), nil
}

// FindAncestorIDs returns the ancestor chain of the block from its
// immediate parent up to the root.
func (d *DB) FindAncestorIDs(
	_ context.Context,
	objectID types.ID,
	blockID types.ID,
) ([]types.ID, error) {
	txn := d.db.Txn(false)
	defer txn.Abort()

	blk, err := findLiveBlock(txn, objectID, blockID)
	if err != nil {
		return nil, err
	}

	return ancestorIDs(txn, blk, objectID)
}

// FindRefEdgesByTargetObjectID returns the reference edges pointing at the
// given object.
func (d *DB) FindRefEdgesByTargetObjectID(
	_ context.Context,
	targetObjectID types.ID,
) ([]*database.RefEdgeInfo, error) {
	txn := d.db.Txn(false)
	defer txn.Abort()

	iter, err := txn.Get(tblRefs, "target_object_id", targetObjectID.String())
	if err != nil {
		return nil, fmt.Errorf("find backlinks of %s: %w", targetObjectID, err)
	}

	var edges []*database.RefEdgeInfo
	for raw := iter.Next(); raw != nil; raw = iter.Next() {
		edges = append(edges, raw.(*database.RefEdgeInfo).DeepCopy())
	}

	return edges, nil
}

// FindSearchEntries returns the search entries whose text contains the
// query, case-insensitively. Entries of soft-deleted objects are skipped.
func (d *DB) FindSearchEntries(
	_ context.Context,
	query string,
) ([]*database.SearchEntryInfo, error) {
	txn := d.db.Txn(false)
	defer txn.Abort()

	iter, err := txn.Get(tblSearch, "id")
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", query, err)
	}

	needle := strings.ToLower(query)
	var entries []*database.SearchEntryInfo
	for raw := iter.Next(); raw != nil; raw = iter.Next() {
		entry := raw.(*database.SearchEntryInfo)
		if !strings.Contains(strings.ToLower(entry.Text), needle) {
			continue
		}
		objRaw, err := txn.First(tblObjects, "id", entry.ObjectID.String())
		if err != nil {
			return nil, fmt.Errorf("find object %s: %w", entry.ObjectID, err)
		}
		if objRaw == nil || objRaw.(*database.ObjectInfo).IsRemoved() {
			continue
		}
		entries = append(entries, entry.DeepCopy())
	}

	return entries, nil
}

// PurgeExpiredIdempotencyInfos hard-deletes idempotency records that
// expired before now.
func (d *DB) PurgeExpiredIdempotencyInfos(
	_ context.Context,
	now gotime.Time,
) (int, error) {
	txn := d.db.Txn(true)
	defer txn.Abort()

	iter, err := txn.Get(tblIdempotency, "id")
	if err != nil {
		return 0, fmt.Errorf("list idempotency records: %w", err)
	}

	var expired []*database.IdempotencyInfo
	for raw := iter.Next(); raw != nil; raw = iter.Next() {
		record := raw.(*database.IdempotencyInfo)
		if record.IsExpired(now) {
			expired = append(expired, record)
		}
	}

	for _, record := range expired {
		if err := txn.Delete(tblIdempotency, record); err != nil {
			return 0, fmt.Errorf("purge idempotency record: %w", err)
		}
	}

	txn.Commit()
	return len(expired), nil
}

// PurgeRemoved hard-deletes blocks and objects soft-deleted before the
// given cutoff.
func (d *DB) PurgeRemoved(_ context.Context, before gotime.Time) (int, error) {
	txn := d.db.Txn(true)
	defer txn.Abort()

	iter, err := txn.Get(tblBlocks, "id")
	if err != nil {
		return 0, fmt.Errorf("list blocks: %w", err)
	}
	var doomedBlocks []*database.BlockInfo
	for raw := iter.Next(); raw != nil; raw = iter.Next() {
		blk := raw.(*database.BlockInfo)
		if blk.IsRemoved() && blk.RemovedAt.Before(before) {
			doomedBlocks = append(doomedBlocks, blk)
		}
	}

	iter, err = txn.Get(tblObjects, "id")
	if err != nil {
		return 0, fmt.Errorf("list objects: %w", err)
	}
	var doomedObjects []*database.ObjectInfo
	for raw := iter.Next(); raw != nil; raw = iter.Next() {
		info := raw.(*database.ObjectInfo)
		if info.IsRemoved() && info.RemovedAt.Before(before) {
			doomedObjects = append(doomedObjects, info)
		}
	}

	purged := 0
	for _, blk := range doomedBlocks {
		if err := txn.Delete(tblBlocks, blk); err != nil {
			return 0, fmt.Errorf("purge block %s: %w", blk.ID, err)
		}
		purged++
	}
	for _, info := range doomedObjects {
		if err := txn.Delete(tblObjects, info); err != nil {
			return 0, fmt.Errorf("purge object %s: %w", info.ID, err)
		}
		purged++
	}

	txn.Commit()
	return purged, nil
}

// internalError logs the underlying failure and returns an opaque INTERNAL
// error carrying only a request id.
func (d *DB) internalError(ctx context.Context, op string, err error) error {
	requestID := xid.New().String()
	logging.From(ctx).Errorf("%s (request %s): %v", op, requestID, err)
	return metaerrors.New(database.ErrInternal, map[string]string{
		"requestId": requestID,
	})
}

// resolveIdempotency resolves a token inside the patch transaction. It
// returns the stored result for a replay with a matching fingerprint, an
// error for a mismatched one, and (nil, nil) when the patch should be
// applied. Expired records are discarded.
func resolveIdempotency(
	txn *memdb.Txn,
	idem *database.IdempotencyCheck,
	now gotime.Time,
) (*types.PatchResult, error) {
	raw, err := txn.First(tblIdempotency, "id", idem.Token)
	if err != nil {
		return nil, fmt.Errorf("find idempotency record: %w", err)
	}
	if raw == nil {
		return nil, nil
	}

	record := raw.(*database.IdempotencyInfo)
	if record.IsExpired(now) {
		if err := txn.Delete(tblIdempotency, record); err != nil {
			return nil, fmt.Errorf("discard idempotency record: %w", err)
		}
		return nil, nil
	}

	if record.Fingerprint != idem.Fingerprint {
		return nil, metaerrors.New(database.ErrIdempotencyConflict, map[string]string{
			"token": idem.Token,
		})
	}
	return record.Result.DeepCopy(), nil
}

// findObjectInfo returns the live object row, treating soft-deleted
// objects as absent.
func findObjectInfo(txn *memdb.Txn, objectID types.ID) (*database.ObjectInfo, error) {
	raw, err := txn.First(tblObjects, "id", objectID.String())
	if err != nil {
		return nil, fmt.Errorf("find object %s: %w", objectID, err)
	}
	if raw == nil || raw.(*database.ObjectInfo).IsRemoved() {
		return nil, metaerrors.New(database.ErrObjectNotFound, map[string]string{
			"objectId": objectID.String(),
		})
	}

	return raw.(*database.ObjectInfo), nil
}

// findLiveBlock returns the live block row, enforcing that it belongs to
// the patched object.
func findLiveBlock(txn *memdb.Txn, objectID, blockID types.ID) (*database.BlockInfo, error) {
	raw, err := txn.First(tblBlocks, "id", blockID.String())
	if err != nil {
		return nil, fmt.Errorf("find block %s: %w", blockID, err)
	}
	if raw == nil {
		return nil, metaerrors.New(database.ErrBlockNotFound, map[string]string{
			"blockId": blockID.String(),
		})
	}

	blk := raw.(*database.BlockInfo)
	if blk.ObjectID != objectID {
		return nil, metaerrors.New(database.ErrCrossObject, map[string]string{
			"blockId":  blockID.String(),
			"objectId": blk.ObjectID.String(),
		})
	}
	if blk.IsRemoved() {
		return nil, metaerrors.New(database.ErrBlockNotFound, map[string]string{
			"blockId": blockID.String(),
		})
	}

	return blk, nil
}

// resolveParent checks that the destination parent exists, is live, and
// belongs to the object. For inserts a parent in another object is simply
// absent from the caller's point of view; for moves it is a cross-object
// violation.
func resolveParent(txn *memdb.Txn, objectID, parentID types.ID, forInsert bool) error {
	raw, err := txn.First(tblBlocks, "id", parentID.String())
	if err != nil {
		return fmt.Errorf("find parent %s: %w", parentID, err)
	}
	if raw == nil {
		return metaerrors.New(database.ErrBlockNotFound, map[string]string{
			"blockId": parentID.String(),
		})
	}

	parent := raw.(*database.BlockInfo)
	if parent.ObjectID != objectID {
		if forInsert {
			return metaerrors.New(database.ErrBlockNotFound, map[string]string{
				"blockId": parentID.String(),
			})
		}
		return metaerrors.New(database.ErrCrossObject, map[string]string{
			"blockId":  parentID.String(),
			"objectId": parent.ObjectID.String(),
		})
	}
	if parent.IsRemoved() {
		return metaerrors.New(database.ErrParentDeleted, map[string]string{
			"blockId": parentID.String(),
		})
	}

	return nil
}

// wouldCreateCycle reports whether placing blockID under newParentID would
// make the block its own ancestor. It walks the ancestor chain as it
// stands inside the current transaction, so moves earlier in the same
// patch are taken into account.
func wouldCreateCycle(txn *memdb.Txn, blockID, newParentID, objectID types.ID) (bool, error) {
	if newParentID == "" {
		return false, nil
	}
	if newParentID == blockID {
		return true, nil
	}

	seen := map[types.ID]bool{}
	cur := newParentID
	for cur != "" {
		if cur == blockID {
			return true, nil
		}
		if seen[cur] {
			// A pre-existing cycle would loop forever; stop and report it.
			return true, nil
		}
		seen[cur] = true

		raw, err := txn.First(tblBlocks, "id", cur.String())
		if err != nil {
			return false, fmt.Errorf("find block %s: %w", cur, err)
		}
		if raw == nil {
			break
		}
		blk := raw.(*database.BlockInfo)
		if blk.ObjectID != objectID || blk.IsRemoved() {
			break
		}
		cur = blk.ParentID
	}

	return false, nil
}

// ancestorIDs returns the chain from the block's immediate parent to the
// root, iteratively.
func ancestorIDs(txn *memdb.Txn, blk *database.BlockInfo, objectID types.ID) ([]types.ID, error) {
	var chain []types.ID
	seen := map[types.ID]bool{}
	cur := blk.ParentID
	for cur != "" && !seen[cur] {
		seen[cur] = true

		raw, err := txn.First(tblBlocks, "id", cur.String())
		if err != nil {
			return nil, fmt.Errorf("find block %s: %w", cur, err)
		}
		if raw == nil {
			break
		}
		parent := raw.(*database.BlockInfo)
		if parent.ObjectID != objectID || parent.IsRemoved() {
			break
		}
		chain = append(chain, cur)
		cur = parent.ParentID
	}

	return chain, nil
}

// blocksOfObject returns the raw block rows of an object, live and removed.
func blocksOfObject(txn *memdb.Txn, objectID types.ID) ([]*database.BlockInfo, error) {
	iter, err := txn.Get(tblBlocks, "object_id", objectID.String())
	if err != nil {
		return nil, fmt.Errorf("find blocks of %s: %w", objectID, err)
	}

	var blocks []*database.BlockInfo
	for raw := iter.Next(); raw != nil; raw = iter.Next() {
		blocks = append(blocks, raw.(*database.BlockInfo))
	}

	return blocks, nil
}

// liveSiblings returns the live children of the given parent as allocator
// siblings.
func liveSiblings(txn *memdb.Txn, objectID, parentID types.ID) ([]orderkey.Sibling, error) {
	blocks, err := blocksOfObject(txn, objectID)
	if err != nil {
		return nil, err
	}

	var siblings []orderkey.Sibling
	for _, blk := range blocks {
		if blk.IsRemoved() || blk.ParentID != parentID {
			continue
		}
		siblings = append(siblings, orderkey.Sibling{
			ID:  blk.ID,
			Key: blk.OrderKey,
		})
	}

	return siblings, nil
}

// liveChildrenByParent groups the ids of the object's live blocks by their
// parent id.
func liveChildrenByParent(txn *memdb.Txn, objectID types.ID) (map[types.ID][]types.ID, error) {
	blocks, err := blocksOfObject(txn, objectID)
	if err != nil {
		return nil, err
	}

	children := map[types.ID][]types.ID{}
	for _, blk := range blocks {
		if blk.IsRemoved() {
			continue
		}
		children[blk.ParentID] = append(children[blk.ParentID], blk.ID)
	}

	return children, nil
}

// orderKeyFor resolves the order key of an insert or move: an explicit key
// is taken verbatim after a collision check, otherwise the placement is
// resolved against the live siblings.
func orderKeyFor(
	siblings []orderkey.Sibling,
	placement orderkey.Placement,
	explicit string,
) (string, error) {
	if explicit != "" {
		if !orderkey.IsUnique(siblings, explicit) {
			return "", metaerrors.New(database.ErrOrderKeyConflict, map[string]string{
				"orderKey": explicit,
			})
		}
		return orderkey.Allocate(siblings, placement, explicit)
	}

	key, err := orderkey.Allocate(siblings, placement, "")
	if err != nil {
		if errors.Is(err, orderkey.ErrSiblingNotFound) {
			return "", metaerrors.New(database.ErrBlockNotFound, map[string]string{
				"blockId": placement.SiblingID.String(),
			})
		}
		return "", metaerrors.New(database.ErrValidation, map[string]string{
			"reason": err.Error(),
		})
	}
	return key, nil
}
