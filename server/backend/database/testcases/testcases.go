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

// Package testcases contains testcases for database implementations.
package testcases

import (
	"context"
	"sort"
	"testing"
	gotime "time"

	"github.com/stretchr/testify/assert"

	"github.com/inkstone-notes/inkstone/api/types"
	"github.com/inkstone-notes/inkstone/internal/metaerrors"
	"github.com/inkstone-notes/inkstone/pkg/document/block"
	"github.com/inkstone-notes/inkstone/pkg/document/operations"
	"github.com/inkstone-notes/inkstone/pkg/document/orderkey"
	"github.com/inkstone-notes/inkstone/server/backend/database"
)

func paragraph(text string) block.Paragraph {
	return block.Paragraph{Inline: block.Inline{block.Text{Value: text}}}
}

func insertAtEnd(parentID types.ID, text string) *operations.Insert {
	return operations.NewInsert(
		"",
		parentID,
		orderkey.Placement{Position: orderkey.End},
		block.TypeParagraph,
		paragraph(text),
	)
}

func applyOne(
	t *testing.T,
	db database.Database,
	objectID types.ID,
	base int64,
	ops ...operations.Operation,
) *types.PatchResult {
	t.Helper()
	res, err := db.ApplyPatch(context.Background(), objectID, base, ops, nil)
	assert.NoError(t, err)
	return res
}

// RunObjectLifecycleTest runs tests for object create, read, rename and
// soft delete.
func RunObjectLifecycleTest(t *testing.T, db database.Database) {
	t.Run("object lifecycle test", func(t *testing.T) {
		ctx := context.Background()

		info, err := db.CreateObjectInfo(ctx, "note", "Meeting Notes")
		assert.NoError(t, err)
		assert.Equal(t, "note", info.TypeKey)
		assert.Equal(t, int64(0), info.DocVersion)
		assert.NoError(t, info.ID.Validate())

		found, err := db.FindObjectInfoByID(ctx, info.ID)
		assert.NoError(t, err)
		assert.Equal(t, info.ID, found.ID)

		renamed, err := db.UpdateObjectTitle(ctx, info.ID, "Weekly Sync")
		assert.NoError(t, err)
		assert.Equal(t, "Weekly Sync", renamed.Title)

		infos, err := db.ListObjectInfos(ctx)
		assert.NoError(t, err)
		ids := make([]types.ID, 0, len(infos))
		for _, each := range infos {
			ids = append(ids, each.ID)
		}
		assert.Contains(t, ids, info.ID)

		assert.NoError(t, db.RemoveObjectInfo(ctx, info.ID))
		_, err = db.FindObjectInfoByID(ctx, info.ID)
		assert.ErrorIs(t, err, database.ErrObjectNotFound)

		infos, err = db.ListObjectInfos(ctx)
		assert.NoError(t, err)
		for _, each := range infos {
			assert.NotEqual(t, info.ID, each.ID)
		}
	})

	t.Run("missing object test", func(t *testing.T) {
		ctx := context.Background()

		_, err := db.FindObjectInfoByID(ctx, types.NewID())
		assert.ErrorIs(t, err, database.ErrObjectNotFound)

		_, err = db.ApplyPatch(ctx, types.NewID(), 0, []operations.Operation{
			insertAtEnd("", "hello"),
		}, nil)
		assert.ErrorIs(t, err, database.ErrObjectNotFound)
	})
}

// RunApplyPatchTest runs tests for patch application and version
// advancement.
func RunApplyPatchTest(t *testing.T, db database.Database) {
	t.Run("version advances by one per patch test", func(t *testing.T) {
		ctx := context.Background()

		info, err := db.CreateObjectInfo(ctx, "note", "versions")
		assert.NoError(t, err)

		res := applyOne(t, db, info.ID, 0, insertAtEnd("", "first"), insertAtEnd("", "second"))
		assert.Equal(t, int64(1), res.DocVersion)
		assert.Len(t, res.InsertedBlockIDs, 2)

		res = applyOne(t, db, info.ID, 1, insertAtEnd("", "third"))
		assert.Equal(t, int64(2), res.DocVersion)

		found, err := db.FindObjectInfoByID(ctx, info.ID)
		assert.NoError(t, err)
		assert.Equal(t, int64(2), found.DocVersion)
	})

	t.Run("stale base version test", func(t *testing.T) {
		ctx := context.Background()

		info, err := db.CreateObjectInfo(ctx, "note", "conflicts")
		assert.NoError(t, err)
		applyOne(t, db, info.ID, 0, insertAtEnd("", "first"))

		_, err = db.ApplyPatch(ctx, info.ID, 0, []operations.Operation{
			insertAtEnd("", "second"),
		}, nil)
		assert.ErrorIs(t, err, database.ErrVersionConflict)
		meta := metaerrors.MetadataOf(err)
		assert.Equal(t, "0", meta["expected"])
		assert.Equal(t, "1", meta["actual"])

		// The failed patch must leave the store untouched.
		blocks, err := db.FindBlockInfosByObjectID(ctx, info.ID, false)
		assert.NoError(t, err)
		assert.Len(t, blocks, 1)
	})

	t.Run("failing operation rolls back the whole patch test", func(t *testing.T) {
		ctx := context.Background()

		info, err := db.CreateObjectInfo(ctx, "note", "atomicity")
		assert.NoError(t, err)

		_, err = db.ApplyPatch(ctx, info.ID, 0, []operations.Operation{
			insertAtEnd("", "kept only if the patch commits"),
			operations.NewDelete(types.NewID()),
		}, nil)
		assert.ErrorIs(t, err, database.ErrBlockNotFound)

		blocks, err := db.FindBlockInfosByObjectID(ctx, info.ID, false)
		assert.NoError(t, err)
		assert.Empty(t, blocks)

		found, err := db.FindObjectInfoByID(ctx, info.ID)
		assert.NoError(t, err)
		assert.Equal(t, int64(0), found.DocVersion)
	})

	t.Run("guarded update test", func(t *testing.T) {
		ctx := context.Background()

		info, err := db.CreateObjectInfo(ctx, "note", "guards")
		assert.NoError(t, err)
		res := applyOne(t, db, info.ID, 0, insertAtEnd("", "draft"))
		blockID := res.InsertedBlockIDs[0]

		stale := int64(0)
		update := operations.NewUpdate(blockID, paragraph("final"))
		update.ExpectedVersion = &stale
		_, err = db.ApplyPatch(ctx, info.ID, 1, []operations.Operation{update}, nil)
		assert.ErrorIs(t, err, database.ErrVersionConflict)

		current := int64(1)
		update = operations.NewUpdate(blockID, paragraph("final"))
		update.ExpectedVersion = &current
		applyOne(t, db, info.ID, 1, update)

		blk, err := db.FindBlockInfoByID(ctx, info.ID, blockID)
		assert.NoError(t, err)
		assert.Equal(t, "final", block.ExtractPlainText(blk.Content))
	})

	t.Run("content type mismatch test", func(t *testing.T) {
		ctx := context.Background()

		info, err := db.CreateObjectInfo(ctx, "note", "mismatch")
		assert.NoError(t, err)
		res := applyOne(t, db, info.ID, 0, insertAtEnd("", "text"))

		_, err = db.ApplyPatch(ctx, info.ID, 1, []operations.Operation{
			operations.NewUpdate(res.InsertedBlockIDs[0], block.CodeBlock{Language: "go", Text: "package main"}),
		}, nil)
		assert.ErrorIs(t, err, database.ErrValidation)
	})
}

// RunOrderingTest runs tests for sibling ordering and order-key
// allocation.
func RunOrderingTest(t *testing.T, db database.Database) {
	t.Run("sibling order test", func(t *testing.T) {
		ctx := context.Background()

		info, err := db.CreateObjectInfo(ctx, "note", "ordering")
		assert.NoError(t, err)

		res := applyOne(t, db, info.ID, 0,
			insertAtEnd("", "b"),
			insertAtEnd("", "d"),
		)
		first := res.InsertedBlockIDs[0]

		res = applyOne(t, db, info.ID, 1,
			operations.NewInsert("", "", orderkey.Placement{Position: orderkey.Start}, block.TypeParagraph, paragraph("a")),
			operations.NewInsert("", "", orderkey.Placement{Position: orderkey.After, SiblingID: first}, block.TypeParagraph, paragraph("c")),
		)
		assert.Len(t, res.InsertedBlockIDs, 2)

		blocks, err := db.FindBlockInfosByObjectID(ctx, info.ID, false)
		assert.NoError(t, err)
		assert.Len(t, blocks, 4)

		sort.Slice(blocks, func(i, j int) bool {
			return blocks[i].OrderKey < blocks[j].OrderKey
		})
		var texts []string
		for _, blk := range blocks {
			texts = append(texts, block.ExtractPlainText(blk.Content))
		}
		assert.Equal(t, []string{"a", "b", "c", "d"}, texts)

		keys := map[string]bool{}
		for _, blk := range blocks {
			assert.NoError(t, orderkey.Validate(blk.OrderKey))
			assert.False(t, keys[blk.OrderKey])
			keys[blk.OrderKey] = true
		}
	})

	t.Run("missing sibling test", func(t *testing.T) {
		ctx := context.Background()

		info, err := db.CreateObjectInfo(ctx, "note", "missing sibling")
		assert.NoError(t, err)

		_, err = db.ApplyPatch(ctx, info.ID, 0, []operations.Operation{
			operations.NewInsert(
				"", "",
				orderkey.Placement{Position: orderkey.Before, SiblingID: types.NewID()},
				block.TypeParagraph, paragraph("orphan"),
			),
		}, nil)
		assert.ErrorIs(t, err, database.ErrBlockNotFound)
	})

	t.Run("explicit key conflict test", func(t *testing.T) {
		ctx := context.Background()

		info, err := db.CreateObjectInfo(ctx, "note", "explicit keys")
		assert.NoError(t, err)

		imported := operations.NewInsert("", "", orderkey.Placement{}, block.TypeParagraph, paragraph("imported"))
		imported.ExplicitKey = "a0"
		applyOne(t, db, info.ID, 0, imported)

		colliding := operations.NewInsert("", "", orderkey.Placement{}, block.TypeParagraph, paragraph("colliding"))
		colliding.ExplicitKey = "a0"
		_, err = db.ApplyPatch(ctx, info.ID, 1, []operations.Operation{colliding}, nil)
		assert.ErrorIs(t, err, database.ErrOrderKeyConflict)
	})
}

// RunMoveTest runs tests for block moves and cycle rejection.
func RunMoveTest(t *testing.T, db database.Database) {
	t.Run("move between parents test", func(t *testing.T) {
		ctx := context.Background()

		info, err := db.CreateObjectInfo(ctx, "note", "moves")
		assert.NoError(t, err)

		res := applyOne(t, db, info.ID, 0, insertAtEnd("", "parent"), insertAtEnd("", "child"))
		parentID, childID := res.InsertedBlockIDs[0], res.InsertedBlockIDs[1]

		applyOne(t, db, info.ID, 1,
			operations.NewMove(childID, parentID, orderkey.Placement{Position: orderkey.End}),
		)

		blk, err := db.FindBlockInfoByID(ctx, info.ID, childID)
		assert.NoError(t, err)
		assert.Equal(t, parentID, blk.ParentID)

		ancestors, err := db.FindAncestorIDs(ctx, info.ID, childID)
		assert.NoError(t, err)
		assert.Equal(t, []types.ID{parentID}, ancestors)
	})

	t.Run("cycle rejection test", func(t *testing.T) {
		ctx := context.Background()

		info, err := db.CreateObjectInfo(ctx, "note", "cycles")
		assert.NoError(t, err)

		res := applyOne(t, db, info.ID, 0, insertAtEnd("", "a"))
		a := res.InsertedBlockIDs[0]
		res = applyOne(t, db, info.ID, 1, insertAtEnd(a, "b"))
		b := res.InsertedBlockIDs[0]
		res = applyOne(t, db, info.ID, 2, insertAtEnd(b, "c"))
		c := res.InsertedBlockIDs[0]

		_, err = db.ApplyPatch(ctx, info.ID, 3, []operations.Operation{
			operations.NewMove(a, c, orderkey.Placement{Position: orderkey.End}),
		}, nil)
		assert.ErrorIs(t, err, database.ErrCycle)
		meta := metaerrors.MetadataOf(err)
		assert.Equal(t, a.String(), meta["blockId"])
		assert.Equal(t, c.String(), meta["wouldBeUnder"])

		_, err = db.ApplyPatch(ctx, info.ID, 3, []operations.Operation{
			operations.NewMove(a, a, orderkey.Placement{Position: orderkey.End}),
		}, nil)
		assert.ErrorIs(t, err, database.ErrCycle)

		// Moving out to the root always succeeds.
		applyOne(t, db, info.ID, 3,
			operations.NewMove(c, "", orderkey.Placement{Position: orderkey.End}),
		)
	})

	t.Run("cross object move test", func(t *testing.T) {
		ctx := context.Background()

		left, err := db.CreateObjectInfo(ctx, "note", "left")
		assert.NoError(t, err)
		right, err := db.CreateObjectInfo(ctx, "note", "right")
		assert.NoError(t, err)

		res := applyOne(t, db, left.ID, 0, insertAtEnd("", "mine"))
		mine := res.InsertedBlockIDs[0]
		res = applyOne(t, db, right.ID, 0, insertAtEnd("", "theirs"))
		theirs := res.InsertedBlockIDs[0]

		_, err = db.ApplyPatch(ctx, left.ID, 1, []operations.Operation{
			operations.NewMove(mine, theirs, orderkey.Placement{Position: orderkey.End}),
		}, nil)
		assert.ErrorIs(t, err, database.ErrCrossObject)
	})

	t.Run("deleted parent test", func(t *testing.T) {
		ctx := context.Background()

		info, err := db.CreateObjectInfo(ctx, "note", "deleted parents")
		assert.NoError(t, err)

		res := applyOne(t, db, info.ID, 0, insertAtEnd("", "doomed"), insertAtEnd("", "mover"))
		doomed, mover := res.InsertedBlockIDs[0], res.InsertedBlockIDs[1]
		applyOne(t, db, info.ID, 1, operations.NewDelete(doomed))

		_, err = db.ApplyPatch(ctx, info.ID, 2, []operations.Operation{
			operations.NewMove(mover, doomed, orderkey.Placement{Position: orderkey.End}),
		}, nil)
		assert.ErrorIs(t, err, database.ErrParentDeleted)
	})
}

// RunCascadeDeleteTest runs tests for soft deletes cascading to
// descendants.
func RunCascadeDeleteTest(t *testing.T, db database.Database) {
	t.Run("cascade delete test", func(t *testing.T) {
		ctx := context.Background()

		info, err := db.CreateObjectInfo(ctx, "note", "cascades")
		assert.NoError(t, err)

		res := applyOne(t, db, info.ID, 0, insertAtEnd("", "root"))
		root := res.InsertedBlockIDs[0]
		res = applyOne(t, db, info.ID, 1, insertAtEnd(root, "child"))
		child := res.InsertedBlockIDs[0]
		res = applyOne(t, db, info.ID, 2, insertAtEnd(child, "grandchild"))
		grandchild := res.InsertedBlockIDs[0]
		applyOne(t, db, info.ID, 3, insertAtEnd("", "survivor"))

		res = applyOne(t, db, info.ID, 4, operations.NewDelete(root))
		assert.ElementsMatch(t, []types.ID{root, child, grandchild}, res.DeletedBlockIDs)

		live, err := db.FindBlockInfosByObjectID(ctx, info.ID, false)
		assert.NoError(t, err)
		assert.Len(t, live, 1)
		assert.Equal(t, "survivor", block.ExtractPlainText(live[0].Content))

		all, err := db.FindBlockInfosByObjectID(ctx, info.ID, true)
		assert.NoError(t, err)
		assert.Len(t, all, 4)

		_, err = db.FindBlockInfoByID(ctx, info.ID, grandchild)
		assert.ErrorIs(t, err, database.ErrBlockNotFound)

		// Inserting under a soft-deleted parent is rejected.
		_, err = db.ApplyPatch(ctx, info.ID, 5, []operations.Operation{
			insertAtEnd(child, "too late"),
		}, nil)
		assert.ErrorIs(t, err, database.ErrParentDeleted)
	})
}

// RunObjectSnapshotTest runs tests for the single-snapshot object read
// pairing the document version with its block rows.
func RunObjectSnapshotTest(t *testing.T, db database.Database) {
	t.Run("version pairs with blocks test", func(t *testing.T) {
		ctx := context.Background()

		info, err := db.CreateObjectInfo(ctx, "note", "snapshot")
		assert.NoError(t, err)

		res := applyOne(t, db, info.ID, 0, insertAtEnd("", "first"))
		first := res.InsertedBlockIDs[0]
		applyOne(t, db, info.ID, 1, insertAtEnd("", "second"))

		obj, blocks, err := db.FindObjectInfoWithBlocks(ctx, info.ID, false)
		assert.NoError(t, err)
		assert.Equal(t, int64(2), obj.DocVersion)
		assert.Len(t, blocks, 2)

		applyOne(t, db, info.ID, 2, operations.NewDelete(first))

		obj, blocks, err = db.FindObjectInfoWithBlocks(ctx, info.ID, false)
		assert.NoError(t, err)
		assert.Equal(t, int64(3), obj.DocVersion)
		assert.Len(t, blocks, 1)

		obj, blocks, err = db.FindObjectInfoWithBlocks(ctx, info.ID, true)
		assert.NoError(t, err)
		assert.Equal(t, int64(3), obj.DocVersion)
		assert.Len(t, blocks, 2)
	})

	t.Run("snapshot of missing object test", func(t *testing.T) {
		ctx := context.Background()

		_, _, err := db.FindObjectInfoWithBlocks(ctx, types.NewID(), false)
		assert.ErrorIs(t, err, database.ErrObjectNotFound)

		info, err := db.CreateObjectInfo(ctx, "note", "short-lived")
		assert.NoError(t, err)
		assert.NoError(t, db.RemoveObjectInfo(ctx, info.ID))

		_, _, err = db.FindObjectInfoWithBlocks(ctx, info.ID, true)
		assert.ErrorIs(t, err, database.ErrObjectNotFound)
	})
}

// RunSearchIndexTest runs tests for the transactional search index.
func RunSearchIndexTest(t *testing.T, db database.Database) {
	t.Run("search reindex test", func(t *testing.T) {
		ctx := context.Background()

		info, err := db.CreateObjectInfo(ctx, "note", "searchable")
		assert.NoError(t, err)
		res := applyOne(t, db, info.ID, 0, insertAtEnd("", "alpha particle"))
		blockID := res.InsertedBlockIDs[0]

		entries, err := db.FindSearchEntries(ctx, "ALPHA")
		assert.NoError(t, err)
		assert.Len(t, entries, 1)
		assert.Equal(t, blockID, entries[0].BlockID)

		applyOne(t, db, info.ID, 1, operations.NewUpdate(blockID, paragraph("beta decay")))

		entries, err = db.FindSearchEntries(ctx, "alpha")
		assert.NoError(t, err)
		assert.Empty(t, entries)
		entries, err = db.FindSearchEntries(ctx, "beta")
		assert.NoError(t, err)
		assert.Len(t, entries, 1)
	})

	t.Run("deleted blocks leave the search index test", func(t *testing.T) {
		ctx := context.Background()

		info, err := db.CreateObjectInfo(ctx, "note", "disappearing")
		assert.NoError(t, err)
		res := applyOne(t, db, info.ID, 0, insertAtEnd("", "ephemeral text"))
		applyOne(t, db, info.ID, 1, operations.NewDelete(res.InsertedBlockIDs[0]))

		entries, err := db.FindSearchEntries(ctx, "ephemeral")
		assert.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("removed objects leave search results test", func(t *testing.T) {
		ctx := context.Background()

		info, err := db.CreateObjectInfo(ctx, "note", "removed object")
		assert.NoError(t, err)
		applyOne(t, db, info.ID, 0, insertAtEnd("", "hidden after removal"))
		assert.NoError(t, db.RemoveObjectInfo(ctx, info.ID))

		entries, err := db.FindSearchEntries(ctx, "hidden after")
		assert.NoError(t, err)
		assert.Empty(t, entries)
	})
}

// RunRefEdgeTest runs tests for the reference index and backlinks.
func RunRefEdgeTest(t *testing.T, db database.Database) {
	t.Run("backlink test", func(t *testing.T) {
		ctx := context.Background()

		source, err := db.CreateObjectInfo(ctx, "note", "source")
		assert.NoError(t, err)
		target, err := db.CreateObjectInfo(ctx, "note", "target")
		assert.NoError(t, err)

		content := block.Paragraph{Inline: block.Inline{
			block.Text{Value: "see "},
			block.RefNode{TargetObjectID: target.ID, Alias: "the target"},
		}}
		res := applyOne(t, db, source.ID, 0,
			operations.NewInsert("", "", orderkey.Placement{Position: orderkey.End}, block.TypeParagraph, content),
		)
		blockID := res.InsertedBlockIDs[0]

		edges, err := db.FindRefEdgesByTargetObjectID(ctx, target.ID)
		assert.NoError(t, err)
		assert.Len(t, edges, 1)
		assert.Equal(t, blockID, edges[0].SourceBlockID)
		assert.Equal(t, source.ID, edges[0].SourceObjectID)

		// Dropping the reference from the content drops the edge.
		applyOne(t, db, source.ID, 1, operations.NewUpdate(blockID, paragraph("no more refs")))
		edges, err = db.FindRefEdgesByTargetObjectID(ctx, target.ID)
		assert.NoError(t, err)
		assert.Empty(t, edges)
	})

	t.Run("deleted source drops its edges test", func(t *testing.T) {
		ctx := context.Background()

		source, err := db.CreateObjectInfo(ctx, "note", "source")
		assert.NoError(t, err)
		target, err := db.CreateObjectInfo(ctx, "note", "target")
		assert.NoError(t, err)

		content := block.Paragraph{Inline: block.Inline{
			block.RefNode{TargetObjectID: target.ID},
		}}
		res := applyOne(t, db, source.ID, 0,
			operations.NewInsert("", "", orderkey.Placement{Position: orderkey.End}, block.TypeParagraph, content),
		)
		applyOne(t, db, source.ID, 1, operations.NewDelete(res.InsertedBlockIDs[0]))

		edges, err := db.FindRefEdgesByTargetObjectID(ctx, target.ID)
		assert.NoError(t, err)
		assert.Empty(t, edges)
	})
}

// RunIdempotencyTest runs tests for idempotent patch replays.
func RunIdempotencyTest(t *testing.T, db database.Database) {
	t.Run("replay returns the stored result test", func(t *testing.T) {
		ctx := context.Background()

		info, err := db.CreateObjectInfo(ctx, "note", "replays")
		assert.NoError(t, err)

		ops := []operations.Operation{insertAtEnd("", "once")}
		fingerprint, err := operations.Fingerprint(ops)
		assert.NoError(t, err)
		check := &database.IdempotencyCheck{
			Token:       "patch-1",
			Fingerprint: fingerprint,
			TTL:         gotime.Minute,
		}

		first, err := db.ApplyPatch(ctx, info.ID, 0, ops, check)
		assert.NoError(t, err)
		assert.Equal(t, int64(1), first.DocVersion)

		// Replaying with a stale base version still succeeds and does not
		// advance the document again.
		second, err := db.ApplyPatch(ctx, info.ID, 0, ops, check)
		assert.NoError(t, err)
		assert.Equal(t, first, second)

		found, err := db.FindObjectInfoByID(ctx, info.ID)
		assert.NoError(t, err)
		assert.Equal(t, int64(1), found.DocVersion)

		blocks, err := db.FindBlockInfosByObjectID(ctx, info.ID, false)
		assert.NoError(t, err)
		assert.Len(t, blocks, 1)
	})

	t.Run("reused token with different operations test", func(t *testing.T) {
		ctx := context.Background()

		info, err := db.CreateObjectInfo(ctx, "note", "token reuse")
		assert.NoError(t, err)

		ops := []operations.Operation{insertAtEnd("", "original")}
		fingerprint, err := operations.Fingerprint(ops)
		assert.NoError(t, err)
		_, err = db.ApplyPatch(ctx, info.ID, 0, ops, &database.IdempotencyCheck{
			Token:       "patch-2",
			Fingerprint: fingerprint,
			TTL:         gotime.Minute,
		})
		assert.NoError(t, err)

		other := []operations.Operation{insertAtEnd("", "tampered")}
		otherFingerprint, err := operations.Fingerprint(other)
		assert.NoError(t, err)
		assert.NotEqual(t, fingerprint, otherFingerprint)

		_, err = db.ApplyPatch(ctx, info.ID, 1, other, &database.IdempotencyCheck{
			Token:       "patch-2",
			Fingerprint: otherFingerprint,
			TTL:         gotime.Minute,
		})
		assert.ErrorIs(t, err, database.ErrIdempotencyConflict)
	})

	t.Run("expired records are purged test", func(t *testing.T) {
		ctx := context.Background()

		info, err := db.CreateObjectInfo(ctx, "note", "expiry")
		assert.NoError(t, err)

		ops := []operations.Operation{insertAtEnd("", "short lived")}
		fingerprint, err := operations.Fingerprint(ops)
		assert.NoError(t, err)
		_, err = db.ApplyPatch(ctx, info.ID, 0, ops, &database.IdempotencyCheck{
			Token:       "patch-3",
			Fingerprint: fingerprint,
			TTL:         gotime.Minute,
		})
		assert.NoError(t, err)

		purged, err := db.PurgeExpiredIdempotencyInfos(ctx, gotime.Now().Add(gotime.Hour))
		assert.NoError(t, err)
		assert.GreaterOrEqual(t, purged, 1)

		// With the record gone the token no longer replays; the stale base
		// version is reported instead.
		_, err = db.ApplyPatch(ctx, info.ID, 0, ops, &database.IdempotencyCheck{
			Token:       "patch-3",
			Fingerprint: fingerprint,
			TTL:         gotime.Minute,
		})
		assert.ErrorIs(t, err, database.ErrVersionConflict)
	})
}

// RunPurgeRemovedTest runs tests for hard-deleting soft-deleted rows.
func RunPurgeRemovedTest(t *testing.T, db database.Database) {
	t.Run("purge removed test", func(t *testing.T) {
		ctx := context.Background()

		info, err := db.CreateObjectInfo(ctx, "note", "trash")
		assert.NoError(t, err)
		res := applyOne(t, db, info.ID, 0, insertAtEnd("", "kept"), insertAtEnd("", "trashed"))
		applyOne(t, db, info.ID, 1, operations.NewDelete(res.InsertedBlockIDs[1]))

		purged, err := db.PurgeRemoved(ctx, gotime.Now().Add(gotime.Hour))
		assert.NoError(t, err)
		assert.GreaterOrEqual(t, purged, 1)

		all, err := db.FindBlockInfosByObjectID(ctx, info.ID, true)
		assert.NoError(t, err)
		assert.Len(t, all, 1)
		assert.Equal(t, "kept", block.ExtractPlainText(all[0].Content))

		// A removed object disappears entirely.
		assert.NoError(t, db.RemoveObjectInfo(ctx, info.ID))
		_, err = db.PurgeRemoved(ctx, gotime.Now().Add(gotime.Hour))
		assert.NoError(t, err)

		all, err = db.FindBlockInfosByObjectID(ctx, info.ID, true)
		assert.NoError(t, err)
		assert.Empty(t, all)
	})
}
