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

package patches_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/inkstone-notes/inkstone/api/types"
	"github.com/inkstone-notes/inkstone/pkg/document/block"
	"github.com/inkstone-notes/inkstone/pkg/document/operations"
	"github.com/inkstone-notes/inkstone/pkg/document/orderkey"
	"github.com/inkstone-notes/inkstone/server/backend"
	"github.com/inkstone-notes/inkstone/server/backend/database"
	"github.com/inkstone-notes/inkstone/server/backend/housekeeping"
	"github.com/inkstone-notes/inkstone/server/patches"
)

func setupBackend(t *testing.T) *backend.Backend {
	t.Helper()

	be, err := backend.New(
		&backend.Config{IdempotencyTTL: "5m"},
		&housekeeping.Config{Interval: "1m", TrashRetention: "24h"},
	)
	assert.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, be.Shutdown())
	})

	return be
}

func paragraph(text string) block.Paragraph {
	return block.Paragraph{Inline: block.Inline{block.Text{Value: text}}}
}

func insertAtEnd(text string) *operations.Insert {
	return operations.NewInsert(
		"", "",
		orderkey.Placement{Position: orderkey.End},
		block.TypeParagraph,
		paragraph(text),
	)
}

func TestApply(t *testing.T) {
	t.Run("apply patch test", func(t *testing.T) {
		ctx := context.Background()
		be := setupBackend(t)

		info, err := be.DB.CreateObjectInfo(ctx, "note", "patched")
		assert.NoError(t, err)

		res, err := patches.Apply(ctx, be, &types.PatchRequest{
			ObjectID:       info.ID,
			BaseDocVersion: 0,
		}, []operations.Operation{insertAtEnd("hello")})
		assert.NoError(t, err)
		assert.Equal(t, int64(1), res.DocVersion)
		assert.Len(t, res.InsertedBlockIDs, 1)
	})

	t.Run("request validation test", func(t *testing.T) {
		ctx := context.Background()
		be := setupBackend(t)

		// Missing object id.
		_, err := patches.Apply(ctx, be, &types.PatchRequest{}, []operations.Operation{
			insertAtEnd("hello"),
		})
		assert.ErrorIs(t, err, database.ErrValidation)

		// Empty operation list.
		info, err := be.DB.CreateObjectInfo(ctx, "note", "empty")
		assert.NoError(t, err)
		_, err = patches.Apply(ctx, be, &types.PatchRequest{
			ObjectID: info.ID,
		}, nil)
		assert.ErrorIs(t, err, database.ErrValidation)

		// Malformed operation.
		_, err = patches.Apply(ctx, be, &types.PatchRequest{
			ObjectID: info.ID,
		}, []operations.Operation{
			operations.NewInsert("", "", orderkey.Placement{}, block.TypeParagraph, paragraph("x")),
		})
		assert.ErrorIs(t, err, database.ErrValidation)
	})

	t.Run("idempotent replay test", func(t *testing.T) {
		ctx := context.Background()
		be := setupBackend(t)

		info, err := be.DB.CreateObjectInfo(ctx, "note", "replayed")
		assert.NoError(t, err)

		req := &types.PatchRequest{
			ObjectID:       info.ID,
			BaseDocVersion: 0,
			IdempotencyKey: "req-1",
		}
		ops := []operations.Operation{insertAtEnd("once")}

		first, err := patches.Apply(ctx, be, req, ops)
		assert.NoError(t, err)
		second, err := patches.Apply(ctx, be, req, ops)
		assert.NoError(t, err)
		assert.Equal(t, first, second)

		found, err := be.DB.FindObjectInfoByID(ctx, info.ID)
		assert.NoError(t, err)
		assert.Equal(t, int64(1), found.DocVersion)
	})

	t.Run("concurrent patches against one object test", func(t *testing.T) {
		ctx := context.Background()
		be := setupBackend(t)

		info, err := be.DB.CreateObjectInfo(ctx, "note", "contended")
		assert.NoError(t, err)

		// All workers race from base version 0; exactly one patch can win.
		const workers = 10
		var wg sync.WaitGroup
		applied := make(chan struct{}, workers)
		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := patches.Apply(ctx, be, &types.PatchRequest{
					ObjectID:       info.ID,
					BaseDocVersion: 0,
				}, []operations.Operation{insertAtEnd("racer")})
				if err == nil {
					applied <- struct{}{}
					return
				}
				assert.ErrorIs(t, err, database.ErrVersionConflict)
			}()
		}
		wg.Wait()
		close(applied)
		assert.Len(t, applied, 1)

		found, err := be.DB.FindObjectInfoByID(ctx, info.ID)
		assert.NoError(t, err)
		assert.Equal(t, int64(1), found.DocVersion)
	})
}

func TestApplyTemplate(t *testing.T) {
	t.Run("template instantiation test", func(t *testing.T) {
		ctx := context.Background()
		be := setupBackend(t)

		info, err := be.DB.CreateObjectInfo(ctx, "meeting", "Weekly Sync")
		assert.NoError(t, err)

		template := []patches.TemplateBlock{
			{
				Type:    block.TypeHeading,
				Content: block.Heading{Level: 1, Inline: block.Inline{block.Text{Value: "Agenda"}}},
				Children: []patches.TemplateBlock{
					{Type: block.TypeParagraph, Content: paragraph("item")},
				},
			},
			{Type: block.TypeParagraph, Content: paragraph("Notes")},
		}
		res, err := patches.ApplyTemplate(ctx, be, info.ID, 0, template)
		assert.NoError(t, err)
		assert.Equal(t, int64(1), res.DocVersion)
		assert.Len(t, res.InsertedBlockIDs, 3)

		// Nesting followed the template.
		heading := res.InsertedBlockIDs[0]
		child := res.InsertedBlockIDs[1]
		ancestors, err := be.DB.FindAncestorIDs(ctx, info.ID, child)
		assert.NoError(t, err)
		assert.Equal(t, []types.ID{heading}, ancestors)
	})

	t.Run("empty template test", func(t *testing.T) {
		ctx := context.Background()
		be := setupBackend(t)

		info, err := be.DB.CreateObjectInfo(ctx, "note", "blank")
		assert.NoError(t, err)

		res, err := patches.ApplyTemplate(ctx, be, info.ID, 0, nil)
		assert.NoError(t, err)
		assert.Equal(t, int64(0), res.DocVersion)

		blocks, err := be.DB.FindBlockInfosByObjectID(ctx, info.ID, true)
		assert.NoError(t, err)
		assert.Empty(t, blocks)
	})
}
