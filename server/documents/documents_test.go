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

package documents_test

import (
	"context"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"

	"github.com/inkstone-notes/inkstone/api/types"
	"github.com/inkstone-notes/inkstone/pkg/document/block"
	"github.com/inkstone-notes/inkstone/pkg/document/operations"
	"github.com/inkstone-notes/inkstone/pkg/document/orderkey"
	"github.com/inkstone-notes/inkstone/server/backend"
	"github.com/inkstone-notes/inkstone/server/backend/database"
	"github.com/inkstone-notes/inkstone/server/backend/housekeeping"
	"github.com/inkstone-notes/inkstone/server/documents"
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

func insertAtEnd(parentID types.ID, text string) *operations.Insert {
	return operations.NewInsert(
		"", parentID,
		orderkey.Placement{Position: orderkey.End},
		block.TypeParagraph,
		paragraph(text),
	)
}

func TestDocuments(t *testing.T) {
	t.Run("document lifecycle test", func(t *testing.T) {
		ctx := context.Background()
		be := setupBackend(t)

		summary, err := documents.CreateDocument(ctx, be, documents.CreateDocumentRequest{
			TypeKey: "note",
			Title:   "Reading List",
		})
		assert.NoError(t, err)
		assert.Equal(t, "note", summary.TypeKey)
		assert.Equal(t, int64(0), summary.DocVersion)

		renamed, err := documents.RenameDocument(ctx, be, summary.ID, "Books")
		assert.NoError(t, err)
		assert.Equal(t, "Books", renamed.Title)

		summaries, err := documents.ListDocumentSummaries(ctx, be)
		assert.NoError(t, err)
		assert.Len(t, summaries, 1)

		assert.NoError(t, documents.RemoveDocument(ctx, be, summary.ID))
		summaries, err = documents.ListDocumentSummaries(ctx, be)
		assert.NoError(t, err)
		assert.Empty(t, summaries)
	})

	t.Run("invalid type key test", func(t *testing.T) {
		ctx := context.Background()
		be := setupBackend(t)

		_, err := documents.CreateDocument(ctx, be, documents.CreateDocumentRequest{
			TypeKey: "Not A Key",
		})
		assert.ErrorIs(t, err, database.ErrValidation)
	})

	t.Run("document tree test", func(t *testing.T) {
		ctx := context.Background()
		be := setupBackend(t)

		summary, err := documents.CreateDocument(ctx, be, documents.CreateDocumentRequest{
			TypeKey: "note",
			Title:   "Outline",
		})
		assert.NoError(t, err)

		res, err := patches.Apply(ctx, be, &types.PatchRequest{
			ObjectID:       summary.ID,
			BaseDocVersion: 0,
		}, []operations.Operation{
			insertAtEnd("", "first"),
			insertAtEnd("", "second"),
		})
		assert.NoError(t, err)
		first := res.InsertedBlockIDs[0]

		res, err = patches.Apply(ctx, be, &types.PatchRequest{
			ObjectID:       summary.ID,
			BaseDocVersion: 1,
		}, []operations.Operation{
			insertAtEnd(first, "nested"),
		})
		assert.NoError(t, err)
		nested := res.InsertedBlockIDs[0]

		doc, err := documents.GetDocument(ctx, be, summary.ID, false)
		assert.NoError(t, err)
		assert.Equal(t, int64(2), doc.DocVersion)
		assert.Len(t, doc.Blocks, 2)
		assert.Equal(t, first, doc.Blocks[0].ID)
		assert.Len(t, doc.Blocks[0].Children, 1)
		assert.Equal(t, nested, doc.Blocks[0].Children[0].ID)
		assert.Empty(t, doc.Blocks[1].Children)
	})

	t.Run("deleted parent surfaces children at root test", func(t *testing.T) {
		ctx := context.Background()
		be := setupBackend(t)

		summary, err := documents.CreateDocument(ctx, be, documents.CreateDocumentRequest{
			TypeKey: "note",
			Title:   "Orphans",
		})
		assert.NoError(t, err)

		res, err := patches.Apply(ctx, be, &types.PatchRequest{
			ObjectID:       summary.ID,
			BaseDocVersion: 0,
		}, []operations.Operation{insertAtEnd("", "parent")})
		assert.NoError(t, err)
		parent := res.InsertedBlockIDs[0]

		_, err = patches.Apply(ctx, be, &types.PatchRequest{
			ObjectID:       summary.ID,
			BaseDocVersion: 1,
		}, []operations.Operation{insertAtEnd(parent, "child")})
		assert.NoError(t, err)

		// Deleting the parent cascades, so the live tree is empty. When
		// reading with deleted blocks included the whole subtree is there.
		_, err = patches.Apply(ctx, be, &types.PatchRequest{
			ObjectID:       summary.ID,
			BaseDocVersion: 2,
		}, []operations.Operation{operations.NewDelete(parent)})
		assert.NoError(t, err)

		doc, err := documents.GetDocument(ctx, be, summary.ID, false)
		assert.NoError(t, err)
		assert.Empty(t, doc.Blocks)

		doc, err = documents.GetDocument(ctx, be, summary.ID, true)
		assert.NoError(t, err)
		assert.Len(t, doc.Blocks, 1)
		assert.Len(t, doc.Blocks[0].Children, 1)
	})

	t.Run("backlinks test", func(t *testing.T) {
		ctx := context.Background()
		be := setupBackend(t)

		source, err := documents.CreateDocument(ctx, be, documents.CreateDocumentRequest{
			TypeKey: "note", Title: "Source",
		})
		assert.NoError(t, err)
		target, err := documents.CreateDocument(ctx, be, documents.CreateDocumentRequest{
			TypeKey: "note", Title: "Target",
		})
		assert.NoError(t, err)

		content := block.Paragraph{Inline: block.Inline{
			block.Text{Value: "see also "},
			block.RefNode{TargetObjectID: target.ID},
		}}
		res, err := patches.Apply(ctx, be, &types.PatchRequest{
			ObjectID:       source.ID,
			BaseDocVersion: 0,
		}, []operations.Operation{
			operations.NewInsert("", "", orderkey.Placement{Position: orderkey.End}, block.TypeParagraph, content),
		})
		assert.NoError(t, err)

		backlinks, err := documents.FindBacklinks(ctx, be, target.ID)
		assert.NoError(t, err)
		assert.Len(t, backlinks, 1)
		assert.Equal(t, source.ID, backlinks[0].SourceObjectID)
		assert.Equal(t, res.InsertedBlockIDs[0], backlinks[0].SourceBlockID)

		_, err = documents.FindBacklinks(ctx, be, types.NewID())
		assert.ErrorIs(t, err, database.ErrObjectNotFound)
	})

	t.Run("search test", func(t *testing.T) {
		ctx := context.Background()
		be := setupBackend(t)

		summary, err := documents.CreateDocument(ctx, be, documents.CreateDocumentRequest{
			TypeKey: "note", Title: "Journal",
		})
		assert.NoError(t, err)

		_, err = patches.Apply(ctx, be, &types.PatchRequest{
			ObjectID:       summary.ID,
			BaseDocVersion: 0,
		}, []operations.Operation{
			insertAtEnd("", "The quick brown fox jumps over the lazy dog"),
		})
		assert.NoError(t, err)

		hits, err := documents.Search(ctx, be, "BROWN FOX")
		assert.NoError(t, err)
		assert.Len(t, hits, 1)
		assert.Equal(t, summary.ID, hits[0].ObjectID)
		assert.Contains(t, hits[0].Snippet, "brown fox")

		hits, err = documents.Search(ctx, be, "weasel")
		assert.NoError(t, err)
		assert.Empty(t, hits)

		_, err = documents.Search(ctx, be, "   ")
		assert.ErrorIs(t, err, database.ErrValidation)
	})

	t.Run("search snippet with width-changing runes test", func(t *testing.T) {
		ctx := context.Background()
		be := setupBackend(t)

		summary, err := documents.CreateDocument(ctx, be, documents.CreateDocumentRequest{
			TypeKey: "note", Title: "Glossary",
		})
		assert.NoError(t, err)

		// U+023A widens from two to three bytes under ToLower, so match
		// offsets in the lowered text drift from the original.
		text := strings.Repeat("Ⱥ", 100) + "zebra"
		_, err = patches.Apply(ctx, be, &types.PatchRequest{
			ObjectID:       summary.ID,
			BaseDocVersion: 0,
		}, []operations.Operation{
			insertAtEnd("", text),
		})
		assert.NoError(t, err)

		hits, err := documents.Search(ctx, be, "ZEBRA")
		assert.NoError(t, err)
		assert.Len(t, hits, 1)
		assert.True(t, strings.HasPrefix(hits[0].Snippet, "…"))
		assert.True(t, strings.HasSuffix(hits[0].Snippet, "zebra"))
		assert.True(t, utf8.ValidString(hits[0].Snippet))
	})
}
