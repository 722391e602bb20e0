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

// Package documents provides the object and document read/write services:
// object lifecycle, assembled block trees, backlinks, and search.
package documents

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/inkstone-notes/inkstone/api/types"
	"github.com/inkstone-notes/inkstone/internal/metaerrors"
	"github.com/inkstone-notes/inkstone/internal/validation"
	"github.com/inkstone-notes/inkstone/pkg/document"
	"github.com/inkstone-notes/inkstone/server/backend"
	"github.com/inkstone-notes/inkstone/server/backend/database"
)

// snippetRadius is how many characters of context a search snippet keeps
// on each side of the first match.
const snippetRadius = 40

// CreateDocumentRequest is the input of CreateDocument.
type CreateDocumentRequest struct {
	// TypeKey names the object type, e.g. "note" or "task".
	TypeKey string `validate:"required,typekey"`

	// Title is the object title. May be empty for untitled drafts.
	Title string `validate:"max=1000"`
}

// CreateDocument creates a new object with an empty block document.
func CreateDocument(
	ctx context.Context,
	be *backend.Backend,
	req CreateDocumentRequest,
) (*types.ObjectSummary, error) {
	if err := validation.ValidateStruct(req); err != nil {
		return nil, metaerrors.New(database.ErrValidation, map[string]string{
			"reason": err.Error(),
		})
	}

	info, err := be.DB.CreateObjectInfo(ctx, req.TypeKey, req.Title)
	if err != nil {
		return nil, err
	}

	return info.ToSummary(), nil
}

// ListDocumentSummaries returns summaries of all live objects.
func ListDocumentSummaries(
	ctx context.Context,
	be *backend.Backend,
) ([]*types.ObjectSummary, error) {
	infos, err := be.DB.ListObjectInfos(ctx)
	if err != nil {
		return nil, err
	}

	summaries := make([]*types.ObjectSummary, 0, len(infos))
	for _, info := range infos {
		summaries = append(summaries, info.ToSummary())
	}

	return summaries, nil
}

// RenameDocument updates the object's title.
func RenameDocument(
	ctx context.Context,
	be *backend.Backend,
	objectID types.ID,
	title string,
) (*types.ObjectSummary, error) {
	info, err := be.DB.UpdateObjectTitle(ctx, objectID, title)
	if err != nil {
		return nil, err
	}

	return info.ToSummary(), nil
}

// RemoveDocument soft-deletes the object and its blocks.
func RemoveDocument(
	ctx context.Context,
	be *backend.Backend,
	objectID types.ID,
) error {
	return be.DB.RemoveObjectInfo(ctx, objectID)
}

// GetDocument returns the assembled, ordered block tree of the object at
// its current document version. The version and blocks come from one
// snapshot. With includeDeleted set, soft-deleted blocks are part of the
// tree; their live children are surfaced at root level either way.
func GetDocument(
	ctx context.Context,
	be *backend.Backend,
	objectID types.ID,
	includeDeleted bool,
) (*document.Document, error) {
	info, blocks, err := be.DB.FindObjectInfoWithBlocks(ctx, objectID, includeDeleted)
	if err != nil {
		return nil, err
	}

	nodes := make([]*document.BlockNode, 0, len(blocks))
	for _, blk := range blocks {
		nodes = append(nodes, &document.BlockNode{
			ID:        blk.ID,
			ParentID:  blk.ParentID,
			OrderKey:  blk.OrderKey,
			Type:      blk.Type,
			Content:   blk.Content,
			Collapsed: blk.Collapsed,
		})
	}

	return &document.Document{
		ObjectID:   info.ID,
		DocVersion: info.DocVersion,
		Blocks:     document.BuildTree(nodes),
	}, nil
}

// FindBacklinks returns the references pointing at the object, newest
// first within the stable order of the underlying index.
func FindBacklinks(
	ctx context.Context,
	be *backend.Backend,
	targetObjectID types.ID,
) ([]*types.Backlink, error) {
	// The target must exist; backlinks of a removed object are not served.
	if _, err := be.DB.FindObjectInfoByID(ctx, targetObjectID); err != nil {
		return nil, err
	}

	edges, err := be.DB.FindRefEdgesByTargetObjectID(ctx, targetObjectID)
	if err != nil {
		return nil, err
	}

	backlinks := make([]*types.Backlink, 0, len(edges))
	for _, edge := range edges {
		backlinks = append(backlinks, &types.Backlink{
			SourceObjectID: edge.SourceObjectID,
			SourceBlockID:  edge.SourceBlockID,
			TargetBlockID:  edge.TargetBlockID,
			CreatedAt:      edge.CreatedAt,
		})
	}

	return backlinks, nil
}

// Search returns blocks whose plain text contains the query,
// case-insensitively, with a snippet around the first match.
func Search(
	ctx context.Context,
	be *backend.Backend,
	query string,
) ([]*types.SearchHit, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, metaerrors.New(database.ErrValidation, map[string]string{
			"reason": "empty search query",
		})
	}

	entries, err := be.DB.FindSearchEntries(ctx, query)
	if err != nil {
		return nil, err
	}

	hits := make([]*types.SearchHit, 0, len(entries))
	for _, entry := range entries {
		hits = append(hits, &types.SearchHit{
			ObjectID: entry.ObjectID,
			BlockID:  entry.BlockID,
			Snippet:  buildSnippet(entry.Text, query),
		})
	}

	return hits, nil
}

// buildSnippet cuts a window of text around the first case-insensitive
// match of the query. Cuts land on rune boundaries.
func buildSnippet(text, query string) string {
	lower := strings.ToLower(text)
	lowerQuery := strings.ToLower(query)
	idx := strings.Index(lower, lowerQuery)

	var matchStart, matchEnd int
	if idx >= 0 {
		matchStart = originalOffset(text, lower, idx)
		matchEnd = originalOffset(text, lower, idx+len(lowerQuery))
	}

	start := matchStart - snippetRadius
	if start < 0 {
		start = 0
	}
	for start > 0 && !isRuneStart(text[start]) {
		start--
	}

	end := matchEnd + snippetRadius
	if end > len(text) {
		end = len(text)
	}
	for end < len(text) && !isRuneStart(text[end]) {
		end++
	}

	snippet := text[start:end]
	if start > 0 {
		snippet = "…" + snippet
	}
	if end < len(text) {
		snippet += "…"
	}
	return snippet
}

// originalOffset translates a byte offset in the rune-wise lowered copy
// of text back to a byte offset in text. ToLower can change rune widths,
// so the two drift apart.
func originalOffset(text, lower string, offset int) int {
	o, lo := 0, 0
	for o < len(text) && lo < offset {
		_, size := utf8.DecodeRuneInString(text[o:])
		_, lowerSize := utf8.DecodeRuneInString(lower[lo:])
		o += size
		lo += lowerSize
	}
	return o
}

func isRuneStart(b byte) bool {
	return b&0xC0 != 0x80
}
