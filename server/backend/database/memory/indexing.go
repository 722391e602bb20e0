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

package memory

import (
	"fmt"
	gotime "time"

	"github.com/hashicorp/go-memdb"

	"github.com/inkstone-notes/inkstone/api/types"
	"github.com/inkstone-notes/inkstone/pkg/document/block"
	"github.com/inkstone-notes/inkstone/server/backend/database"
)

// reindexRefs replaces the reference edges of a block with the ones
// extracted from its current content. Running it twice over the same
// content yields the same edge set.
func reindexRefs(txn *memdb.Txn, blk *database.BlockInfo, now gotime.Time) error {
	if _, err := txn.DeleteAll(tblRefs, "source_block_id", blk.ID.String()); err != nil {
		return fmt.Errorf("drop ref edges of %s: %w", blk.ID, err)
	}

	for _, ref := range block.ExtractReferences(blk.Content) {
		// Refs without a target cannot be indexed.
		if ref.ObjectID == "" {
			continue
		}
		edge := &database.RefEdgeInfo{
			ID:             types.NewID(),
			SourceBlockID:  blk.ID,
			SourceObjectID: blk.ObjectID,
			TargetObjectID: ref.ObjectID,
			TargetBlockID:  ref.BlockID,
			CreatedAt:      now,
		}
		if err := txn.Insert(tblRefs, edge); err != nil {
			return fmt.Errorf("insert ref edge of %s: %w", blk.ID, err)
		}
	}

	return nil
}

// reindexSearch replaces the search entry of a block with one built from
// its current plain text. Blocks with no text carry no entry.
func reindexSearch(txn *memdb.Txn, blk *database.BlockInfo, now gotime.Time) error {
	if _, err := txn.DeleteAll(tblSearch, "id", blk.ID.String()); err != nil {
		return fmt.Errorf("drop search entry of %s: %w", blk.ID, err)
	}

	text := block.ExtractPlainText(blk.Content)
	if text == "" {
		return nil
	}

	entry := &database.SearchEntryInfo{
		BlockID:   blk.ID,
		ObjectID:  blk.ObjectID,
		Text:      text,
		UpdatedAt: now,
	}
	if err := txn.Insert(tblSearch, entry); err != nil {
		return fmt.Errorf("insert search entry of %s: %w", blk.ID, err)
	}

	return nil
}

// dropRefs removes the reference edges sourced from the given blocks.
func dropRefs(txn *memdb.Txn, blockIDs []types.ID) error {
	for _, id := range blockIDs {
		if _, err := txn.DeleteAll(tblRefs, "source_block_id", id.String()); err != nil {
			return fmt.Errorf("drop ref edges of %s: %w", id, err)
		}
	}
	return nil
}

// dropSearch removes the search entries of the given blocks.
func dropSearch(txn *memdb.Txn, blockIDs []types.ID) error {
	for _, id := range blockIDs {
		if _, err := txn.DeleteAll(tblSearch, "id", id.String()); err != nil {
			return fmt.Errorf("drop search entry of %s: %w", id, err)
		}
	}
	return nil
}
