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

package operations

import (
	"encoding/json"
	"fmt"

	"github.com/inkstone-notes/inkstone/api/types"
	"github.com/inkstone-notes/inkstone/pkg/document/block"
)

// Update replaces the content of an existing block. The block's type is
// fixed at insert time, so the new content must be of the same type.
type Update struct {
	// BlockID is the block whose content is replaced.
	BlockID types.ID

	// Content is the replacement payload.
	Content block.Content

	// ExpectedVersion optionally guards the update against the document
	// version observed when the edit was made. Nil skips the guard; the
	// patch-level base version is the primary conflict check.
	ExpectedVersion *int64
}

// NewUpdate creates a new Update operation.
func NewUpdate(blockID types.ID, content block.Content) *Update {
	return &Update{
		BlockID: blockID,
		Content: content,
	}
}

// Kind returns the kind of the operation.
func (op *Update) Kind() Kind {
	return KindUpdate
}

// Validate returns an error if the operation is malformed.
func (op *Update) Validate() error {
	if op.BlockID == "" {
		return fmt.Errorf("update without block id: %w", ErrInvalidOperation)
	}
	if err := op.BlockID.Validate(); err != nil {
		return fmt.Errorf("update block id: %w", ErrInvalidOperation)
	}
	if op.Content == nil {
		return fmt.Errorf("update without content: %w", ErrInvalidOperation)
	}

	return nil
}

// MarshalJSON implements json.Marshaler so the content union survives
// fingerprinting.
func (op *Update) MarshalJSON() ([]byte, error) {
	content, err := block.MarshalContent(op.Content)
	if err != nil {
		return nil, err
	}

	bytes, err := json.Marshal(struct {
		BlockID         types.ID        `json:"blockId"`
		Content         json.RawMessage `json:"content"`
		ExpectedVersion *int64          `json:"expectedVersion,omitempty"`
	}{
		BlockID:         op.BlockID,
		Content:         content,
		ExpectedVersion: op.ExpectedVersion,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal update: %w", err)
	}
	return bytes, nil
}
