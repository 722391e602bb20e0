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
	"github.com/inkstone-notes/inkstone/pkg/document/orderkey"
)

// Insert creates a new block under ParentID at the given placement.
type Insert struct {
	// BlockID is the id of the new block. When empty the store assigns a
	// fresh id; callers set it for idempotent replays and imports.
	BlockID types.ID

	// ParentID is the parent block, or empty for a root-level block.
	ParentID types.ID

	// Placement positions the block among its new siblings. Ignored when
	// ExplicitKey is set.
	Placement orderkey.Placement

	// ExplicitKey is a caller-supplied order key used for imports and
	// replays. A colliding key fails the patch.
	ExplicitKey string

	// Type is the block type.
	Type block.Type

	// Content is the typed content payload. Its type must match Type.
	Content block.Content
}

// NewInsert creates a new Insert operation.
func NewInsert(
	blockID types.ID,
	parentID types.ID,
	placement orderkey.Placement,
	blockType block.Type,
	content block.Content,
) *Insert {
	return &Insert{
		BlockID:   blockID,
		ParentID:  parentID,
		Placement: placement,
		Type:      blockType,
		Content:   content,
	}
}

// Kind returns the kind of the operation.
func (op *Insert) Kind() Kind {
	return KindInsert
}

// Validate returns an error if the operation is malformed.
func (op *Insert) Validate() error {
	if op.BlockID != "" {
		if err := op.BlockID.Validate(); err != nil {
			return fmt.Errorf("insert block id: %w", ErrInvalidOperation)
		}
	}
	if op.ParentID != "" {
		if err := op.ParentID.Validate(); err != nil {
			return fmt.Errorf("insert parent id: %w", ErrInvalidOperation)
		}
	}
	if !op.Type.Valid() {
		return fmt.Errorf("insert block type %q: %w", op.Type, ErrInvalidOperation)
	}
	if op.Content == nil {
		return fmt.Errorf("insert without content: %w", ErrInvalidOperation)
	}
	if op.Content.Type() != op.Type {
		return fmt.Errorf(
			"insert %s content into %s block: %w",
			op.Content.Type(), op.Type, ErrInvalidOperation,
		)
	}
	if op.ExplicitKey != "" {
		if err := orderkey.Validate(op.ExplicitKey); err != nil {
			return fmt.Errorf("insert explicit key %q: %w", op.ExplicitKey, ErrInvalidOperation)
		}
	} else {
		switch op.Placement.Position {
		case orderkey.Start, orderkey.End:
		case orderkey.Before, orderkey.After:
			if op.Placement.SiblingID == "" {
				return fmt.Errorf("insert placement without sibling: %w", ErrInvalidOperation)
			}
		default:
			return fmt.Errorf("insert placement %q: %w", op.Placement.Position, ErrInvalidOperation)
		}
	}

	return nil
}

// MarshalJSON implements json.Marshaler so the content union survives
// fingerprinting.
func (op *Insert) MarshalJSON() ([]byte, error) {
	content, err := block.MarshalContent(op.Content)
	if err != nil {
		return nil, err
	}

	bytes, err := json.Marshal(struct {
		BlockID     types.ID           `json:"blockId,omitempty"`
		ParentID    types.ID           `json:"parentId,omitempty"`
		Placement   orderkey.Placement `json:"placement"`
		ExplicitKey string             `json:"explicitKey,omitempty"`
		Type        block.Type         `json:"type"`
		Content     json.RawMessage    `json:"content"`
	}{
		BlockID:     op.BlockID,
		ParentID:    op.ParentID,
		Placement:   op.Placement,
		ExplicitKey: op.ExplicitKey,
		Type:        op.Type,
		Content:     content,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal insert: %w", err)
	}
	return bytes, nil
}
