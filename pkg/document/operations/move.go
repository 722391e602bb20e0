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
	"fmt"

	"github.com/inkstone-notes/inkstone/api/types"
	"github.com/inkstone-notes/inkstone/pkg/document/orderkey"
)

// Move changes a block's parent and position. Content and derived indexes
// are unaffected by a pure move.
type Move struct {
	// BlockID is the block being moved.
	BlockID types.ID `json:"blockId"`

	// NewParentID is the destination parent, or empty for root level.
	NewParentID types.ID `json:"newParentId,omitempty"`

	// Placement positions the block among its new siblings. Ignored when
	// ExplicitKey is set.
	Placement orderkey.Placement `json:"placement"`

	// ExplicitKey is a caller-supplied order key; a colliding key fails
	// the patch.
	ExplicitKey string `json:"explicitKey,omitempty"`
}

// NewMove creates a new Move operation.
func NewMove(blockID, newParentID types.ID, placement orderkey.Placement) *Move {
	return &Move{
		BlockID:     blockID,
		NewParentID: newParentID,
		Placement:   placement,
	}
}

// Kind returns the kind of the operation.
func (op *Move) Kind() Kind {
	return KindMove
}

// Validate returns an error if the operation is malformed.
func (op *Move) Validate() error {
	if op.BlockID == "" {
		return fmt.Errorf("move without block id: %w", ErrInvalidOperation)
	}
	if err := op.BlockID.Validate(); err != nil {
		return fmt.Errorf("move block id: %w", ErrInvalidOperation)
	}
	if op.NewParentID != "" {
		if err := op.NewParentID.Validate(); err != nil {
			return fmt.Errorf("move parent id: %w", ErrInvalidOperation)
		}
	}
	if op.ExplicitKey != "" {
		if err := orderkey.Validate(op.ExplicitKey); err != nil {
			return fmt.Errorf("move explicit key %q: %w", op.ExplicitKey, ErrInvalidOperation)
		}
	} else {
		switch op.Placement.Position {
		case orderkey.Start, orderkey.End:
		case orderkey.Before, orderkey.After:
			if op.Placement.SiblingID == "" {
				return fmt.Errorf("move placement without sibling: %w", ErrInvalidOperation)
			}
		default:
			return fmt.Errorf("move placement %q: %w", op.Placement.Position, ErrInvalidOperation)
		}
	}

	return nil
}
