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
)

// Delete soft-deletes a block. Descendants cannot outlive their parent, so
// the cascade soft-deletes every live descendant as well.
type Delete struct {
	// BlockID is the block being deleted.
	BlockID types.ID `json:"blockId"`
}

// NewDelete creates a new Delete operation.
func NewDelete(blockID types.ID) *Delete {
	return &Delete{
		BlockID: blockID,
	}
}

// Kind returns the kind of the operation.
func (op *Delete) Kind() Kind {
	return KindDelete
}

// Validate returns an error if the operation is malformed.
func (op *Delete) Validate() error {
	if op.BlockID == "" {
		return fmt.Errorf("delete without block id: %w", ErrInvalidOperation)
	}
	if err := op.BlockID.Validate(); err != nil {
		return fmt.Errorf("delete block id: %w", ErrInvalidOperation)
	}

	return nil
}
