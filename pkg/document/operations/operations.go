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

// Package operations defines the block operations a patch is made of.
// Operations are plain data; the store applies them. They are assumed to
// come from a well-formed editor delta or a template flattening, but
// Validate catches shape errors before any mutation happens.
package operations

import (
	"errors"
)

var (
	// ErrInvalidOperation is returned when an operation is malformed.
	ErrInvalidOperation = errors.New("invalid operation")
)

// Kind is the kind of a block operation.
type Kind string

const (
	// KindInsert creates a new block.
	KindInsert Kind = "insert"

	// KindUpdate replaces a block's content.
	KindUpdate Kind = "update"

	// KindMove changes a block's parent or sibling position.
	KindMove Kind = "move"

	// KindDelete soft-deletes a block and its descendants.
	KindDelete Kind = "delete"
)

// Operation represents one block operation within a patch. Operations are
// applied in patch order and each sees the effects of the ones before it.
type Operation interface {
	// Kind returns the kind of the operation.
	Kind() Kind

	// Validate returns an error if the operation is malformed. It checks
	// shape only; existence and structural invariants are checked against
	// store state during application.
	Validate() error
}
