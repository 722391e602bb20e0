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

// Package types provides the types shared by the engine and its embedders.
package types

import (
	"errors"
	"fmt"

	"github.com/oklog/ulid/v2"
)

var (
	// ErrInvalidID is returned when the given ID is not a valid ULID string.
	ErrInvalidID = errors.New("invalid ID")
)

// ID represents the identity of an object or a block. It is a 26-character
// ULID string, so IDs created later sort after IDs created earlier under
// plain string comparison.
type ID string

// NewID creates a new ID.
func NewID() ID {
	return ID(ulid.Make().String())
}

// String returns a string representation of this ID.
func (id ID) String() string {
	return string(id)
}

// Validate returns an error if this ID is not a canonical ULID string.
func (id ID) Validate() error {
	if _, err := ulid.ParseStrict(string(id)); err != nil {
		return fmt.Errorf("%s: %w", id, ErrInvalidID)
	}

	return nil
}
