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

package metaerrors_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/inkstone-notes/inkstone/internal/metaerrors"
)

func TestMetaError(t *testing.T) {
	t.Run("metadata rendering test", func(t *testing.T) {
		base := errors.New("stale base document version")
		err := metaerrors.New(base, map[string]string{
			"expected": "3",
			"actual":   "5",
		})
		assert.Equal(t, "stale base document version [actual=5,expected=3]", err.Error())

		bare := metaerrors.New(base, nil)
		assert.Equal(t, "stale base document version", bare.Error())
	})

	t.Run("unwrap test", func(t *testing.T) {
		base := errors.New("block not found")
		err := metaerrors.New(base, map[string]string{"blockId": "x"})
		assert.ErrorIs(t, err, base)

		wrapped := fmt.Errorf("apply patch: %w", err)
		assert.ErrorIs(t, wrapped, base)
		assert.Equal(t, map[string]string{"blockId": "x"}, metaerrors.MetadataOf(wrapped))
	})

	t.Run("metadata of plain error test", func(t *testing.T) {
		assert.Nil(t, metaerrors.MetadataOf(errors.New("plain")))
	})
}
