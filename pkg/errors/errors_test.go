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

package errors_test

import (
	goerrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/inkstone-notes/inkstone/pkg/errors"
)

func TestStatusError(t *testing.T) {
	t.Run("status and code test", func(t *testing.T) {
		err := errors.FailedPrecond("stale base document version").WithCode("CONFLICT_VERSION")
		assert.Equal(t, errors.ErrCodeFailedPrecondition, err.Status())
		assert.Equal(t, "CONFLICT_VERSION", err.Code())
		assert.Equal(t, "stale base document version", err.Error())
	})

	t.Run("extraction through wrapping test", func(t *testing.T) {
		err := errors.NotFound("block not found").WithCode("NOT_FOUND_BLOCK")
		wrapped := fmt.Errorf("apply patch: %w", err)

		assert.Equal(t, errors.ErrCodeNotFound, errors.StatusOf(wrapped))
		assert.Equal(t, "NOT_FOUND_BLOCK", errors.CodeOf(wrapped))
		assert.True(t, errors.IsStatus(wrapped, errors.ErrCodeNotFound))
		assert.True(t, goerrors.Is(wrapped, err))
	})

	t.Run("classification test", func(t *testing.T) {
		assert.True(t, errors.IsClientError(errors.InvalidArgument("bad input")))
		assert.True(t, errors.IsClientError(errors.AlreadyExists("duplicate")))
		assert.False(t, errors.IsServerError(errors.NotFound("missing")))
		assert.True(t, errors.IsServerError(errors.Internal("broken")))
		assert.True(t, errors.IsServerError(errors.Unavailable("busy")))
	})

	t.Run("plain error test", func(t *testing.T) {
		plain := goerrors.New("plain")
		assert.Equal(t, errors.StatusCode(0), errors.StatusOf(plain))
		assert.Equal(t, "", errors.CodeOf(plain))
		assert.Equal(t, errors.StatusCode(0), errors.StatusOf(nil))
	})
}
