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

package memory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/inkstone-notes/inkstone/server/backend/database/memory"
	"github.com/inkstone-notes/inkstone/server/backend/database/testcases"
)

func TestDB(t *testing.T) {
	db, err := memory.New()
	assert.NoError(t, err)
	defer func() {
		assert.NoError(t, db.Close())
	}()

	t.Run("RunObjectLifecycleTest", func(t *testing.T) {
		testcases.RunObjectLifecycleTest(t, db)
	})

	t.Run("RunApplyPatchTest", func(t *testing.T) {
		testcases.RunApplyPatchTest(t, db)
	})

	t.Run("RunOrderingTest", func(t *testing.T) {
		testcases.RunOrderingTest(t, db)
	})

	t.Run("RunMoveTest", func(t *testing.T) {
		testcases.RunMoveTest(t, db)
	})

	t.Run("RunCascadeDeleteTest", func(t *testing.T) {
		testcases.RunCascadeDeleteTest(t, db)
	})

	t.Run("RunObjectSnapshotTest", func(t *testing.T) {
		testcases.RunObjectSnapshotTest(t, db)
	})

	t.Run("RunSearchIndexTest", func(t *testing.T) {
		testcases.RunSearchIndexTest(t, db)
	})

	t.Run("RunRefEdgeTest", func(t *testing.T) {
		testcases.RunRefEdgeTest(t, db)
	})

	t.Run("RunIdempotencyTest", func(t *testing.T) {
		testcases.RunIdempotencyTest(t, db)
	})

	t.Run("RunPurgeRemovedTest", func(t *testing.T) {
		testcases.RunPurgeRemovedTest(t, db)
	})
}
