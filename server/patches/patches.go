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

// Package patches provides the patch application service. It validates an
// operation list, serializes patches per object, and hands them to the
// storage engine as one atomic unit.
package patches

import (
	"context"
	"fmt"

	"github.com/inkstone-notes/inkstone/api/types"
	"github.com/inkstone-notes/inkstone/internal/logging"
	"github.com/inkstone-notes/inkstone/internal/metaerrors"
	"github.com/inkstone-notes/inkstone/internal/validation"
	"github.com/inkstone-notes/inkstone/pkg/document/operations"
	"github.com/inkstone-notes/inkstone/server/backend"
	"github.com/inkstone-notes/inkstone/server/backend/database"
)

// patchLockKey returns the lock name serializing patches for the object.
func patchLockKey(objectID types.ID) string {
	return fmt.Sprintf("patch-%s", objectID)
}

// Apply validates and applies the operation list against the object's
// block document. Patches against the same object are serialized; patches
// against different objects run concurrently.
func Apply(
	ctx context.Context,
	be *backend.Backend,
	req *types.PatchRequest,
	ops []operations.Operation,
) (*types.PatchResult, error) {
	if err := validation.ValidateStruct(req); err != nil {
		return nil, metaerrors.New(database.ErrValidation, map[string]string{
			"reason": err.Error(),
		})
	}
	if len(ops) == 0 {
		return nil, metaerrors.New(database.ErrValidation, map[string]string{
			"reason": "empty operation list",
		})
	}
	for _, op := range ops {
		if err := op.Validate(); err != nil {
			return nil, metaerrors.New(database.ErrValidation, map[string]string{
				"reason": err.Error(),
			})
		}
	}

	var idem *database.IdempotencyCheck
	if req.IdempotencyKey != "" {
		fingerprint, err := operations.Fingerprint(ops)
		if err != nil {
			return nil, err
		}
		idem = &database.IdempotencyCheck{
			Token:       req.IdempotencyKey,
			Fingerprint: fingerprint,
			TTL:         be.Config.ParseIdempotencyTTL(),
		}
	}

	lockKey := patchLockKey(req.ObjectID)
	be.Lockers.Lock(lockKey)
	defer func() {
		if err := be.Lockers.Unlock(lockKey); err != nil {
			logging.From(ctx).Error(err)
		}
	}()

	res, err := be.DB.ApplyPatch(ctx, req.ObjectID, req.BaseDocVersion, ops, idem)
	if err != nil {
		return nil, err
	}

	logging.From(ctx).Debugf(
		"PATCH: %s v%d, %d ops",
		req.ObjectID,
		res.DocVersion,
		len(ops),
	)
	return res, nil
}
