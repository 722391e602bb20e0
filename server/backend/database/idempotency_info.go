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

package database

import (
	"time"

	"github.com/inkstone-notes/inkstone/api/types"
)

// IdempotencyInfo records one applied patch keyed by its client-generated
// token. A replay with the same token and fingerprint returns the stored
// result; a replay with a different fingerprint is a conflict.
type IdempotencyInfo struct {
	// Token is the client-generated idempotency token.
	Token string `json:"token"`

	// ObjectID is the object the patch was applied to.
	ObjectID types.ID `json:"object_id"`

	// Fingerprint is the digest of the applied operation list.
	Fingerprint string `json:"fingerprint"`

	// Result is the stored patch result returned on replay.
	Result *types.PatchResult `json:"result"`

	// CreatedAt is the time the record was stored.
	CreatedAt time.Time `json:"created_at"`

	// ExpiresAt is the time after which the record may be purged.
	ExpiresAt time.Time `json:"expires_at"`
}

// IsExpired returns true if the record expired at the given time.
func (info *IdempotencyInfo) IsExpired(now time.Time) bool {
	return info.ExpiresAt.Before(now)
}

// DeepCopy creates a deep copy of this IdempotencyInfo.
func (info *IdempotencyInfo) DeepCopy() *IdempotencyInfo {
	if info == nil {
		return nil
	}

	copied := *info
	copied.Result = info.Result.DeepCopy()
	return &copied
}
