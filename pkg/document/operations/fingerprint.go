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
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// fingerprintEnvelope pairs an operation with its kind so two different
// operation kinds with coincidentally equal payloads never collide.
type fingerprintEnvelope struct {
	Kind Kind            `json:"kind"`
	Op   json.RawMessage `json:"op"`
}

// Fingerprint returns a stable hex digest of the operation list. Two
// submissions carry the same fingerprint iff they encode the same
// operations in the same order; the idempotency store compares
// fingerprints to detect token reuse with a different list.
func Fingerprint(ops []Operation) (string, error) {
	envelopes := make([]fingerprintEnvelope, 0, len(ops))
	for _, op := range ops {
		data, err := json.Marshal(op)
		if err != nil {
			return "", fmt.Errorf("marshal %s operation: %w", op.Kind(), err)
		}
		envelopes = append(envelopes, fingerprintEnvelope{
			Kind: op.Kind(),
			Op:   data,
		})
	}

	bytes, err := json.Marshal(envelopes)
	if err != nil {
		return "", fmt.Errorf("marshal operations: %w", err)
	}

	sum := sha256.Sum256(bytes)
	return hex.EncodeToString(sum[:]), nil
}
