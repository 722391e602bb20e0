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

package backend

import (
	"fmt"
	"time"
)

// Config is the configuration for creating a Backend instance.
type Config struct {
	// IdempotencyTTL is how long a stored patch result stays replayable
	// for its idempotency token.
	IdempotencyTTL string `yaml:"IdempotencyTTL"`
}

// Validate validates this config.
func (c *Config) Validate() error {
	if _, err := time.ParseDuration(c.IdempotencyTTL); err != nil {
		return fmt.Errorf(
			`invalid argument "%s" for "--backend-idempotency-ttl" flag: %w`,
			c.IdempotencyTTL,
			err,
		)
	}

	return nil
}

// ParseIdempotencyTTL returns the TTL as a time.Duration.
func (c *Config) ParseIdempotencyTTL() time.Duration {
	ttl, err := time.ParseDuration(c.IdempotencyTTL)
	if err != nil {
		panic("parse idempotency ttl")
	}

	return ttl
}
