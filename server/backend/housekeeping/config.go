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

package housekeeping

import (
	"fmt"
	"time"
)

// Config is the configuration for the housekeeping service.
type Config struct {
	// Interval is the time between housekeeping runs.
	Interval string `yaml:"Interval"`

	// TrashRetention is how long soft-deleted objects and blocks are kept
	// before they are purged.
	TrashRetention string `yaml:"TrashRetention"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if _, err := time.ParseDuration(c.Interval); err != nil {
		return fmt.Errorf(
			`invalid argument "%s" for "--housekeeping-interval" flag: %w`,
			c.Interval,
			err,
		)
	}

	if _, err := time.ParseDuration(c.TrashRetention); err != nil {
		return fmt.Errorf(
			`invalid argument "%s" for "--housekeeping-trash-retention" flag: %w`,
			c.TrashRetention,
			err,
		)
	}

	return nil
}

// ParseInterval returns the interval as a time.Duration.
func (c *Config) ParseInterval() (time.Duration, error) {
	interval, err := time.ParseDuration(c.Interval)
	if err != nil {
		return 0, fmt.Errorf("parse housekeeping interval %s: %w", c.Interval, err)
	}

	return interval, nil
}

// ParseTrashRetention returns the trash retention as a time.Duration.
func (c *Config) ParseTrashRetention() (time.Duration, error) {
	retention, err := time.ParseDuration(c.TrashRetention)
	if err != nil {
		return 0, fmt.Errorf("parse trash retention %s: %w", c.TrashRetention, err)
	}

	return retention, nil
}
