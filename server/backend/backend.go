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

// Package backend provides the backend implementation of the engine. It
// bundles the database, the per-object lockers, and the background
// housekeeping service.
package backend

import (
	"fmt"

	"github.com/inkstone-notes/inkstone/internal/logging"
	"github.com/inkstone-notes/inkstone/pkg/locker"
	"github.com/inkstone-notes/inkstone/server/backend/database"
	"github.com/inkstone-notes/inkstone/server/backend/database/memory"
	"github.com/inkstone-notes/inkstone/server/backend/housekeeping"
)

// Backend manages the stateful resources of the engine.
type Backend struct {
	Config *Config

	// DB is the database instance.
	DB database.Database

	// Lockers is the lockers used to serialize patches per object.
	Lockers *locker.Locker

	// Housekeeping is the background service sweeping expired rows.
	Housekeeping *housekeeping.Housekeeping
}

// New creates a new instance of Backend.
func New(
	conf *Config,
	housekeepingConf *housekeeping.Config,
) (*Backend, error) {
	db, err := memory.New()
	if err != nil {
		return nil, err
	}

	keeping, err := housekeeping.New(housekeepingConf, db)
	if err != nil {
		return nil, err
	}
	if err := keeping.Start(); err != nil {
		return nil, err
	}

	return &Backend{
		Config:       conf,
		DB:           db,
		Lockers:      locker.New(),
		Housekeeping: keeping,
	}, nil
}

// Shutdown closes all resources of this instance.
func (b *Backend) Shutdown() error {
	if err := b.Housekeeping.Stop(); err != nil {
		return fmt.Errorf("stop housekeeping: %w", err)
	}

	if err := b.DB.Close(); err != nil {
		logging.DefaultLogger().Error(err)
	}

	return nil
}
