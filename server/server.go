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

// Package server provides the Inkstone engine instance. It owns the
// backend's lifecycle and is the entry point an embedding application
// works against.
package server

import (
	gosync "sync"

	"github.com/inkstone-notes/inkstone/server/backend"
)

// Inkstone is an instance of the block-document engine. It applies
// patches from the embedding application, keeps the derived indexes in
// step, and serves the assembled document trees back.
type Inkstone struct {
	lock gosync.Mutex

	conf    *Config
	backend *backend.Backend

	shutdown   bool
	shutdownCh chan struct{}
}

// New creates a new instance of Inkstone.
func New(conf *Config) (*Inkstone, error) {
	if err := conf.Validate(); err != nil {
		return nil, err
	}

	be, err := backend.New(conf.Backend, conf.Housekeeping)
	if err != nil {
		return nil, err
	}

	return &Inkstone{
		conf:       conf,
		backend:    be,
		shutdownCh: make(chan struct{}),
	}, nil
}

// Backend returns the backend of this instance.
func (r *Inkstone) Backend() *backend.Backend {
	return r.backend
}

// Shutdown shuts down this instance.
func (r *Inkstone) Shutdown() error {
	r.lock.Lock()
	defer r.lock.Unlock()
	if r.shutdown {
		return nil
	}

	if err := r.backend.Shutdown(); err != nil {
		return err
	}

	r.shutdown = true
	close(r.shutdownCh)
	return nil
}

// ShutdownCh returns the shutdown channel.
func (r *Inkstone) ShutdownCh() <-chan struct{} {
	return r.shutdownCh
}
