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

// Package housekeeping provides the housekeeping service. It periodically
// purges expired idempotency records and soft-deleted rows past their
// retention.
package housekeeping

import (
	"context"
	"fmt"
	"time"

	"github.com/inkstone-notes/inkstone/internal/logging"
	"github.com/inkstone-notes/inkstone/server/backend/database"
)

// Housekeeping is the housekeeping service. It runs in the background and
// sweeps the store on a fixed interval.
type Housekeeping struct {
	database database.Database

	interval       time.Duration
	trashRetention time.Duration

	ctx        context.Context
	cancelFunc context.CancelFunc
}

// New creates a new housekeeping instance.
func New(conf *Config, database database.Database) (*Housekeeping, error) {
	interval, err := conf.ParseInterval()
	if err != nil {
		return nil, err
	}
	trashRetention, err := conf.ParseTrashRetention()
	if err != nil {
		return nil, err
	}

	ctx, cancelFunc := context.WithCancel(context.Background())

	return &Housekeeping{
		database: database,

		interval:       interval,
		trashRetention: trashRetention,

		ctx:        ctx,
		cancelFunc: cancelFunc,
	}, nil
}

// Start starts the housekeeping service.
func (h *Housekeeping) Start() error {
	go h.run()
	return nil
}

// Stop stops the housekeeping service.
func (h *Housekeeping) Stop() error {
	h.cancelFunc()
	return nil
}

// run is the housekeeping loop.
func (h *Housekeeping) run() {
	for {
		ctx := h.ctx
		select {
		case <-time.After(h.interval):
			if err := h.sweep(ctx); err != nil {
				continue
			}
		case <-ctx.Done():
			return
		}
	}
}

// sweep purges expired idempotency records and soft-deleted rows older
// than the trash retention.
func (h *Housekeeping) sweep(ctx context.Context) error {
	now := time.Now()

	expired, err := h.database.PurgeExpiredIdempotencyInfos(ctx, now)
	if err != nil {
		logging.From(ctx).Error(err)
		return fmt.Errorf("purge expired idempotency records: %w", err)
	}

	purged, err := h.database.PurgeRemoved(ctx, now.Add(-h.trashRetention))
	if err != nil {
		logging.From(ctx).Error(err)
		return fmt.Errorf("purge removed rows: %w", err)
	}

	if expired > 0 || purged > 0 {
		logging.From(ctx).Debugf(
			"HSKP: purged %d idempotency records, %d removed rows",
			expired,
			purged,
		)
	}

	return nil
}
