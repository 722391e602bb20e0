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

package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/inkstone-notes/inkstone/internal/logging"
	"github.com/inkstone-notes/inkstone/server"
)

var (
	gracefulTimeout = 10 * time.Second
)

var (
	flagConfPath string
	flagLogLevel string

	housekeepingInterval       time.Duration
	housekeepingTrashRetention time.Duration
	idempotencyTTL             time.Duration

	conf = server.NewConfig()
)

func newEngineCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "engine [options]",
		Short: "Start Inkstone engine",
		RunE: func(cmd *cobra.Command, args []string) error {
			conf.Backend.IdempotencyTTL = idempotencyTTL.String()
			conf.Housekeeping.Interval = housekeepingInterval.String()
			conf.Housekeeping.TrashRetention = housekeepingTrashRetention.String()

			// If config file is given, command-line arguments will be overwritten.
			if flagConfPath != "" {
				parsed, err := server.NewConfigFromFile(flagConfPath)
				if err != nil {
					return err
				}
				conf = parsed
			}

			if err := logging.SetLogLevel(flagLogLevel); err != nil {
				return err
			}

			r, err := server.New(conf)
			if err != nil {
				return err
			}

			if code := handleSignal(r); code != 0 {
				return fmt.Errorf("exit code: %d", code)
			}

			return nil
		},
	}
}

func handleSignal(r *server.Inkstone) int {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)

	select {
	case <-sigCh:
	case <-r.ShutdownCh():
		// inkstone is already shutdown
		return 0
	}

	gracefulCh := make(chan struct{})
	go func() {
		if err := r.Shutdown(); err != nil {
			return
		}
		close(gracefulCh)
	}()

	select {
	case <-sigCh:
		return 1
	case <-time.After(gracefulTimeout):
		return 1
	case <-gracefulCh:
		return 0
	}
}

func init() {
	cmd := newEngineCmd()
	cmd.Flags().StringVarP(
		&flagConfPath,
		"config",
		"c",
		"",
		"Config path",
	)
	cmd.Flags().StringVarP(
		&flagLogLevel,
		"log-level",
		"l",
		"info",
		"Log level: debug, info, warn, error, panic, fatal",
	)
	cmd.Flags().DurationVar(
		&housekeepingInterval,
		"housekeeping-interval",
		server.DefaultHousekeepingInterval,
		"Time between housekeeping runs.",
	)
	cmd.Flags().DurationVar(
		&housekeepingTrashRetention,
		"housekeeping-trash-retention",
		server.DefaultHousekeepingTrashRetention,
		"How long soft-deleted objects and blocks are kept before purging.",
	)
	cmd.Flags().DurationVar(
		&idempotencyTTL,
		"backend-idempotency-ttl",
		server.DefaultIdempotencyTTL,
		"How long stored patch results stay replayable for their idempotency token.",
	)

	rootCmd.AddCommand(cmd)
}
