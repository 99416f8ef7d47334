// Playdex - Game Catalog List & Ranking Engine
// Copyright 2026 Playdex Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/playdex/playdex

// Command rankerd runs the catalog maintenance daemon: it opens the
// catalog database, supervises the periodic popularity recompute and
// exposes engine metrics. The list, search and rating operations live in
// the internal packages and are embedded by the serving tier.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/playdex/playdex/internal/config"
	"github.com/playdex/playdex/internal/database"
	"github.com/playdex/playdex/internal/logging"
	"github.com/playdex/playdex/internal/metrics"
	"github.com/playdex/playdex/internal/popularity"
	"github.com/playdex/playdex/internal/supervisor"
)

func main() {
	if err := run(); err != nil {
		logging.Error().Err(err).Msg("Engine terminated with error")
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	db, err := database.New(&cfg.Database)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Warn().Err(err).Msg("Failed to close database")
		}
	}()

	tree := supervisor.NewTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	tree.AddJob(popularity.NewJob(db, cfg.Popularity.Interval, cfg.Popularity.MinVotes))
	tree.AddJob(metrics.NewServer(cfg.Metrics.Addr))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logging.Info().Str("metrics_addr", cfg.Metrics.Addr).Msg("Playdex ranking engine started")

	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	logging.Info().Msg("Playdex ranking engine stopped")
	return nil
}
