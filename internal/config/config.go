// Playdex - Game Catalog List & Ranking Engine
// Copyright 2026 Playdex Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/playdex/playdex

// Package config loads the engine configuration from layered sources:
// built-in defaults, an optional YAML file and PLAYDEX_* environment
// variables (highest priority).
package config

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// Config is the root configuration.
type Config struct {
	Database   DatabaseConfig   `koanf:"database"`
	Search     SearchConfig     `koanf:"search"`
	Rating     RatingConfig     `koanf:"rating"`
	Engine     EngineConfig     `koanf:"engine"`
	Cache      CacheConfig      `koanf:"cache"`
	Popularity PopularityConfig `koanf:"popularity"`
	Metrics    MetricsConfig    `koanf:"metrics"`
	Logging    LoggingConfig    `koanf:"logging"`
}

// DatabaseConfig tunes the DuckDB storage layer.
type DatabaseConfig struct {
	// Path is the database file; ":memory:" runs fully in memory.
	Path      string `koanf:"path" validate:"required"`
	MaxMemory string `koanf:"max_memory"`
	// Threads selects DuckDB worker threads; 0 = runtime.NumCPU().
	Threads int `koanf:"threads" validate:"gte=0"`
}

// SearchConfig tunes the search bridge.
type SearchConfig struct {
	// ChunkSize bounds the ID-restriction width per index query.
	ChunkSize     int           `koanf:"chunk_size" validate:"gt=0"`
	MaxResults    int           `koanf:"max_results" validate:"gt=0"`
	MaxConcurrent int           `koanf:"max_concurrent" validate:"gt=0"`
	RatePerSecond float64       `koanf:"rate_per_second" validate:"gte=0"`
	RateBurst     int           `koanf:"rate_burst" validate:"gte=0"`
	Timeout       time.Duration `koanf:"timeout" validate:"gt=0"`
}

// RatingConfig tunes the rating aggregate.
type RatingConfig struct {
	// MeanThreshold is the vote count below which the reported mean is 0.
	MeanThreshold int `koanf:"mean_threshold" validate:"gte=0"`
}

// EngineConfig tunes the pagination & count service.
type EngineConfig struct {
	DefaultPageSize int `koanf:"default_page_size" validate:"gt=0"`
	MaxPageSize     int `koanf:"max_page_size" validate:"gt=0"`
}

// CacheConfig tunes the reference-data cache.
type CacheConfig struct {
	TTL time.Duration `koanf:"ttl" validate:"gt=0"`
}

// PopularityConfig tunes the background recompute job.
type PopularityConfig struct {
	Interval time.Duration `koanf:"interval" validate:"gt=0"`
	// MinVotes is the Bayesian prior weight for weighted ratings.
	MinVotes int `koanf:"min_votes" validate:"gt=0"`
}

// MetricsConfig tunes the observability endpoint.
type MetricsConfig struct {
	// Addr is the listen address for /metrics and /healthz.
	Addr string `koanf:"addr" validate:"required"`
}

// LoggingConfig mirrors logging.Config.
type LoggingConfig struct {
	Level  string `koanf:"level" validate:"oneof=trace debug info warn error fatal disabled"`
	Format string `koanf:"format" validate:"oneof=json console"`
	Caller bool   `koanf:"caller"`
}

// defaultConfig returns the built-in defaults, applied before file and
// environment layers.
func defaultConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			Path:      "/data/playdex.duckdb",
			MaxMemory: "2GB",
			Threads:   0,
		},
		Search: SearchConfig{
			ChunkSize:     5000,
			MaxResults:    10000,
			MaxConcurrent: 4,
			RatePerSecond: 0,
			RateBurst:     1,
			Timeout:       10 * time.Second,
		},
		Rating: RatingConfig{
			MeanThreshold: 5,
		},
		Engine: EngineConfig{
			DefaultPageSize: 20,
			MaxPageSize:     100,
		},
		Cache: CacheConfig{
			TTL: 5 * time.Minute,
		},
		Popularity: PopularityConfig{
			Interval: time.Hour,
			MinVotes: 10,
		},
		Metrics: MetricsConfig{
			Addr: ":9090",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// Validate checks the configuration against the struct-tag rules.
func (c *Config) Validate() error {
	return validator.New(validator.WithRequiredStructEnabled()).Struct(c)
}
