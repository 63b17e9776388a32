// Bibliograph - Book Recommendation Serving API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bibliograph

// Package config loads and validates application configuration from
// layered sources: struct defaults, an optional YAML file, then
// environment variables.
package config

import (
	"fmt"
	"time"

	"github.com/tomtom215/bibliograph/internal/validation"
)

// Config is the root configuration for the server.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Artifacts ArtifactsConfig `koanf:"artifacts"`
	API       APIConfig       `koanf:"api"`
	Recommend RecommendConfig `koanf:"recommend"`
	Security  SecurityConfig  `koanf:"security"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `koanf:"host" validate:"required"`
	Port            int           `koanf:"port" validate:"min=1,max=65535"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// ArtifactsConfig locates the precomputed model artifacts.
type ArtifactsConfig struct {
	// Dir is the directory containing the artifact blobs.
	Dir string `koanf:"dir" validate:"required"`
	// RequireAll fails startup when any artifact is missing instead of
	// serving in degraded mode.
	RequireAll bool `koanf:"require_all"`
}

// APIConfig holds request shaping defaults.
type APIConfig struct {
	// DefaultCount is the number of results returned when the client
	// omits the count parameter.
	DefaultCount int `koanf:"default_count" validate:"min=1"`
	// MaxCount caps the count parameter.
	MaxCount int `koanf:"max_count" validate:"min=1"`
}

// RecommendConfig tunes the recommendation policies.
type RecommendConfig struct {
	// MinSimilarity is the similarity threshold below which neighbors
	// are ignored in user-based collaborative filtering.
	MinSimilarity float64 `koanf:"min_similarity" validate:"gte=0,lte=1"`
	// GenreMinRatings is the minimum rating count for a book to be
	// eligible in genre rankings.
	GenreMinRatings int `koanf:"genre_min_ratings" validate:"min=1"`
	// GenreLimit is the maximum number of books in a genre ranking.
	GenreLimit int `koanf:"genre_limit" validate:"min=1"`
}

// SecurityConfig holds rate limiting and CORS settings.
type SecurityConfig struct {
	RateLimitReqs     int           `koanf:"rate_limit_reqs" validate:"min=1"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `koanf:"level" validate:"oneof=trace debug info warn error fatal panic disabled"`
	Format string `koanf:"format" validate:"oneof=json console"`
	Caller bool   `koanf:"caller"`
}

// defaultConfig returns a Config with all default values. Defaults are
// applied first, then overridden by the config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Artifacts: ArtifactsConfig{
			Dir:        "/data/artifacts",
			RequireAll: false,
		},
		API: APIConfig{
			DefaultCount: 10,
			MaxCount:     50,
		},
		Recommend: RecommendConfig{
			MinSimilarity:   0.1,
			GenreMinRatings: 5,
			GenreLimit:      20,
		},
		Security: SecurityConfig{
			RateLimitReqs:     100,
			RateLimitWindow:   time.Minute,
			RateLimitDisabled: false,
			CORSOrigins:       []string{"*"},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	if err := validation.ValidateStruct(c); err != nil {
		return fmt.Errorf("invalid configuration: %s", validation.FormatErrors(err))
	}
	if c.API.DefaultCount > c.API.MaxCount {
		return fmt.Errorf("api.default_count (%d) exceeds api.max_count (%d)",
			c.API.DefaultCount, c.API.MaxCount)
	}
	return nil
}
