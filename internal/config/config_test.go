// Bibliograph - Book Recommendation Serving API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bibliograph

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfigIsValid(t *testing.T) {
	t.Parallel()

	cfg := defaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config failed validation: %v", err)
	}

	if cfg.API.MaxCount != 50 {
		t.Errorf("MaxCount = %d, want 50", cfg.API.MaxCount)
	}
	if cfg.Recommend.MinSimilarity != 0.1 {
		t.Errorf("MinSimilarity = %v, want 0.1", cfg.Recommend.MinSimilarity)
	}
	if cfg.Recommend.GenreMinRatings != 5 {
		t.Errorf("GenreMinRatings = %d, want 5", cfg.Recommend.GenreMinRatings)
	}
}

func TestValidateRejectsInvertedCounts(t *testing.T) {
	t.Parallel()

	cfg := defaultConfig()
	cfg.API.DefaultCount = 100
	cfg.API.MaxCount = 50
	if err := cfg.Validate(); err == nil {
		t.Error("expected error when default_count > max_count")
	}
}

func TestValidateRejectsBadLevel(t *testing.T) {
	t.Parallel()

	cfg := defaultConfig()
	cfg.Logging.Level = "loud"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for unknown log level")
	}
}

func TestEnvTransformFunc(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"HTTP_PORT", "server.port"},
		{"ARTIFACTS_DIR", "artifacts.dir"},
		{"RECOMMEND_MIN_SIMILARITY", "recommend.min_similarity"},
		{"LOG_LEVEL", "logging.level"},
		{"PATH", ""},
		{"HOME", ""},
	}

	for _, tt := range tests {
		if got := envTransformFunc(tt.in); got != tt.want {
			t.Errorf("envTransformFunc(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestLoadWithFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := `
server:
  port: 9090
artifacts:
  dir: /tmp/artifacts
`
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Setenv(ConfigPathEnvVar, path)
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Port = %d, want 9090 (from file)", cfg.Server.Port)
	}
	if cfg.Artifacts.Dir != "/tmp/artifacts" {
		t.Errorf("Artifacts.Dir = %q, want /tmp/artifacts", cfg.Artifacts.Dir)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug (from env)", cfg.Logging.Level)
	}
	// Untouched values keep their defaults.
	if cfg.API.MaxCount != 50 {
		t.Errorf("MaxCount = %d, want default 50", cfg.API.MaxCount)
	}
}
