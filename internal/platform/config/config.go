// Copyright (c) 2026 MangroveNet. All rights reserved.

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to core components (DB, Redis, Storage) via constructors.
  - Zero Hidden State: No global variables are used to store config.

This ensures the application is Twelve-Factor compliant by storing config in the env.
*/
package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

// # Score Validation Modes

// Sustainability scores are displayed on a 0-100 scale but the authoring
// tools never enforced a range. The rule is therefore configurable.
const (
	// ScoreValidationOff stores caller-supplied scores as-is.
	ScoreValidationOff = "off"

	// ScoreValidationClamp pins out-of-range scores to [0, 100].
	ScoreValidationClamp = "clamp"

	// ScoreValidationReject fails validation for out-of-range scores.
	ScoreValidationReject = "reject"
)

// # Storage Drivers

const (
	// StorageDriverLocal writes uploads to a local directory served under /uploads/.
	StorageDriverLocal = "local"

	// StorageDriverMinio writes uploads to an S3-compatible bucket.
	StorageDriverMinio = "minio"
)

// # Configuration Schema

// Config holds all runtime configuration for the MangroveNet API server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Relational Database (PostgreSQL)
	DatabaseURL string `env:"DATABASE_URL,required"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`

	// Key-Value Cache (Redis)
	RedisURL string `env:"REDIS_URL,required"`

	// JWTSecret signs HS256 access tokens.
	JWTSecret string `env:"JWT_SECRET,required"`

	// Binary File Storage
	StorageDriver string `env:"STORAGE_DRIVER" envDefault:"local"`
	UploadDir     string `env:"UPLOAD_DIR"     envDefault:"./uploads"`

	// Object Storage (Minio / S3-compatible), used when STORAGE_DRIVER=minio
	MinioEndpoint  string `env:"MINIO_ENDPOINT"`
	MinioAccessKey string `env:"MINIO_ACCESS_KEY"`
	MinioSecretKey string `env:"MINIO_SECRET_KEY"`
	MinioBucket    string `env:"MINIO_BUCKET"    envDefault:"mangrovenet"`
	MinioUseSSL    bool   `env:"MINIO_USE_SSL"   envDefault:"false"`

	// ScoreValidation selects how sustainability scores are checked:
	// "off", "clamp", or "reject".
	ScoreValidation string `env:"SCORE_VALIDATION" envDefault:"off"`

	// Cross-Origin Resource Sharing
	ExtraOrigins string `env:"EXTRA_ORIGINS"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {

	// Initialize an empty config struct
	cfg := &Config{}

	// Use the 'env' package to map environment variables to struct fields.
	// This will fail if any field marked with 'required' is missing.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	switch cfg.ScoreValidation {
	case ScoreValidationOff, ScoreValidationClamp, ScoreValidationReject:
	default:
		return nil, fmt.Errorf("config: invalid SCORE_VALIDATION %q", cfg.ScoreValidation)
	}

	switch cfg.StorageDriver {
	case StorageDriverLocal, StorageDriverMinio:
	default:
		return nil, fmt.Errorf("config: invalid STORAGE_DRIVER %q", cfg.StorageDriver)
	}

	return cfg, nil
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// AllowedExtraOrigins returns the comma-separated EXTRA_ORIGINS list as exact
// origins granted CORS access in addition to the primary domain.
func (c *Config) AllowedExtraOrigins() []string {
	if c.ExtraOrigins == "" {
		return nil
	}

	var origins []string
	for _, origin := range strings.Split(c.ExtraOrigins, ",") {
		if trimmed := strings.TrimSpace(origin); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
