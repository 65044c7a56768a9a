// Copyright (c) 2026 Hopelink
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package config loads and stores CLI configuration in the XDG config dir.
// Settings are layered: built-in defaults, then the JSON config file, then
// environment variables. Only non-secret settings live here; the session
// record goes through internal/store.
package config

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"github.com/sethvargo/go-envconfig"

	"hopelink/cli/internal/xdg"
)

// DefaultAPIBase is used when neither the config file nor the environment
// names a backend.
const DefaultAPIBase = "https://api.hopelink.org"

// Config holds non-sensitive CLI settings.
type Config struct {
	// APIBase is the backend origin all REST paths are resolved against.
	APIBase string `json:"api_base" env:"HOPELINK_API_BASE"`
	// MongoURI is the direct document-database connection used only by the
	// maintenance commands. Empty unless configured.
	MongoURI string `json:"mongo_uri,omitempty" env:"HOPELINK_MONGO_URI"`
	// LogLevel is the minimum diagnostic log level: debug, info, warn, error.
	LogLevel string `json:"log_level" env:"HOPELINK_LOG_LEVEL"`
}

// path returns the path to the config file.
func path() (string, error) {
	dir, err := xdg.ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads configuration; a missing file yields defaults. Environment
// variables override whatever the file provided.
func Load(ctx context.Context) (Config, error) {
	c := Config{
		APIBase:  DefaultAPIBase,
		LogLevel: "info",
	}

	p, err := path()
	if err != nil {
		return c, err
	}
	data, err := os.ReadFile(p)
	switch {
	case err == nil:
		if err := json.Unmarshal(data, &c); err != nil {
			return c, err
		}
	case errors.Is(err, os.ErrNotExist):
		// keep defaults
	default:
		return c, err
	}

	if err := envconfig.Process(ctx, &c); err != nil {
		return c, err
	}
	if c.APIBase == "" {
		c.APIBase = DefaultAPIBase
	}
	return c, nil
}

// Save writes configuration with 0600 permissions.
func Save(c Config) error {
	p, err := path()
	if err != nil {
		return err
	}
	b, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(p, b, 0o600)
}
