// Copyright 2026 The Plank Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config loads the server configuration with multi-source
// priority: command-line flags (bound by the caller), environment
// variables with the PLANK_ prefix, an optional config file, then
// defaults.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/viper"
)

var (
	// ErrInvalidLogLevel indicates an unknown log level name.
	ErrInvalidLogLevel = errors.New("invalid log level")

	// ErrMissingDocument indicates that no document file path was given.
	ErrMissingDocument = errors.New("document file path must not be empty")

	// ErrMissingAddr indicates that no listen address was given.
	ErrMissingAddr = errors.New("listen address must not be empty")
)

// Config is the server configuration.
type Config struct {
	Addr     string // listen address, e.g. ":8080"
	Document string // path of the JSON document file
	DryRun   bool   // compute mutations without persisting
	Metrics  bool   // expose Prometheus metrics on /metrics
	LogLevel string // debug, info, warn, or error
	Token    string // optional token guard for mutating routes; empty disables
}

// New returns a viper instance carrying the configuration defaults and
// environment binding. Callers bind their flags onto it before Load.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault("addr", ":8080")
	v.SetDefault("document", "db.json")
	v.SetDefault("dry_run", false)
	v.SetDefault("metrics", true)
	v.SetDefault("log_level", "info")
	v.SetDefault("token", "")
	v.SetEnvPrefix("PLANK")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the optional config file and materializes a validated Config.
// An empty file path skips file loading.
func Load(v *viper.Viper, file string) (*Config, error) {
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", file, err)
		}
	}
	cfg := &Config{
		Addr:     v.GetString("addr"),
		Document: v.GetString("document"),
		DryRun:   v.GetBool("dry_run"),
		Metrics:  v.GetBool("metrics"),
		LogLevel: v.GetString("log_level"),
		Token:    v.GetString("token"),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for startup-fatal mistakes.
func (c *Config) Validate() error {
	if c.Addr == "" {
		return ErrMissingAddr
	}
	if c.Document == "" {
		return ErrMissingDocument
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// SlogLevel maps the configured level name onto a slog.Level.
func (c *Config) SlogLevel() (slog.Level, error) {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.LogLevel)
}
