// Curator - Catalog Admin Dashboard and Content API
// Copyright 2026 Curator Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/curatorhq/curator

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in
// order of priority. The first file found is used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/curator/config.yaml",
	"/etc/curator/config.yml",
}

// ConfigPathEnvVar overrides the config file path when set.
const ConfigPathEnvVar = "CONFIG_PATH"

// envPrefix namespaces Curator's environment variables.
const envPrefix = "CURATOR_"

// defaultConfig returns a Config with all default values. Defaults are
// applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:             "0.0.0.0",
			Port:             8125,
			ReadTimeout:      15 * time.Second,
			WriteTimeout:     30 * time.Second,
			ShutdownTimeout:  10 * time.Second,
			CORSOrigins:      []string{},
			GlobalRateLimit:  300,
			GlobalRateWindow: time.Minute,
		},
		Database: DatabaseConfig{
			Path:      "/data/curator.duckdb",
			MaxMemory: "1GB",
			Threads:   0,
		},
		Cache: CacheConfig{
			Version:         "v1",
			DefaultTTL:      5 * time.Minute,
			DefaultCapacity: 1000,
			SweepInterval:   5 * time.Minute,
			Entities: map[string]EntityCacheConfig{
				// List stores expire faster than detail stores: lists are
				// invalidated broadly on every insert while a detail entry
				// only goes stale when its own row changes.
				"templates":    {TTL: 5 * time.Minute, Capacity: 500},
				"template":     {TTL: 10 * time.Minute, Capacity: 2000},
				"applications": {TTL: 5 * time.Minute, Capacity: 500},
				"application":  {TTL: 10 * time.Minute, Capacity: 2000},
				"platforms":    {TTL: 15 * time.Minute, Capacity: 200},
				"platform":     {TTL: 15 * time.Minute, Capacity: 500},
				"articles":     {TTL: 3 * time.Minute, Capacity: 500},
				"article":      {TTL: 10 * time.Minute, Capacity: 2000},
				"users":        {TTL: 2 * time.Minute, Capacity: 200},
				"user":         {TTL: 5 * time.Minute, Capacity: 1000},
			},
		},
		RateLimit: RateLimitConfig{
			Enabled:         true,
			MaxIdentities:   10000,
			JanitorInterval: time.Minute,
			Classes: map[string]ClassPolicyConfig{
				"auth":   {Limit: 10, Window: 5 * time.Minute},
				"read":   {Limit: 60, Window: time.Minute},
				"mutate": {Limit: 10, Window: 5 * time.Minute},
			},
		},
		Auth: AuthConfig{
			JWTSecret: "",
		},
		Telemetry: TelemetryConfig{
			CapturesPerSecond: 10,
			CapturesBurst:     20,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// Load reads configuration from defaults, optional config file and
// environment variables, then validates the result.
//
// Environment variable mapping: CURATOR_SERVER_PORT -> server.port,
// CURATOR_CACHE_DEFAULT_TTL -> cache.default_ttl, and so on. Nested
// section names never contain underscores, so the first underscore after
// the prefix splits section from key.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile searches for a config file in the default paths.
// Returns the path to the first file found, or empty string if none found.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// envTransformFunc converts CURATOR_SECTION_SOME_KEY to section.some_key.
func envTransformFunc(key string) string {
	key = strings.ToLower(strings.TrimPrefix(key, envPrefix))

	section, rest, found := strings.Cut(key, "_")
	if !found {
		return key
	}
	return section + "." + rest
}
