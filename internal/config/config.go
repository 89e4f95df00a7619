// Curator - Catalog Admin Dashboard and Content API
// Copyright 2026 Curator Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/curatorhq/curator

package config

import (
	"time"
)

// Config holds all application configuration loaded from defaults, an
// optional YAML config file and environment variables.
//
// Loading order (Koanf v2, highest priority last):
//  1. Defaults: built-in sensible defaults for all settings
//  2. Config file: optional YAML file (config.yaml)
//  3. Environment variables: override any setting
//
// Config is immutable after Load() and safe for concurrent read access.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Database  DatabaseConfig  `koanf:"database"`
	Cache     CacheConfig     `koanf:"cache"`
	RateLimit RateLimitConfig `koanf:"ratelimit"`
	Auth      AuthConfig      `koanf:"auth"`
	Telemetry TelemetryConfig `koanf:"telemetry"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`

	// CORSOrigins is empty by default; cross-origin access requires
	// explicit configuration.
	CORSOrigins []string `koanf:"cors_origins"`

	// GlobalRateLimit is a coarse per-IP request ceiling applied in front
	// of the per-route-class limiter. 0 disables it.
	GlobalRateLimit  int           `koanf:"global_rate_limit"`
	GlobalRateWindow time.Duration `koanf:"global_rate_window"`
}

// DatabaseConfig holds DuckDB configuration for the catalog store.
type DatabaseConfig struct {
	// Path is the database file path. ":memory:" for an in-memory store.
	Path      string `koanf:"path"`
	MaxMemory string `koanf:"max_memory"`

	// Threads is the DuckDB thread count. 0 = runtime.NumCPU().
	Threads int `koanf:"threads"`
}

// CacheConfig holds dashboard cache configuration.
//
// Entities maps entity names to their TTL and capacity. The entity set is
// fixed at startup; entries here tune existing stores rather than create
// arbitrary new ones.
type CacheConfig struct {
	// Version is the key version tag. Bumping it abandons all previously
	// written keys without touching the stores.
	Version string `koanf:"version"`

	DefaultTTL      time.Duration `koanf:"default_ttl"`
	DefaultCapacity int           `koanf:"default_capacity"`
	SweepInterval   time.Duration `koanf:"sweep_interval"`

	Entities map[string]EntityCacheConfig `koanf:"entities"`
}

// EntityCacheConfig tunes a single entity's cache store.
type EntityCacheConfig struct {
	TTL      time.Duration `koanf:"ttl"`
	Capacity int           `koanf:"capacity"`
}

// RateLimitConfig holds rate limiter configuration.
type RateLimitConfig struct {
	Enabled bool `koanf:"enabled"`

	// MaxIdentities bounds the number of tracked (class, identity) windows.
	MaxIdentities   int           `koanf:"max_identities"`
	JanitorInterval time.Duration `koanf:"janitor_interval"`

	Classes map[string]ClassPolicyConfig `koanf:"classes"`
}

// ClassPolicyConfig is the limit policy for one route class.
type ClassPolicyConfig struct {
	Limit  int           `koanf:"limit"`
	Window time.Duration `koanf:"window"`
}

// AuthConfig holds token verification settings. Curator verifies bearer
// tokens issued elsewhere; it does not issue sessions itself.
type AuthConfig struct {
	// JWTSecret is the HMAC secret for verifying bearer tokens.
	// Empty disables token verification (anonymous identities only).
	JWTSecret string `koanf:"jwt_secret"`
}

// TelemetryConfig throttles the capture sink.
type TelemetryConfig struct {
	CapturesPerSecond float64 `koanf:"captures_per_second"`
	CapturesBurst     int     `koanf:"captures_burst"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// Entities is the fixed set of cache entity names known at startup.
// List stores ("templates") and detail stores ("template") are siblings:
// a new row clears the list store broadly while a single-row edit clears
// only the matching detail entries plus the list.
var Entities = []string{
	"templates", "template",
	"applications", "application",
	"platforms", "platform",
	"articles", "article",
	"users", "user",
}

// EntityTTL returns the configured TTL for an entity, falling back to the
// default when the entity has no explicit tuning.
func (c CacheConfig) EntityTTL(entity string) time.Duration {
	if ec, ok := c.Entities[entity]; ok && ec.TTL > 0 {
		return ec.TTL
	}
	return c.DefaultTTL
}

// EntityCapacity returns the configured capacity for an entity.
func (c CacheConfig) EntityCapacity(entity string) int {
	if ec, ok := c.Entities[entity]; ok && ec.Capacity > 0 {
		return ec.Capacity
	}
	return c.DefaultCapacity
}
