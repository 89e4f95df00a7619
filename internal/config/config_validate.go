// Curator - Catalog Admin Dashboard and Content API
// Copyright 2026 Curator Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/curatorhq/curator

package config

import (
	"errors"
	"fmt"
)

// Validation errors.
var (
	ErrInvalidPort     = errors.New("server port must be between 1 and 65535")
	ErrInvalidTTL      = errors.New("cache default_ttl must be positive")
	ErrInvalidCapacity = errors.New("cache default_capacity must be positive")
	ErrInvalidPolicy   = errors.New("rate limit policy must have positive limit and window")
	ErrMissingDBPath   = errors.New("database path must not be empty")
)

// Validate checks the configuration for invalid values. It is called by
// Load after all sources are merged.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("%w: got %d", ErrInvalidPort, c.Server.Port)
	}

	if c.Database.Path == "" {
		return ErrMissingDBPath
	}

	if c.Cache.DefaultTTL <= 0 {
		return ErrInvalidTTL
	}
	if c.Cache.DefaultCapacity <= 0 {
		return ErrInvalidCapacity
	}

	for class, policy := range c.RateLimit.Classes {
		if policy.Limit <= 0 || policy.Window <= 0 {
			return fmt.Errorf("%w: class %q", ErrInvalidPolicy, class)
		}
	}

	return nil
}
