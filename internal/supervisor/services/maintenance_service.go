// Curator - Catalog Admin Dashboard and Content API
// Copyright 2026 Curator Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/curatorhq/curator

package services

import (
	"context"
	"time"

	"github.com/curatorhq/curator/internal/logging"
)

// Sweeper matches cache.Registry's expired-entry sweep.
type Sweeper interface {
	SweepExpired() int
}

// CacheSweeperService periodically removes expired entries from every
// cache store. Expired entries are already invisible to readers; the
// sweep reclaims their memory.
type CacheSweeperService struct {
	sweeper  Sweeper
	interval time.Duration
	name     string
}

// NewCacheSweeperService creates the sweeper service.
func NewCacheSweeperService(sweeper Sweeper, interval time.Duration) *CacheSweeperService {
	if interval <= 0 {
		interval = time.Minute
	}
	return &CacheSweeperService{
		sweeper:  sweeper,
		interval: interval,
		name:     "cache-sweeper",
	}
}

// Serve implements suture.Service.
func (s *CacheSweeperService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if removed := s.sweeper.SweepExpired(); removed > 0 {
				logging.Debug().
					Str("component", "cache-sweeper").
					Int("removed", removed).
					Msg("Swept expired cache entries")
			}
		}
	}
}

// String implements fmt.Stringer for suture's event log.
func (s *CacheSweeperService) String() string {
	return s.name
}

// Janitor matches ratelimit.Limiter's ended-window cleanup.
type Janitor interface {
	CleanupExpired() int
}

// LimiterJanitorService periodically drops rate limit windows that have
// ended, keeping the identity map from accumulating one-shot clients.
type LimiterJanitorService struct {
	janitor  Janitor
	interval time.Duration
	name     string
}

// NewLimiterJanitorService creates the janitor service.
func NewLimiterJanitorService(janitor Janitor, interval time.Duration) *LimiterJanitorService {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &LimiterJanitorService{
		janitor:  janitor,
		interval: interval,
		name:     "limiter-janitor",
	}
}

// Serve implements suture.Service.
func (s *LimiterJanitorService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if removed := s.janitor.CleanupExpired(); removed > 0 {
				logging.Debug().
					Str("component", "limiter-janitor").
					Int("removed", removed).
					Msg("Removed ended rate limit windows")
			}
		}
	}
}

// String implements fmt.Stringer for suture's event log.
func (s *LimiterJanitorService) String() string {
	return s.name
}
