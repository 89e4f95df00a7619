// Curator - Catalog Admin Dashboard and Content API
// Copyright 2026 Curator Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/curatorhq/curator

package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/curatorhq/curator/internal/config"
	"github.com/curatorhq/curator/internal/logging"
	"github.com/curatorhq/curator/internal/metrics"
)

// DB wraps the DuckDB connection and provides catalog data access.
//
// All queries go through a circuit breaker: when the database is
// repeatedly failing, callers get fast rejections instead of piling up
// on a broken connection.
type DB struct {
	conn *sql.DB
	cb   *gobreaker.CircuitBreaker[any]
}

// Open opens (or creates) the catalog database and initializes the
// schema. An empty path opens an in-memory database, used in tests.
func Open(cfg config.DatabaseConfig) (*DB, error) {
	connStr := ""
	if cfg.Path != "" {
		dbDir := filepath.Dir(cfg.Path)
		if dbDir != "" && dbDir != "." {
			if err := os.MkdirAll(dbDir, 0o750); err != nil {
				return nil, fmt.Errorf("failed to create database directory %s: %w", dbDir, err)
			}
		}

		threads := cfg.Threads
		if threads <= 0 {
			threads = runtime.NumCPU()
		}
		maxMemory := cfg.MaxMemory
		if maxMemory == "" {
			maxMemory = "512MB"
		}
		connStr = fmt.Sprintf("%s?access_mode=read_write&threads=%d&max_memory=%s",
			cfg.Path, threads, maxMemory)
	}

	conn, err := sql.Open("duckdb", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db := &DB{
		conn: conn,
		cb:   newBreaker(),
	}

	if err := db.createSchema(context.Background()); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	logging.Info().Str("path", cfg.Path).Msg("Catalog database ready")
	return db, nil
}

// newBreaker builds the circuit breaker guarding catalog queries.
// Opens after a 60% failure rate with at least 10 requests; recovers
// through half-open after 30 seconds.
func newBreaker() *gobreaker.CircuitBreaker[any] {
	const cbName = "catalog-db"
	metrics.CircuitBreakerState.WithLabelValues(cbName).Set(0)

	return gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:        cbName,
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 10 {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= 0.6
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("Circuit breaker state transition")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, from.String(), to.String()).Inc()
		},
	})
}

func stateToFloat(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	default:
		return 2
	}
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// Ping verifies database connectivity, for health checks.
func (db *DB) Ping(ctx context.Context) error {
	return db.conn.PingContext(ctx)
}

// queryRows runs a multi-row query through the breaker with metrics.
func (db *DB) queryRows(ctx context.Context, op, table, query string, args ...interface{}) (*sql.Rows, error) {
	start := time.Now()
	result, err := db.cb.Execute(func() (any, error) {
		return db.conn.QueryContext(ctx, query, args...) //nolint:sqlclosecheck // closed by caller
	})
	metrics.RecordDBQuery(op, table, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return result.(*sql.Rows), nil
}

// queryRow runs a single-row query through the breaker with metrics.
// Row errors surface on Scan, so only breaker rejections are counted here.
func (db *DB) queryRow(ctx context.Context, op, table, query string, args ...interface{}) (*sql.Row, error) {
	start := time.Now()
	result, err := db.cb.Execute(func() (any, error) {
		return db.conn.QueryRowContext(ctx, query, args...), nil
	})
	metrics.RecordDBQuery(op, table, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return result.(*sql.Row), nil
}

// exec runs a statement through the breaker with metrics.
func (db *DB) exec(ctx context.Context, op, table, query string, args ...interface{}) (sql.Result, error) {
	start := time.Now()
	result, err := db.cb.Execute(func() (any, error) {
		return db.conn.ExecContext(ctx, query, args...)
	})
	metrics.RecordDBQuery(op, table, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return result.(sql.Result), nil
}
