// Package database provides database connection management and utilities.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
)

// Config holds database configuration settings.
type Config struct {
	Driver             string
	ConnectionString   string
	MaxOpenConnections int
	MaxIdleConnections int
	ConnMaxLifetime    time.Duration
	ConnectTimeout     time.Duration
}

// driverName maps the configured driver name to the registered sql driver.
// The configuration uses "postgresql" to match the migrations layout while
// lib/pq registers itself as "postgres".
func driverName(driver string) string {
	if driver == "postgresql" {
		return "postgres"
	}
	return driver
}

// Connect establishes a database connection with the given configuration.
// The initial connectivity check is bounded by cfg.ConnectTimeout so an
// unreachable database cannot stall startup.
func Connect(ctx context.Context, cfg Config) (*sql.DB, error) {
	db, err := sql.Open(driverName(cfg.Driver), cfg.ConnectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConnections)
	db.SetMaxIdleConns(cfg.MaxIdleConnections)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	pingCtx := ctx
	if cfg.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		pingCtx, cancel = context.WithTimeout(ctx, cfg.ConnectTimeout)
		defer cancel()
	}

	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}
