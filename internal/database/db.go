package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"

	"summit-ticketing/internal/config"
	"summit-ticketing/internal/logger"
)

// Connect opens the shared connection pool. The pool is built once at startup
// and handed to every store as an explicit dependency.
func Connect(ctx context.Context, cfg config.DatabaseConfig, log *logger.Logger) (*bun.DB, error) {
	log.LogDatabase("CONNECT", "postgres", "Opening connection pool")

	connector := pgdriver.NewConnector(
		pgdriver.WithDSN(cfg.DSN),
		pgdriver.WithTimeout(cfg.DialTimeout),
	)
	sqldb := sql.OpenDB(connector)
	sqldb.SetMaxOpenConns(cfg.MaxOpenConns)
	sqldb.SetMaxIdleConns(cfg.MaxIdleConns)
	sqldb.SetConnMaxLifetime(cfg.MaxLifetime)

	if err := sqldb.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db := bun.NewDB(sqldb, pgdialect.New())
	log.LogDatabase("SUCCESS", "postgres", fmt.Sprintf("Pool ready (max %d connections)", cfg.MaxOpenConns))
	return db, nil
}
