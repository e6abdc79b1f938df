// Package storage opens the Credential Store selected by configuration and
// prepares its schema.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/siteauth/internal/filex"
	"github.com/dmitrijs2005/siteauth/internal/logging"
	"github.com/dmitrijs2005/siteauth/internal/server/config"
	"github.com/dmitrijs2005/siteauth/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/siteauth/internal/server/repositories/users"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// sqlDriverNames maps configured drivers to registered database/sql drivers.
var sqlDriverNames = map[string]string{
	config.DriverPostgres: "pgx",
	config.DriverSQLite:   "sqlite",
}

// Open connects to the configured backend, runs migrations and returns the
// users repository together with the handle that must be closed on shutdown.
func Open(ctx context.Context, cfg *config.Config, logger logging.Logger) (users.Repository, io.Closer, error) {
	if cfg.DatabaseDriver == config.DriverMemory {
		logger.Warn(ctx, "using in-memory credential store, data will not survive a restart")
		return users.NewMemoryRepository(), nopCloser{}, nil
	}

	driverName, ok := sqlDriverNames[cfg.DatabaseDriver]
	if !ok {
		return nil, nil, fmt.Errorf("unsupported database driver %q", cfg.DatabaseDriver)
	}

	m, err := repomanager.NewRepositoryManager(cfg.DatabaseDriver)
	if err != nil {
		return nil, nil, err
	}

	if cfg.DatabaseDriver == config.DriverSQLite {
		if path := sqliteFilePath(cfg.DatabaseDSN); path != "" {
			if err := filex.EnsureParentDir(path); err != nil {
				return nil, nil, err
			}
		}
	}

	db, err := sql.Open(driverName, cfg.DatabaseDSN)
	if err != nil {
		return nil, nil, fmt.Errorf("open database: %w", err)
	}
	if cfg.DatabaseDriver == config.DriverSQLite {
		// one writer; also keeps ":memory:" databases alive across calls
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("ping database: %w", err)
	}

	if err := m.RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("run migrations: %w", err)
	}

	logger.Info(ctx, "credential store ready", "driver", cfg.DatabaseDriver)
	return m.Users(db), db, nil
}

// sqliteFilePath extracts the on-disk path from a SQLite DSN such as
// "data/auth.db" or "file:data/auth.db?_pragma=busy_timeout(5000)". In-memory
// databases yield "".
func sqliteFilePath(dsn string) string {
	path, query, _ := strings.Cut(strings.TrimPrefix(dsn, "file:"), "?")
	if path == "" || path == ":memory:" || strings.Contains(query, "mode=memory") {
		return ""
	}
	return path
}
