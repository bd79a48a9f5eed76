package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/avoronin/credvault/internal/config"
	"github.com/avoronin/credvault/internal/logger"
)

// Storages aggregates every repository of the application behind one
// constructor so callers wire persistence in a single step.
type Storages struct {
	CredentialStorage CredentialStorage
}

// NewStorages connects to the configured database engine, applies pending
// migrations, and returns the repository set. The driver is taken from the
// config; when unset it is guessed from the DSN shape (postgres URI vs.
// local file path).
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	var (
		db  *DB
		err error
	)

	switch resolveDriver(cfg.DB) {
	case "sqlite3":
		db, err = NewConnectSQLite(ctx, cfg.DB, log)
	default:
		db, err = NewConnectPostgres(ctx, cfg.DB, log)
	}
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	if migrateErr := db.Migrate(); migrateErr != nil {
		return nil, fmt.Errorf("apply migrations: %w", migrateErr)
	}

	return &Storages{
		CredentialStorage: NewCredentialRepository(db, log),
	}, nil
}

func resolveDriver(cfg config.DB) string {
	if cfg.Driver != "" {
		return cfg.Driver
	}

	if strings.HasPrefix(cfg.DSN, "postgres://") || strings.HasPrefix(cfg.DSN, "postgresql://") {
		return "pgx"
	}

	return "sqlite3"
}
