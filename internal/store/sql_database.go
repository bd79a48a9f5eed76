package store

import (
	"database/sql"

	"github.com/avoronin/credvault/internal/logger"
	"github.com/avoronin/credvault/migrations"
)

// DB wraps the shared *sql.DB connection with the driver-specific error
// classifier and the fallback logger. Both the PostgreSQL and the SQLite
// connectors produce this type; the repository works against it without
// knowing which engine is behind.
type DB struct {
	*sql.DB
	dialect            string
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

// Migrate applies the embedded goose migrations for the DB's dialect.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB, db.dialect)
}

// isRetryable asks the driver-specific classifier whether a failed operation
// is worth retrying. Repository methods attach the verdict to their error
// logs so operators can tell transient failures from permanent ones.
func (db *DB) isRetryable(err error) bool {
	return db.errorClassificator != nil && db.errorClassificator.Classify(err) == Retryable
}
