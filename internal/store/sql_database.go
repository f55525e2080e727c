package store

import (
	"database/sql"

	"github.com/MKhiriev/cyber-aware/internal/logger"
	"github.com/MKhiriev/cyber-aware/migrations"
)

// DB wraps a *sql.DB opened by [NewConnectSQLite] or [NewConnectPostgres].
type DB struct {
	*sql.DB
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

// ErrorClassificator decides whether a failed database operation may be
// retried.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}

// MigrateLocal applies the local session store schema.
func (db *DB) MigrateLocal() error {
	return migrations.MigrateLocal(db.DB)
}

// MigrateRemote applies the backend provisioning schema.
func (db *DB) MigrateRemote() error {
	return migrations.MigrateRemote(db.DB)
}

// Classify reports whether err may succeed on retry. Connections without a
// classifier never retry.
func (db *DB) Classify(err error) ErrorClassification {
	if db.errorClassificator == nil {
		return NonRetryable
	}
	return db.errorClassificator.Classify(err)
}
