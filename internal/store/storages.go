package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/cyber-aware/internal/config"
	"github.com/MKhiriev/cyber-aware/internal/logger"
)

// ClientStorages groups every repository the client services use.
type ClientStorages struct {
	// SessionRepository keeps the current session in the local SQLite file.
	SessionRepository SessionRepository

	// ProfileRepository reads and creates rows of the backend users table.
	ProfileRepository ProfileRepository

	// ContentRepository reads and writes security updates and chat history.
	ContentRepository ContentRepository

	local *DB
}

// NewClientStorages initialises the client storage layer:
//  1. Opens the local SQLite database at cfg.Storage.DB.DSN, creating the
//     file if it does not yet exist.
//  2. Runs pending local migrations via [DB.MigrateLocal].
//  3. Prepares the PostgREST access to the backend project.
//
// Returns an error if any step fails.
func NewClientStorages(ctx context.Context, cfg *config.ClientConfig, logger *logger.Logger) (*ClientStorages, error) {
	logger.Info().Msg("creating new storages...")

	db, err := NewConnectSQLite(ctx, cfg.Storage.DB, logger)
	if err != nil {
		return nil, fmt.Errorf("sqlite connection error: %w", err)
	}

	if err = db.MigrateLocal(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	remote, err := NewRemoteDB(cfg.Supabase, cfg.Adapter, logger)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("remote store: %w", err)
	}

	return &ClientStorages{
		SessionRepository: NewSessionRepository(db, logger),
		ProfileRepository: NewProfileRepository(remote, logger),
		ContentRepository: NewContentRepository(remote, logger),
		local:             db,
	}, nil
}

// Close releases the local database.
func (s *ClientStorages) Close() error {
	if s.local == nil {
		return nil
	}
	return s.local.Close()
}
