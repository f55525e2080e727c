package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/cyber-aware/internal/logger"
	"github.com/MKhiriev/cyber-aware/models"
)

type sessionRepository struct {
	*DB
	now    func() time.Time
	logger *logger.Logger
}

// NewSessionRepository constructs the SQLite-backed [SessionRepository].
func NewSessionRepository(db *DB, logger *logger.Logger) SessionRepository {
	return &sessionRepository{
		DB:     db,
		now:    time.Now,
		logger: logger,
	}
}

// SaveSession implements [SessionRepository].
func (s *sessionRepository) SaveSession(ctx context.Context, session models.Session) error {
	log := logger.FromContext(ctx)

	query, args, err := buildSaveSessionQuery(session, s.now())
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = s.DB.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).
			Str("func", "sessionRepository.SaveSession").
			Str("user_id", session.User.ID).
			Msg("failed to upsert session")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// LoadSession implements [SessionRepository].
func (s *sessionRepository) LoadSession(ctx context.Context) (models.Session, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildLoadSessionQuery()
	if err != nil {
		return models.Session{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var (
		session   models.Session
		expiresAt int64
	)
	err = s.DB.QueryRowContext(ctx, query, args...).Scan(
		&session.AccessToken,
		&session.RefreshToken,
		&expiresAt,
		&session.User.ID,
		&session.User.Email,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Session{}, ErrLocalSessionNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "sessionRepository.LoadSession").Msg("failed to read session row")
		return models.Session{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	if expiresAt > 0 {
		session.ExpiresAt = time.Unix(expiresAt, 0)
	}

	return session, nil
}

// ClearSession implements [SessionRepository].
func (s *sessionRepository) ClearSession(ctx context.Context) error {
	log := logger.FromContext(ctx)

	query, args, err := buildClearSessionQuery()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = s.DB.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).Str("func", "sessionRepository.ClearSession").Msg("failed to delete session")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}
