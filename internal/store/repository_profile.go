package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/cyber-aware/internal/logger"
	"github.com/MKhiriev/cyber-aware/models"
	postgrest "github.com/supabase-community/postgrest-go"
)

const profilesTable = "users"

// profileRow is the wire shape of a users row. Role stays a plain string
// until it has been validated.
type profileRow struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	CreatedAt string `json:"created_at,omitempty"`
}

type profileRepository struct {
	db     *RemoteDB
	logger *logger.Logger
}

// NewProfileRepository constructs a [ProfileRepository] over the users
// table of the backend.
func NewProfileRepository(db *RemoteDB, logger *logger.Logger) ProfileRepository {
	logger.Debug().Msg("creating profile repository")
	return &profileRepository{db: db, logger: logger}
}

// FindProfile implements [ProfileRepository].
func (r *profileRepository) FindProfile(ctx context.Context, accessToken, id string) (models.UserProfile, error) {
	log := logger.FromContext(ctx)

	var rows []profileRow
	err := r.db.Execute(ctx, accessToken, profilesTable, func(q *postgrest.QueryBuilder) error {
		_, execErr := q.Select("*", "", false).Eq("id", id).Limit(1, "").ExecuteTo(&rows)
		return execErr
	})
	if err != nil {
		log.Err(err).Str("func", "*profileRepository.FindProfile").Str("user_id", id).Msg("error selecting profile")
		return models.UserProfile{}, classifyRemoteError(err)
	}
	if len(rows) == 0 {
		return models.UserProfile{}, ErrProfileNotFound
	}

	return rows[0].toModel()
}

// InsertProfile implements [ProfileRepository].
func (r *profileRepository) InsertProfile(ctx context.Context, accessToken string, profile models.UserProfile) (models.UserProfile, error) {
	log := logger.FromContext(ctx)

	payload := profileRow{ID: profile.ID, Email: profile.Email, Role: string(profile.Role)}

	var rows []profileRow
	err := r.db.Execute(ctx, accessToken, profilesTable, func(q *postgrest.QueryBuilder) error {
		_, execErr := q.Insert(payload, false, "", "representation", "").ExecuteTo(&rows)
		return execErr
	})
	if err != nil {
		log.Err(err).Str("func", "*profileRepository.InsertProfile").Str("user_id", profile.ID).Msg("error inserting profile")
		return models.UserProfile{}, classifyRemoteError(err)
	}
	if len(rows) == 0 {
		return models.UserProfile{}, ErrEmptyRepresentation
	}

	return rows[0].toModel()
}

func (p profileRow) toModel() (models.UserProfile, error) {
	role, err := models.ParseRole(p.Role)
	if err != nil {
		return models.UserProfile{}, fmt.Errorf("profile %s: %w", p.ID, err)
	}

	createdAt, err := parseTimestamp(p.CreatedAt)
	if err != nil {
		return models.UserProfile{}, fmt.Errorf("profile %s created_at: %w", p.ID, err)
	}

	return models.UserProfile{
		ID:        p.ID,
		Email:     p.Email,
		Role:      role,
		CreatedAt: createdAt,
	}, nil
}
