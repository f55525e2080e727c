package store

import (
	"context"
	"fmt"
	"sort"

	"github.com/MKhiriev/cyber-aware/internal/logger"
	"github.com/MKhiriev/cyber-aware/models"
	postgrest "github.com/supabase-community/postgrest-go"
)

const (
	updatesTable = "security_updates"
	chatTable    = "chat_history"
)

type updateRow struct {
	ID        string `json:"id,omitempty"`
	Title     string `json:"title"`
	Summary   string `json:"summary"`
	Type      string `json:"type"`
	Severity  string `json:"severity"`
	CreatedBy string `json:"created_by,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
}

type updateFieldsRow struct {
	Title    string `json:"title"`
	Summary  string `json:"summary"`
	Type     string `json:"type"`
	Severity string `json:"severity"`
}

type chatRow struct {
	UserID    string `json:"user_id"`
	Question  string `json:"question"`
	Answer    string `json:"answer"`
	Timestamp string `json:"timestamp,omitempty"`
}

type contentRepository struct {
	db     *RemoteDB
	logger *logger.Logger
}

// NewContentRepository constructs a [ContentRepository] over the
// security_updates and chat_history tables of the backend.
func NewContentRepository(db *RemoteDB, logger *logger.Logger) ContentRepository {
	logger.Debug().Msg("creating content repository")
	return &contentRepository{db: db, logger: logger}
}

// Probe implements [ContentRepository]. It reads at most one id from the
// users table; any schema-missing signal becomes [ErrSchemaMissing].
func (r *contentRepository) Probe(ctx context.Context, accessToken string) error {
	var rows []struct {
		ID string `json:"id"`
	}
	err := r.db.Execute(ctx, accessToken, profilesTable, func(q *postgrest.QueryBuilder) error {
		_, execErr := q.Select("id", "", false).Limit(1, "").ExecuteTo(&rows)
		return execErr
	})
	if err != nil {
		r.logger.Warn().Err(err).Str("func", "*contentRepository.Probe").Msg("schema probe failed")
		return classifyRemoteError(err)
	}

	return nil
}

// ListUpdates implements [ContentRepository]. Updates are ordered by
// created_at, newest first. Rows that do not map onto the domain types are
// left out and reported in a single warning with their count and ids.
func (r *contentRepository) ListUpdates(ctx context.Context, accessToken string) ([]models.SecurityUpdate, error) {
	log := logger.FromContext(ctx)

	var rows []updateRow
	err := r.db.Execute(ctx, accessToken, updatesTable, func(q *postgrest.QueryBuilder) error {
		_, execErr := q.Select("*", "", false).
			Order("created_at", &postgrest.OrderOpts{Ascending: false}).
			ExecuteTo(&rows)
		return execErr
	})
	if err != nil {
		log.Err(err).Str("func", "*contentRepository.ListUpdates").Msg("error listing security updates")
		return nil, classifyRemoteError(err)
	}

	updates := make([]models.SecurityUpdate, 0, len(rows))
	var skipped []string
	for _, row := range rows {
		update, convErr := row.toModel()
		if convErr != nil {
			// one malformed row must not hide the rest of the feed
			log.Debug().Err(convErr).Str("update_id", row.ID).Msg("malformed security update")
			skipped = append(skipped, row.ID)
			continue
		}
		updates = append(updates, update)
	}
	if len(skipped) > 0 {
		log.Warn().
			Int("skipped", len(skipped)).
			Int("listed", len(updates)).
			Strs("update_ids", skipped).
			Msg("security updates with unknown category, severity or timestamp left out of the feed")
	}

	sort.SliceStable(updates, func(i, j int) bool {
		return updates[i].CreatedAt.After(updates[j].CreatedAt)
	})

	return updates, nil
}

// CreateUpdate implements [ContentRepository].
func (r *contentRepository) CreateUpdate(ctx context.Context, accessToken string, update models.SecurityUpdate) (models.SecurityUpdate, error) {
	log := logger.FromContext(ctx)

	payload := updateRow{
		Title:     update.Title,
		Summary:   update.Summary,
		Type:      string(update.Type),
		Severity:  string(update.Severity),
		CreatedBy: update.CreatedBy,
	}

	var rows []updateRow
	err := r.db.Execute(ctx, accessToken, updatesTable, func(q *postgrest.QueryBuilder) error {
		_, execErr := q.Insert(payload, false, "", "representation", "").ExecuteTo(&rows)
		return execErr
	})
	if err != nil {
		log.Err(err).Str("func", "*contentRepository.CreateUpdate").Msg("error inserting security update")
		return models.SecurityUpdate{}, classifyRemoteError(err)
	}
	if len(rows) == 0 {
		return models.SecurityUpdate{}, ErrEmptyRepresentation
	}

	return rows[0].toModel()
}

// UpdateUpdate implements [ContentRepository]. Returns [ErrUpdateNotFound]
// if no row visible to the caller has the given id.
func (r *contentRepository) UpdateUpdate(ctx context.Context, accessToken, id string, fields models.UpdateFields) (models.SecurityUpdate, error) {
	log := logger.FromContext(ctx)

	payload := updateFieldsRow{
		Title:    fields.Title,
		Summary:  fields.Summary,
		Type:     string(fields.Type),
		Severity: string(fields.Severity),
	}

	var rows []updateRow
	err := r.db.Execute(ctx, accessToken, updatesTable, func(q *postgrest.QueryBuilder) error {
		_, execErr := q.Update(payload, "representation", "").Eq("id", id).ExecuteTo(&rows)
		return execErr
	})
	if err != nil {
		log.Err(err).Str("func", "*contentRepository.UpdateUpdate").Str("update_id", id).Msg("error updating security update")
		return models.SecurityUpdate{}, classifyRemoteError(err)
	}
	if len(rows) == 0 {
		return models.SecurityUpdate{}, fmt.Errorf("%w: %s", ErrUpdateNotFound, id)
	}

	return rows[0].toModel()
}

// DeleteUpdate implements [ContentRepository]. Returns [ErrUpdateNotFound]
// if no row visible to the caller has the given id.
func (r *contentRepository) DeleteUpdate(ctx context.Context, accessToken, id string) error {
	log := logger.FromContext(ctx)

	var rows []updateRow
	err := r.db.Execute(ctx, accessToken, updatesTable, func(q *postgrest.QueryBuilder) error {
		_, execErr := q.Delete("representation", "").Eq("id", id).ExecuteTo(&rows)
		return execErr
	})
	if err != nil {
		log.Err(err).Str("func", "*contentRepository.DeleteUpdate").Str("update_id", id).Msg("error deleting security update")
		return classifyRemoteError(err)
	}
	if len(rows) == 0 {
		return fmt.Errorf("%w: %s", ErrUpdateNotFound, id)
	}

	return nil
}

// InsertChatRecord implements [ContentRepository].
func (r *contentRepository) InsertChatRecord(ctx context.Context, accessToken string, record models.ChatHistoryRecord) error {
	log := logger.FromContext(ctx)

	payload := chatRow{UserID: record.UserID, Question: record.Question, Answer: record.Answer}
	if !record.Timestamp.IsZero() {
		payload.Timestamp = record.Timestamp.UTC().Format(timestampLayout)
	}

	err := r.db.Execute(ctx, accessToken, chatTable, func(q *postgrest.QueryBuilder) error {
		_, _, execErr := q.Insert(payload, false, "", "minimal", "").Execute()
		return execErr
	})
	if err != nil {
		log.Err(err).Str("func", "*contentRepository.InsertChatRecord").Str("user_id", record.UserID).Msg("error inserting chat record")
		return classifyRemoteError(err)
	}

	return nil
}

func (u updateRow) toModel() (models.SecurityUpdate, error) {
	category, err := models.ParseCategory(u.Type)
	if err != nil {
		return models.SecurityUpdate{}, err
	}
	severity, err := models.ParseSeverity(u.Severity)
	if err != nil {
		return models.SecurityUpdate{}, err
	}
	createdAt, err := parseTimestamp(u.CreatedAt)
	if err != nil {
		return models.SecurityUpdate{}, err
	}

	return models.SecurityUpdate{
		ID:        u.ID,
		Title:     u.Title,
		Summary:   u.Summary,
		Type:      category,
		Severity:  severity,
		CreatedBy: u.CreatedBy,
		CreatedAt: createdAt,
	}, nil
}
