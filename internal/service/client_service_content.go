package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/cyber-aware/internal/logger"
	"github.com/MKhiriev/cyber-aware/internal/store"
	"github.com/MKhiriev/cyber-aware/models"
)

type clientContentService struct {
	content store.ContentRepository
	tokens  TokenSource
	logger  *logger.Logger
}

// NewClientContentService returns the content service acting with the
// token of tokens. Wrap it with [NewContentValidationService] to reject
// bad input before it leaves the client.
func NewClientContentService(content store.ContentRepository, tokens TokenSource, logger *logger.Logger) ContentService {
	return &clientContentService{content: content, tokens: tokens, logger: logger}
}

func (c *clientContentService) ProbeSchema(ctx context.Context) error {
	if err := c.content.Probe(ctx, c.tokens.AccessToken()); err != nil {
		return fmt.Errorf("probe schema: %w", err)
	}
	return nil
}

func (c *clientContentService) ListUpdates(ctx context.Context) ([]models.SecurityUpdate, error) {
	updates, err := c.content.ListUpdates(ctx, c.tokens.AccessToken())
	if err != nil {
		return nil, fmt.Errorf("list updates: %w", err)
	}
	return updates, nil
}

func (c *clientContentService) CreateUpdate(ctx context.Context, fields models.UpdateFields, authorID string) (models.SecurityUpdate, error) {
	created, err := c.content.CreateUpdate(ctx, c.tokens.AccessToken(), models.SecurityUpdate{
		Title:     fields.Title,
		Summary:   fields.Summary,
		Type:      fields.Type,
		Severity:  fields.Severity,
		CreatedBy: authorID,
	})
	if err != nil {
		return models.SecurityUpdate{}, fmt.Errorf("create update: %w", err)
	}

	c.logger.Info().Str("update_id", created.ID).Str("created_by", authorID).Msg("security update created")
	return created, nil
}

func (c *clientContentService) UpdateUpdate(ctx context.Context, id string, fields models.UpdateFields) (models.SecurityUpdate, error) {
	updated, err := c.content.UpdateUpdate(ctx, c.tokens.AccessToken(), id, fields)
	if err != nil {
		return models.SecurityUpdate{}, fmt.Errorf("update update %s: %w", id, err)
	}

	c.logger.Info().Str("update_id", id).Msg("security update edited")
	return updated, nil
}

func (c *clientContentService) DeleteUpdate(ctx context.Context, id string) error {
	if err := c.content.DeleteUpdate(ctx, c.tokens.AccessToken(), id); err != nil {
		return fmt.Errorf("delete update %s: %w", id, err)
	}

	c.logger.Info().Str("update_id", id).Msg("security update deleted")
	return nil
}

func (c *clientContentService) AppendChatRecord(ctx context.Context, userID, question, answer string) error {
	err := c.content.InsertChatRecord(ctx, c.tokens.AccessToken(), models.ChatHistoryRecord{
		UserID:   userID,
		Question: question,
		Answer:   answer,
	})
	if err != nil {
		return fmt.Errorf("append chat record: %w", err)
	}
	return nil
}
