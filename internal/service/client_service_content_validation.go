package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/cyber-aware/internal/validators"
	"github.com/MKhiriev/cyber-aware/models"
)

// ContentValidationService validates arguments and forwards valid calls to
// the wrapped service.
type ContentValidationService struct {
	inner     ContentService
	validator validators.Validator
}

func NewContentValidationService() ContentServiceWrapper {
	return &ContentValidationService{
		validator: validators.NewContentValidator(),
	}
}

func (v *ContentValidationService) ProbeSchema(ctx context.Context) error {
	return v.inner.ProbeSchema(ctx)
}

func (v *ContentValidationService) ListUpdates(ctx context.Context) ([]models.SecurityUpdate, error) {
	return v.inner.ListUpdates(ctx)
}

func (v *ContentValidationService) CreateUpdate(ctx context.Context, fields models.UpdateFields, authorID string) (models.SecurityUpdate, error) {
	update := models.SecurityUpdate{
		Title:     fields.Title,
		Summary:   fields.Summary,
		Type:      fields.Type,
		Severity:  fields.Severity,
		CreatedBy: authorID,
	}
	if err := v.validator.Validate(ctx, update,
		validators.FieldTitle,
		validators.FieldSummary,
		validators.FieldCategory,
		validators.FieldSeverity,
		validators.FieldCreatedBy,
	); err != nil {
		return models.SecurityUpdate{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	return v.inner.CreateUpdate(ctx, fields, authorID)
}

func (v *ContentValidationService) UpdateUpdate(ctx context.Context, id string, fields models.UpdateFields) (models.SecurityUpdate, error) {
	if id == "" {
		return models.SecurityUpdate{}, fmt.Errorf("%w: %v", ErrInvalidInput, validators.ErrInvalidID)
	}
	if err := v.validator.Validate(ctx, fields); err != nil {
		return models.SecurityUpdate{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	return v.inner.UpdateUpdate(ctx, id, fields)
}

func (v *ContentValidationService) DeleteUpdate(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("%w: %v", ErrInvalidInput, validators.ErrInvalidID)
	}
	return v.inner.DeleteUpdate(ctx, id)
}

func (v *ContentValidationService) AppendChatRecord(ctx context.Context, userID, question, answer string) error {
	record := models.ChatHistoryRecord{UserID: userID, Question: question, Answer: answer}
	if err := v.validator.Validate(ctx, record); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return v.inner.AppendChatRecord(ctx, userID, question, answer)
}

func (v *ContentValidationService) Wrap(inner ContentService) ContentService {
	v.inner = inner
	return v
}
