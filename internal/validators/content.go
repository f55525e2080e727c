package validators

import (
	"context"
	"strings"

	"github.com/MKhiriev/cyber-aware/models"
)

// Field names accepted by the content validator.
const (
	FieldID        = "id"
	FieldTitle     = "title"
	FieldSummary   = "summary"
	FieldCategory  = "type"
	FieldSeverity  = "severity"
	FieldCreatedBy = "created_by"
	FieldUserID    = "user_id"
	FieldQuestion  = "question"
	FieldAnswer    = "answer"
)

type ContentValidator struct{}

// NewContentValidator validates security updates, their editable fields and
// chat history records before they are sent to the backend.
func NewContentValidator() Validator {
	return &ContentValidator{}
}

func (v *ContentValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.UpdateFields:
		return v.validateUpdateFields(ctx, value, fields...)
	case *models.UpdateFields:
		return v.validateUpdateFields(ctx, *value, fields...)

	case models.SecurityUpdate:
		return v.validateSecurityUpdate(ctx, value, fields...)
	case *models.SecurityUpdate:
		return v.validateSecurityUpdate(ctx, *value, fields...)

	case models.ChatHistoryRecord:
		return v.validateChatRecord(ctx, value, fields...)
	case *models.ChatHistoryRecord:
		return v.validateChatRecord(ctx, *value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *ContentValidator) validateUpdateFields(_ context.Context, u models.UpdateFields, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldTitle, FieldSummary, FieldCategory, FieldSeverity}
	}

	for _, f := range fields {
		switch f {
		case FieldTitle:
			if strings.TrimSpace(u.Title) == "" {
				return ErrEmptyTitle
			}
		case FieldSummary:
			if strings.TrimSpace(u.Summary) == "" {
				return ErrEmptySummary
			}
		case FieldCategory:
			if _, err := models.ParseCategory(string(u.Type)); err != nil {
				return ErrInvalidCategory
			}
		case FieldSeverity:
			if _, err := models.ParseSeverity(string(u.Severity)); err != nil {
				return ErrInvalidSeverity
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *ContentValidator) validateSecurityUpdate(ctx context.Context, u models.SecurityUpdate, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldTitle, FieldSummary, FieldCategory, FieldSeverity}
	}

	for _, f := range fields {
		switch f {
		case FieldID:
			if strings.TrimSpace(u.ID) == "" {
				return ErrInvalidID
			}
		case FieldCreatedBy:
			if strings.TrimSpace(u.CreatedBy) == "" {
				return ErrInvalidID
			}
		default:
			if err := v.validateUpdateFields(ctx, u.Fields(), f); err != nil {
				return err
			}
		}
	}

	return nil
}

func (v *ContentValidator) validateChatRecord(_ context.Context, r models.ChatHistoryRecord, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldUserID, FieldQuestion, FieldAnswer}
	}

	for _, f := range fields {
		switch f {
		case FieldUserID:
			if strings.TrimSpace(r.UserID) == "" {
				return ErrInvalidID
			}
		case FieldQuestion:
			if strings.TrimSpace(r.Question) == "" {
				return ErrEmptyQuestion
			}
		case FieldAnswer:
			if strings.TrimSpace(r.Answer) == "" {
				return ErrEmptyAnswer
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}
