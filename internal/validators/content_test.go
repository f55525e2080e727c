package validators

import (
	"context"
	"testing"

	"github.com/MKhiriev/cyber-aware/models"
	"github.com/stretchr/testify/assert"
)

func validFields() models.UpdateFields {
	return models.UpdateFields{
		Title:    "Patch now",
		Summary:  "A critical VPN flaw is exploited in the wild.",
		Type:     models.CategoryNetwork,
		Severity: models.SeverityCritical,
	}
}

func TestContentValidator_UpdateFields(t *testing.T) {
	v := NewContentValidator()
	ctx := context.Background()

	assert.NoError(t, v.Validate(ctx, validFields()))

	tests := []struct {
		name    string
		mutate  func(*models.UpdateFields)
		wantErr error
	}{
		{name: "blank title", mutate: func(f *models.UpdateFields) { f.Title = "   " }, wantErr: ErrEmptyTitle},
		{name: "empty summary", mutate: func(f *models.UpdateFields) { f.Summary = "" }, wantErr: ErrEmptySummary},
		{name: "unknown category", mutate: func(f *models.UpdateFields) { f.Type = "Gardening" }, wantErr: ErrInvalidCategory},
		{name: "unknown severity", mutate: func(f *models.UpdateFields) { f.Severity = "Severe" }, wantErr: ErrInvalidSeverity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields := validFields()
			tt.mutate(&fields)
			assert.ErrorIs(t, v.Validate(ctx, &fields), tt.wantErr)
		})
	}
}

func TestContentValidator_SecurityUpdate(t *testing.T) {
	v := NewContentValidator()
	ctx := context.Background()

	fields := validFields()
	update := models.SecurityUpdate{
		Title:    fields.Title,
		Summary:  fields.Summary,
		Type:     fields.Type,
		Severity: fields.Severity,
	}

	assert.NoError(t, v.Validate(ctx, update))
	assert.ErrorIs(t, v.Validate(ctx, update, FieldCreatedBy), ErrInvalidID)
	assert.ErrorIs(t, v.Validate(ctx, update, FieldID), ErrInvalidID)

	update.CreatedBy = "admin-1"
	assert.NoError(t, v.Validate(ctx, update, FieldCreatedBy, FieldTitle, FieldSeverity))

	update.Title = ""
	assert.ErrorIs(t, v.Validate(ctx, update), ErrEmptyTitle)
	assert.ErrorIs(t, v.Validate(ctx, update, "bogus"), ErrUnknownField)
}

func TestContentValidator_ChatRecord(t *testing.T) {
	v := NewContentValidator()
	ctx := context.Background()

	record := models.ChatHistoryRecord{UserID: "u-1", Question: "What is MFA?", Answer: "A second factor."}
	assert.NoError(t, v.Validate(ctx, record))

	record.Answer = ""
	assert.ErrorIs(t, v.Validate(ctx, &record), ErrEmptyAnswer)

	record.UserID = ""
	assert.ErrorIs(t, v.Validate(ctx, record), ErrInvalidID)
}

func TestContentValidator_UnsupportedType(t *testing.T) {
	assert.ErrorIs(t, NewContentValidator().Validate(context.Background(), 42), ErrUnsupportedType)
}
