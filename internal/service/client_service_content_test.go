package service

import (
	"context"
	"testing"
	"time"

	"github.com/MKhiriev/cyber-aware/internal/logger"
	"github.com/MKhiriev/cyber-aware/internal/mock"
	"github.com/MKhiriev/cyber-aware/internal/store"
	"github.com/MKhiriev/cyber-aware/internal/validators"
	"github.com/MKhiriev/cyber-aware/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestContentSvc(ctrl *gomock.Controller) (ContentService, *mock.MockContentRepository) {
	repo := mock.NewMockContentRepository(ctrl)
	inner := NewClientContentService(repo, staticToken("token"), logger.Nop())
	return NewContentValidationService().Wrap(inner), repo
}

func testFields() models.UpdateFields {
	return models.UpdateFields{
		Title:    "Phishing wave",
		Summary:  "Fake invoices target finance teams.",
		Type:     models.CategoryPhishing,
		Severity: models.SeverityHigh,
	}
}

func TestContentService_ProbeSchema(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, repo := newTestContentSvc(ctrl)
	ctx := context.Background()

	repo.EXPECT().Probe(ctx, "token").Return(store.ErrSchemaMissing)

	assert.ErrorIs(t, svc.ProbeSchema(ctx), store.ErrSchemaMissing)
}

func TestContentService_DeleteThenRelist(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, repo := newTestContentSvc(ctrl)
	ctx := context.Background()

	base := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	p1 := models.SecurityUpdate{ID: "p1", Title: "one", CreatedAt: base.Add(2 * time.Hour)}
	p3 := models.SecurityUpdate{ID: "p3", Title: "three", CreatedAt: base}

	gomock.InOrder(
		repo.EXPECT().DeleteUpdate(ctx, "token", "p2").Return(nil),
		repo.EXPECT().ListUpdates(ctx, "token").Return([]models.SecurityUpdate{p1, p3}, nil),
	)

	require.NoError(t, svc.DeleteUpdate(ctx, "p2"))

	updates, err := svc.ListUpdates(ctx)
	require.NoError(t, err)
	require.Len(t, updates, 2)
	for _, u := range updates {
		assert.NotEqual(t, "p2", u.ID)
	}
}

func TestContentService_CreateUpdate(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, repo := newTestContentSvc(ctrl)
	ctx := context.Background()

	fields := testFields()
	repo.EXPECT().CreateUpdate(ctx, "token", models.SecurityUpdate{
		Title:     fields.Title,
		Summary:   fields.Summary,
		Type:      fields.Type,
		Severity:  fields.Severity,
		CreatedBy: "admin-1",
	}).Return(models.SecurityUpdate{ID: "new-id", CreatedBy: "admin-1"}, nil)

	created, err := svc.CreateUpdate(ctx, fields, "admin-1")
	require.NoError(t, err)
	assert.Equal(t, "new-id", created.ID)
}

func TestContentService_ValidationRunsFirst(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, _ := newTestContentSvc(ctrl)
	ctx := context.Background()

	empty := testFields()
	empty.Title = " "
	_, err := svc.CreateUpdate(ctx, empty, "admin-1")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.CreateUpdate(ctx, testFields(), "")
	assert.ErrorIs(t, err, ErrInvalidInput)

	bad := testFields()
	bad.Severity = "Extreme"
	_, err = svc.UpdateUpdate(ctx, "p1", bad)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.UpdateUpdate(ctx, "", testFields())
	assert.ErrorIs(t, err, ErrInvalidInput)

	assert.ErrorIs(t, svc.DeleteUpdate(ctx, ""), ErrInvalidInput)
	assert.ErrorIs(t, svc.AppendChatRecord(ctx, "u-1", "What is MFA?", ""), ErrInvalidInput)
}

func TestContentService_UpdateDenied(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, repo := newTestContentSvc(ctrl)
	ctx := context.Background()

	repo.EXPECT().UpdateUpdate(ctx, "token", "p1", testFields()).
		Return(models.SecurityUpdate{}, store.ErrAuthorizationDenied)

	_, err := svc.UpdateUpdate(ctx, "p1", testFields())
	assert.ErrorIs(t, err, store.ErrAuthorizationDenied)
}

func TestContentService_AppendChatRecord(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, repo := newTestContentSvc(ctrl)
	ctx := context.Background()

	repo.EXPECT().InsertChatRecord(ctx, "token", models.ChatHistoryRecord{
		UserID:   "u-1",
		Question: "What is MFA?",
		Answer:   "A second factor.",
	}).Return(nil).Times(1)

	require.NoError(t, svc.AppendChatRecord(ctx, "u-1", "What is MFA?", "A second factor."))
}

func TestContentValidationService_WrapReturnsValidator(t *testing.T) {
	wrapper := NewContentValidationService()
	wrapped := wrapper.Wrap(nil)

	v, ok := wrapped.(*ContentValidationService)
	require.True(t, ok)
	assert.IsType(t, &validators.ContentValidator{}, v.validator)
}
