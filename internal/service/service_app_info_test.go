package service

import (
	"context"
	"errors"
	"testing"

	"github.com/MKhiriev/cyber-aware/internal/logger"
	"github.com/MKhiriev/cyber-aware/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAppInfoService_Success(t *testing.T) {
	svc, err := NewAppInfoService(models.NewAppBuildInfo("1.0.0", "2026-10-01", "abc123"), logger.Nop())

	require.NoError(t, err)
	require.NotNil(t, svc)
}

func TestNewAppInfoService_ZeroBuildInfo_ReturnsError(t *testing.T) {
	svc, err := NewAppInfoService(models.AppBuildInfo{}, logger.Nop())

	assert.Nil(t, svc)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrVersionIsNotSpecified))
}

func TestGetBuildInfo_ReturnsConfiguredInfo(t *testing.T) {
	svc, err := NewAppInfoService(models.NewAppBuildInfo("3.1.4", "2026-10-01", "deadbeef"), logger.Nop())
	require.NoError(t, err)

	got := svc.GetBuildInfo(context.Background())

	assert.Equal(t, "3.1.4", got.BuildVersion())
	assert.Equal(t, "2026-10-01", got.BuildDate())
	assert.Equal(t, "deadbeef", got.BuildCommit())
}

func TestGetBuildInfo_UnsetVersionIsNotAvailable(t *testing.T) {
	svc, err := NewAppInfoService(models.NewAppBuildInfo("", "", ""), logger.Nop())
	require.NoError(t, err)

	got := svc.GetBuildInfo(context.Background())
	assert.Equal(t, models.NotAvailable, got.BuildVersion())
	assert.True(t, got.IsDevelopment())
}

func TestGetBuildInfo_DifferentInstances_IndependentInfo(t *testing.T) {
	svc1, err := NewAppInfoService(models.NewAppBuildInfo("1.0.0", "N/A", "N/A"), logger.Nop())
	require.NoError(t, err)

	svc2, err := NewAppInfoService(models.NewAppBuildInfo("2.0.0", "N/A", "N/A"), logger.Nop())
	require.NoError(t, err)

	assert.Equal(t, "1.0.0", svc1.GetBuildInfo(context.Background()).BuildVersion())
	assert.Equal(t, "2.0.0", svc2.GetBuildInfo(context.Background()).BuildVersion())
}
