package service

import (
	"github.com/MKhiriev/cyber-aware/internal/adapter"
	"github.com/MKhiriev/cyber-aware/internal/logger"
	"github.com/MKhiriev/cyber-aware/internal/store"
	"github.com/MKhiriev/cyber-aware/models"
)

type ClientServices struct {
	AuthService      AuthService
	ProfileService   ProfileService
	ContentService   ContentService
	AssistantService AssistantService
	AppInfoService   AppInfoService
	RefreshJob       ClientRefreshJob
}

func NewClientServices(
	storages *store.ClientStorages,
	authAdapter adapter.AuthAdapter,
	modelAdapter adapter.ModelAdapter,
	buildInfo models.AppBuildInfo,
	logger *logger.Logger,
) (*ClientServices, error) {
	appInfoSvc, err := NewAppInfoService(buildInfo, logger)
	if err != nil {
		return nil, err
	}

	authSvc := NewClientAuthService(authAdapter, storages.SessionRepository, logger)
	contentSvc := NewContentValidationService().
		Wrap(NewClientContentService(storages.ContentRepository, authSvc, logger))

	return &ClientServices{
		AuthService:      authSvc,
		ProfileService:   NewClientProfileService(storages.ProfileRepository, authSvc, logger),
		ContentService:   contentSvc,
		AssistantService: NewClientAssistantService(modelAdapter, logger),
		AppInfoService:   appInfoSvc,
		RefreshJob:       NewClientRefreshJob(authSvc, logger),
	}, nil
}
