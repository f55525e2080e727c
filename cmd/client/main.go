package main

import (
	"context"

	"github.com/MKhiriev/cyber-aware/internal/adapter"
	"github.com/MKhiriev/cyber-aware/internal/client"
	"github.com/MKhiriev/cyber-aware/internal/config"
	"github.com/MKhiriev/cyber-aware/internal/controller"
	"github.com/MKhiriev/cyber-aware/internal/logger"
	"github.com/MKhiriev/cyber-aware/internal/service"
	"github.com/MKhiriev/cyber-aware/internal/store"
	"github.com/MKhiriev/cyber-aware/internal/tui"
	"github.com/MKhiriev/cyber-aware/internal/workers"
	"github.com/MKhiriev/cyber-aware/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	ctx := context.Background()
	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)

	log := logger.NewClientLogger("cyber-aware-client")
	log.Info().Str("build", buildInfo.String()).Msg("starting client")

	cfg, err := config.GetClientConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	storages, err := store.NewClientStorages(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create local storage")
	}

	authAdapter, err := adapter.NewGoTrueAuthAdapter(cfg.Supabase, cfg.Adapter, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create auth adapter")
	}

	modelAdapter, err := adapter.NewGeminiModelAdapter(ctx, cfg.Assistant, cfg.Adapter, "", log)
	if err != nil {
		log.Fatal().Err(err).Msg("create model adapter")
	}

	services, err := service.NewClientServices(storages, authAdapter, modelAdapter, buildInfo, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create client services")
	}

	ctl := controller.NewController(
		services.AuthService,
		services.ProfileService,
		services.ContentService,
		services.AssistantService,
		log,
	)

	ui, err := tui.New(ctl, services.AppInfoService, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating ui")
	}

	app, err := client.NewApp(ctl, ui, workers.NewClientWorkers(cfg.Workers, services.RefreshJob, log), storages, log)
	if err != nil {
		log.Fatal().Err(err).Msg("init client app error")
	}

	if err = app.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("client run error")
	}
}
