// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Command provision applies the cyber-aware backend schema, the signup
// trigger, the access policies and the seed intelligence posts to the hosted
// Postgres database. It is the automated alternative to pasting the script
// shown on the client's setup screen into the SQL editor.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/cyber-aware/internal/config"
	"github.com/MKhiriev/cyber-aware/internal/logger"
	"github.com/MKhiriev/cyber-aware/internal/store"
	"github.com/MKhiriev/cyber-aware/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log := logger.NewLogger("cyber-aware-provision")
	log.Info().Str("build", models.NewAppBuildInfo(buildVersion, buildDate, buildCommit).String()).Msg("starting provisioning")

	cfg, err := config.GetProvisionConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	var db *store.DB
	err = store.WithRetry(ctx, store.NewPostgresErrorClassifier(), store.DefaultRetryBackoff(), func(ctx context.Context) error {
		var connErr error
		db, connErr = store.NewConnectPostgres(ctx, *cfg, log)
		return connErr
	})
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting to backend database")
	}

	err = store.WithRetry(ctx, db, store.DefaultRetryBackoff(), func(context.Context) error {
		if migrateErr := db.MigrateRemote(); migrateErr != nil {
			log.Warn().Err(migrateErr).Msg("migration attempt failed")
			return migrateErr
		}
		return nil
	})
	if closeErr := db.Close(); closeErr != nil {
		log.Warn().Err(closeErr).Msg("error closing backend connection")
	}
	if err != nil {
		log.Fatal().Err(err).Msg("error applying backend schema")
	}

	log.Info().Msg("backend schema is up to date")
}
