// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"fmt"

	"github.com/MKhiriev/lexiflow/internal/adapter"
	"github.com/MKhiriev/lexiflow/internal/config"
	"github.com/MKhiriev/lexiflow/internal/logger"
	"github.com/MKhiriev/lexiflow/internal/service"
	"github.com/MKhiriev/lexiflow/internal/store"
	"github.com/MKhiriev/lexiflow/internal/workers"
	"github.com/MKhiriev/lexiflow/models"
)

// App is the headless sync client: it keeps the local cache in step with the
// server until its context is cancelled.
type App struct {
	storages *store.ClientStorages
	services *service.ClientServices
	workers  *workers.Workers
	logger   *logger.Logger
}

// NewApp opens local storage and wires the adapter, services and workers
// from cfg.
func NewApp(ctx context.Context, cfg *config.ClientConfig, log *logger.Logger) (*App, error) {
	storages, err := store.NewClientStorages(ctx, cfg.Storage, cfg.App, log)
	if err != nil {
		return nil, fmt.Errorf("create local storage: %w", err)
	}

	session := service.NewSessionManager(storages.Credentials, log)

	remote, err := adapter.NewHTTPContentClient(cfg.Adapter, session, log)
	if err != nil {
		_ = storages.Content.Close()
		return nil, fmt.Errorf("create content client: %w", err)
	}

	services := service.NewClientServices(storages, remote, session, cfg, log)

	return &App{
		storages: storages,
		services: services,
		workers:  workers.NewWorkers(log, workers.NewSyncWorker(services.SyncJob, cfg.Workers.SyncInterval)),
		logger:   log,
	}, nil
}

// Services exposes the wired services to hosts embedding the client.
func (a *App) Services() *service.ClientServices {
	return a.services
}

// Login opens a session and persists it for later runs.
func (a *App) Login(ctx context.Context, creds models.Credentials) error {
	user, err := a.services.AuthService.Login(ctx, creds)
	if err != nil {
		return err
	}

	a.logger.Info().Str("func", "App.Login").Int64("user_id", user.ID).Msg("session opened")
	return nil
}

// Logout drops the saved session.
func (a *App) Logout(ctx context.Context) error {
	return a.services.AuthService.Logout(ctx)
}

// Run restores the saved session and syncs in the background until ctx is
// done. Without a saved session it returns service.ErrNoSession at once.
func (a *App) Run(ctx context.Context) error {
	if !a.services.AuthService.RestoreSession(ctx) {
		return fmt.Errorf("%w: log in first", service.ErrNoSession)
	}

	a.workers.Run(ctx)
	a.logger.Info().Str("func", "App.Run").Msg("client running")

	<-ctx.Done()
	a.workers.Stop()

	a.logger.Info().Str("func", "App.Run").AnErr("cause", context.Cause(ctx)).Msg("client stopped")
	return nil
}

// Close releases local storage. Run must have returned.
func (a *App) Close() error {
	return a.storages.Content.Close()
}
