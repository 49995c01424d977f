// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"github.com/MKhiriev/lexiflow/internal/adapter"
	"github.com/MKhiriev/lexiflow/internal/config"
	"github.com/MKhiriev/lexiflow/internal/logger"
	"github.com/MKhiriev/lexiflow/internal/store"
	"github.com/MKhiriev/lexiflow/internal/validators"
)

// ClientServices groups the client-side services handed to the host.
type ClientServices struct {
	Session          SessionManager
	AuthService      ClientAuthService
	ContentService   ClientContentService
	SyncService      ClientSyncService
	ConflictResolver ClientConflictResolver
	SyncJob          ClientSyncJob
}

// NewClientServices wires the services over storages and remote. session
// must be the token source remote was built with.
func NewClientServices(storages *store.ClientStorages, remote adapter.ContentClient, session SessionManager, cfg *config.ClientConfig, log *logger.Logger) *ClientServices {
	caller := NewSessionCaller(session, remote.Refresh, log)
	validator := validators.NewContentValidator()

	syncSvc := NewClientSyncService(storages.Content, remote, caller, SyncOptions{
		PageSize: cfg.Workers.PageSize,
		PushMode: cfg.Workers.PushMode,
		DeviceID: cfg.App.DeviceID,
	}, log)

	return &ClientServices{
		Session:          session,
		AuthService:      NewClientAuthService(remote, session, log),
		ContentService:   NewClientContentService(storages.Content, syncSvc, validator, cfg.Workers.StaleAfter, log),
		SyncService:      syncSvc,
		ConflictResolver: NewClientConflictResolver(storages.Content, remote, caller, validator, log),
		SyncJob:          NewClientSyncJob(syncSvc, log),
	}
}
