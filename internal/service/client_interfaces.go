// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"time"

	"github.com/MKhiriev/lexiflow/models"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_service_mock.go -package=mock -exclude_interfaces=SessionManager,ClientConflictResolver

// RefreshFunc exchanges a raw session token for a new one.
// adapter.ContentClient.Refresh satisfies it.
type RefreshFunc func(ctx context.Context, token string) (models.SessionToken, error)

// SessionManager owns the session token in memory and mirrors it to the
// credential store. It is the adapter.TokenSource of the content client.
type SessionManager interface {
	// CurrentToken returns the access token, or "" when there is no session or
	// the token expires within the refresh margin.
	CurrentToken() string

	// Session returns the stored token as is, ignoring the margin.
	Session() models.SessionToken

	// SetToken replaces the session and writes it through to storage. The
	// in-memory token is replaced even when the write fails.
	SetToken(token models.SessionToken) error

	// Clear removes the session from memory and storage.
	Clear() error

	// Restore loads the persisted session. It reports whether one was found.
	Restore() bool

	// Refresh exchanges the stored token through refresh. Concurrent callers
	// share one exchange. A rejected refresh clears the session and returns
	// ErrSessionExpired; a missing session returns ErrNoSession.
	Refresh(ctx context.Context, refresh RefreshFunc) error
}

// ClientAuthService logs the user in and out.
type ClientAuthService interface {
	// Login exchanges credentials for a session and stores it.
	// Rejected credentials are reported as ErrInvalidCredentials.
	Login(ctx context.Context, creds models.Credentials) (models.User, error)

	// Logout clears the session. Local content and pending changes are kept.
	Logout(ctx context.Context) error

	// RestoreSession loads the session persisted by a previous run.
	RestoreSession(ctx context.Context) bool
}

// ClientSyncService runs sync cycles between the local store and the server.
type ClientSyncService interface {
	// Sync runs one cycle: push pending changes, pull server changes since the
	// watermark, reconcile them and advance the watermark. Calls made while a
	// cycle is running wait for it and receive its result.
	//
	// The returned error is non-nil exactly when the cycle ended in
	// models.SyncStateFailed; it equals result.Err.
	Sync(ctx context.Context) (models.SyncResult, error)

	// State returns the phase of the running cycle, or the terminal state of
	// the last one.
	State() models.SyncState
}

// ClientConflictResolver applies a resolution to a conflict surfaced by Sync.
type ClientConflictResolver interface {
	// Resolve pushes the chosen version to the server and only then writes it
	// locally as synced. On any failure the local row is left as it was and
	// the error wraps ErrResolutionFailed.
	Resolve(ctx context.Context, conflict models.SyncConflict, resolution Resolution) error
}

// ClientContentService is what a host reads and edits content through.
type ClientContentService interface {
	// List returns cached content, syncing first when the cache is empty or
	// older than the configured staleness. A failed sync is logged and the
	// cached rows are returned.
	List(ctx context.Context, q models.ListQuery) ([]models.ContentRecord, error)
	Get(ctx context.Context, id int64) (models.ContentRecord, error)
	Count(ctx context.Context, search string) (int, error)

	// Save validates rec and stores it as a pending local change.
	Save(ctx context.Context, rec models.ContentRecord) (models.ContentRecord, error)

	// Delete turns the record into a tombstone pending server deletion.
	Delete(ctx context.Context, id int64) error
}

// ClientSyncJob runs Sync periodically in the background.
type ClientSyncJob interface {
	// Start runs one sync right away and then one every interval. A running
	// job is stopped first. Overlapping runs are skipped.
	Start(ctx context.Context, interval time.Duration)

	// Stop stops scheduling and blocks until running syncs have returned.
	Stop()
}
