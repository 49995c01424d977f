// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"time"

	"github.com/MKhiriev/lexiflow/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// LocalRecordStore is the offline cache of content records plus the sync
// watermark. Every method runs as one transaction; engine failures are
// returned as *[StorageError].
type LocalRecordStore interface {
	// Get returns a live record. Tombstones report [ErrRecordNotFound].
	Get(ctx context.Context, id int64) (models.ContentRecord, error)
	// List returns live records ordered by id descending.
	List(ctx context.Context, q models.ListQuery) ([]models.ContentRecord, error)
	// Count returns the number of live records matching search.
	Count(ctx context.Context, search string) (int, error)
	// Upsert stores a local edit and returns the row as persisted. It never
	// marks a row synced.
	Upsert(ctx context.Context, rec models.ContentRecord) (models.ContentRecord, error)
	// MarkDeleted turns a row into a tombstone pending server deletion.
	MarkDeleted(ctx context.Context, id int64) error
	MarkSynced(ctx context.Context, id int64) error
	// Purge hard-deletes a row, tombstone or not.
	Purge(ctx context.Context, id int64) error

	// PendingChanges returns rows with status new or modified.
	PendingChanges(ctx context.Context) ([]models.ContentRecord, error)
	// PendingDeletions returns the ids of tombstones.
	PendingDeletions(ctx context.Context) ([]int64, error)

	// Lookup returns a row whatever its status, tombstones included.
	Lookup(ctx context.Context, id int64) (models.ContentRecord, error)
	// ApplyServer inserts or overwrites a row with the server copy, status synced.
	ApplyServer(ctx context.Context, rec models.ContentRecord) error
	// ReplaceID drops the placeholder row oldID and stores rec as synced.
	ReplaceID(ctx context.Context, oldID int64, rec models.ContentRecord) error

	// GetLastSyncTime returns the watermark, zero if never synced.
	GetLastSyncTime(ctx context.Context) (time.Time, error)
	SetLastSyncTime(ctx context.Context, t time.Time) error

	Close() error
}

// CredentialStore persists the session token across restarts.
type CredentialStore interface {
	Save(token models.SessionToken) error
	// Load reports false when nothing usable is stored. Unreadable blobs are
	// logged and treated as absent.
	Load() (models.SessionToken, bool)
	Clear() error
}
