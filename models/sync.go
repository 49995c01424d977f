// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// SyncMetadataLastSyncTime is the sync_metadata key holding the watermark.
const SyncMetadataLastSyncTime = "last_sync_time"

// SyncState is the phase of a single sync cycle.
type SyncState string

const (
	SyncStateIdle        SyncState = "idle"
	SyncStatePushing     SyncState = "pushing"
	SyncStatePulling     SyncState = "pulling"
	SyncStateReconciling SyncState = "reconciling"
	SyncStateDone        SyncState = "done"
	SyncStateFailed      SyncState = "failed"
)

// ConflictType classifies a SyncConflict.
type ConflictType string

const (
	// ConflictBothModified means client and server both changed the item since
	// the last common watermark.
	ConflictBothModified ConflictType = "both_modified"

	// ConflictServerDeleted means the client changed the item while the server
	// deleted it.
	ConflictServerDeleted ConflictType = "server_deleted"
)

// SyncConflict is produced by reconciliation and consumed by the conflict
// resolver or surfaced to the caller. It is not persisted.
type SyncConflict struct {
	ItemID          int64        `json:"itemId"`
	ClientVersion   string       `json:"clientVersion"`
	ServerVersion   string       `json:"serverVersion"`
	ClientUpdatedAt time.Time    `json:"clientUpdatedAt"`
	ServerUpdatedAt time.Time    `json:"serverUpdatedAt"`
	ConflictType    ConflictType `json:"conflictType"`

	// Client and Server are snapshots of both sides at detection time.
	Client *ContentRecord `json:"client,omitempty"`
	Server *ContentRecord `json:"server,omitempty"`
}

// SyncOperation names the step an ItemError happened in.
type SyncOperation string

const (
	SyncOpCreate SyncOperation = "create"
	SyncOpUpdate SyncOperation = "update"
	SyncOpDelete SyncOperation = "delete"
	SyncOpPull   SyncOperation = "pull"
	SyncOpApply  SyncOperation = "apply"
)

// ItemError is a per-item failure collected during a cycle. It never aborts
// the cycle.
type ItemError struct {
	ItemID    int64         `json:"itemId"`
	Operation SyncOperation `json:"operation"`
	Err       error         `json:"-"`
}

func (e ItemError) Error() string {
	return string(e.Operation) + " item failed: " + e.Err.Error()
}

func (e ItemError) Unwrap() error {
	return e.Err
}

// SyncFailure tags why a cycle ended in SyncStateFailed so a host can pick a
// specific message (log in again vs. retry later).
type SyncFailure string

const (
	SyncFailureNone            SyncFailure = ""
	SyncFailureOffline         SyncFailure = "offline"
	SyncFailureSessionRequired SyncFailure = "session_required"
	SyncFailureStorage         SyncFailure = "storage"
	SyncFailureCancelled       SyncFailure = "cancelled"
	SyncFailureServer          SyncFailure = "server"
)

// SyncResult is the outcome of one sync cycle.
type SyncResult struct {
	State SyncState `json:"state"`

	// PartialSuccess is set when the cycle finished but left conflicts or
	// per-item errors behind.
	PartialSuccess bool `json:"partialSuccess"`

	Pushed  int `json:"pushed"`
	Deleted int `json:"deleted"`
	Pulled  int `json:"pulled"`
	Applied int `json:"applied"`

	Conflicts []SyncConflict `json:"conflicts,omitempty"`
	Errors    []ItemError    `json:"-"`

	Failure SyncFailure `json:"failure,omitempty"`
	Err     error       `json:"-"`

	StartedAt    time.Time `json:"startedAt"`
	FinishedAt   time.Time `json:"finishedAt"`
	LastSyncTime time.Time `json:"lastSyncTime"`
}

// HasConflicts reports whether the cycle surfaced at least one conflict.
func (r SyncResult) HasConflicts() bool {
	return len(r.Conflicts) > 0
}
