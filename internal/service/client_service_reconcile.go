// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"time"

	"github.com/MKhiriev/lexiflow/models"
)

// reconcileAction is what reconciliation does with one pulled server item.
type reconcileAction int

const (
	// actionSkip leaves the local row alone.
	actionSkip reconcileAction = iota
	// actionApply stores the server copy as synced.
	actionApply
	// actionPurge removes the local row.
	actionPurge
	// actionConflict leaves the local row alone and reports a conflict.
	actionConflict
)

func (a reconcileAction) String() string {
	switch a {
	case actionApply:
		return "apply"
	case actionPurge:
		return "purge"
	case actionConflict:
		return "conflict"
	default:
		return "skip"
	}
}

// classify decides how a pulled server item is merged into the local store.
//
// local is nil when no row exists. forceServerChanged marks items the push
// phase found to be changed on the server (a rejected update), whatever
// their timestamps say.
//
// Exactly one changed side wins outright; a conflict is raised only when
// both sides changed since watermark.
func classify(local *models.ContentRecord, server models.ContentRecord, watermark time.Time, forceServerChanged bool) reconcileAction {
	if local == nil {
		if server.IsDeleted {
			return actionSkip
		}
		return actionApply
	}

	if local.IsDeleted && server.IsDeleted {
		return actionPurge
	}

	localChanged := local.SyncStatus.IsPending()
	serverChanged := forceServerChanged || server.UpdatedAt.After(watermark)

	switch {
	case !localChanged && server.IsDeleted:
		return actionPurge
	case !localChanged:
		return actionApply
	case serverChanged:
		return actionConflict
	default:
		return actionSkip
	}
}

// newConflict snapshots both sides of a conflicted item.
func newConflict(local, server models.ContentRecord) models.SyncConflict {
	kind := models.ConflictBothModified
	if server.IsDeleted {
		kind = models.ConflictServerDeleted
	}

	return models.SyncConflict{
		ItemID:          local.ID,
		ClientVersion:   local.Version,
		ServerVersion:   server.Version,
		ClientUpdatedAt: local.UpdatedAt,
		ServerUpdatedAt: server.UpdatedAt,
		ConflictType:    kind,
		Client:          &local,
		Server:          &server,
	}
}
