// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/MKhiriev/lexiflow/models"
)

func TestClassify(t *testing.T) {
	watermark := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	before := watermark.Add(-time.Hour)
	after := watermark.Add(time.Hour)

	local := func(status models.SyncStatus) *models.ContentRecord {
		return &models.ContentRecord{ID: 5, SyncStatus: status, IsDeleted: status == models.SyncStatusDeleted}
	}
	server := func(updated time.Time, deleted bool) models.ContentRecord {
		return models.ContentRecord{ID: 5, UpdatedAt: updated, IsDeleted: deleted}
	}

	tests := []struct {
		name   string
		local  *models.ContentRecord
		server models.ContentRecord
		forced bool
		want   reconcileAction
	}{
		{name: "absent locally", local: nil, server: server(after, false), want: actionApply},
		{name: "absent locally, server tombstone", local: nil, server: server(after, true), want: actionSkip},
		{name: "local untouched, server changed", local: local(models.SyncStatusSynced), server: server(after, false), want: actionApply},
		{name: "local untouched, server deleted", local: local(models.SyncStatusSynced), server: server(after, true), want: actionPurge},
		{name: "both modified", local: local(models.SyncStatusModified), server: server(after, false), want: actionConflict},
		{name: "local modified, server deleted", local: local(models.SyncStatusModified), server: server(after, true), want: actionConflict},
		{name: "local deleted, server modified", local: local(models.SyncStatusDeleted), server: server(after, false), want: actionConflict},
		{name: "deleted on both sides", local: local(models.SyncStatusDeleted), server: server(after, true), want: actionPurge},
		{name: "local modified, server unchanged", local: local(models.SyncStatusModified), server: server(before, false), want: actionSkip},
		{name: "server at watermark is unchanged", local: local(models.SyncStatusModified), server: server(watermark, false), want: actionSkip},
		{name: "push rejected forces server changed", local: local(models.SyncStatusModified), server: server(before, false), forced: true, want: actionConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classify(tt.local, tt.server, watermark, tt.forced))
		})
	}
}

// A conflict is raised if and only if both sides changed since the watermark.
func TestClassify_ConflictIffBothChanged(t *testing.T) {
	watermark := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)

	for _, status := range []models.SyncStatus{models.SyncStatusSynced, models.SyncStatusNew, models.SyncStatusModified} {
		for _, offset := range []time.Duration{-time.Hour, 0, time.Nanosecond, time.Hour} {
			local := &models.ContentRecord{ID: 1, SyncStatus: status}
			server := models.ContentRecord{ID: 1, UpdatedAt: watermark.Add(offset)}

			localChanged := status.IsPending()
			serverChanged := server.UpdatedAt.After(watermark)

			got := classify(local, server, watermark, false)
			assert.Equal(t, localChanged && serverChanged, got == actionConflict,
				"status=%s offset=%s", status, offset)
		}
	}
}

func TestClassify_ZeroWatermarkTreatsEverythingAsChanged(t *testing.T) {
	local := &models.ContentRecord{ID: 1, SyncStatus: models.SyncStatusModified}
	server := models.ContentRecord{ID: 1, UpdatedAt: time.Unix(1, 0)}

	assert.Equal(t, actionConflict, classify(local, server, time.Time{}, false))
}

func TestNewConflict(t *testing.T) {
	t1 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Hour)
	local := models.ContentRecord{ID: 5, Version: "c", UpdatedAt: t1, Term: "mine"}

	c := newConflict(local, models.ContentRecord{ID: 5, Version: "s", UpdatedAt: t2})
	assert.Equal(t, int64(5), c.ItemID)
	assert.Equal(t, "c", c.ClientVersion)
	assert.Equal(t, "s", c.ServerVersion)
	assert.Equal(t, t1, c.ClientUpdatedAt)
	assert.Equal(t, t2, c.ServerUpdatedAt)
	assert.Equal(t, models.ConflictBothModified, c.ConflictType)
	assert.Equal(t, "mine", c.Client.Term)

	c = newConflict(local, models.ContentRecord{ID: 5, IsDeleted: true})
	assert.Equal(t, models.ConflictServerDeleted, c.ConflictType)
}

func TestReconcileAction_String(t *testing.T) {
	assert.Equal(t, "apply", actionApply.String())
	assert.Equal(t, "purge", actionPurge.String())
	assert.Equal(t, "conflict", actionConflict.String())
	assert.Equal(t, "skip", actionSkip.String())
}
