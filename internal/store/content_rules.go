// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"strings"
	"time"

	"github.com/MKhiriev/lexiflow/internal/utils"
	"github.com/MKhiriev/lexiflow/models"
)

// searchColumns are matched by List and Count, OR-ed together.
var searchColumns = []string{"term", "definition", "example", "pronunciation", "notes"}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// likePattern turns a user query into a case-insensitive substring pattern
// with LIKE wildcards escaped.
func likePattern(search string) string {
	return "%" + likeEscaper.Replace(foldCase(strings.TrimSpace(search))) + "%"
}

// nextPlaceholderID returns the next negative id given the smallest id in
// the table.
func nextPlaceholderID(minID int64) int64 {
	if minID > 0 {
		minID = 0
	}
	return minID - 1
}

// prepareUpsert computes the row persisted for a local edit. existing is the
// current row (tombstones included) or nil.
func prepareUpsert(rec models.ContentRecord, existing *models.ContentRecord, now time.Time, placeholder func() (int64, error)) (models.ContentRecord, error) {
	rec = rec.Normalize()
	rec.UpdatedAt = now
	rec.IsDeleted = false

	if existing != nil {
		rec.CreatedAt = existing.CreatedAt
		if rec.Version == "" {
			rec.Version = existing.Version
		}
		if existing.SyncStatus == models.SyncStatusNew || existing.IsClientOrigin() {
			rec.SyncStatus = models.SyncStatusNew
		} else {
			rec.SyncStatus = models.SyncStatusModified
		}
	} else {
		if rec.ID == 0 {
			id, err := placeholder()
			if err != nil {
				return models.ContentRecord{}, err
			}
			rec.ID = id
		}
		if rec.CreatedAt.IsZero() {
			rec.CreatedAt = now
		}
		rec.SyncStatus = models.SyncStatusNew
	}

	if rec.Version == "" {
		rec.Version = utils.NewVersion()
	}

	return rec, nil
}

// asServerRow normalizes a server copy for storage as synced.
func asServerRow(rec models.ContentRecord) models.ContentRecord {
	rec.CreatedAt = rec.CreatedAt.UTC()
	rec.UpdatedAt = rec.UpdatedAt.UTC()
	rec.SyncStatus = models.SyncStatusSynced
	return rec
}

func formatWatermark(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseWatermark(v string) (time.Time, error) {
	if v == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339Nano, v)
}
