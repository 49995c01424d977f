// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/lexiflow/models"
)

func TestLikePattern(t *testing.T) {
	assert.Equal(t, "%apple%", likePattern("  APPLE "))
	assert.Equal(t, `%50\%\_x\\%`, likePattern(`50%_x\`))
}

func TestNextPlaceholderID(t *testing.T) {
	assert.Equal(t, int64(-1), nextPlaceholderID(0))
	assert.Equal(t, int64(-1), nextPlaceholderID(42))
	assert.Equal(t, int64(-6), nextPlaceholderID(-5))
}

func TestPrepareUpsert(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	earlier := now.Add(-time.Hour)
	noPlaceholder := func() (int64, error) { return 0, errors.New("must not allocate") }

	t.Run("new row gets placeholder", func(t *testing.T) {
		rec, err := prepareUpsert(models.ContentRecord{Term: "a"}, nil, now, func() (int64, error) { return -3, nil })
		require.NoError(t, err)
		assert.Equal(t, int64(-3), rec.ID)
		assert.Equal(t, models.SyncStatusNew, rec.SyncStatus)
		assert.Equal(t, now, rec.CreatedAt)
		assert.NotEmpty(t, rec.Version)
	})

	t.Run("placeholder failure", func(t *testing.T) {
		_, err := prepareUpsert(models.ContentRecord{}, nil, now, noPlaceholder)
		assert.Error(t, err)
	})

	t.Run("synced row becomes modified", func(t *testing.T) {
		existing := models.ContentRecord{ID: 4, CreatedAt: earlier, Version: "v1", SyncStatus: models.SyncStatusSynced}
		rec, err := prepareUpsert(models.ContentRecord{ID: 4, Term: "b"}, &existing, now, noPlaceholder)
		require.NoError(t, err)
		assert.Equal(t, models.SyncStatusModified, rec.SyncStatus)
		assert.Equal(t, "v1", rec.Version)
		assert.Equal(t, earlier, rec.CreatedAt)
		assert.Equal(t, now, rec.UpdatedAt)
	})

	t.Run("deleted client-origin row stays new", func(t *testing.T) {
		existing := models.ContentRecord{ID: -2, SyncStatus: models.SyncStatusDeleted, IsDeleted: true, Version: "v"}
		rec, err := prepareUpsert(models.ContentRecord{ID: -2}, &existing, now, noPlaceholder)
		require.NoError(t, err)
		assert.Equal(t, models.SyncStatusNew, rec.SyncStatus)
		assert.False(t, rec.IsDeleted)
	})

	t.Run("caller version wins", func(t *testing.T) {
		existing := models.ContentRecord{ID: 4, Version: "v1", SyncStatus: models.SyncStatusSynced}
		rec, err := prepareUpsert(models.ContentRecord{ID: 4, Version: "v2"}, &existing, now, noPlaceholder)
		require.NoError(t, err)
		assert.Equal(t, "v2", rec.Version)
	})
}

func TestWatermarkFormat(t *testing.T) {
	ts := time.Date(2026, 5, 6, 7, 8, 9, 10, time.UTC)
	parsed, err := parseWatermark(formatWatermark(ts))
	require.NoError(t, err)
	assert.True(t, ts.Equal(parsed))

	zero, err := parseWatermark("")
	require.NoError(t, err)
	assert.True(t, zero.IsZero())
}
