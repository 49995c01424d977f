// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/lexiflow/internal/logger"
	"github.com/MKhiriev/lexiflow/internal/store"
	"github.com/MKhiriev/lexiflow/internal/validators"
	"github.com/MKhiriev/lexiflow/models"
)

type clientContentService struct {
	local      store.LocalRecordStore
	sync       ClientSyncService
	validator  validators.Validator
	staleAfter time.Duration
	logger     *logger.Logger
	now        func() time.Time
}

// NewClientContentService returns the content service. A staleAfter of zero
// only syncs on reads of a never-synced store.
func NewClientContentService(local store.LocalRecordStore, syncService ClientSyncService, validator validators.Validator, staleAfter time.Duration, log *logger.Logger) ClientContentService {
	return &clientContentService{
		local:      local,
		sync:       syncService,
		validator:  validator,
		staleAfter: staleAfter,
		logger:     log,
		now:        time.Now,
	}
}

func (c *clientContentService) List(ctx context.Context, q models.ListQuery) ([]models.ContentRecord, error) {
	records, err := c.local.List(ctx, q)
	if err != nil {
		return nil, err
	}

	refresh, err := c.needsSync(ctx, len(records) == 0)
	if err != nil {
		return nil, err
	}
	if !refresh {
		return records, nil
	}

	if _, err = c.sync.Sync(ctx); err != nil {
		logger.FromContext(ctx).Warn().Err(err).
			Str("func", "clientContentService.List").
			Msg("sync before read failed, serving cached content")
		return records, nil
	}

	return c.local.List(ctx, q)
}

// needsSync reports whether the cache should be refreshed before a read.
func (c *clientContentService) needsSync(ctx context.Context, empty bool) (bool, error) {
	last, err := c.local.GetLastSyncTime(ctx)
	if err != nil {
		return false, err
	}

	switch {
	case last.IsZero():
		return true, nil
	case empty:
		return true, nil
	case c.staleAfter > 0 && c.now().Sub(last) > c.staleAfter:
		return true, nil
	default:
		return false, nil
	}
}

func (c *clientContentService) Get(ctx context.Context, id int64) (models.ContentRecord, error) {
	return c.local.Get(ctx, id)
}

func (c *clientContentService) Count(ctx context.Context, search string) (int, error) {
	return c.local.Count(ctx, search)
}

func (c *clientContentService) Save(ctx context.Context, rec models.ContentRecord) (models.ContentRecord, error) {
	rec = rec.Normalize()
	if err := c.validator.Validate(ctx, rec); err != nil {
		return models.ContentRecord{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	return c.local.Upsert(ctx, rec)
}

func (c *clientContentService) Delete(ctx context.Context, id int64) error {
	return c.local.MarkDeleted(ctx, id)
}
