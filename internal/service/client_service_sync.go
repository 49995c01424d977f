// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/MKhiriev/lexiflow/internal/adapter"
	"github.com/MKhiriev/lexiflow/internal/config"
	"github.com/MKhiriev/lexiflow/internal/logger"
	"github.com/MKhiriev/lexiflow/internal/store"
	"github.com/MKhiriev/lexiflow/internal/utils"
	"github.com/MKhiriev/lexiflow/models"
)

const defaultPageSize = 100

// SyncOptions tunes the sync orchestrator.
type SyncOptions struct {
	// PageSize is the number of items requested per pull page.
	PageSize int
	// PushMode is config.PushModeItem or config.PushModeBulk.
	PushMode string
	// DeviceID identifies this client in bulk pushes.
	DeviceID string
}

type clientSyncService struct {
	local  store.LocalRecordStore
	remote adapter.ContentClient
	caller *SessionCaller
	opts   SyncOptions
	logger *logger.Logger
	now    func() time.Time

	group singleflight.Group

	mu    sync.RWMutex
	state models.SyncState
}

// NewClientSyncService returns the sync orchestrator over local and remote.
// Remote calls go through caller so an expired session is refreshed once.
func NewClientSyncService(local store.LocalRecordStore, remote adapter.ContentClient, caller *SessionCaller, opts SyncOptions, log *logger.Logger) ClientSyncService {
	if opts.PageSize <= 0 {
		opts.PageSize = defaultPageSize
	}
	if opts.PushMode == "" {
		opts.PushMode = config.PushModeItem
	}

	return &clientSyncService{
		local:  local,
		remote: remote,
		caller: caller,
		opts:   opts,
		logger: log,
		now:    time.Now,
		state:  models.SyncStateIdle,
	}
}

func (s *clientSyncService) State() models.SyncState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

func (s *clientSyncService) setState(state models.SyncState) {
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
}

// Sync implements ClientSyncService. The cycle runs under the context of the
// caller that started it; later callers only stop waiting when their own
// context ends.
func (s *clientSyncService) Sync(ctx context.Context) (models.SyncResult, error) {
	ch := s.group.DoChan("sync", func() (any, error) {
		res := s.run(ctx)
		return res, res.Err
	})

	select {
	case <-ctx.Done():
		return models.SyncResult{State: models.SyncStateFailed, Failure: models.SyncFailureCancelled, Err: ctx.Err()}, ctx.Err()
	case r := <-ch:
		return r.Val.(models.SyncResult), r.Err
	}
}

// cycle carries the bookkeeping of one run.
type cycle struct {
	watermark time.Time
	result    models.SyncResult

	// pushConflicts are items whose push was rejected because the server copy
	// moved on. They are fetched and reconciled as server-changed.
	pushConflicts map[int64]struct{}

	// acknowledged maps pushed items to the server timestamp of the copy the
	// push stored locally.
	acknowledged map[int64]time.Time
}

func (c *cycle) itemError(id int64, op models.SyncOperation, err error) {
	c.result.Errors = append(c.result.Errors, models.ItemError{ItemID: id, Operation: op, Err: err})
}

func (s *clientSyncService) run(ctx context.Context) models.SyncResult {
	cycleID := utils.NewVersion()
	ctx = utils.WithSyncCycleID(ctx, cycleID)
	log := s.logger.With().Str("sync_cycle_id", cycleID).Logger()

	c := &cycle{
		result:        models.SyncResult{State: models.SyncStateIdle, StartedAt: s.now()},
		pushConflicts: make(map[int64]struct{}),
		acknowledged:  make(map[int64]time.Time),
	}

	fail := func(phase string, err error) models.SyncResult {
		c.result.State = models.SyncStateFailed
		c.result.Failure = failureKind(err)
		c.result.Err = fmt.Errorf("sync %s: %w", phase, err)
		c.result.FinishedAt = s.now()
		s.setState(models.SyncStateFailed)

		log.Warn().Err(err).
			Str("func", "clientSyncService.run").
			Str("failure", string(c.result.Failure)).
			Msg("sync cycle failed")
		return c.result
	}

	watermark, err := s.local.GetLastSyncTime(ctx)
	if err != nil {
		return fail("read watermark", err)
	}
	c.watermark = watermark
	c.result.LastSyncTime = watermark

	s.setState(models.SyncStatePushing)
	if err = s.push(ctx, c); err != nil {
		return fail("push", err)
	}

	s.setState(models.SyncStatePulling)
	pullStartedAt := s.now()
	items, err := s.pull(ctx, c)
	if err != nil {
		return fail("pull", err)
	}

	s.setState(models.SyncStateReconciling)
	if err = s.reconcile(ctx, c, items); err != nil {
		return fail("reconcile", err)
	}

	if err = s.local.SetLastSyncTime(ctx, pullStartedAt); err != nil {
		return fail("advance watermark", err)
	}

	c.result.LastSyncTime = pullStartedAt
	c.result.State = models.SyncStateDone
	c.result.PartialSuccess = len(c.result.Conflicts) > 0 || len(c.result.Errors) > 0
	c.result.FinishedAt = s.now()
	s.setState(models.SyncStateDone)

	log.Info().
		Str("func", "clientSyncService.run").
		Int("pushed", c.result.Pushed).
		Int("deleted", c.result.Deleted).
		Int("pulled", c.result.Pulled).
		Int("applied", c.result.Applied).
		Int("conflicts", len(c.result.Conflicts)).
		Int("errors", len(c.result.Errors)).
		Msg("sync cycle done")
	return c.result
}

// ── push ────────────────────────────────────────────────────────────────────

// push sends every pending change. Per-item failures are collected; only
// storage, session and cancellation errors abort the cycle. Cancellation is
// observed between items: a started item runs on a detached context so the
// local write that follows a server acknowledgment always lands.
func (s *clientSyncService) push(ctx context.Context, c *cycle) error {
	changes, err := s.local.PendingChanges(ctx)
	if err != nil {
		return err
	}

	deletions, err := s.local.PendingDeletions(ctx)
	if err != nil {
		return err
	}

	itemCtx := context.WithoutCancel(ctx)

	var updates []models.ContentRecord
	for _, rec := range changes {
		if err = ctx.Err(); err != nil {
			return err
		}
		if !rec.IsClientOrigin() && s.opts.PushMode == config.PushModeBulk {
			updates = append(updates, rec)
			continue
		}
		if err = s.pushItem(itemCtx, c, rec); err != nil {
			return err
		}
	}

	var remoteDeletions []int64
	for _, id := range deletions {
		if err = ctx.Err(); err != nil {
			return err
		}
		if id < 0 {
			// never reached the server
			if err = s.local.Purge(itemCtx, id); err != nil {
				return err
			}
			c.result.Deleted++
			continue
		}
		if s.opts.PushMode == config.PushModeBulk {
			remoteDeletions = append(remoteDeletions, id)
			continue
		}
		if err = s.deleteItem(itemCtx, c, id); err != nil {
			return err
		}
	}

	if len(updates) > 0 || len(remoteDeletions) > 0 {
		if err = ctx.Err(); err != nil {
			return err
		}
		return s.pushBulk(itemCtx, c, updates, remoteDeletions)
	}
	return nil
}

// abortsCycle reports whether a per-item error must end the whole cycle.
func abortsCycle(err error) bool {
	return IsSessionTerminal(err) ||
		errors.Is(err, store.ErrStorage) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded)
}

func (s *clientSyncService) pushItem(ctx context.Context, c *cycle, rec models.ContentRecord) error {
	op := models.SyncOpUpdate
	call := s.remote.UpdateContent
	if rec.IsClientOrigin() {
		op = models.SyncOpCreate
		call = s.remote.CreateContent
	}

	accepted, err := CallWithSession(ctx, s.caller, func(ctx context.Context) (models.ContentRecord, error) {
		return call(ctx, rec)
	})
	switch {
	case err == nil:
	case abortsCycle(err):
		return err
	case op == models.SyncOpUpdate && (errors.Is(err, adapter.ErrConflict) || errors.Is(err, adapter.ErrNotFound)):
		s.logger.Debug().Str("func", "clientSyncService.pushItem").Int64("id", rec.ID).Err(err).Msg("push rejected, server copy changed")
		c.pushConflicts[rec.ID] = struct{}{}
		return nil
	default:
		c.itemError(rec.ID, op, err)
		return nil
	}

	if accepted.ID <= 0 {
		c.itemError(rec.ID, op, fmt.Errorf("%w: server returned id %d", adapter.ErrMalformedResponse, accepted.ID))
		return nil
	}

	if op == models.SyncOpCreate {
		err = s.local.ReplaceID(ctx, rec.ID, accepted)
	} else {
		err = s.local.ApplyServer(ctx, accepted)
	}
	if err != nil {
		return err
	}

	c.acknowledged[accepted.ID] = accepted.UpdatedAt
	c.result.Pushed++
	return nil
}

func (s *clientSyncService) deleteItem(ctx context.Context, c *cycle, id int64) error {
	err := CallWithSessionNoResult(ctx, s.caller, func(ctx context.Context) error {
		return s.remote.DeleteContent(ctx, id)
	})
	switch {
	case err == nil, errors.Is(err, adapter.ErrNotFound):
	case abortsCycle(err):
		return err
	default:
		c.itemError(id, models.SyncOpDelete, err)
		return nil
	}

	if err = s.local.Purge(ctx, id); err != nil {
		return err
	}
	c.result.Deleted++
	return nil
}

// pushBulk sends server-known updates and deletions in one POST /sync.
// The response carries no item bodies: accepted updates are marked synced
// and picked up in full by the pull that follows.
func (s *clientSyncService) pushBulk(ctx context.Context, c *cycle, updates []models.ContentRecord, deletions []int64) error {
	req := models.BulkSyncRequest{
		LastSyncTime:   c.watermark,
		ModifiedItems:  updates,
		DeletedItemIDs: deletions,
		DeviceID:       s.opts.DeviceID,
	}

	resp, err := CallWithSession(ctx, s.caller, func(ctx context.Context) (models.BulkSyncResponse, error) {
		return s.remote.BulkSync(ctx, req)
	})
	if err != nil {
		if abortsCycle(err) {
			return err
		}
		for _, rec := range updates {
			c.itemError(rec.ID, models.SyncOpUpdate, err)
		}
		for _, id := range deletions {
			c.itemError(id, models.SyncOpDelete, err)
		}
		return nil
	}

	rejected := make(map[int64]struct{}, len(resp.Conflicts))
	for _, conflict := range resp.Conflicts {
		rejected[conflict.ItemID] = struct{}{}
		c.pushConflicts[conflict.ItemID] = struct{}{}
	}

	for _, rec := range updates {
		if _, ok := rejected[rec.ID]; ok {
			continue
		}
		if err = s.local.MarkSynced(ctx, rec.ID); err != nil {
			return err
		}
		c.result.Pushed++
	}
	for _, id := range deletions {
		if _, ok := rejected[id]; ok {
			continue
		}
		if err = s.local.Purge(ctx, id); err != nil {
			return err
		}
		c.result.Deleted++
	}
	return nil
}

// ── pull ────────────────────────────────────────────────────────────────────

// pull pages through server changes since the watermark, then fetches the
// push-conflicted items the page walk did not return.
func (s *clientSyncService) pull(ctx context.Context, c *cycle) ([]pulledItem, error) {
	var items []pulledItem
	seen := make(map[int64]struct{})
	pageCtx := context.WithoutCancel(ctx)

	for page := 1; ; page++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		q := models.ContentQuery{Page: page, PageSize: s.opts.PageSize, UpdatedSince: c.watermark}
		p, err := CallWithSession(pageCtx, s.caller, func(ctx context.Context) (models.ContentPage, error) {
			return s.remote.ListContent(ctx, q)
		})
		if err != nil {
			return nil, err
		}

		for _, rec := range p.Items {
			_, forced := c.pushConflicts[rec.ID]
			seen[rec.ID] = struct{}{}
			items = append(items, pulledItem{record: rec, forceServerChanged: forced})
		}
		if !p.HasMore() || len(p.Items) == 0 {
			break
		}
	}

	missing := make([]int64, 0, len(c.pushConflicts))
	for id := range c.pushConflicts {
		if _, ok := seen[id]; !ok {
			missing = append(missing, id)
		}
	}
	slices.Sort(missing)

	for _, id := range missing {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		rec, err := CallWithSession(pageCtx, s.caller, func(ctx context.Context) (models.ContentRecord, error) {
			return s.remote.GetContent(ctx, id)
		})
		switch {
		case err == nil:
		case errors.Is(err, adapter.ErrNotFound):
			// gone without a tombstone in the listing
			rec = models.ContentRecord{ID: id, IsDeleted: true}
		case abortsCycle(err):
			return nil, err
		default:
			c.itemError(id, models.SyncOpPull, err)
			continue
		}
		items = append(items, pulledItem{record: rec, forceServerChanged: true})
	}

	c.result.Pulled = len(items)
	return items, nil
}

type pulledItem struct {
	record             models.ContentRecord
	forceServerChanged bool
}

// ── reconcile ───────────────────────────────────────────────────────────────

func (s *clientSyncService) reconcile(ctx context.Context, c *cycle, items []pulledItem) error {
	conflicted := make(map[int64]struct{})
	itemCtx := context.WithoutCancel(ctx)

	for _, item := range items {
		if err := ctx.Err(); err != nil {
			return err
		}

		server := item.record
		if ackedAt, ok := c.acknowledged[server.ID]; ok && server.UpdatedAt.Before(ackedAt) {
			// the listing lags behind the copy stored by this cycle's push
			continue
		}

		var local *models.ContentRecord
		existing, err := s.local.Lookup(itemCtx, server.ID)
		switch {
		case err == nil:
			local = &existing
		case errors.Is(err, store.ErrRecordNotFound):
		default:
			return err
		}

		action := classify(local, server, c.watermark, item.forceServerChanged)
		switch action {
		case actionApply:
			err = s.local.ApplyServer(itemCtx, server)
		case actionPurge:
			err = s.local.Purge(itemCtx, server.ID)
		case actionConflict:
			if _, dup := conflicted[server.ID]; !dup {
				conflicted[server.ID] = struct{}{}
				c.result.Conflicts = append(c.result.Conflicts, newConflict(*local, server))
			}
			continue
		case actionSkip:
			continue
		}
		if err != nil {
			// the watermark must not move past an item that was not stored
			return fmt.Errorf("%s item %d: %w", action, server.ID, err)
		}
		c.result.Applied++
	}
	return nil
}
