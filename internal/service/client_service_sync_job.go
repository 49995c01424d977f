// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/MKhiriev/lexiflow/internal/logger"
)

const defaultSyncInterval = 5 * time.Minute

type clientSyncJob struct {
	syncService ClientSyncService
	logger      *logger.Logger

	mu     sync.Mutex
	cron   *cron.Cron
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewClientSyncJob creates a job that calls syncService.Sync on a cron
// schedule. The job is idle until Start is called.
func NewClientSyncJob(syncService ClientSyncService, log *logger.Logger) ClientSyncJob {
	return &clientSyncJob{syncService: syncService, logger: log}
}

// Start implements ClientSyncJob. A non-positive interval defaults to five
// minutes. cron rounds intervals below one second up to one second.
func (j *clientSyncJob) Start(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = defaultSyncInterval
	}

	j.Stop()

	jobCtx, cancel := context.WithCancel(ctx)
	job := cron.NewChain(
		cron.Recover(j.logger.Cron()),
		cron.SkipIfStillRunning(j.logger.Cron()),
	).Then(cron.FuncJob(func() { j.runOnce(jobCtx) }))

	c := cron.New(cron.WithLogger(j.logger.Cron()))
	c.Schedule(cron.Every(interval), job)

	j.mu.Lock()
	j.cron = c
	j.cancel = cancel
	j.mu.Unlock()

	j.wg.Add(1)
	go func() {
		defer j.wg.Done()
		job.Run()
	}()
	c.Start()

	j.logger.Info().Str("func", "clientSyncJob.Start").Dur("interval", interval).Msg("background sync started")
}

func (j *clientSyncJob) runOnce(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}

	res, err := j.syncService.Sync(ctx)
	if err != nil {
		j.logger.Warn().Err(err).
			Str("func", "clientSyncJob.runOnce").
			Str("failure", string(res.Failure)).
			Msg("background sync failed")
		return
	}
	if res.HasConflicts() {
		j.logger.Info().
			Str("func", "clientSyncJob.runOnce").
			Int("conflicts", len(res.Conflicts)).
			Msg("background sync left conflicts for resolution")
	}
}

// Stop implements ClientSyncJob. Safe to call when the job is not running.
func (j *clientSyncJob) Stop() {
	j.mu.Lock()
	c, cancel := j.cron, j.cancel
	j.cron, j.cancel = nil, nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if c != nil {
		<-c.Stop().Done()
	}
	j.wg.Wait()
}
