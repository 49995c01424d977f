// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/lexiflow/internal/logger"
	"github.com/MKhiriev/lexiflow/internal/service"
)

// Workers starts its workers in order and stops them in reverse order.
type Workers struct {
	workers []Worker
	logger  *logger.Logger
}

func NewWorkers(log *logger.Logger, workers ...Worker) *Workers {
	return &Workers{workers: workers, logger: log}
}

func (w *Workers) Run(ctx context.Context) {
	for _, worker := range w.workers {
		worker.Run(ctx)
	}
	w.logger.Debug().Str("func", "Workers.Run").Int("count", len(w.workers)).Msg("workers started")
}

func (w *Workers) Stop() {
	for i := len(w.workers) - 1; i >= 0; i-- {
		w.workers[i].Stop()
	}
	w.logger.Debug().Str("func", "Workers.Stop").Msg("workers stopped")
}

// syncWorker runs the periodic background sync.
type syncWorker struct {
	job      service.ClientSyncJob
	interval time.Duration
}

// NewSyncWorker returns a Worker driving job every interval.
func NewSyncWorker(job service.ClientSyncJob, interval time.Duration) Worker {
	return &syncWorker{job: job, interval: interval}
}

func (s *syncWorker) Run(ctx context.Context) {
	s.job.Start(ctx, s.interval)
}

func (s *syncWorker) Stop() {
	s.job.Stop()
}
