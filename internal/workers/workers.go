// Package workers runs the client's background jobs for the lifetime of the
// terminal session.
package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/cyber-aware/internal/config"
	"github.com/MKhiriev/cyber-aware/internal/logger"
	"github.com/MKhiriev/cyber-aware/internal/service"
)

// Worker is a background job that runs until it is stopped.
//
// Run must not block: implementations spawn their own goroutines. Stop
// waits for them to exit.
type Worker interface {
	Run(ctx context.Context)
	Stop()
}

// Workers starts its workers in order and stops them in reverse order.
type Workers struct {
	workers []Worker
	logger  *logger.Logger
}

// NewClientWorkers returns the client's workers: the session refresher.
func NewClientWorkers(cfg config.ClientWorkers, refreshJob service.ClientRefreshJob, log *logger.Logger) *Workers {
	return &Workers{
		workers: []Worker{
			&refreshWorker{job: refreshJob, interval: cfg.RefreshInterval},
		},
		logger: log,
	}
}

func (w *Workers) Run(ctx context.Context) {
	for _, worker := range w.workers {
		worker.Run(ctx)
	}
	w.logger.Debug().Int("count", len(w.workers)).Msg("workers started")
}

func (w *Workers) Stop() {
	for i := len(w.workers) - 1; i >= 0; i-- {
		w.workers[i].Stop()
	}
	w.logger.Debug().Msg("workers stopped")
}

// refreshWorker keeps the persisted session fresh.
type refreshWorker struct {
	job      service.ClientRefreshJob
	interval time.Duration
}

func (r *refreshWorker) Run(ctx context.Context) {
	r.job.Start(ctx, r.interval)
}

func (r *refreshWorker) Stop() {
	r.job.Stop()
}
