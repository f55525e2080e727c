package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/MKhiriev/cyber-aware/internal/logger"
)

const (
	defaultRefreshInterval = time.Minute
	// refreshLeeway is how long before expiry the token is exchanged.
	refreshLeeway = 2 * time.Minute
)

type clientRefreshJob struct {
	authService AuthService
	logger      *logger.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewClientRefreshJob creates a job that calls
// authService.RefreshIfExpiring on a ticker. The job is idle until Start is
// called.
func NewClientRefreshJob(authService AuthService, logger *logger.Logger) ClientRefreshJob {
	return &clientRefreshJob{authService: authService, logger: logger}
}

// Start stops any previously running loop, then checks the session every
// interval (one minute if interval is not positive) until ctx is cancelled
// or Stop is called.
func (j *clientRefreshJob) Start(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = defaultRefreshInterval
	}

	j.Stop()

	j.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel
	j.wg.Add(1)
	j.mu.Unlock()

	go func() {
		defer j.wg.Done()
		t := time.NewTicker(interval)
		defer t.Stop()

		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				j.tick(jobCtx)
			}
		}
	}()
}

func (j *clientRefreshJob) tick(ctx context.Context) {
	err := j.authService.RefreshIfExpiring(ctx, refreshLeeway)
	switch {
	case err == nil, errors.Is(err, context.Canceled):
	case errors.Is(err, ErrSessionExpired):
		j.logger.Info().Msg("session expired in background")
	default:
		j.logger.Warn().Err(err).Msg("background session refresh failed")
	}
}

// Stop cancels the loop and blocks until it has exited. Safe to call when
// the job is not running.
func (j *clientRefreshJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}
