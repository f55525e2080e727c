package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/cyber-aware/internal/logger"
)

type App struct {
	session SessionLoop
	ui      UI
	workers BackgroundWorkers
	storage io.Closer
	logger  *logger.Logger
}

func NewApp(session SessionLoop, ui UI, workers BackgroundWorkers, storage io.Closer, log *logger.Logger) (*App, error) {
	if session == nil || ui == nil {
		return nil, errors.New("client: session loop and ui are required")
	}

	return &App{
		session: session,
		ui:      ui,
		workers: workers,
		storage: storage,
		logger:  log,
	}, nil
}

// Run blocks until the UI exits, ctx is done or the process receives
// SIGINT/SIGTERM. The session loop and the workers are stopped before it
// returns.
func (a *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if a.workers != nil {
		a.workers.Run(ctx)
	}

	loopCtx, cancelLoop := context.WithCancel(ctx)
	loopErr := make(chan error, 1)
	go func() {
		loopErr <- a.session.Run(loopCtx)
	}()

	a.logger.Info().Msg("client started")
	uiErr := a.ui.Run(ctx)
	if uiErr != nil {
		a.logger.Err(uiErr).Msg("ui stopped with error")
	}

	cancelLoop()
	sessionErr := <-loopErr

	if a.workers != nil {
		a.workers.Stop()
	}

	var closeErr error
	if a.storage != nil {
		if err := a.storage.Close(); err != nil {
			closeErr = fmt.Errorf("close local storage: %w", err)
		}
	}

	a.logger.Info().Msg("client stopped")
	return errors.Join(uiErr, sessionErr, closeErr)
}
