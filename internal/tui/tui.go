// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package tui renders the cyber-aware view state in the terminal.
//
// Every screen is a page model driven by [controller.State] snapshots. Pages
// never mutate state themselves: they call controller methods from tea
// commands and redraw when the controller signals a change.
package tui

import (
	"context"
	"errors"

	"github.com/MKhiriev/cyber-aware/internal/controller"
	"github.com/MKhiriev/cyber-aware/internal/logger"
	"github.com/MKhiriev/cyber-aware/internal/service"
	tea "github.com/charmbracelet/bubbletea"
)

type TUI struct {
	controller *controller.Controller
	appInfo    service.AppInfoService
	logger     *logger.Logger
}

func New(ctl *controller.Controller, appInfo service.AppInfoService, logger *logger.Logger) (*TUI, error) {
	if ctl == nil {
		return nil, errors.New("tui: controller is required")
	}
	return &TUI{controller: ctl, appInfo: appInfo, logger: logger}, nil
}

// Run blocks until the visitor quits or ctx is done.
func (t *TUI) Run(ctx context.Context) error {
	buildInfo := t.appInfo.GetBuildInfo(ctx)
	root := NewRootModel(ctx, t.controller, buildInfo, t.logger)

	finalModel, err := tea.NewProgram(root, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return err
	}

	if result, ok := finalModel.(RootModel); ok && result.quitByUser {
		t.logger.Info().Msg("user quit")
	}
	return nil
}
