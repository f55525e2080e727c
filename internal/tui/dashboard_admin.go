// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/cyber-aware/internal/controller"
	"github.com/MKhiriev/cyber-aware/models"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	actionCreate  = "create update"
	actionSave    = "save update"
	actionDelete  = "delete update"
	actionRefresh = "refresh"
)

// adminPage is the content-management dashboard of admin profiles.
type adminPage struct {
	env   pageEnv
	state controller.State

	idx      int
	expanded bool

	form *updateFormModel

	showConfirm   bool
	confirm       confirmModel
	pendingDelete string
	deleting      bool

	status string
}

func newAdminPage(env pageEnv) *adminPage {
	return &adminPage{env: env}
}

func (p *adminPage) Init() tea.Cmd {
	return nil
}

func (p *adminPage) sync(state controller.State) {
	p.state = state
	if p.idx >= len(state.Updates) {
		p.idx = len(state.Updates) - 1
	}
	if p.idx < 0 {
		p.idx = 0
	}
	if state.Profile == nil {
		p.form = nil
		p.showConfirm = false
		p.pendingDelete = ""
	}
}

func (p *adminPage) showsErrors() bool {
	return p.form != nil
}

func (p *adminPage) current() (models.SecurityUpdate, bool) {
	if len(p.state.Updates) == 0 || p.idx < 0 || p.idx >= len(p.state.Updates) {
		return models.SecurityUpdate{}, false
	}
	return p.state.Updates[p.idx], true
}

func (p *adminPage) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case actionDoneMsg:
		return p, p.onActionDone(msg)
	case clearStatusMsg:
		p.status = ""
		return p, nil
	case tea.KeyMsg:
		if p.showConfirm {
			return p, p.updateConfirm(msg)
		}
		if p.form != nil {
			return p, p.updateForm(msg)
		}
		return p, p.updateList(msg)
	}

	if p.form != nil {
		form, cmd := p.form.update(msg)
		p.form = &form
		return p, cmd
	}
	return p, nil
}

func (p *adminPage) onActionDone(msg actionDoneMsg) tea.Cmd {
	switch msg.action {
	case actionCreate, actionSave:
		if p.form != nil {
			p.form.submitting = false
		}
		if msg.err != nil {
			return nil
		}
		p.form = nil
		if msg.action == actionCreate {
			p.status = "Update published."
			p.idx = 0
		} else {
			p.status = "Update saved."
		}
	case actionDelete:
		p.deleting = false
		p.pendingDelete = ""
		if msg.err != nil {
			return nil
		}
		p.status = "Update deleted."
	case actionRefresh:
		if msg.err != nil {
			return nil
		}
		p.status = "Feed refreshed."
	default:
		return nil
	}
	return clearStatusAfter(controller.ScreenAdminDashboard, 3*time.Second)
}

func (p *adminPage) updateList(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, keys.signOut):
		return p.env.do(controller.ScreenAdminDashboard, "sign out", p.env.ctl.SignOut)
	case key.Matches(msg, keys.esc):
		p.env.navigate(controller.ViewLanding)
	case key.Matches(msg, keys.up):
		if p.idx > 0 {
			p.idx--
		}
	case key.Matches(msg, keys.down):
		if p.idx < len(p.state.Updates)-1 {
			p.idx++
		}
	case key.Matches(msg, keys.enter):
		p.expanded = !p.expanded
	case key.Matches(msg, keys.refresh), key.Matches(msg, keys.retry):
		p.status = ""
		return p.env.do(controller.ScreenAdminDashboard, actionRefresh, p.env.ctl.RefreshUpdates)
	case key.Matches(msg, keys.newItem):
		form := newUpdateFormModel(nil)
		p.form = &form
		p.env.ctl.DismissMessages()
		return textinput.Blink
	case key.Matches(msg, keys.edit):
		item, ok := p.current()
		if !ok {
			p.status = "No updates yet."
			return nil
		}
		form := newUpdateFormModel(&item)
		p.form = &form
		p.env.ctl.DismissMessages()
		return textinput.Blink
	case key.Matches(msg, keys.delete):
		item, ok := p.current()
		if !ok {
			p.status = "No updates yet."
			return nil
		}
		p.pendingDelete = item.ID
		p.confirm = confirmModel{message: item.Title}
		p.showConfirm = true
	}
	return nil
}

func (p *adminPage) updateConfirm(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, keys.yes):
		p.showConfirm = false
		if p.pendingDelete == "" || p.deleting {
			return nil
		}
		id := p.pendingDelete
		p.deleting = true
		return p.env.do(controller.ScreenAdminDashboard, actionDelete, func(ctx context.Context) error {
			return p.env.ctl.DeleteUpdate(ctx, id)
		})
	case key.Matches(msg, keys.no), key.Matches(msg, keys.esc):
		p.showConfirm = false
		p.pendingDelete = ""
	}
	return nil
}

func (p *adminPage) updateForm(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, keys.esc):
		p.form = nil
		p.env.ctl.DismissMessages()
		return nil
	case key.Matches(msg, keys.save):
		if p.form.submitting {
			return nil
		}
		p.form.submitting = true
		p.env.ctl.DismissMessages()

		fields := p.form.fields()
		if p.form.editing() {
			id := p.form.editingID
			return p.env.do(controller.ScreenAdminDashboard, actionSave, func(ctx context.Context) error {
				return p.env.ctl.SaveUpdate(ctx, id, fields)
			})
		}
		return p.env.do(controller.ScreenAdminDashboard, actionCreate, func(ctx context.Context) error {
			return p.env.ctl.CreateUpdate(ctx, fields)
		})
	}

	form, cmd := p.form.update(msg)
	p.form = &form
	return cmd
}

func (p *adminPage) View() string {
	var b strings.Builder
	b.WriteString(navbar(p.state))
	b.WriteString("\n\n")

	if p.form != nil {
		b.WriteString(p.form.view(humanizeError(p.state.Err)))
		return renderPage("ADMIN DASHBOARD", b.String(), "")
	}

	b.WriteString(fmt.Sprintf("Published updates: %d\n\n", len(p.state.Updates)))
	if len(p.state.Updates) == 0 {
		b.WriteString(mutedStyle.Render("Nothing published yet. Press n to write the first update."))
		b.WriteString("\n")
	}
	for i, u := range p.state.Updates {
		line := fmt.Sprintf("%s%s %-48s %s", cursor(i == p.idx), severityBadge(u.Severity), fitText(u.Title, 48),
			mutedStyle.Render(u.CreatedAt.Local().Format("2006-01-02")))
		b.WriteString(line)
		b.WriteString("\n")
		if i == p.idx && p.expanded {
			b.WriteString(mutedStyle.Render("    " + u.Type.String()))
			b.WriteString("\n")
			b.WriteString(cardStyle.Render(wrap(u.Summary, defaultWidth-8)))
			b.WriteString("\n")
		}
	}

	if p.deleting {
		b.WriteString("\nDeleting...\n")
	}
	if p.status != "" {
		b.WriteString("\n" + noticeStyle.Render(p.status) + "\n")
	}
	if p.showConfirm {
		b.WriteString("\n" + p.confirm.View() + "\n")
	}

	return renderPage("ADMIN DASHBOARD", strings.TrimRight(b.String(), "\n"),
		"n: new │ e: edit │ d: delete │ enter: preview │ r: refresh │ esc: landing │ ctrl+o: sign out")
}
