// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"strings"

	"github.com/MKhiriev/cyber-aware/internal/controller"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

type userTab int

const (
	tabFeed userTab = iota
	tabLearning
	tabChat
)

var userTabNames = []string{"Threat Feed", "Learning Hub", "AI Assistant"}

// userPage is the dashboard of profiles with the user role.
type userPage struct {
	env   pageEnv
	state controller.State

	tab      userTab
	feed     feedModel
	learning learningModel
	chat     chatModel
	status   string
}

func newUserPage(env pageEnv) *userPage {
	return &userPage{
		env:      env,
		feed:     newFeedModel(),
		learning: newLearningModel(),
		chat:     newChatModel(),
	}
}

func (p *userPage) Init() tea.Cmd {
	if p.tab == tabChat {
		return p.chat.input.Focus()
	}
	return nil
}

func (p *userPage) sync(state controller.State) {
	p.state = state
	p.feed.setUpdates(state.Updates)
	p.chat.transcript = state.Chat
	p.chat.pending = state.ChatPending

	if state.Profile == nil {
		p.learning = newLearningModel()
		p.chat.input.SetValue("")
		p.tab = tabFeed
	}
}

func (p *userPage) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		p.feed.width = msg.Width
		p.chat.width = msg.Width
		return p, nil
	case quizGeneratedMsg:
		p.learning.quizReady(msg)
		return p, nil
	case flashcardsGeneratedMsg:
		p.learning.flashcardsReady(msg)
		return p, nil
	case actionDoneMsg:
		if msg.err == nil && msg.action == "refresh" {
			p.status = "Feed refreshed."
		}
		return p, nil
	case spinner.TickMsg:
		var cmds []tea.Cmd
		var cmd tea.Cmd
		if p.learning.mode == learnGenerating {
			p.learning.spinner, cmd = p.learning.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
		if p.chat.pending {
			p.chat.spinner, cmd = p.chat.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
		return p, tea.Batch(cmds...)
	case tea.KeyMsg:
		return p, p.handleKey(msg)
	}

	if p.tab == tabChat {
		var cmd tea.Cmd
		p.chat.input, cmd = p.chat.input.Update(msg)
		return p, cmd
	}
	return p, nil
}

func (p *userPage) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, keys.signOut):
		return p.env.do(controller.ScreenUserDashboard, "sign out", p.env.ctl.SignOut)
	case key.Matches(msg, keys.refresh):
		p.status = ""
		return p.env.do(controller.ScreenUserDashboard, "refresh", p.env.ctl.RefreshUpdates)
	case key.Matches(msg, keys.tab):
		return p.switchTab((p.tab + 1) % userTab(len(userTabNames)))
	case key.Matches(msg, keys.backtab):
		return p.switchTab((p.tab - 1 + userTab(len(userTabNames))) % userTab(len(userTabNames)))
	case key.Matches(msg, keys.esc) && !(p.tab == tabLearning && p.learning.nested()):
		p.env.navigate(controller.ViewLanding)
		return nil
	}

	switch p.tab {
	case tabFeed:
		p.feed = p.feed.update(msg)
	case tabLearning:
		var req *learningRequest
		p.learning, req = p.learning.update(msg)
		if req != nil {
			return p.generate(*req)
		}
	case tabChat:
		if key.Matches(msg, keys.enter) {
			return p.send()
		}
		var cmd tea.Cmd
		p.chat.input, cmd = p.chat.input.Update(msg)
		return cmd
	}
	return nil
}

func (p *userPage) switchTab(tab userTab) tea.Cmd {
	p.tab = tab
	p.status = ""
	if tab == tabChat {
		return p.chat.input.Focus()
	}
	p.chat.input.Blur()
	return nil
}

func (p *userPage) generate(req learningRequest) tea.Cmd {
	ctl := p.env.ctl
	ctx := p.env.ctx
	tick := p.learning.start(req.kind, req.category)

	if req.kind == kindFlashcards {
		return tea.Batch(tick, func() tea.Msg {
			return flashcardsGeneratedMsg{category: req.category, cards: ctl.GenerateFlashcards(ctx, req.category)}
		})
	}
	return tea.Batch(tick, func() tea.Msg {
		return quizGeneratedMsg{category: req.category, questions: ctl.GenerateQuiz(ctx, req.category)}
	})
}

func (p *userPage) send() tea.Cmd {
	if p.chat.pending {
		return nil
	}
	text := p.chat.take()
	if text == "" {
		return nil
	}

	p.chat.pending = true
	return tea.Batch(p.chat.spinner.Tick, p.env.do(controller.ScreenUserDashboard, "chat", func(ctx context.Context) error {
		return p.env.ctl.Chat(ctx, text)
	}))
}

func (p *userPage) View() string {
	var b strings.Builder
	b.WriteString(navbar(p.state))
	b.WriteString("\n\n")

	tabs := make([]string, len(userTabNames))
	for i, name := range userTabNames {
		if userTab(i) == p.tab {
			tabs[i] = selectedStyle.Render("[" + name + "]")
		} else {
			tabs[i] = mutedStyle.Render(" " + name + " ")
		}
	}
	b.WriteString(strings.Join(tabs, "  "))
	b.WriteString("\n\n")

	var hotKeys string
	switch p.tab {
	case tabFeed:
		b.WriteString(p.feed.view())
		hotKeys = "←/→: filter │ ↑/↓: select │ enter: preview │ ctrl+r: refresh"
	case tabLearning:
		b.WriteString(p.learning.view())
		hotKeys = "↑/↓: select │ esc: back"
	case tabChat:
		b.WriteString(p.chat.view())
		hotKeys = "enter: send"
	}

	if p.status != "" {
		b.WriteString("\n\n" + noticeStyle.Render(p.status))
	}

	return renderPage("USER DASHBOARD", b.String(), "tab: switch │ "+hotKeys+" │ ctrl+o: sign out")
}
