package tui

import (
	"strings"

	"github.com/MKhiriev/cyber-aware/internal/controller"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// resolvingPage is the dashboard while the profile of the signed-in
// identity is not known yet.
type resolvingPage struct {
	env     pageEnv
	spinner spinner.Model
	state   controller.State

	retrying bool
}

func newResolvingPage(env pageEnv) *resolvingPage {
	s := spinner.New()
	s.Spinner = spinner.Dot
	return &resolvingPage{env: env, spinner: s}
}

func (p *resolvingPage) Init() tea.Cmd {
	return p.spinner.Tick
}

func (p *resolvingPage) sync(state controller.State) {
	p.state = state
}

func (p *resolvingPage) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case actionDoneMsg:
		p.retrying = false
		return p, nil
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.retry):
			if p.retrying {
				return p, nil
			}
			p.retrying = true
			p.env.ctl.DismissMessages()
			return p, p.env.do(controller.ScreenResolving, "retry profile", p.env.ctl.RetryProfile)
		case key.Matches(msg, keys.signOut):
			return p, p.env.do(controller.ScreenResolving, "sign out", p.env.ctl.SignOut)
		case key.Matches(msg, keys.esc):
			p.env.navigate(controller.ViewLanding)
		}
		return p, nil
	}

	var cmd tea.Cmd
	p.spinner, cmd = p.spinner.Update(msg)
	return p, cmd
}

func (p *resolvingPage) View() string {
	var b strings.Builder
	b.WriteString(navbar(p.state))
	b.WriteString("\n\n")
	b.WriteString(p.spinner.View())
	b.WriteString(" Synchronizing Credentials...\n\n")
	b.WriteString(wrap("Identifying security profile. If this takes too long, your database might be uninitialized.", defaultWidth))
	if p.retrying {
		b.WriteString("\n\nRetrying connection...")
	}
	return renderPage("DASHBOARD", b.String(), "r: retry connection │ ctrl+o: sign out │ esc: landing")
}
