package tui

import (
	"fmt"
	"strings"

	"github.com/MKhiriev/cyber-aware/internal/controller"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type menuAction int

const (
	actionSignup menuAction = iota
	actionLogin
	actionDashboard
	actionSignOut
	actionAbout
	actionTerms
	actionPrivacy
	actionQuit
)

type menuItem struct {
	label  string
	action menuAction
}

var landingFeatures = []string{
	"Real-Time Threat Feed: phishing, malware and vulnerability updates with severity indicators.",
	"AI Cyber Assistant: ask security questions and get concise answers.",
	"Learn & Test: AI-generated quizzes and flashcards per security domain.",
	"Role-Based Access: admins publish intelligence, users learn and stay aware.",
}

// MenuModel is the landing screen with the marketing text and the
// navigation menu.
type MenuModel struct {
	env pageEnv

	items      []menuItem
	idx        int
	hasSession bool
	status     string
}

func newLandingPage(env pageEnv) *MenuModel {
	m := &MenuModel{env: env}
	m.sync(controller.State{})
	return m
}

func (m *MenuModel) Init() tea.Cmd {
	return nil
}

func (m *MenuModel) sync(state controller.State) {
	m.hasSession = state.HasSession()
	m.status = state.Notice

	if m.hasSession {
		m.items = []menuItem{
			{label: "Return to Dashboard", action: actionDashboard},
			{label: "Sign out", action: actionSignOut},
		}
	} else {
		m.items = []menuItem{
			{label: "Start Learning Now", action: actionSignup},
			{label: "Sign in", action: actionLogin},
		}
	}
	m.items = append(m.items,
		menuItem{label: "About", action: actionAbout},
		menuItem{label: "Terms & Conditions", action: actionTerms},
		menuItem{label: "Privacy Policy", action: actionPrivacy},
		menuItem{label: "Quit", action: actionQuit},
	)
	m.idx = min(m.idx, len(m.items)-1)
}

func (m *MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "up", "k":
		if m.idx > 0 {
			m.idx--
		}
	case "down", "j":
		if m.idx < len(m.items)-1 {
			m.idx++
		}
	case "enter":
		return m, m.run(m.items[m.idx].action)
	}

	return m, nil
}

func (m *MenuModel) run(action menuAction) tea.Cmd {
	switch action {
	case actionSignup:
		m.env.navigate(controller.ViewSignup)
	case actionLogin:
		m.env.navigate(controller.ViewLogin)
	case actionDashboard:
		m.env.navigate(controller.ViewDashboard)
	case actionSignOut:
		return m.env.do(controller.ScreenLanding, "sign out", m.env.ctl.SignOut)
	case actionAbout:
		m.env.navigate(controller.ViewAbout)
	case actionTerms:
		m.env.navigate(controller.ViewTerms)
	case actionPrivacy:
		m.env.navigate(controller.ViewPrivacy)
	case actionQuit:
		return tea.Quit
	}
	return nil
}

func (m *MenuModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Cyber Security Daily Briefing"))
	b.WriteString("\n")
	b.WriteString("Real-Time Threat Awareness. Smarter Digital Defense.\n\n")
	for _, f := range landingFeatures {
		b.WriteString(wrap("• "+f, defaultWidth))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	labelWidth := 0
	for _, item := range m.items {
		labelWidth = max(labelWidth, lipgloss.Width(item.label))
	}
	for i, item := range m.items {
		line := fmt.Sprintf("%s%-*s", cursor(i == m.idx), labelWidth, item.label)
		if i == m.idx {
			line = selectedStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	if m.status != "" {
		b.WriteString("\n" + noticeStyle.Render(m.status) + "\n")
	}

	return renderPage(strings.ToUpper(appName), strings.TrimRight(b.String(), "\n"), "enter: select │ ↑/↓: navigate │ v: version │ q: quit")
}
