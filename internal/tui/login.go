// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"strings"

	"github.com/MKhiriev/cyber-aware/internal/controller"
	"github.com/MKhiriev/cyber-aware/internal/validators"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type authMode int

const (
	authModeLogin authMode = iota
	authModeSignup
)

// AuthFormModel is the Bubble Tea model shared by the login and signup
// screens. It renders an email and a password input and, in signup mode, a
// live checklist of the password rules. Errors and notices come from the
// controller state and are shown under the form.
type AuthFormModel struct {
	env  pageEnv
	mode authMode

	inputs     []textinput.Model
	focus      int
	submitting bool

	errMsg string
	notice string
	err    error
}

func newLoginPage(env pageEnv) *AuthFormModel {
	return newAuthFormModel(env, authModeLogin)
}

func newSignupPage(env pageEnv) *AuthFormModel {
	return newAuthFormModel(env, authModeSignup)
}

func newAuthFormModel(env pageEnv, mode authMode) *AuthFormModel {
	emailInput := textinput.New()
	emailInput.Placeholder = "analyst@example.com"
	emailInput.CharLimit = 254
	emailInput.Width = 40
	emailInput.Focus()

	passwordInput := textinput.New()
	passwordInput.Placeholder = "password"
	passwordInput.CharLimit = 72
	passwordInput.Width = 40
	passwordInput.EchoMode = textinput.EchoPassword
	passwordInput.EchoCharacter = '*'

	return &AuthFormModel{
		env:    env,
		mode:   mode,
		inputs: []textinput.Model{emailInput, passwordInput},
	}
}

// Init implements [tea.Model]. Starts the cursor-blink animation for the
// active input.
func (m *AuthFormModel) Init() tea.Cmd {
	m.errMsg = ""
	return textinput.Blink
}

func (m *AuthFormModel) sync(state controller.State) {
	m.notice = state.Notice
	m.err = state.Err
}

func (m *AuthFormModel) showsErrors() bool {
	return true
}

// Update implements [tea.Model]. Handled messages:
//   - [actionDoneMsg] clears the submitting state and, on success, the
//     password input.
//   - esc goes back to the landing screen.
//   - ctrl+n switches between login and signup.
//   - tab / shift+tab move the focus.
//   - enter submits the form.
//
// All other key events are forwarded to the focused input widget.
func (m *AuthFormModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if done, ok := msg.(actionDoneMsg); ok {
		m.submitting = false
		if done.err == nil {
			m.inputs[1].SetValue("")
		}
		return m, nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch {
		case key.Matches(keyMsg, keys.esc):
			m.errMsg = ""
			m.env.navigate(controller.ViewLanding)
			return m, nil
		case key.Matches(keyMsg, keys.switchTo):
			m.errMsg = ""
			if m.mode == authModeLogin {
				m.env.navigate(controller.ViewSignup)
			} else {
				m.env.navigate(controller.ViewLogin)
			}
			return m, nil
		case key.Matches(keyMsg, keys.tab), keyMsg.Type == tea.KeyDown:
			m.focusNext()
			return m, nil
		case key.Matches(keyMsg, keys.backtab), keyMsg.Type == tea.KeyUp:
			m.focusPrev()
			return m, nil
		case key.Matches(keyMsg, keys.enter):
			return m, m.submit()
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *AuthFormModel) submit() tea.Cmd {
	if m.submitting {
		return nil
	}

	email := strings.TrimSpace(m.inputs[0].Value())
	password := m.inputs[1].Value()
	if email == "" || password == "" {
		m.errMsg = "Email and password are required."
		return nil
	}

	m.errMsg = ""
	m.submitting = true
	m.env.ctl.DismissMessages()

	if m.mode == authModeSignup {
		return m.env.do(controller.ScreenSignup, "sign up", func(ctx context.Context) error {
			return m.env.ctl.SignUp(ctx, email, password)
		})
	}
	return m.env.do(controller.ScreenLogin, "sign in", func(ctx context.Context) error {
		return m.env.ctl.SignIn(ctx, email, password)
	})
}

// View implements [tea.Model].
func (m *AuthFormModel) View() string {
	var b strings.Builder
	b.WriteString("Email     │ [")
	b.WriteString(m.inputs[0].View())
	b.WriteString("]\n")
	b.WriteString("Password  │ [")
	b.WriteString(m.inputs[1].View())
	b.WriteString("]\n")

	if m.mode == authModeSignup {
		strength := validators.CheckPassword(m.inputs[1].Value())
		b.WriteString("\nPassword requirements:\n")
		b.WriteString(checkMark(strength.Length) + " at least 8 characters\n")
		b.WriteString(checkMark(strength.Upper) + " an uppercase letter\n")
		b.WriteString(checkMark(strength.Lower) + " a lowercase letter\n")
		b.WriteString(checkMark(strength.Digit) + " a number\n")
		b.WriteString(checkMark(strength.Special) + " a special character (!@#$%^&*...)\n")
	}

	label := "Decrypt & Enter"
	if m.mode == authModeSignup {
		label = "Register Profile"
	}
	if m.submitting {
		b.WriteString("\n[" + label + "...]\n")
	} else {
		b.WriteString("\n[" + label + "]\n")
	}

	if m.notice != "" {
		b.WriteString("\n" + noticeStyle.Render(wrap(m.notice, defaultWidth)) + "\n")
	}
	if msg := m.errorText(); msg != "" {
		b.WriteString("\n" + errorStyle.Render(wrap(msg, defaultWidth)) + "\n")
	}

	title, switchHint := "SYSTEM ACCESS", "ctrl+n: create account"
	if m.mode == authModeSignup {
		title, switchHint = "CREATE IDENTITY", "ctrl+n: sign in instead"
	}
	return renderPage(title, strings.TrimRight(b.String(), "\n"), "esc: back │ tab: next field │ enter: submit │ "+switchHint)
}

func (m *AuthFormModel) errorText() string {
	if m.errMsg != "" {
		return m.errMsg
	}
	return humanizeError(m.err)
}

func (m *AuthFormModel) focusNext() {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus + 1) % len(m.inputs)
	m.inputs[m.focus].Focus()
}

func (m *AuthFormModel) focusPrev() {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus - 1 + len(m.inputs)) % len(m.inputs)
	m.inputs[m.focus].Focus()
}
