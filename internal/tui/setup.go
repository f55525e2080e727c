package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/cyber-aware/internal/controller"
	"github.com/MKhiriev/cyber-aware/migrations"
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

const setupScriptRows = 14

// setupPage is the database initialization wizard shown while the backend
// tables are missing.
type setupPage struct {
	env pageEnv

	script    []string
	scriptErr error
	scroll    int

	retrying bool
	status   string
	errMsg   string
}

func newSetupPage(env pageEnv) *setupPage {
	p := &setupPage{env: env}

	script, err := migrations.ProvisioningScript()
	if err != nil {
		p.scriptErr = err
		return p
	}
	p.script = strings.Split(strings.TrimRight(script, "\n"), "\n")
	return p
}

func (p *setupPage) Init() tea.Cmd {
	p.retrying = false
	return nil
}

func (p *setupPage) sync(controller.State) {}

func (p *setupPage) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case actionDoneMsg:
		p.retrying = false
		if msg.err == nil && p.env.ctl.State().SchemaMissing {
			p.errMsg = "Tables are still missing. Run the script, then verify again."
		}
		return p, nil
	case copiedMsg:
		if msg.err != nil {
			p.errMsg = "Copy failed: " + msg.err.Error()
			return p, nil
		}
		p.status = "Script copied to clipboard."
		return p, clearStatusAfter(controller.ScreenSetup, 3*time.Second)
	case clearStatusMsg:
		p.status = ""
		return p, nil
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.quit):
			return p, tea.Quit
		case key.Matches(msg, keys.up):
			if p.scroll > 0 {
				p.scroll--
			}
		case key.Matches(msg, keys.down):
			if p.scroll < len(p.script)-setupScriptRows {
				p.scroll++
			}
		case key.Matches(msg, keys.copy):
			if p.scriptErr != nil {
				return p, nil
			}
			return p, cmdCopyToClipboard(strings.Join(p.script, "\n"))
		case key.Matches(msg, keys.retry), key.Matches(msg, keys.enter):
			if p.retrying {
				return p, nil
			}
			p.retrying = true
			p.errMsg = ""
			return p, p.env.do(controller.ScreenSetup, "verify schema", func(ctx context.Context) error {
				p.env.ctl.RetrySchema(ctx)
				return nil
			})
		}
	}
	return p, nil
}

func (p *setupPage) View() string {
	var b strings.Builder

	b.WriteString("The backend database is not initialized.\n\n")
	b.WriteString("1. Open the Supabase dashboard of your project -> SQL Editor.\n")
	b.WriteString("2. Paste the script below (c copies it) and run it.\n")
	b.WriteString("   Or run `provision` with STORAGE_REMOTE_DATABASE_URI set.\n")
	b.WriteString("3. Press r to verify the database sync.\n\n")

	if p.scriptErr != nil {
		b.WriteString(errorStyle.Render("Script unavailable: " + p.scriptErr.Error()))
		b.WriteString("\n")
	} else {
		end := min(p.scroll+setupScriptRows, len(p.script))
		b.WriteString(cardStyle.Render(strings.Join(p.script[p.scroll:end], "\n")))
		b.WriteString("\n")
		b.WriteString(mutedStyle.Render(fmt.Sprintf("lines %d-%d of %d", p.scroll+1, end, len(p.script))))
		b.WriteString("\n")
	}

	if p.retrying {
		b.WriteString("\nVerifying database sync...\n")
	}
	if p.status != "" {
		b.WriteString("\n" + noticeStyle.Render(p.status) + "\n")
	}
	if p.errMsg != "" {
		b.WriteString("\n" + errorStyle.Render(p.errMsg) + "\n")
	}

	return renderPage("DATABASE INITIALIZATION REQUIRED", strings.TrimRight(b.String(), "\n"), "c: copy script │ r: verify database sync │ ↑/↓: scroll │ q: quit")
}

func cmdCopyToClipboard(text string) tea.Cmd {
	return func() tea.Msg {
		return copiedMsg{err: clipboard.WriteAll(text)}
	}
}

func clearStatusAfter(screen controller.Screen, d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return clearStatusMsg{screen: screen}
	})
}
