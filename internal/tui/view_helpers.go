package tui

import (
	"fmt"
	"strings"

	"github.com/MKhiriev/cyber-aware/internal/controller"
	"github.com/charmbracelet/lipgloss"
)

const (
	uiDivider    = "──────────────────────────────────────────────────────"
	appName      = "CyberAware"
	defaultWidth = 72
)

func renderPage(title, data, hotKeys string) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")
	b.WriteString("  ")
	b.WriteString(uiDivider)
	b.WriteString("\n\n")

	if strings.TrimSpace(data) != "" {
		lines := strings.Split(data, "\n")
		for _, line := range lines {
			b.WriteString("  ")
			b.WriteString(line)
			b.WriteString("\n")
		}
	} else {
		b.WriteString("  -\n")
	}

	b.WriteString("\n")
	b.WriteString("  ")
	b.WriteString(uiDivider)
	b.WriteString("\n")

	if strings.TrimSpace(hotKeys) != "" {
		b.WriteString("  ")
		b.WriteString(helpStyle.Render(hotKeys))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render("  ctrl+c: quit"))

	return b.String()
}

// navbar renders the account line shown above every signed-in page.
func navbar(state controller.State) string {
	switch {
	case state.Profile != nil:
		return fmt.Sprintf("%s  │  %s (%s)  │  ctrl+o: sign out", appName, state.Profile.Email, state.Profile.Role)
	case state.Session != nil:
		return fmt.Sprintf("%s  │  %s  │  ctrl+o: sign out", appName, state.Session.User.Email)
	default:
		return appName + "  │  not signed in"
	}
}

// wrap breaks text to width columns.
func wrap(text string, width int) string {
	if width <= 0 {
		width = defaultWidth
	}
	return lipgloss.NewStyle().Width(width).Render(text)
}

func fitText(v string, max int) string {
	runes := []rune(v)
	if max <= 0 || len(runes) <= max {
		return v
	}
	if max <= 3 {
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}

func cursor(selected bool) string {
	if selected {
		return "> "
	}
	return "  "
}

func checkMark(ok bool) string {
	if ok {
		return okStyle.Render("[x]")
	}
	return mutedStyle.Render("[ ]")
}
