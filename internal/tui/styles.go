package tui

import (
	"github.com/MKhiriev/cyber-aware/models"
	"github.com/charmbracelet/lipgloss"
)

var (
	appStyle        = lipgloss.NewStyle().Padding(1, 2)
	titleStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("45"))
	helpStyle       = lipgloss.NewStyle().Faint(true)
	errorStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203"))
	noticeStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("80"))
	selectedStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("45"))
	mutedStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	okStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	overlayBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(1, 2)
	cardStyle       = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Padding(0, 1)
)

var severityColors = map[models.Severity]lipgloss.Color{
	models.SeverityLow:      lipgloss.Color("42"),
	models.SeverityMedium:   lipgloss.Color("220"),
	models.SeverityHigh:     lipgloss.Color("208"),
	models.SeverityCritical: lipgloss.Color("196"),
}

func severityBadge(s models.Severity) string {
	style := lipgloss.NewStyle().Bold(true)
	if c, ok := severityColors[s]; ok {
		style = style.Foreground(c)
	}
	return style.Render("[" + string(s) + "]")
}
