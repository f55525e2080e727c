package tui

import (
	"slices"
	"strings"

	"github.com/MKhiriev/cyber-aware/models"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	fieldTitle = iota
	fieldSummary
	fieldType
	fieldSeverity
	fieldCount
)

// updateFormModel creates or edits a security update.
type updateFormModel struct {
	editingID string

	title       textinput.Model
	summary     textarea.Model
	categories  []models.Category
	severities  []models.Severity
	typeIdx     int
	severityIdx int

	focus      int
	submitting bool
}

func newUpdateFormModel(item *models.SecurityUpdate) updateFormModel {
	title := textinput.New()
	title.Placeholder = "Headline"
	title.CharLimit = 200
	title.Width = 56

	summary := textarea.New()
	summary.Placeholder = "What happened and what readers should do"
	summary.SetWidth(58)
	summary.SetHeight(5)
	summary.ShowLineNumbers = false

	m := updateFormModel{
		title:      title,
		summary:    summary,
		categories: models.Categories(),
		severities: models.Severities(),
	}
	m.title.Focus()

	if item == nil {
		return m
	}

	m.editingID = item.ID
	m.title.SetValue(item.Title)
	m.summary.SetValue(item.Summary)
	if i := slices.Index(m.categories, item.Type); i >= 0 {
		m.typeIdx = i
	}
	if i := slices.Index(m.severities, item.Severity); i >= 0 {
		m.severityIdx = i
	}
	return m
}

func (m updateFormModel) editing() bool {
	return m.editingID != ""
}

func (m updateFormModel) fields() models.UpdateFields {
	return models.UpdateFields{
		Title:    strings.TrimSpace(m.title.Value()),
		Summary:  strings.TrimSpace(m.summary.Value()),
		Type:     m.categories[m.typeIdx],
		Severity: m.severities[m.severityIdx],
	}
}

// update handles input while the form is open. Submission and
// cancellation are decided by the caller.
func (m updateFormModel) update(msg tea.Msg) (updateFormModel, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, keys.tab):
			return m.setFocus((m.focus + 1) % fieldCount)
		case key.Matches(keyMsg, keys.backtab):
			return m.setFocus((m.focus - 1 + fieldCount) % fieldCount)
		case m.focus == fieldTitle && key.Matches(keyMsg, keys.enter):
			return m.setFocus(fieldSummary)
		case m.focus == fieldType && keyMsg.Type == tea.KeyLeft:
			m.typeIdx = (m.typeIdx - 1 + len(m.categories)) % len(m.categories)
			return m, nil
		case m.focus == fieldType && keyMsg.Type == tea.KeyRight:
			m.typeIdx = (m.typeIdx + 1) % len(m.categories)
			return m, nil
		case m.focus == fieldSeverity && keyMsg.Type == tea.KeyLeft:
			m.severityIdx = (m.severityIdx - 1 + len(m.severities)) % len(m.severities)
			return m, nil
		case m.focus == fieldSeverity && keyMsg.Type == tea.KeyRight:
			m.severityIdx = (m.severityIdx + 1) % len(m.severities)
			return m, nil
		}
	}

	var cmd tea.Cmd
	switch m.focus {
	case fieldTitle:
		m.title, cmd = m.title.Update(msg)
	case fieldSummary:
		m.summary, cmd = m.summary.Update(msg)
	}
	return m, cmd
}

func (m updateFormModel) setFocus(field int) (updateFormModel, tea.Cmd) {
	m.title.Blur()
	m.summary.Blur()
	m.focus = field

	switch field {
	case fieldTitle:
		return m, m.title.Focus()
	case fieldSummary:
		return m, m.summary.Focus()
	}
	return m, nil
}

func (m updateFormModel) view(errText string) string {
	var b strings.Builder

	heading := "Publish new update"
	if m.editing() {
		heading = "Edit update"
	}
	b.WriteString(selectedStyle.Render(heading))
	b.WriteString("\n\n")

	b.WriteString(m.label(fieldTitle, "Title"))
	b.WriteString("\n[" + m.title.View() + "]\n\n")
	b.WriteString(m.label(fieldSummary, "Summary"))
	b.WriteString("\n" + m.summary.View() + "\n\n")
	b.WriteString(m.label(fieldType, "Category"))
	b.WriteString("  ◀ " + m.categories[m.typeIdx].String() + " ▶\n")
	b.WriteString(m.label(fieldSeverity, "Severity"))
	b.WriteString("  ◀ " + severityBadge(m.severities[m.severityIdx]) + " ▶\n")

	if m.submitting {
		b.WriteString("\nSaving...\n")
	}
	if errText != "" {
		b.WriteString("\n" + errorStyle.Render(wrap(errText, defaultWidth)) + "\n")
	}

	b.WriteString("\n" + helpStyle.Render("tab: next field │ ←/→: change option │ ctrl+s: save │ esc: cancel"))
	return b.String()
}

func (m updateFormModel) label(field int, text string) string {
	if m.focus == field {
		return selectedStyle.Render("> " + text)
	}
	return "  " + text
}
