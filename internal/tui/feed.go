package tui

import (
	"fmt"
	"strings"

	"github.com/MKhiriev/cyber-aware/models"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/samber/lo"
)

const filterAll = "All"

// feedModel lists security updates with a category filter and an expandable
// preview of the selected entry.
type feedModel struct {
	updates   []models.SecurityUpdate
	filters   []string
	filterIdx int
	idx       int
	expanded  bool
	width     int
}

func newFeedModel() feedModel {
	filters := append([]string{filterAll}, lo.Map(models.Categories(), func(c models.Category, _ int) string {
		return c.String()
	})...)
	return feedModel{filters: filters}
}

func (m *feedModel) setUpdates(updates []models.SecurityUpdate) {
	m.updates = updates
	m.clamp()
}

// visible returns the updates matching the selected filter in list order.
func (m feedModel) visible() []models.SecurityUpdate {
	if m.filterIdx == 0 {
		return m.updates
	}
	selected := models.Category(m.filters[m.filterIdx])
	return lo.Filter(m.updates, func(u models.SecurityUpdate, _ int) bool {
		return u.Type == selected
	})
}

func (m *feedModel) clamp() {
	n := len(m.visible())
	if m.idx >= n {
		m.idx = n - 1
	}
	if m.idx < 0 {
		m.idx = 0
	}
}

func (m feedModel) update(msg tea.KeyMsg) feedModel {
	switch {
	case key.Matches(msg, keys.left):
		m.filterIdx = (m.filterIdx - 1 + len(m.filters)) % len(m.filters)
		m.idx, m.expanded = 0, false
	case key.Matches(msg, keys.right):
		m.filterIdx = (m.filterIdx + 1) % len(m.filters)
		m.idx, m.expanded = 0, false
	case key.Matches(msg, keys.up):
		if m.idx > 0 {
			m.idx--
		}
	case key.Matches(msg, keys.down):
		if m.idx < len(m.visible())-1 {
			m.idx++
		}
	case key.Matches(msg, keys.enter):
		m.expanded = !m.expanded
	}
	m.clamp()
	return m
}

func (m feedModel) view() string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Filter: ◀ %s ▶\n\n", selectedStyle.Render(m.filters[m.filterIdx])))

	items := m.visible()
	if len(items) == 0 {
		b.WriteString(mutedStyle.Render("No updates in this category yet."))
		return b.String()
	}

	for i, u := range items {
		line := fmt.Sprintf("%s%s %s", cursor(i == m.idx), severityBadge(u.Severity), fitText(u.Title, 48))
		b.WriteString(line)
		b.WriteString("\n")
		b.WriteString(mutedStyle.Render(fmt.Sprintf("    %s · %s", u.Type, u.CreatedAt.Local().Format("2006-01-02 15:04"))))
		b.WriteString("\n")

		if i == m.idx && m.expanded {
			b.WriteString(cardStyle.Render(wrap(u.Summary, m.previewWidth())))
			b.WriteString("\n")
		}
	}

	return strings.TrimRight(b.String(), "\n")
}

func (m feedModel) previewWidth() int {
	if m.width > 20 {
		return min(m.width-12, defaultWidth)
	}
	return defaultWidth - 8
}
