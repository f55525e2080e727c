package tui

import (
	"strings"

	"github.com/MKhiriev/cyber-aware/models"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
)

const chatVisibleMessages = 8

const chatGreeting = "Hello! I'm CyberAware AI. Ask me anything about phishing, malware, passwords or staying safe online."

// chatModel renders the assistant transcript kept by the controller and
// the message input.
type chatModel struct {
	input   textinput.Model
	spinner spinner.Model

	transcript []models.ChatMessage
	pending    bool
	width      int
}

func newChatModel() chatModel {
	in := textinput.New()
	in.Placeholder = "Ask about a threat..."
	in.CharLimit = 1000
	in.Width = 56

	s := spinner.New()
	s.Spinner = spinner.Ellipsis

	return chatModel{input: in, spinner: s}
}

// take returns the typed message and clears the input.
func (m *chatModel) take() string {
	text := strings.TrimSpace(m.input.Value())
	if text != "" {
		m.input.SetValue("")
	}
	return text
}

func (m chatModel) view() string {
	var b strings.Builder

	width := defaultWidth - 8
	if m.width > 20 {
		width = min(m.width-12, defaultWidth)
	}

	messages := m.transcript
	if len(messages) == 0 {
		b.WriteString(mutedStyle.Render(wrap("AI: "+chatGreeting, width)))
		b.WriteString("\n")
	}
	if len(messages) > chatVisibleMessages {
		b.WriteString(mutedStyle.Render("  ..."))
		b.WriteString("\n")
		messages = messages[len(messages)-chatVisibleMessages:]
	}
	for _, msg := range messages {
		if msg.Role == models.ChatRoleUser {
			b.WriteString(selectedStyle.Render("You: "))
		} else {
			b.WriteString(noticeStyle.Render("AI:  "))
		}
		b.WriteString(wrap(msg.Text, width))
		b.WriteString("\n")
	}
	if m.pending {
		b.WriteString(noticeStyle.Render("AI:  ") + m.spinner.View())
		b.WriteString("\n")
	}

	b.WriteString("\n> ")
	b.WriteString(m.input.View())
	return b.String()
}
