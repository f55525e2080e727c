package tui

import (
	"strings"

	"github.com/MKhiriev/cyber-aware/internal/controller"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type staticContent struct {
	title    string
	sections []staticSection
}

type staticSection struct {
	heading string
	body    string
}

var aboutContent = staticContent{
	title: "OUR MISSION",
	sections: []staticSection{
		{
			heading: "Securing the digital horizon through awareness",
			body:    "Most breaches start with a person, not a firewall. CyberAware turns daily threat intelligence into habits: short updates you can act on, an assistant that answers questions in plain language, and practice sets that make secure behaviour reflexive.",
		},
		{
			heading: "Real-Time Intelligence",
			body:    "Administrators publish alerts on phishing waves, malware campaigns and newly disclosed vulnerabilities, each with a category and a severity.",
		},
		{
			heading: "Interactive Learning",
			body:    "Quizzes and flashcards are generated on demand for the security domain you choose.",
		},
	},
}

var termsContent = staticContent{
	title: "TERMS & CONDITIONS",
	sections: []staticSection{
		{
			heading: "1. Acceptance",
			body:    "By creating an account you agree to use the service for lawful security education and awareness only.",
		},
		{
			heading: "2. Accounts",
			body:    "You are responsible for the confidentiality of your credentials. Administrator access is granted by the project owner and may be revoked at any time.",
		},
		{
			heading: "3. AI-generated content",
			body:    "Assistant answers, quizzes and flashcards are generated automatically and may be inaccurate. They are not professional security advice.",
		},
		{
			heading: "4. Availability",
			body:    "The service is provided as is, without uptime guarantees.",
		},
	},
}

var privacyContent = staticContent{
	title: "PRIVACY POLICY",
	sections: []staticSection{
		{
			heading: "Data Collection",
			body:    "We store your email address, your role and the questions you ask the assistant together with its answers.",
		},
		{
			heading: "How We Use Your Information",
			body:    "Your data is used to authenticate you, to show content for your role and to improve awareness material. It is never sold.",
		},
		{
			heading: "Security of Data",
			body:    "Records are protected by row-level security: you can read only your own profile and chat history.",
		},
	},
}

type staticPage struct {
	env     pageEnv
	content staticContent
	signed  bool
}

func newStaticPage(env pageEnv, content staticContent) *staticPage {
	return &staticPage{env: env, content: content}
}

func (p *staticPage) Init() tea.Cmd {
	return nil
}

func (p *staticPage) sync(state controller.State) {
	p.signed = state.HasSession()
}

func (p *staticPage) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil
	}

	switch {
	case key.Matches(keyMsg, keys.esc), key.Matches(keyMsg, keys.quit):
		p.env.navigate(controller.ViewLanding)
	case key.Matches(keyMsg, keys.enter) && p.signed:
		p.env.navigate(controller.ViewDashboard)
	}
	return p, nil
}

func (p *staticPage) View() string {
	var b strings.Builder
	for i, s := range p.content.sections {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(selectedStyle.Render(s.heading))
		b.WriteString("\n")
		b.WriteString(wrap(s.body, defaultWidth))
	}

	hotKeys := "esc: back"
	if p.signed {
		hotKeys += " │ enter: dashboard"
	}
	return renderPage(p.content.title, b.String(), hotKeys)
}
