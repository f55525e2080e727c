package tui

import (
	"github.com/MKhiriev/cyber-aware/internal/controller"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

type loadingPage struct {
	spinner spinner.Model
}

func newLoadingPage() *loadingPage {
	s := spinner.New()
	s.Spinner = spinner.MiniDot
	return &loadingPage{spinner: s}
}

func (p *loadingPage) Init() tea.Cmd {
	return p.spinner.Tick
}

func (p *loadingPage) sync(controller.State) {}

func (p *loadingPage) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	p.spinner, cmd = p.spinner.Update(msg)
	return p, cmd
}

func (p *loadingPage) View() string {
	return p.spinner.View() + " Initializing protocol..."
}
