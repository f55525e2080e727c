package tui

import (
	"context"

	"github.com/MKhiriev/cyber-aware/internal/controller"
	"github.com/MKhiriev/cyber-aware/internal/logger"
	"github.com/MKhiriev/cyber-aware/models"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// page is one screen of the client. Init is called every time the page
// becomes the current one; sync receives every controller snapshot.
type page interface {
	tea.Model
	sync(state controller.State)
}

// inlineErrorPage is implemented by pages that render state errors next to
// their form instead of in the overlay.
type inlineErrorPage interface {
	showsErrors() bool
}

// pageEnv is what every page needs to talk to the controller.
type pageEnv struct {
	ctx    context.Context
	ctl    *controller.Controller
	logger *logger.Logger
}

// do runs fn outside the update loop and reports its result to screen.
func (e pageEnv) do(screen controller.Screen, action string, fn func(ctx context.Context) error) tea.Cmd {
	return func() tea.Msg {
		err := fn(e.ctx)
		if err != nil {
			e.logger.Debug().Err(err).Str("action", action).Msg("action failed")
		}
		return actionDoneMsg{screen: screen, action: action, err: err}
	}
}

func (e pageEnv) navigate(view controller.View) {
	if err := e.ctl.Navigate(view); err != nil {
		e.logger.Err(err).Str("view", view.String()).Msg("navigation rejected")
	}
}

// RootModel is the TUI router:
// 1) keeps the page matching the controller's current screen
// 2) handles global Ctrl+C quit
// 3) renders the error and build info overlays
// 4) delegates all other messages to the active page
type RootModel struct {
	env pageEnv

	pages   map[controller.Screen]page
	current controller.Screen
	state   controller.State

	buildInfo     models.AppBuildInfo
	showBuildInfo bool

	quitByUser bool
}

// NewRootModel registers all pages and opens the page of the current state.
func NewRootModel(ctx context.Context, ctl *controller.Controller, buildInfo models.AppBuildInfo, logger *logger.Logger) RootModel {
	env := pageEnv{ctx: ctx, ctl: ctl, logger: logger}
	state := ctl.State()

	r := RootModel{
		env: env,
		pages: map[controller.Screen]page{
			controller.ScreenSetup:          newSetupPage(env),
			controller.ScreenLoading:        newLoadingPage(),
			controller.ScreenLanding:        newLandingPage(env),
			controller.ScreenLogin:          newLoginPage(env),
			controller.ScreenSignup:         newSignupPage(env),
			controller.ScreenResolving:      newResolvingPage(env),
			controller.ScreenAdminDashboard: newAdminPage(env),
			controller.ScreenUserDashboard:  newUserPage(env),
			controller.ScreenAbout:          newStaticPage(env, aboutContent),
			controller.ScreenTerms:          newStaticPage(env, termsContent),
			controller.ScreenPrivacy:        newStaticPage(env, privacyContent),
		},
		current:   state.Screen(),
		state:     state,
		buildInfo: buildInfo,
	}
	for _, p := range r.pages {
		p.sync(state)
	}
	return r
}

func (r RootModel) Init() tea.Cmd {
	return tea.Batch(r.waitForChange(), r.pages[r.current].Init())
}

func (r RootModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, keys.forceQuit) {
			r.quitByUser = true
			return r, tea.Quit
		}
		if r.errorOverlayShown() {
			if key.Matches(msg, keys.enter) || key.Matches(msg, keys.esc) {
				r.env.ctl.DismissMessages()
				r.apply(r.env.ctl.State())
			}
			return r, nil
		}
		if r.showBuildInfo {
			if key.Matches(msg, keys.esc) || key.Matches(msg, keys.version) {
				r.showBuildInfo = false
			}
			return r, nil
		}
		if key.Matches(msg, keys.version) && r.current == controller.ScreenLanding {
			r.showBuildInfo = true
			return r, nil
		}
		if key.Matches(msg, keys.quit) && r.current == controller.ScreenLanding {
			r.quitByUser = true
			return r, tea.Quit
		}
	case stateChangedMsg:
		cmd := r.onStateChanged()
		return r, cmd
	case tea.WindowSizeMsg:
		var cmds []tea.Cmd
		for screen, p := range r.pages {
			updated, cmd := p.Update(msg)
			r.store(screen, updated)
			cmds = append(cmds, cmd)
		}
		return r, tea.Batch(cmds...)
	case routedMsg:
		cmd := r.delegate(msg.target(), msg)
		return r, cmd
	}

	cmd := r.delegate(r.current, msg)
	return r, cmd
}

func (r RootModel) View() string {
	if r.showBuildInfo {
		return appStyle.Render(renderBuildInfoWindow(r.buildInfo))
	}

	body := r.pages[r.current].View()
	if r.errorOverlayShown() {
		body += "\n\n" + errorOverlayModel{message: humanizeError(r.state.Err)}.View()
	}
	return appStyle.Render(body)
}

func (r *RootModel) onStateChanged() tea.Cmd {
	previous := r.current
	r.apply(r.env.ctl.State())

	cmds := []tea.Cmd{r.waitForChange()}
	if r.current != previous {
		r.showBuildInfo = false
		cmds = append(cmds, r.pages[r.current].Init())
	}
	return tea.Batch(cmds...)
}

func (r *RootModel) apply(state controller.State) {
	r.state = state
	r.current = state.Screen()
	for _, p := range r.pages {
		p.sync(state)
	}
}

func (r *RootModel) delegate(screen controller.Screen, msg tea.Msg) tea.Cmd {
	p, ok := r.pages[screen]
	if !ok {
		return nil
	}
	updated, cmd := p.Update(msg)
	r.store(screen, updated)
	return cmd
}

func (r *RootModel) store(screen controller.Screen, updated tea.Model) {
	if next, ok := updated.(page); ok {
		r.pages[screen] = next
	}
}

func (r RootModel) errorOverlayShown() bool {
	if r.state.Err == nil {
		return false
	}
	if p, ok := r.pages[r.current].(inlineErrorPage); ok && p.showsErrors() {
		return false
	}
	return true
}

// waitForChange blocks until the controller publishes a change.
func (r RootModel) waitForChange() tea.Cmd {
	ctx := r.env.ctx
	changes := r.env.ctl.Changes()

	return func() tea.Msg {
		select {
		case <-ctx.Done():
			return nil
		case <-changes:
			return stateChangedMsg{}
		}
	}
}
