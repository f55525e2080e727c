package controller

import (
	"slices"

	"github.com/MKhiriev/cyber-aware/models"
)

// State is an immutable snapshot handed to the views.
type State struct {
	// SchemaMissing overrides every view with the setup screen.
	SchemaMissing bool
	// Loading overrides every view during the startup probe.
	Loading bool

	View    View
	Session *models.Session
	Profile *models.UserProfile
	Updates []models.SecurityUpdate

	Chat        []models.ChatMessage
	ChatPending bool

	// Notice is informational text such as a pending verification hint.
	Notice string
	// Err is the last failure the views should show. It never changes the
	// view.
	Err error
}

// HasSession reports whether a session is present.
func (s State) HasSession() bool {
	return s.Session != nil
}

// DashboardKind is the single role dispatch point.
func (s State) DashboardKind() DashboardKind {
	if s.Profile == nil {
		return DashboardResolving
	}
	switch s.Profile.Role {
	case models.RoleAdmin:
		return DashboardAdmin
	case models.RoleUser:
		return DashboardUser
	default:
		return DashboardResolving
	}
}

// Screen resolves the flags and the selected view into exactly one screen.
func (s State) Screen() Screen {
	switch {
	case s.SchemaMissing:
		return ScreenSetup
	case s.Loading:
		return ScreenLoading
	}

	switch s.View {
	case ViewLogin:
		return ScreenLogin
	case ViewSignup:
		return ScreenSignup
	case ViewAbout:
		return ScreenAbout
	case ViewTerms:
		return ScreenTerms
	case ViewPrivacy:
		return ScreenPrivacy
	case ViewDashboard:
		if !s.HasSession() {
			return ScreenLogin
		}
		switch s.DashboardKind() {
		case DashboardAdmin:
			return ScreenAdminDashboard
		case DashboardUser:
			return ScreenUserDashboard
		default:
			return ScreenResolving
		}
	default:
		return ScreenLanding
	}
}

// ChatAvailable reports whether the chat widget is shown.
func (s State) ChatAvailable() bool {
	return s.DashboardKind() == DashboardUser
}

func (s State) clone() State {
	out := s
	if s.Session != nil {
		session := *s.Session
		out.Session = &session
	}
	if s.Profile != nil {
		profile := *s.Profile
		out.Profile = &profile
	}
	out.Updates = slices.Clone(s.Updates)
	out.Chat = slices.Clone(s.Chat)
	return out
}
