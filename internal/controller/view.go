package controller

import "fmt"

// View is the page the visitor selected. Flags in [State] may override it.
type View int

const (
	ViewLanding View = iota
	ViewLogin
	ViewSignup
	ViewDashboard
	ViewAbout
	ViewTerms
	ViewPrivacy

	viewCount
)

var viewNames = [viewCount]string{
	ViewLanding:   "landing",
	ViewLogin:     "login",
	ViewSignup:    "signup",
	ViewDashboard: "dashboard",
	ViewAbout:     "about",
	ViewTerms:     "terms",
	ViewPrivacy:   "privacy",
}

// Valid reports whether v is one of the declared views.
func (v View) Valid() bool {
	return v >= ViewLanding && v < viewCount
}

func (v View) String() string {
	if !v.Valid() {
		return fmt.Sprintf("View(%d)", int(v))
	}
	return viewNames[v]
}

// ParseView returns the view named name.
func ParseView(name string) (View, error) {
	for i, n := range viewNames {
		if n == name {
			return View(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownView, name)
}

// Screen is what the terminal actually renders for a [State].
type Screen int

const (
	ScreenSetup Screen = iota
	ScreenLoading
	ScreenLanding
	ScreenLogin
	ScreenSignup
	ScreenResolving
	ScreenAdminDashboard
	ScreenUserDashboard
	ScreenAbout
	ScreenTerms
	ScreenPrivacy
)

// DashboardKind selects the dashboard variant.
type DashboardKind int

const (
	// DashboardResolving means the session exists but the profile does not
	// yet.
	DashboardResolving DashboardKind = iota
	DashboardAdmin
	DashboardUser
)
