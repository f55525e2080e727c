package controller

import (
	"testing"

	"github.com/MKhiriev/cyber-aware/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestState_Screen(t *testing.T) {
	session := &models.Session{AccessToken: "a"}
	admin := &models.UserProfile{ID: "1", Role: models.RoleAdmin}
	user := &models.UserProfile{ID: "1", Role: models.RoleUser}

	tests := []struct {
		name  string
		state State
		want  Screen
	}{
		{name: "schema missing beats everything", state: State{SchemaMissing: true, Loading: true, View: ViewDashboard}, want: ScreenSetup},
		{name: "loading beats views", state: State{Loading: true, View: ViewAbout}, want: ScreenLoading},
		{name: "landing", state: State{View: ViewLanding}, want: ScreenLanding},
		{name: "login", state: State{View: ViewLogin}, want: ScreenLogin},
		{name: "signup", state: State{View: ViewSignup}, want: ScreenSignup},
		{name: "about", state: State{View: ViewAbout}, want: ScreenAbout},
		{name: "terms", state: State{View: ViewTerms}, want: ScreenTerms},
		{name: "privacy", state: State{View: ViewPrivacy}, want: ScreenPrivacy},
		{name: "dashboard without session", state: State{View: ViewDashboard}, want: ScreenLogin},
		{name: "dashboard resolving", state: State{View: ViewDashboard, Session: session}, want: ScreenResolving},
		{name: "admin dashboard", state: State{View: ViewDashboard, Session: session, Profile: admin}, want: ScreenAdminDashboard},
		{name: "user dashboard", state: State{View: ViewDashboard, Session: session, Profile: user}, want: ScreenUserDashboard},
		{name: "unknown role keeps resolving", state: State{View: ViewDashboard, Session: session, Profile: &models.UserProfile{Role: "root"}}, want: ScreenResolving},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.state.Screen())
		})
	}
}

func TestState_CloneIsIndependent(t *testing.T) {
	orig := State{
		Session: &models.Session{AccessToken: "a"},
		Profile: &models.UserProfile{ID: "1"},
		Updates: []models.SecurityUpdate{{ID: "p1"}},
		Chat:    []models.ChatMessage{{Role: models.ChatRoleUser, Text: "hi"}},
	}

	cp := orig.clone()
	cp.Session.AccessToken = "b"
	cp.Profile.ID = "2"
	cp.Updates[0].ID = "p9"
	cp.Chat[0].Text = "bye"

	assert.Equal(t, "a", orig.Session.AccessToken)
	assert.Equal(t, "1", orig.Profile.ID)
	assert.Equal(t, "p1", orig.Updates[0].ID)
	assert.Equal(t, "hi", orig.Chat[0].Text)
}

func TestView_ParseAndString(t *testing.T) {
	for v := ViewLanding; v < viewCount; v++ {
		parsed, err := ParseView(v.String())
		require.NoError(t, err)
		assert.Equal(t, v, parsed)
	}

	_, err := ParseView("admin")
	assert.ErrorIs(t, err, ErrUnknownView)
	assert.Equal(t, "View(99)", View(99).String())
}
