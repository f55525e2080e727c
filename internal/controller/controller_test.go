package controller

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/MKhiriev/cyber-aware/internal/logger"
	"github.com/MKhiriev/cyber-aware/internal/mock"
	"github.com/MKhiriev/cyber-aware/internal/mock/servicemock"
	"github.com/MKhiriev/cyber-aware/internal/service"
	"github.com/MKhiriev/cyber-aware/internal/store"
	"github.com/MKhiriev/cyber-aware/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const (
	aliceID = "6f1c2d3e-4b5a-4c6d-8e7f-9a0b1c2d3e4f"
	bobID   = "0b6c1f9e-5d2a-4c1e-9a51-7f0c3e2d1aff"
)

type testDeps struct {
	auth      *servicemock.MockAuthService
	profiles  *servicemock.MockProfileService
	content   *servicemock.MockContentService
	assistant *servicemock.MockAssistantService
}

func newTestController(t *testing.T) (*Controller, testDeps) {
	t.Helper()
	ctrl := gomock.NewController(t)
	deps := testDeps{
		auth:      servicemock.NewMockAuthService(ctrl),
		profiles:  servicemock.NewMockProfileService(ctrl),
		content:   servicemock.NewMockContentService(ctrl),
		assistant: servicemock.NewMockAssistantService(ctrl),
	}
	c := NewController(deps.auth, deps.profiles, deps.content, deps.assistant, logger.Nop())
	return c, deps
}

func sessionFor(id, email string) *models.Session {
	return &models.Session{
		AccessToken:  "access-" + id,
		RefreshToken: "refresh-" + id,
		ExpiresAt:    time.Now().Add(time.Hour),
		User:         models.Identity{ID: id, Email: email},
	}
}

func profileFor(id, email string, role models.Role) models.UserProfile {
	return models.UserProfile{ID: id, Email: email, Role: role}
}

func feed() []models.SecurityUpdate {
	base := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	return []models.SecurityUpdate{
		{ID: "p1", Title: "Zero-day in VPN appliance", CreatedAt: base.Add(2 * time.Hour)},
		{ID: "p2", Title: "Invoice phishing wave", CreatedAt: base.Add(time.Hour)},
		{ID: "p3", Title: "Password reuse reminder", CreatedAt: base},
	}
}

// ── startup ──────────────────────────────────────────────────────────────────

func TestController_Start_SchemaMissing(t *testing.T) {
	c, deps := newTestController(t)
	ctx := context.Background()

	deps.content.EXPECT().ProbeSchema(ctx).Return(store.ErrSchemaMissing)

	c.Start(ctx)

	state := c.State()
	assert.True(t, state.SchemaMissing)
	assert.False(t, state.Loading)
	assert.Equal(t, ScreenSetup, state.Screen())
}

func TestController_Start_NoSession(t *testing.T) {
	c, deps := newTestController(t)
	ctx := context.Background()

	assert.Equal(t, ScreenLoading, c.State().Screen())

	deps.content.EXPECT().ProbeSchema(ctx).Return(nil)
	deps.auth.EXPECT().GetSession(ctx).Return(nil, nil)

	c.Start(ctx)

	state := c.State()
	assert.False(t, state.HasSession())
	assert.Equal(t, ScreenLanding, state.Screen())
}

func TestController_Start_WithSession(t *testing.T) {
	c, deps := newTestController(t)
	ctx := context.Background()

	session := sessionFor(aliceID, "alice@example.com")
	gomock.InOrder(
		deps.content.EXPECT().ProbeSchema(ctx).Return(nil),
		deps.auth.EXPECT().GetSession(ctx).Return(session, nil),
		deps.profiles.EXPECT().Resolve(ctx, session.User).Return(profileFor(aliceID, "alice@example.com", models.RoleUser), nil),
		deps.content.EXPECT().ListUpdates(ctx).Return(feed(), nil),
	)

	c.Start(ctx)

	state := c.State()
	assert.Equal(t, ViewDashboard, state.View)
	assert.Equal(t, ScreenUserDashboard, state.Screen())
	assert.Len(t, state.Updates, 3)
	assert.True(t, state.ChatAvailable())
}

func TestController_Start_ResolveReportsSchemaMissing(t *testing.T) {
	c, deps := newTestController(t)
	ctx := context.Background()

	session := sessionFor(aliceID, "alice@example.com")
	deps.content.EXPECT().ProbeSchema(ctx).Return(nil)
	deps.auth.EXPECT().GetSession(ctx).Return(session, nil)
	deps.profiles.EXPECT().Resolve(ctx, session.User).Return(models.UserProfile{}, store.ErrSchemaMissing)

	c.Start(ctx)

	assert.Equal(t, ScreenSetup, c.State().Screen())
}

func TestController_Start_ProbeFailureIsNotFatal(t *testing.T) {
	c, deps := newTestController(t)
	ctx := context.Background()

	deps.content.EXPECT().ProbeSchema(ctx).Return(errors.New("dial tcp: timeout"))
	deps.auth.EXPECT().GetSession(ctx).Return(nil, nil)

	c.Start(ctx)

	state := c.State()
	assert.Equal(t, ScreenLanding, state.Screen())
	assert.Error(t, state.Err)
}

func TestController_RetrySchema(t *testing.T) {
	c, deps := newTestController(t)
	ctx := context.Background()

	gomock.InOrder(
		deps.content.EXPECT().ProbeSchema(ctx).Return(store.ErrSchemaMissing),
		deps.content.EXPECT().ProbeSchema(ctx).Return(nil),
	)
	deps.auth.EXPECT().GetSession(ctx).Return(nil, nil)

	c.Start(ctx)
	require.Equal(t, ScreenSetup, c.State().Screen())

	c.RetrySchema(ctx)
	state := c.State()
	assert.False(t, state.SchemaMissing)
	assert.Equal(t, ScreenLanding, state.Screen())
}

// ── session changes ──────────────────────────────────────────────────────────

func TestController_SignedOutLeavesDashboard(t *testing.T) {
	c, deps := newTestController(t)
	ctx := context.Background()

	session := sessionFor(aliceID, "alice@example.com")
	deps.profiles.EXPECT().Resolve(ctx, session.User).Return(profileFor(aliceID, "alice@example.com", models.RoleUser), nil)
	deps.content.EXPECT().ListUpdates(ctx).Return(feed(), nil)

	c.HandleSessionChange(ctx, models.AuthEvent{Kind: models.AuthEventSignedIn, Session: session})
	require.Equal(t, ScreenUserDashboard, c.State().Screen())

	c.HandleSessionChange(ctx, models.AuthEvent{Kind: models.AuthEventSignedOut})

	state := c.State()
	assert.Nil(t, state.Session)
	assert.Nil(t, state.Profile)
	assert.Empty(t, state.Updates)
	assert.Equal(t, ViewLanding, state.View)
}

func TestController_SignedOutKeepsStaticPage(t *testing.T) {
	c, _ := newTestController(t)

	require.NoError(t, c.Navigate(ViewAbout))
	c.HandleSessionChange(context.Background(), models.AuthEvent{Kind: models.AuthEventSignedOut})

	assert.Equal(t, ViewAbout, c.State().View)
}

func TestController_LatestEventWins(t *testing.T) {
	c, deps := newTestController(t)
	ctx := context.Background()

	alice := sessionFor(aliceID, "alice@example.com")
	bob := sessionFor(bobID, "bob@example.com")

	gomock.InOrder(
		deps.profiles.EXPECT().Resolve(ctx, alice.User).Return(profileFor(aliceID, "alice@example.com", models.RoleAdmin), nil),
		deps.content.EXPECT().ListUpdates(ctx).Return(feed(), nil),
		deps.profiles.EXPECT().Resolve(ctx, bob.User).Return(profileFor(bobID, "bob@example.com", models.RoleUser), nil),
		deps.content.EXPECT().ListUpdates(ctx).Return(feed()[:1], nil),
	)

	events := []models.AuthEvent{
		{Kind: models.AuthEventSignedIn, Session: alice},
		{Kind: models.AuthEventSignedOut},
		{Kind: models.AuthEventSignedIn, Session: bob},
	}
	for _, ev := range events {
		c.HandleSessionChange(ctx, ev)
	}

	state := c.State()
	require.NotNil(t, state.Profile)
	assert.Equal(t, bobID, state.Profile.ID)
	assert.Equal(t, state.Session.User.ID, state.Profile.ID)
	assert.Len(t, state.Updates, 1)
}

func TestController_StaleResolveIsDropped(t *testing.T) {
	c, deps := newTestController(t)
	ctx := context.Background()

	alice := sessionFor(aliceID, "alice@example.com")

	// first resolve fails so the dashboard waits on a retry
	deps.profiles.EXPECT().Resolve(ctx, alice.User).Return(models.UserProfile{}, errors.New("timeout"))
	c.HandleSessionChange(ctx, models.AuthEvent{Kind: models.AuthEventSignedIn, Session: alice})
	require.Equal(t, ScreenResolving, c.State().Screen())

	started := make(chan struct{})
	release := make(chan struct{})
	deps.profiles.EXPECT().Resolve(ctx, alice.User).DoAndReturn(
		func(context.Context, models.Identity) (models.UserProfile, error) {
			close(started)
			<-release
			return profileFor(aliceID, "alice@example.com", models.RoleUser), nil
		},
	)

	done := make(chan error)
	go func() { done <- c.RetryProfile(ctx) }()

	<-started
	c.HandleSessionChange(ctx, models.AuthEvent{Kind: models.AuthEventSignedOut})
	close(release)
	require.NoError(t, <-done)

	state := c.State()
	assert.Nil(t, state.Session)
	assert.Nil(t, state.Profile, "stale profile must not be committed")
}

func TestController_TokenRefreshKeepsView(t *testing.T) {
	c, deps := newTestController(t)
	ctx := context.Background()

	session := sessionFor(aliceID, "alice@example.com")
	deps.profiles.EXPECT().Resolve(ctx, session.User).Return(profileFor(aliceID, "alice@example.com", models.RoleUser), nil).Times(1)
	deps.content.EXPECT().ListUpdates(ctx).Return(feed(), nil).Times(1)

	c.HandleSessionChange(ctx, models.AuthEvent{Kind: models.AuthEventSignedIn, Session: session})
	require.NoError(t, c.Navigate(ViewPrivacy))

	refreshed := sessionFor(aliceID, "alice@example.com")
	refreshed.AccessToken = "access-2"
	c.HandleSessionChange(ctx, models.AuthEvent{Kind: models.AuthEventTokenRefreshed, Session: refreshed})

	state := c.State()
	assert.Equal(t, ViewPrivacy, state.View)
	assert.Equal(t, "access-2", state.Session.AccessToken)
}

// ── navigation ───────────────────────────────────────────────────────────────

func TestController_Navigate(t *testing.T) {
	c, _ := newTestController(t)

	assert.ErrorIs(t, c.Navigate(View(42)), ErrUnknownView)
	assert.ErrorIs(t, c.Navigate(View(-1)), ErrUnknownView)

	require.NoError(t, c.Navigate(ViewDashboard))
	assert.Equal(t, ViewLogin, c.State().View)

	require.NoError(t, c.Navigate(ViewTerms))
	assert.Equal(t, ViewTerms, c.State().View)
}

func TestController_ChangesSignal(t *testing.T) {
	c, _ := newTestController(t)

	require.NoError(t, c.Navigate(ViewAbout))
	require.NoError(t, c.Navigate(ViewTerms))

	select {
	case <-c.Changes():
	default:
		t.Fatal("expected a change signal")
	}
	select {
	case <-c.Changes():
		t.Fatal("signals must coalesce")
	default:
	}
}

// ── admin ────────────────────────────────────────────────────────────────────

func signInAs(t *testing.T, c *Controller, deps testDeps, id string, role models.Role) {
	t.Helper()
	ctx := context.Background()
	session := sessionFor(id, "someone@example.com")
	deps.profiles.EXPECT().Resolve(ctx, session.User).Return(profileFor(id, "someone@example.com", role), nil)
	deps.content.EXPECT().ListUpdates(ctx).Return(feed(), nil)
	c.HandleSessionChange(ctx, models.AuthEvent{Kind: models.AuthEventSignedIn, Session: session})
}

func TestController_DeleteThenRelist(t *testing.T) {
	c, deps := newTestController(t)
	ctx := context.Background()
	signInAs(t, c, deps, aliceID, models.RoleAdmin)
	require.Equal(t, ScreenAdminDashboard, c.State().Screen())

	remaining := []models.SecurityUpdate{feed()[0], feed()[2]}
	gomock.InOrder(
		deps.content.EXPECT().DeleteUpdate(ctx, "p2").Return(nil),
		deps.content.EXPECT().ListUpdates(ctx).Return(remaining, nil),
	)

	require.NoError(t, c.DeleteUpdate(ctx, "p2"))

	for _, u := range c.State().Updates {
		assert.NotEqual(t, "p2", u.ID)
	}
	assert.Len(t, c.State().Updates, 2)
}

func TestController_CreateUpdateUsesAdminID(t *testing.T) {
	c, deps := newTestController(t)
	ctx := context.Background()
	signInAs(t, c, deps, aliceID, models.RoleAdmin)

	fields := models.UpdateFields{
		Title:    "Patch Tuesday",
		Summary:  "Apply the cumulative update.",
		Type:     models.CategoryEndpoint,
		Severity: models.SeverityMedium,
	}
	created := models.SecurityUpdate{ID: "p0", Title: fields.Title, CreatedAt: time.Now()}

	deps.content.EXPECT().CreateUpdate(ctx, fields, aliceID).Return(created, nil)
	deps.content.EXPECT().ListUpdates(ctx).Return(append([]models.SecurityUpdate{created}, feed()...), nil)

	require.NoError(t, c.CreateUpdate(ctx, fields))
	assert.Equal(t, "p0", c.State().Updates[0].ID)
}

func TestController_WriteDenied(t *testing.T) {
	c, deps := newTestController(t)
	ctx := context.Background()
	signInAs(t, c, deps, aliceID, models.RoleAdmin)

	deps.content.EXPECT().UpdateUpdate(ctx, "p1", gomock.Any()).Return(models.SecurityUpdate{}, store.ErrAuthorizationDenied)

	err := c.SaveUpdate(ctx, "p1", models.UpdateFields{})
	assert.ErrorIs(t, err, store.ErrAuthorizationDenied)

	state := c.State()
	assert.ErrorIs(t, state.Err, store.ErrAuthorizationDenied)
	assert.Equal(t, ScreenAdminDashboard, state.Screen())
}

func TestController_UserCannotWrite(t *testing.T) {
	c, deps := newTestController(t)
	ctx := context.Background()

	assert.ErrorIs(t, c.DeleteUpdate(ctx, "p1"), ErrNoProfile)

	signInAs(t, c, deps, aliceID, models.RoleUser)
	assert.ErrorIs(t, c.DeleteUpdate(ctx, "p1"), ErrNotAdmin)
}

// ── chat ─────────────────────────────────────────────────────────────────────

func TestController_ChatPersistsExchangeOnce(t *testing.T) {
	c, deps := newTestController(t)
	ctx := context.Background()
	signInAs(t, c, deps, aliceID, models.RoleUser)

	question := "How do I spot a phishing email?"
	answer := "- Check the sender domain"

	deps.assistant.EXPECT().Chat(ctx, gomock.Len(0), question).Return(answer)
	deps.content.EXPECT().AppendChatRecord(ctx, aliceID, question, answer).Return(nil).Times(1)

	require.NoError(t, c.Chat(ctx, "  "+question+" "))

	state := c.State()
	require.Len(t, state.Chat, 2)
	assert.Equal(t, models.ChatMessage{Role: models.ChatRoleUser, Text: question}, state.Chat[0])
	assert.Equal(t, models.ChatMessage{Role: models.ChatRoleModel, Text: answer}, state.Chat[1])
	assert.False(t, state.ChatPending)
}

func TestController_ChatSendsHistory(t *testing.T) {
	c, deps := newTestController(t)
	ctx := context.Background()
	signInAs(t, c, deps, aliceID, models.RoleUser)

	deps.assistant.EXPECT().Chat(ctx, gomock.Any(), "first").Return("one")
	deps.assistant.EXPECT().Chat(ctx, []models.ChatMessage{
		{Role: models.ChatRoleUser, Text: "first"},
		{Role: models.ChatRoleModel, Text: "one"},
	}, "second").Return("two")
	deps.content.EXPECT().AppendChatRecord(ctx, aliceID, gomock.Any(), gomock.Any()).Return(nil).Times(2)

	require.NoError(t, c.Chat(ctx, "first"))
	require.NoError(t, c.Chat(ctx, "second"))
	assert.Len(t, c.State().Chat, 4)
}

func TestController_ChatRejections(t *testing.T) {
	c, deps := newTestController(t)
	ctx := context.Background()

	assert.ErrorIs(t, c.Chat(ctx, "hi"), ErrChatUnavailable)
	assert.ErrorIs(t, c.Chat(ctx, "   "), ErrEmptyMessage)

	signInAs(t, c, deps, aliceID, models.RoleAdmin)
	assert.ErrorIs(t, c.Chat(ctx, "hi"), ErrChatUnavailable)
}

func TestController_ChatRecordFailureKeepsReply(t *testing.T) {
	c, deps := newTestController(t)
	ctx := context.Background()
	signInAs(t, c, deps, aliceID, models.RoleUser)

	deps.assistant.EXPECT().Chat(ctx, gomock.Any(), "hi").Return("hello")
	deps.content.EXPECT().AppendChatRecord(ctx, aliceID, "hi", "hello").Return(store.ErrAuthorizationDenied)

	require.NoError(t, c.Chat(ctx, "hi"))

	state := c.State()
	assert.Len(t, state.Chat, 2)
	assert.ErrorIs(t, state.Err, store.ErrAuthorizationDenied)
}

// ── auth actions ─────────────────────────────────────────────────────────────

func TestController_SignUpVerificationPending(t *testing.T) {
	c, deps := newTestController(t)
	ctx := context.Background()

	deps.auth.EXPECT().SignUp(ctx, "new@example.com", "Str0ng!Pass").Return(models.SignUpResult{
		Identity: models.Identity{ID: aliceID, Email: "new@example.com"},
	}, nil)

	require.NoError(t, c.SignUp(ctx, "new@example.com", "Str0ng!Pass"))

	state := c.State()
	assert.Equal(t, ViewLogin, state.View)
	assert.Equal(t, NoticeVerificationPending, state.Notice)
}

func TestController_SignInFailureIsShown(t *testing.T) {
	c, deps := newTestController(t)
	ctx := context.Background()

	require.NoError(t, c.Navigate(ViewLogin))
	deps.auth.EXPECT().SignIn(ctx, "alice@example.com", "nope").Return(nil, service.ErrInvalidCredentials)

	err := c.SignIn(ctx, "alice@example.com", "nope")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)

	state := c.State()
	assert.ErrorIs(t, state.Err, service.ErrInvalidCredentials)
	assert.Equal(t, ViewLogin, state.View)

	c.DismissMessages()
	assert.NoError(t, c.State().Err)
}

// newRealAuth wires the real auth service over mocked transport and
// storage so events flow through a live subscription.
func newRealAuth(t *testing.T) (service.AuthService, *mock.MockAuthAdapter, *mock.MockSessionRepository) {
	t.Helper()
	ctrl := gomock.NewController(t)
	authAdapter := mock.NewMockAuthAdapter(ctrl)
	sessions := mock.NewMockSessionRepository(ctrl)
	return service.NewClientAuthService(authAdapter, sessions, logger.Nop()), authAdapter, sessions
}

func TestController_SignUpWeakPasswordMakesNoCall(t *testing.T) {
	auth, _, _ := newRealAuth(t)
	_, deps := newTestController(t)
	c := NewController(auth, deps.profiles, deps.content, deps.assistant, logger.Nop())

	err := c.SignUp(context.Background(), "new@example.com", "abc")
	assert.ErrorIs(t, err, service.ErrWeakPassword)
	assert.ErrorIs(t, c.State().Err, service.ErrWeakPassword)
}

func TestController_RunFollowsSessionEvents(t *testing.T) {
	auth, authAdapter, sessions := newRealAuth(t)
	_, deps := newTestController(t)
	c := NewController(auth, deps.profiles, deps.content, deps.assistant, logger.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	session := sessionFor(aliceID, "alice@example.com")

	deps.content.EXPECT().ProbeSchema(gomock.Any()).Return(nil)
	sessions.EXPECT().LoadSession(gomock.Any()).Return(models.Session{}, store.ErrLocalSessionNotFound)
	authAdapter.EXPECT().SignInWithPassword(gomock.Any(), "alice@example.com", "Str0ng!Pass").Return(session, nil)
	sessions.EXPECT().SaveSession(gomock.Any(), *session).Return(nil)
	deps.profiles.EXPECT().Resolve(gomock.Any(), session.User).Return(profileFor(aliceID, "alice@example.com", models.RoleUser), nil)
	deps.content.EXPECT().ListUpdates(gomock.Any()).Return(feed(), nil)
	authAdapter.EXPECT().SignOut(gomock.Any(), session.AccessToken).Return(nil)
	sessions.EXPECT().ClearSession(gomock.Any()).Return(nil)

	done := make(chan error)
	go func() { done <- c.Run(ctx) }()

	require.Eventually(t, func() bool { return c.State().Screen() == ScreenLanding }, time.Second, 5*time.Millisecond)

	require.NoError(t, c.SignIn(ctx, "alice@example.com", "Str0ng!Pass"))
	require.Eventually(t, func() bool {
		s := c.State()
		return s.Screen() == ScreenUserDashboard && len(s.Updates) == 3
	}, time.Second, 5*time.Millisecond)

	require.NoError(t, c.SignOut(ctx))
	require.Eventually(t, func() bool {
		s := c.State()
		return s.Screen() == ScreenLanding && s.Profile == nil
	}, time.Second, 5*time.Millisecond)

	cancel()
	require.NoError(t, <-done)
}
