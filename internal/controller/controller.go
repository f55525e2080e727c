// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package controller owns the view state of the cyber-aware client.
//
// The [Controller] is the single writer of session, profile, update list,
// chat transcript and navigation state. Views read [State] snapshots and
// ask for changes only through controller methods.
//
// Session changes are consumed one at a time by [Controller.Run]. Every
// profile-resolve/list sequence is tagged with a generation number and its
// results are committed only while that generation is the latest, so a
// slow resolve for an earlier session can never overwrite a later one.
package controller

import (
	"context"
	"errors"
	"slices"
	"strings"
	"sync"

	"github.com/MKhiriev/cyber-aware/internal/logger"
	"github.com/MKhiriev/cyber-aware/internal/service"
	"github.com/MKhiriev/cyber-aware/internal/store"
	"github.com/MKhiriev/cyber-aware/models"
)

// NoticeVerificationPending is shown after a signup that still needs email
// confirmation.
const NoticeVerificationPending = "Verification link dispatched. Confirm your email, then sign in."

type Controller struct {
	auth      service.AuthService
	profiles  service.ProfileService
	content   service.ContentService
	assistant service.AssistantService

	mu         sync.Mutex
	state      State
	generation uint64

	changes chan struct{}
	logger  *logger.Logger
}

func NewController(
	auth service.AuthService,
	profiles service.ProfileService,
	content service.ContentService,
	assistant service.AssistantService,
	logger *logger.Logger,
) *Controller {
	return &Controller{
		auth:      auth,
		profiles:  profiles,
		content:   content,
		assistant: assistant,
		state:     State{Loading: true, View: ViewLanding},
		changes:   make(chan struct{}, 1),
		logger:    logger,
	}
}

// State returns a snapshot of the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.clone()
}

// Changes signals after every state change. Signals coalesce: a receiver
// must read [Controller.State] and may observe several changes at once.
func (c *Controller) Changes() <-chan struct{} {
	return c.changes
}

// Run subscribes to session changes, performs the startup probe and then
// handles every change in order until ctx is done.
func (c *Controller) Run(ctx context.Context) error {
	sub := c.auth.Subscribe()
	defer sub.Unsubscribe()

	c.Start(ctx)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-sub.Events():
			if !ok {
				return nil
			}
			c.HandleSessionChange(ctx, event)
		}
	}
}

// Start probes the schema, restores the session and, with a session,
// resolves the profile and lists updates.
func (c *Controller) Start(ctx context.Context) {
	gen := c.nextGeneration(func(s *State) {
		s.Loading = true
		s.SchemaMissing = false
		s.Err = nil
	})

	if err := c.content.ProbeSchema(ctx); err != nil {
		if c.fail(gen, "probe schema", err) {
			return
		}
	}

	session, err := c.auth.GetSession(ctx)
	if err != nil {
		c.logger.Warn().Err(err).Msg("session could not be restored")
		session = nil
	}

	committed := c.commit(gen, "startup session", func(s *State) {
		s.Loading = false
		s.Session = session
		if session == nil {
			s.Profile = nil
			return
		}
		s.View = ViewDashboard
	})
	if committed && session != nil {
		c.loadAccount(ctx, gen, session.User)
	}
}

// HandleSessionChange applies one session transition. A refreshed token for
// the identity already shown only replaces the session.
func (c *Controller) HandleSessionChange(ctx context.Context, event models.AuthEvent) {
	c.logger.Debug().Str("event", event.Kind.String()).Msg("session changed")

	session := event.Session
	if session == nil {
		c.nextGeneration(func(s *State) {
			s.Session = nil
			s.Profile = nil
			s.Updates = nil
			s.Chat = nil
			s.ChatPending = false
			if s.View == ViewDashboard {
				s.View = ViewLanding
			}
		})
		return
	}

	if event.Kind == models.AuthEventTokenRefreshed && c.replaceSession(session) {
		return
	}

	gen := c.nextGeneration(func(s *State) {
		if s.Profile != nil && s.Profile.ID != session.User.ID {
			s.Profile = nil
			s.Updates = nil
			s.Chat = nil
			s.ChatPending = false
		}
		copied := *session
		s.Session = &copied
		s.View = ViewDashboard
		s.Notice = ""
		s.Err = nil
	})
	c.loadAccount(ctx, gen, session.User)
}

// Navigate selects view. The dashboard without a session leads to login.
func (c *Controller) Navigate(view View) error {
	if !view.Valid() {
		return ErrUnknownView
	}

	c.update(func(s *State) {
		s.Err = nil
		s.Notice = ""
		if view == ViewDashboard && s.Session == nil {
			s.View = ViewLogin
			return
		}
		s.View = view
	})
	return nil
}

// RetrySchema clears the setup flag and restarts the startup probe.
func (c *Controller) RetrySchema(ctx context.Context) {
	c.logger.Info().Msg("retrying schema probe")
	c.Start(ctx)
}

// RetryProfile re-runs profile resolution for the current session.
func (c *Controller) RetryProfile(ctx context.Context) error {
	state := c.State()
	if state.Session == nil {
		return ErrNotSignedIn
	}

	gen := c.nextGeneration(func(s *State) { s.Err = nil })
	c.loadAccount(ctx, gen, state.Session.User)
	return nil
}

// RefreshUpdates reloads the update list.
func (c *Controller) RefreshUpdates(ctx context.Context) error {
	gen, state := c.current()
	if state.Session == nil {
		return ErrNotSignedIn
	}
	return c.loadUpdates(ctx, gen)
}

func (c *Controller) SignIn(ctx context.Context, email, password string) error {
	if _, err := c.auth.SignIn(ctx, email, password); err != nil {
		c.update(func(s *State) { s.Err = err })
		return err
	}
	return nil
}

// SignUp registers an account. When verification is pending the visitor is
// sent to the login view with [NoticeVerificationPending].
func (c *Controller) SignUp(ctx context.Context, email, password string) error {
	result, err := c.auth.SignUp(ctx, email, password)
	if err != nil {
		c.update(func(s *State) { s.Err = err })
		return err
	}

	if result.VerificationPending() {
		c.update(func(s *State) {
			s.View = ViewLogin
			s.Notice = NoticeVerificationPending
			s.Err = nil
		})
	}
	return nil
}

func (c *Controller) SignOut(ctx context.Context) error {
	if err := c.auth.SignOut(ctx); err != nil {
		c.update(func(s *State) { s.Err = err })
		return err
	}
	return nil
}

// CreateUpdate publishes a new update authored by the admin profile and
// reloads the list.
func (c *Controller) CreateUpdate(ctx context.Context, fields models.UpdateFields) error {
	gen, profile, err := c.requireAdmin()
	if err != nil {
		return err
	}

	if _, err = c.content.CreateUpdate(ctx, fields, profile.ID); err != nil {
		c.fail(gen, "create update", err)
		return err
	}
	return c.loadUpdates(ctx, gen)
}

// SaveUpdate replaces the editable fields of update id and reloads the list.
func (c *Controller) SaveUpdate(ctx context.Context, id string, fields models.UpdateFields) error {
	gen, _, err := c.requireAdmin()
	if err != nil {
		return err
	}

	if _, err = c.content.UpdateUpdate(ctx, id, fields); err != nil {
		c.fail(gen, "update update", err)
		return err
	}
	return c.loadUpdates(ctx, gen)
}

// DeleteUpdate removes update id and reloads the list.
func (c *Controller) DeleteUpdate(ctx context.Context, id string) error {
	gen, _, err := c.requireAdmin()
	if err != nil {
		return err
	}

	if err = c.content.DeleteUpdate(ctx, id); err != nil {
		c.fail(gen, "delete update", err)
		return err
	}
	return c.loadUpdates(ctx, gen)
}

// Chat sends message to the assistant and persists the exchange exactly
// once. Only profiles with the user role may chat.
func (c *Controller) Chat(ctx context.Context, message string) error {
	message = strings.TrimSpace(message)
	if message == "" {
		return ErrEmptyMessage
	}

	c.mu.Lock()
	if !c.state.ChatAvailable() {
		c.mu.Unlock()
		return ErrChatUnavailable
	}
	if c.state.ChatPending {
		c.mu.Unlock()
		return ErrChatBusy
	}
	userID := c.state.Profile.ID
	history := slices.Clone(c.state.Chat)
	c.state.Chat = append(c.state.Chat, models.ChatMessage{Role: models.ChatRoleUser, Text: message})
	c.state.ChatPending = true
	c.mu.Unlock()
	c.notify()

	reply := c.assistant.Chat(ctx, history, message)

	var recordErr error
	if err := c.content.AppendChatRecord(ctx, userID, message, reply); err != nil {
		c.logger.Err(err).Str("user_id", userID).Msg("chat exchange was not persisted")
		if errors.Is(err, store.ErrSchemaMissing) {
			c.markSchemaMissing()
		}
		recordErr = err
	}

	c.mu.Lock()
	if c.state.Profile == nil || c.state.Profile.ID != userID || !c.state.ChatPending {
		c.mu.Unlock()
		c.logger.Debug().Str("user_id", userID).Msg("dropping chat reply for a closed session")
		return nil
	}
	c.state.Chat = append(c.state.Chat, models.ChatMessage{Role: models.ChatRoleModel, Text: reply})
	c.state.ChatPending = false
	if recordErr != nil {
		c.state.Err = recordErr
	}
	c.mu.Unlock()
	c.notify()

	return nil
}

// GenerateQuiz asks the assistant for a quiz about category. An empty
// result means generation failed.
func (c *Controller) GenerateQuiz(ctx context.Context, category models.Category) []models.QuizQuestion {
	return c.assistant.GenerateQuiz(ctx, category)
}

// GenerateFlashcards asks the assistant for flashcards about category. An
// empty result means generation failed.
func (c *Controller) GenerateFlashcards(ctx context.Context, category models.Category) []models.Flashcard {
	return c.assistant.GenerateFlashcards(ctx, category)
}

// DismissMessages clears the notice and the last error.
func (c *Controller) DismissMessages() {
	c.update(func(s *State) {
		s.Notice = ""
		s.Err = nil
	})
}

func (c *Controller) loadAccount(ctx context.Context, gen uint64, identity models.Identity) {
	profile, err := c.profiles.Resolve(ctx, identity)
	if err != nil {
		c.fail(gen, "resolve profile", err)
		return
	}

	if !c.commit(gen, "profile", func(s *State) { s.Profile = &profile }) {
		return
	}
	_ = c.loadUpdates(ctx, gen)
}

func (c *Controller) loadUpdates(ctx context.Context, gen uint64) error {
	updates, err := c.content.ListUpdates(ctx)
	if err != nil {
		c.fail(gen, "list updates", err)
		return err
	}

	c.commit(gen, "updates", func(s *State) { s.Updates = updates })
	return nil
}

// fail records err for the sequence gen. It reports whether err was the
// schema-missing condition, which is global and committed regardless of
// the generation.
func (c *Controller) fail(gen uint64, op string, err error) bool {
	if errors.Is(err, store.ErrSchemaMissing) {
		c.markSchemaMissing()
		return true
	}

	c.logger.Err(err).Str("op", op).Msg("operation failed")
	c.commit(gen, op, func(s *State) {
		s.Loading = false
		s.Err = err
	})
	return false
}

func (c *Controller) markSchemaMissing() {
	c.mu.Lock()
	already := c.state.SchemaMissing
	c.state.SchemaMissing = true
	c.state.Loading = false
	c.mu.Unlock()

	if !already {
		c.logger.Warn().Msg("backend schema is missing, switching to setup")
	}
	c.notify()
}

func (c *Controller) requireAdmin() (uint64, models.UserProfile, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.state.DashboardKind() {
	case DashboardAdmin:
		return c.generation, *c.state.Profile, nil
	case DashboardUser:
		return 0, models.UserProfile{}, ErrNotAdmin
	default:
		return 0, models.UserProfile{}, ErrNoProfile
	}
}

// replaceSession swaps in a refreshed session when it belongs to the
// identity whose profile is already shown.
func (c *Controller) replaceSession(session *models.Session) bool {
	c.mu.Lock()
	same := c.state.Session != nil &&
		c.state.Profile != nil &&
		c.state.Session.User.ID == session.User.ID
	if same {
		copied := *session
		c.state.Session = &copied
	}
	c.mu.Unlock()

	if same {
		c.notify()
	}
	return same
}

func (c *Controller) current() (uint64, State) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generation, c.state.clone()
}

// nextGeneration starts a new sequence, superseding every earlier one.
func (c *Controller) nextGeneration(fn func(*State)) uint64 {
	c.mu.Lock()
	c.generation++
	gen := c.generation
	fn(&c.state)
	c.mu.Unlock()

	c.notify()
	return gen
}

// commit applies fn only if gen is still the latest sequence.
func (c *Controller) commit(gen uint64, what string, fn func(*State)) bool {
	c.mu.Lock()
	latest := c.generation
	if gen != latest {
		c.mu.Unlock()
		c.logger.Debug().Uint64("generation", gen).Uint64("latest", latest).Str("result", what).Msg("dropping stale result")
		return false
	}
	fn(&c.state)
	c.mu.Unlock()

	c.notify()
	return true
}

func (c *Controller) update(fn func(*State)) {
	c.mu.Lock()
	fn(&c.state)
	c.mu.Unlock()

	c.notify()
}

func (c *Controller) notify() {
	select {
	case c.changes <- struct{}{}:
	default:
	}
}
