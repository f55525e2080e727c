// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/MKhiriev/cyber-aware/internal/adapter"
	"github.com/MKhiriev/cyber-aware/internal/logger"
	"github.com/MKhiriev/cyber-aware/internal/store"
	"github.com/MKhiriev/cyber-aware/internal/validators"
	"github.com/MKhiriev/cyber-aware/models"
)

type clientAuthService struct {
	adapter   adapter.AuthAdapter
	sessions  store.SessionRepository
	validator validators.Validator
	events    *broadcaster

	mu      sync.Mutex
	current *models.Session

	now    func() time.Time
	logger *logger.Logger
}

// NewClientAuthService returns the auth service backed by the gateway
// adapter and the local session repository.
func NewClientAuthService(authAdapter adapter.AuthAdapter, sessions store.SessionRepository, logger *logger.Logger) AuthService {
	return &clientAuthService{
		adapter:   authAdapter,
		sessions:  sessions,
		validator: validators.NewCredentialsValidator(),
		events:    newBroadcaster(),
		now:       time.Now,
		logger:    logger,
	}
}

func (a *clientAuthService) Subscribe() *Subscription {
	return a.events.subscribe()
}

// AccessToken returns the token of the in-memory session or "".
func (a *clientAuthService) AccessToken() string {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.current == nil {
		return ""
	}
	return a.current.AccessToken
}

func (a *clientAuthService) GetSession(ctx context.Context) (*models.Session, error) {
	if session := a.snapshot(); session.Valid(a.now()) {
		return session, nil
	}

	stored, err := a.sessions.LoadSession(ctx)
	if errors.Is(err, store.ErrLocalSessionNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load local session: %w", err)
	}

	if stored.Valid(a.now()) {
		a.setCurrent(&stored)
		return a.snapshot(), nil
	}

	if stored.RefreshToken == "" {
		a.logger.Info().Str("user_id", stored.User.ID).Msg("persisted session expired without refresh token")
		a.forget(ctx)
		return nil, nil
	}

	refreshed, err := a.adapter.RefreshSession(ctx, stored.RefreshToken)
	if err != nil {
		if refreshRejected(err) {
			a.logger.Info().Err(err).Str("user_id", stored.User.ID).Msg("persisted session could not be refreshed")
			a.forget(ctx)
			return nil, nil
		}
		return nil, fmt.Errorf("refresh persisted session: %w", err)
	}

	if err = a.persist(ctx, refreshed); err != nil {
		return nil, err
	}
	return a.snapshot(), nil
}

func (a *clientAuthService) SignUp(ctx context.Context, email, password string) (models.SignUpResult, error) {
	creds := models.Credentials{Email: email, Password: password}
	err := a.validator.Validate(ctx, creds, validators.FieldEmail, validators.FieldPassword, validators.FieldPasswordPolicy)
	if errors.Is(err, validators.ErrWeakPassword) {
		return models.SignUpResult{}, ErrWeakPassword
	}
	if err != nil {
		return models.SignUpResult{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	result, err := a.adapter.SignUp(ctx, email, password)
	if err != nil {
		a.logger.Err(err).Str("email", email).Msg("sign up failed")
		return models.SignUpResult{}, mapAuthError(err)
	}

	if result.VerificationPending() {
		a.logger.Info().Str("user_id", result.Identity.ID).Msg("sign up waits for email verification")
		return result, nil
	}

	if err = a.persist(ctx, result.Session); err != nil {
		return models.SignUpResult{}, err
	}
	a.events.publish(models.AuthEvent{Kind: models.AuthEventSignedIn, Session: a.snapshot()})

	return result, nil
}

func (a *clientAuthService) SignIn(ctx context.Context, email, password string) (*models.Session, error) {
	if err := a.validator.Validate(ctx, models.Credentials{Email: email, Password: password}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	session, err := a.adapter.SignInWithPassword(ctx, email, password)
	if err != nil {
		a.logger.Err(err).Str("email", email).Msg("sign in failed")
		return nil, mapAuthError(err)
	}

	if err = a.persist(ctx, session); err != nil {
		return nil, err
	}

	current := a.snapshot()
	a.events.publish(models.AuthEvent{Kind: models.AuthEventSignedIn, Session: current})

	return current, nil
}

func (a *clientAuthService) SignOut(ctx context.Context) error {
	session := a.snapshot()
	if session == nil {
		stored, err := a.sessions.LoadSession(ctx)
		if err == nil {
			session = &stored
		}
	}

	if session != nil && session.AccessToken != "" {
		if err := a.adapter.SignOut(ctx, session.AccessToken); err != nil {
			a.logger.Warn().Err(err).Msg("remote sign out failed, clearing local session anyway")
		}
	}

	a.setCurrent(nil)
	if err := a.sessions.ClearSession(ctx); err != nil {
		return fmt.Errorf("clear local session: %w", err)
	}

	if session != nil {
		a.events.publish(models.AuthEvent{Kind: models.AuthEventSignedOut})
	}
	return nil
}

func (a *clientAuthService) Refresh(ctx context.Context) error {
	session := a.snapshot()
	if session == nil || session.RefreshToken == "" {
		return ErrNotSignedIn
	}

	refreshed, err := a.adapter.RefreshSession(ctx, session.RefreshToken)
	if err != nil {
		if refreshRejected(err) {
			a.logger.Info().Err(err).Str("user_id", session.User.ID).Msg("refresh token rejected, signing out")
			a.forget(ctx)
			a.events.publish(models.AuthEvent{Kind: models.AuthEventSignedOut})
			return ErrSessionExpired
		}
		return fmt.Errorf("refresh session: %w", err)
	}

	if err = a.persist(ctx, refreshed); err != nil {
		return err
	}
	a.events.publish(models.AuthEvent{Kind: models.AuthEventTokenRefreshed, Session: a.snapshot()})

	return nil
}

func (a *clientAuthService) RefreshIfExpiring(ctx context.Context, d time.Duration) error {
	session := a.snapshot()
	if session == nil {
		return nil
	}
	if session.ExpiresAt.IsZero() || session.ExpiresAt.After(a.now().Add(d)) {
		return nil
	}
	return a.Refresh(ctx)
}

// persist stores session locally and makes it current.
func (a *clientAuthService) persist(ctx context.Context, session *models.Session) error {
	if session == nil {
		return adapter.ErrNoSession
	}
	if err := a.sessions.SaveSession(ctx, *session); err != nil {
		return fmt.Errorf("save local session: %w", err)
	}
	a.setCurrent(session)
	return nil
}

// forget drops the session from memory and from the local store.
func (a *clientAuthService) forget(ctx context.Context) {
	a.setCurrent(nil)
	if err := a.sessions.ClearSession(ctx); err != nil {
		a.logger.Warn().Err(err).Msg("failed to clear local session")
	}
}

func (a *clientAuthService) setCurrent(session *models.Session) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if session == nil {
		a.current = nil
		return
	}
	copied := *session
	a.current = &copied
}

// snapshot returns a copy of the current session or nil.
func (a *clientAuthService) snapshot() *models.Session {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.current == nil {
		return nil
	}
	copied := *a.current
	return &copied
}
