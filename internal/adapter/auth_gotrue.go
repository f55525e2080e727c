package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/MKhiriev/cyber-aware/internal/config"
	"github.com/MKhiriev/cyber-aware/internal/logger"
	"github.com/MKhiriev/cyber-aware/internal/utils"
	"github.com/MKhiriev/cyber-aware/models"
)

const authPath = "/auth/v1"

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshBody struct {
	RefreshToken string `json:"refresh_token"`
}

type gotrueUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type gotrueSession struct {
	AccessToken  string     `json:"access_token"`
	RefreshToken string     `json:"refresh_token"`
	ExpiresIn    int64      `json:"expires_in"`
	ExpiresAt    int64      `json:"expires_at"`
	User         gotrueUser `json:"user"`
}

// gotrueSignUp is either a session (autoconfirm on) or the bare user object
// (verification pending).
type gotrueSignUp struct {
	gotrueSession
	ID    string `json:"id"`
	Email string `json:"email"`
}

type gotrueAuthAdapter struct {
	client *utils.HTTPClient
	now    func() time.Time

	logger *logger.Logger
}

// NewGoTrueAuthAdapter constructs the REST implementation of [AuthAdapter]
// for the project at supabaseCfg.URL. Every request carries the anon key as
// "apikey" and is bounded by adapterCfg.RequestTimeout.
//
// Returns an error if the project URL is empty or cannot be parsed.
func NewGoTrueAuthAdapter(supabaseCfg config.ClientSupabase, adapterCfg config.ClientAdapter, logger *logger.Logger) (AuthAdapter, error) {
	baseURL, err := normalizeBaseURL(supabaseCfg.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid supabase url: %w", err)
	}

	client := utils.NewHTTPClient()
	client.
		SetBaseURL(baseURL+authPath).
		SetTimeout(adapterCfg.RequestTimeout).
		SetHeader("apikey", supabaseCfg.AnonKey).
		SetHeader("Content-Type", "application/json")

	return &gotrueAuthAdapter{client: client, now: time.Now, logger: logger}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// SignUp implements [AuthAdapter] via POST /auth/v1/signup.
func (g *gotrueAuthAdapter) SignUp(ctx context.Context, email, password string) (models.SignUpResult, error) {
	var body gotrueSignUp

	resp, err := g.client.R().
		SetContext(ctx).
		SetBody(credentials{Email: email, Password: password}).
		SetResult(&body).
		Post("/signup")
	if err != nil {
		return models.SignUpResult{}, fmt.Errorf("signup request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.SignUpResult{}, err
	}

	if body.AccessToken != "" {
		session := g.toSession(body.gotrueSession)
		return models.SignUpResult{Identity: session.User, Session: session}, nil
	}

	g.logger.Info().Str("user_id", body.ID).Msg("sign up accepted, verification pending")
	return models.SignUpResult{Identity: models.Identity{ID: body.ID, Email: body.Email}}, nil
}

// SignInWithPassword implements [AuthAdapter] via
// POST /auth/v1/token?grant_type=password.
func (g *gotrueAuthAdapter) SignInWithPassword(ctx context.Context, email, password string) (*models.Session, error) {
	return g.token(ctx, "password", credentials{Email: email, Password: password})
}

// RefreshSession implements [AuthAdapter] via
// POST /auth/v1/token?grant_type=refresh_token.
func (g *gotrueAuthAdapter) RefreshSession(ctx context.Context, refreshToken string) (*models.Session, error) {
	return g.token(ctx, "refresh_token", refreshBody{RefreshToken: refreshToken})
}

// SignOut implements [AuthAdapter] via POST /auth/v1/logout.
func (g *gotrueAuthAdapter) SignOut(ctx context.Context, accessToken string) error {
	resp, err := g.client.R().
		SetContext(ctx).
		SetAuthToken(accessToken).
		Post("/logout")
	if err != nil {
		return fmt.Errorf("logout request: %w", err)
	}

	return mapHTTPError(resp)
}

func (g *gotrueAuthAdapter) token(ctx context.Context, grantType string, payload any) (*models.Session, error) {
	var body gotrueSession

	resp, err := g.client.R().
		SetContext(ctx).
		SetQueryParam("grant_type", grantType).
		SetBody(payload).
		SetResult(&body).
		Post("/token")
	if err != nil {
		return nil, fmt.Errorf("token request (%s): %w", grantType, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}
	if body.AccessToken == "" {
		return nil, ErrNoSession
	}

	return g.toSession(body), nil
}

func (g *gotrueAuthAdapter) toSession(body gotrueSession) *models.Session {
	session := &models.Session{
		AccessToken:  body.AccessToken,
		RefreshToken: body.RefreshToken,
		User:         models.Identity{ID: body.User.ID, Email: body.User.Email},
	}

	switch {
	case body.ExpiresAt > 0:
		session.ExpiresAt = time.Unix(body.ExpiresAt, 0)
	case body.ExpiresIn > 0:
		session.ExpiresAt = g.now().Add(time.Duration(body.ExpiresIn) * time.Second)
	}

	if session.ExpiresAt.IsZero() || session.User.ID == "" {
		g.fillFromClaims(session)
	}

	return session
}

// fillFromClaims completes a session whose response omitted the expiry or
// the user object, using the access token claims.
func (g *gotrueAuthAdapter) fillFromClaims(session *models.Session) {
	claims, err := utils.ParseAccessToken(session.AccessToken)
	if err != nil {
		g.logger.Debug().Err(err).Msg("access token claims are unreadable")
		return
	}

	if session.User.ID == "" {
		session.User = models.Identity{ID: claims.Subject, Email: claims.Email}
	}
	if session.ExpiresAt.IsZero() && claims.ExpiresAt != nil {
		session.ExpiresAt = claims.ExpiresAt.Time
	}
}

