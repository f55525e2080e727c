package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/cyber-aware/internal/logger"
	"github.com/MKhiriev/cyber-aware/internal/store"
	"github.com/MKhiriev/cyber-aware/internal/utils"
	"github.com/MKhiriev/cyber-aware/models"
)

type clientProfileService struct {
	profiles store.ProfileRepository
	tokens   TokenSource
	logger   *logger.Logger
}

func NewClientProfileService(profiles store.ProfileRepository, tokens TokenSource, logger *logger.Logger) ProfileService {
	return &clientProfileService{profiles: profiles, tokens: tokens, logger: logger}
}

// Resolve looks the profile up and self-heals a missing row. A concurrent
// insert by the signup trigger surfaces as store.ErrAlreadyExists and is
// answered with a second lookup. store.ErrSchemaMissing is returned as is.
func (p *clientProfileService) Resolve(ctx context.Context, identity models.Identity) (models.UserProfile, error) {
	if !utils.IsUUID(identity.ID) {
		return models.UserProfile{}, fmt.Errorf("%w: identity id %q", ErrInvalidInput, identity.ID)
	}

	token := p.tokens.AccessToken()

	profile, err := p.profiles.FindProfile(ctx, token, identity.ID)
	switch {
	case err == nil:
		return p.checkOwner(profile, identity)
	case !errors.Is(err, store.ErrProfileNotFound):
		return models.UserProfile{}, fmt.Errorf("find profile: %w", err)
	}

	p.logger.Info().Str("user_id", identity.ID).Msg("profile missing, creating it")

	profile, err = p.profiles.InsertProfile(ctx, token, models.UserProfile{
		ID:    identity.ID,
		Email: identity.Email,
		Role:  models.RoleUser,
	})
	switch {
	case err == nil:
		return p.checkOwner(profile, identity)
	case !errors.Is(err, store.ErrAlreadyExists):
		return models.UserProfile{}, fmt.Errorf("insert profile: %w", err)
	}

	p.logger.Debug().Str("user_id", identity.ID).Msg("profile created concurrently, reading it back")

	profile, err = p.profiles.FindProfile(ctx, token, identity.ID)
	if err != nil {
		return models.UserProfile{}, fmt.Errorf("find profile after conflict: %w", err)
	}
	return p.checkOwner(profile, identity)
}

func (p *clientProfileService) checkOwner(profile models.UserProfile, identity models.Identity) (models.UserProfile, error) {
	if profile.ID != identity.ID {
		p.logger.Error().Str("user_id", identity.ID).Str("profile_id", profile.ID).Msg("profile id mismatch")
		return models.UserProfile{}, ErrProfileMismatch
	}
	return profile, nil
}
