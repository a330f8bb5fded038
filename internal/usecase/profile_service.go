package usecase

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/boring-ventures/minka-sub001/internal/domain/model"
	domainRepo "github.com/boring-ventures/minka-sub001/internal/domain/repository"
	apperrors "github.com/boring-ventures/minka-sub001/pkg/errors"
)

// ProfileService manages the application profile of Supabase users
type ProfileService struct {
	store  domainRepo.Store
	logger *zap.Logger
}

// NewProfileService creates a new profile service
func NewProfileService(store domainRepo.Store, logger *zap.Logger) *ProfileService {
	return &ProfileService{store: store, logger: logger}
}

// EnsureProfile returns the caller's profile, creating it with the user
// role on first use
func (s *ProfileService) EnsureProfile(ctx context.Context, id uuid.UUID, email, name string) (*model.Profile, error) {
	profiles := s.store.Profiles()

	profile, err := profiles.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.Internal("failed to load profile", err)
	}
	if profile != nil {
		return profile, nil
	}

	if name == "" {
		name = email
	}
	profile = &model.Profile{
		ID:    id,
		Email: email,
		Name:  name,
		Role:  model.RoleUser,
	}
	if err := profiles.Create(ctx, profile); err != nil {
		return nil, apperrors.Internal("failed to create profile", err)
	}

	// Another request may have created it first; read back the stored row.
	stored, err := profiles.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.Internal("failed to load profile", err)
	}
	if stored == nil {
		return nil, apperrors.Internal("profile missing after create", nil)
	}

	s.logger.Info("Profile created",
		zap.String("profile_id", id.String()),
		zap.String("email", email))
	return stored, nil
}
