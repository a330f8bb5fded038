package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/boring-ventures/minka-sub001/internal/domain/model"
)

// ProfileRepository defines the interface for profile persistence
type ProfileRepository interface {
	// GetByID returns nil, nil when the profile does not exist
	GetByID(ctx context.Context, id uuid.UUID) (*model.Profile, error)

	// Create inserts the profile, doing nothing if the id already exists
	Create(ctx context.Context, profile *model.Profile) error
}
