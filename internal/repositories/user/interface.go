package user

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/settleco/accord/internal/repositories/user Repository

import (
	"context"

	"github.com/settleco/accord/internal/models"
)

// Repository defines the interface for user-profile persistence
type Repository interface {
	// SaveUser persists a user profile
	SaveUser(ctx context.Context, input *SaveUserInput) error

	// GetUser retrieves a user profile by ID
	GetUser(ctx context.Context, input *GetUserInput) (*models.User, error)
}
