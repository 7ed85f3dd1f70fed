package session

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/settleco/accord/internal/repositories/session Repository

import (
	"context"

	"github.com/settleco/accord/internal/models"
)

// Repository defines the interface for session data persistence
type Repository interface {
	// SaveSession persists a session
	SaveSession(ctx context.Context, input *SaveSessionInput) error

	// GetSession retrieves a session by ID
	GetSession(ctx context.Context, input *GetSessionInput) (*models.Session, error)

	// GetSessionByOTP retrieves a session by its join code
	GetSessionByOTP(ctx context.Context, input *GetSessionByOTPInput) (*models.Session, error)

	// GetSessionsByStatus retrieves all sessions in any of the given statuses
	GetSessionsByStatus(ctx context.Context, input *GetSessionsByStatusInput) (*GetSessionsByStatusOutput, error)
}
