package user

import "github.com/settleco/accord/internal/models"

// SaveUserInput contains parameters for saving a user profile
type SaveUserInput struct {
	User *models.User
}

// GetUserInput contains parameters for retrieving a user profile
type GetUserInput struct {
	UserID string
}
