package session

import "github.com/settleco/accord/internal/models"

// SaveSessionInput contains parameters for saving a session
type SaveSessionInput struct {
	Session *models.Session
}

// GetSessionInput contains parameters for retrieving a session
type GetSessionInput struct {
	SessionID string
}

// GetSessionByOTPInput contains parameters for retrieving a session by join code
type GetSessionByOTPInput struct {
	OTP string
}

// GetSessionsByStatusInput contains parameters for the status query
type GetSessionsByStatusInput struct {
	Statuses []models.SessionStatus
}

// GetSessionsByStatusOutput contains the result of the status query
type GetSessionsByStatusOutput struct {
	Sessions []*models.Session
}
