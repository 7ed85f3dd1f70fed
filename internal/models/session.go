package models

import (
	"time"
)

// SessionStatus represents the current state of an accident session
type SessionStatus string

const (
	// SessionStatusCreated indicates the session is waiting for the second driver to join
	SessionStatusCreated SessionStatus = "CREATED"

	// SessionStatusHandshake indicates both drivers are attached and drafts are pending
	SessionStatusHandshake SessionStatus = "HANDSHAKE"

	// SessionStatusPendingPolice indicates both drafts are in and the case awaits police review
	SessionStatusPendingPolice SessionStatus = "PENDING_POLICE"

	// SessionStatusMeetingStarted indicates a police officer opened the review meeting
	SessionStatusMeetingStarted SessionStatus = "MEETING_STARTED"

	// SessionStatusPoliceSigned indicates the police signature is on the report
	SessionStatusPoliceSigned SessionStatus = "POLICE_SIGNED"

	// SessionStatusCompleted indicates all three parties signed and the case is closed
	SessionStatusCompleted SessionStatus = "COMPLETED"
)

// CanTransitionTo reports whether next is a legal outgoing edge from s.
// Idempotent repeats (re-opening an already started meeting) are the
// caller's concern, not an edge here.
func (s SessionStatus) CanTransitionTo(next SessionStatus) bool {
	switch s {
	case SessionStatusCreated:
		return next == SessionStatusHandshake
	case SessionStatusHandshake:
		return next == SessionStatusPendingPolice
	case SessionStatusPendingPolice:
		return next == SessionStatusMeetingStarted
	case SessionStatusMeetingStarted:
		return next == SessionStatusPoliceSigned
	case SessionStatusPoliceSigned:
		return next == SessionStatusCompleted
	default:
		return false
	}
}

// Session represents one accident case shared by two drivers and a police officer
type Session struct {
	// ID is the unique identifier for the session
	ID string

	// OTP is the one-time join code handed to the second driver
	OTP string

	// DriverAID is the driver who created the session
	DriverAID string

	// DriverBID is the driver who joined via OTP; empty until the handshake,
	// immutable once set
	DriverBID string

	// PoliceID is the reviewing officer; empty until a meeting is started
	PoliceID string

	// DriverADraftID references driver A's submitted draft, if any
	DriverADraftID string

	// DriverBDraftID references driver B's submitted draft, if any
	DriverBDraftID string

	// ReportID references the signing envelope once both drafts are merged
	ReportID string

	// MeetingRef is the review-meeting reference generated by StartMeeting
	MeetingRef string

	// Status is the current state of the session
	Status SessionStatus

	// CreatedAt is when the session was created
	CreatedAt time.Time

	// UpdatedAt is when the session was last updated
	UpdatedAt time.Time
}

// HasParticipant reports whether userID is one of the session's drivers or
// its police officer.
func (s *Session) HasParticipant(userID string) bool {
	if userID == "" {
		return false
	}
	return userID == s.DriverAID || userID == s.DriverBID || userID == s.PoliceID
}
