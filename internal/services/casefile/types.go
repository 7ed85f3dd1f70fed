package casefile

import (
	"time"

	"github.com/settleco/accord/internal/common/clock"
	"github.com/settleco/accord/internal/common/otp"
	"github.com/settleco/accord/internal/common/uuid"
	"github.com/settleco/accord/internal/eventbus"
	"github.com/settleco/accord/internal/models"
	draftRepo "github.com/settleco/accord/internal/repositories/draft"
	reportRepo "github.com/settleco/accord/internal/repositories/report"
	sessionRepo "github.com/settleco/accord/internal/repositories/session"
	userRepo "github.com/settleco/accord/internal/repositories/user"
)

// Role identifies a caller's part in a session
type Role string

const (
	// RoleDriverA is the driver who created the session
	RoleDriverA Role = "DRIVER_A"

	// RoleDriverB is the driver who joined via the join code
	RoleDriverB Role = "DRIVER_B"

	// RolePolice is the reviewing officer
	RolePolice Role = "POLICE"
)

// SubmitStatus is the result of a draft submission
type SubmitStatus string

const (
	// SubmitStatusWaitingForPartner means the partner's draft is still pending
	SubmitStatusWaitingForPartner SubmitStatus = "WAITING_FOR_PARTNER"

	// SubmitStatusSubmitted means both drafts are in and the case record exists
	SubmitStatusSubmitted SubmitStatus = "SUBMITTED"
)

// Config holds configuration for the casefile service
type Config struct {
	// Repository dependencies
	SessionRepo sessionRepo.Repository
	DraftRepo   draftRepo.Repository
	ReportRepo  reportRepo.Repository
	UserRepo    userRepo.Repository

	// EventBus fans out session notifications
	EventBus eventbus.Bus

	// Service dependencies
	Clock         clock.Clock
	UUIDGenerator uuid.UUID
	OTPGenerator  otp.Generator
}

// CreateSessionInput contains parameters for creating a session
type CreateSessionInput struct {
	// DriverAID is the creating driver
	DriverAID string
}

// CreateSessionOutput contains the result of creating a session
type CreateSessionOutput struct {
	// SessionID is the new session's identifier
	SessionID string

	// OTP is the one-time join code for the second driver
	OTP string
}

// JoinSessionInput contains parameters for joining a session
type JoinSessionInput struct {
	// OTP is the join code handed to the second driver
	OTP string

	// DriverID is the joining driver
	DriverID string
}

// JoinSessionOutput contains the result of joining a session
type JoinSessionOutput struct {
	// SessionID is the joined session's identifier
	SessionID string

	// AlreadyJoined is true on an idempotent re-join by the same driver
	AlreadyJoined bool
}

// ReconnectInput contains parameters for a point-in-time snapshot
type ReconnectInput struct {
	// OTP is the join code identifying the session
	OTP string

	// UserID is the reconnecting participant
	UserID string
}

// ReconnectOutput is the snapshot a client uses to recover state missed
// while disconnected from the event stream
type ReconnectOutput struct {
	SessionID         string
	Status            models.SessionStatus
	Role              Role
	PartnerID         string
	PartnerProfile    *models.User
	HasSubmittedDraft bool
	MeetingRef        string
}

// DraftPayload carries the free-form incident fields of a submission
type DraftPayload struct {
	AccidentTime   *time.Time
	Location       string
	IncidentType   string
	Description    string
	Weather        string
	RoadSurface    string
	RoadType       string
	FaultAssertion string
}

// EvidenceItem carries one attachment of a submission
type EvidenceItem struct {
	Type    models.EvidenceType
	Tag     models.EvidenceTag
	Title   string
	Content string
}

// SubmitDraftInput contains parameters for submitting a draft
type SubmitDraftInput struct {
	SessionID string
	DriverID  string
	Draft     *DraftPayload
	Evidence  []EvidenceItem
}

// SubmitDraftOutput contains the result of submitting a draft
type SubmitDraftOutput struct {
	// Status is WAITING_FOR_PARTNER or SUBMITTED
	Status SubmitStatus

	// DraftID is the stored draft's identifier
	DraftID string

	// ReportID is set once both drafts are in and the case record exists
	ReportID string
}

// StartMeetingInput contains parameters for opening the police review
type StartMeetingInput struct {
	SessionID string
	PoliceID  string
}

// StartMeetingOutput contains the result of opening the police review
type StartMeetingOutput struct {
	// MeetingRef is the (re)generated meeting reference
	MeetingRef string
}

// SignDriverInput contains parameters for a driver signature
type SignDriverInput struct {
	SessionID string
	DriverID  string
	Signature string
}

// SignPoliceInput contains parameters for the police signature
type SignPoliceInput struct {
	SessionID string
	PoliceID  string
	Signature string
}

// SignOutput contains the result of a signing operation
type SignOutput struct {
	// Completed is true when this signature closed the case
	Completed bool
}

// UpdateCaseDetailsInput contains the police-editable decision fields.
// Empty fields are left untouched.
type UpdateCaseDetailsInput struct {
	SessionID string
	PoliceID  string

	Station        string
	District       string
	Contingent     string
	OffenceSection string
	Decision       string
	DecisionNotes  string
	OfficerName    string
	OfficerRank    string
}

// UpdateCaseDetailsOutput contains the updated case record
type UpdateCaseDetailsOutput struct {
	CaseDetails *models.CaseDetails
}

// GetCaseFileInput contains parameters for reading a session's case file
type GetCaseFileInput struct {
	SessionID string
}

// GetCaseFileOutput bundles the report envelope with its case record
type GetCaseFileOutput struct {
	Report      *models.Report
	CaseDetails *models.CaseDetails
}

// GetDashboardInput contains parameters for the dashboard query
type GetDashboardInput struct {
	// Statuses filters the result; defaults to PENDING_POLICE
	Statuses []models.SessionStatus
}

// GetDashboardOutput contains the dashboard query result
type GetDashboardOutput struct {
	Sessions []*models.Session
}

// LoginInput contains parameters for the demo login upsert
type LoginInput struct {
	UserID string

	// Profile overrides the generated placeholder profile when provided
	Profile *models.User
}

// LoginOutput contains the stored user profile
type LoginOutput struct {
	User *models.User
}

// StreamEventsInput contains parameters for subscribing to a session stream
type StreamEventsInput struct {
	SessionID string
}
