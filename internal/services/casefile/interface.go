package casefile

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/settleco/accord/internal/services/casefile Service

import (
	"context"

	"github.com/settleco/accord/internal/eventbus"
)

// Service defines the case-coordination operations
type Service interface {
	// CreateSession opens a new accident session for driver A and returns
	// its one-time join code
	CreateSession(ctx context.Context, input *CreateSessionInput) (*CreateSessionOutput, error)

	// JoinSession attaches the second driver via the join code
	JoinSession(ctx context.Context, input *JoinSessionInput) (*JoinSessionOutput, error)

	// Reconnect returns a point-in-time snapshot for a participant whose
	// event stream was interrupted
	Reconnect(ctx context.Context, input *ReconnectInput) (*ReconnectOutput, error)

	// SubmitDraft stores one driver's draft; when it is the second draft the
	// canonical case record and report are created
	SubmitDraft(ctx context.Context, input *SubmitDraftInput) (*SubmitDraftOutput, error)

	// StartMeeting assigns the police officer and opens the review meeting
	StartMeeting(ctx context.Context, input *StartMeetingInput) (*StartMeetingOutput, error)

	// SignDriver records a driver signature on the report
	SignDriver(ctx context.Context, input *SignDriverInput) (*SignOutput, error)

	// SignPolice records the police signature on the report
	SignPolice(ctx context.Context, input *SignPoliceInput) (*SignOutput, error)

	// UpdateCaseDetails lets police edit the decision fields of the case record
	UpdateCaseDetails(ctx context.Context, input *UpdateCaseDetailsInput) (*UpdateCaseDetailsOutput, error)

	// GetCaseFile reads the report envelope and case record of a session
	GetCaseFile(ctx context.Context, input *GetCaseFileInput) (*GetCaseFileOutput, error)

	// GetDashboard lists sessions by status for the police dashboard
	GetDashboard(ctx context.Context, input *GetDashboardInput) (*GetDashboardOutput, error)

	// Login upserts a user profile (demo-grade; not an authentication layer)
	Login(ctx context.Context, input *LoginInput) (*LoginOutput, error)

	// StreamEvents subscribes the caller to a session's event stream
	StreamEvents(ctx context.Context, input *StreamEventsInput) (*eventbus.Subscription, error)
}
