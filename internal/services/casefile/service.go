package casefile

import (
	"context"
	"errors"
	"fmt"

	"github.com/settleco/accord/internal/aggregate"
	"github.com/settleco/accord/internal/eventbus"
	"github.com/settleco/accord/internal/models"
	draftRepo "github.com/settleco/accord/internal/repositories/draft"
	reportRepo "github.com/settleco/accord/internal/repositories/report"
	sessionRepo "github.com/settleco/accord/internal/repositories/session"
	userRepo "github.com/settleco/accord/internal/repositories/user"
)

// service implements the Service interface
type service struct {
	config *Config
	locks  *sessionLocks
}

// New creates a new casefile service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if cfg.SessionRepo == nil {
		return nil, errors.New("session repository cannot be nil")
	}
	if cfg.DraftRepo == nil {
		return nil, errors.New("draft repository cannot be nil")
	}
	if cfg.ReportRepo == nil {
		return nil, errors.New("report repository cannot be nil")
	}
	if cfg.UserRepo == nil {
		return nil, errors.New("user repository cannot be nil")
	}
	if cfg.EventBus == nil {
		return nil, errors.New("event bus cannot be nil")
	}
	if cfg.Clock == nil {
		return nil, errors.New("clock cannot be nil")
	}
	if cfg.UUIDGenerator == nil {
		return nil, errors.New("UUID generator cannot be nil")
	}
	if cfg.OTPGenerator == nil {
		return nil, errors.New("OTP generator cannot be nil")
	}

	return &service{
		config: cfg,
		locks:  newSessionLocks(),
	}, nil
}

// CreateSession opens a new accident session for driver A
func (s *service) CreateSession(ctx context.Context, input *CreateSessionInput) (*CreateSessionOutput, error) {
	if input == nil || input.DriverAID == "" {
		return nil, errors.New("input and driver A ID cannot be empty")
	}

	code, err := s.config.OTPGenerator.NewCode()
	if err != nil {
		return nil, fmt.Errorf("failed to generate join code: %w", err)
	}

	now := s.config.Clock.Now()
	session := &models.Session{
		ID:        s.config.UUIDGenerator.NewUUID(),
		OTP:       code,
		DriverAID: input.DriverAID,
		Status:    models.SessionStatusCreated,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.config.SessionRepo.SaveSession(ctx, &sessionRepo.SaveSessionInput{
		Session: session,
	}); err != nil {
		return nil, err
	}

	return &CreateSessionOutput{
		SessionID: session.ID,
		OTP:       session.OTP,
	}, nil
}

// JoinSession attaches the second driver via the join code
func (s *service) JoinSession(ctx context.Context, input *JoinSessionInput) (*JoinSessionOutput, error) {
	if input == nil || input.OTP == "" || input.DriverID == "" {
		return nil, errors.New("input, OTP and driver ID cannot be empty")
	}

	found, err := s.config.SessionRepo.GetSessionByOTP(ctx, &sessionRepo.GetSessionByOTPInput{
		OTP: input.OTP,
	})
	if err != nil {
		if errors.Is(err, sessionRepo.ErrSessionNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	unlock := s.locks.acquire(found.ID)
	defer unlock()

	// Re-read under the lock; the OTP lookup raced other writers
	session, err := s.getSession(ctx, found.ID)
	if err != nil {
		return nil, err
	}

	if input.DriverID == session.DriverAID {
		return nil, ErrSelfJoin
	}

	if session.DriverBID != "" {
		if session.DriverBID == input.DriverID {
			// Idempotent re-join: slot already held by the same driver
			return &JoinSessionOutput{
				SessionID:     session.ID,
				AlreadyJoined: true,
			}, nil
		}
		return nil, ErrSlotOccupied
	}

	if !session.Status.CanTransitionTo(models.SessionStatusHandshake) {
		return nil, ErrInvalidState
	}

	session.DriverBID = input.DriverID
	session.Status = models.SessionStatusHandshake
	session.UpdatedAt = s.config.Clock.Now()

	if err := s.config.SessionRepo.SaveSession(ctx, &sessionRepo.SaveSessionInput{
		Session: session,
	}); err != nil {
		return nil, err
	}

	s.config.EventBus.Publish(session.ID, eventbus.EventHandshakeComplete, map[string]any{
		"driver_b": input.DriverID,
	})

	return &JoinSessionOutput{
		SessionID: session.ID,
	}, nil
}

// Reconnect returns a point-in-time snapshot for a disconnected participant
func (s *service) Reconnect(ctx context.Context, input *ReconnectInput) (*ReconnectOutput, error) {
	if input == nil || input.OTP == "" || input.UserID == "" {
		return nil, errors.New("input, OTP and user ID cannot be empty")
	}

	session, err := s.config.SessionRepo.GetSessionByOTP(ctx, &sessionRepo.GetSessionByOTPInput{
		OTP: input.OTP,
	})
	if err != nil {
		if errors.Is(err, sessionRepo.ErrSessionNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	var (
		role         Role
		partnerID    string
		hasSubmitted bool
	)

	switch input.UserID {
	case session.DriverAID:
		role = RoleDriverA
		partnerID = session.DriverBID
		hasSubmitted = session.DriverADraftID != ""
	case session.DriverBID:
		role = RoleDriverB
		partnerID = session.DriverAID
		hasSubmitted = session.DriverBDraftID != ""
	case session.PoliceID:
		role = RolePolice
	default:
		return nil, ErrNotParticipant
	}

	output := &ReconnectOutput{
		SessionID:         session.ID,
		Status:            session.Status,
		Role:              role,
		PartnerID:         partnerID,
		HasSubmittedDraft: hasSubmitted,
		MeetingRef:        session.MeetingRef,
	}

	if partnerID != "" {
		partner, err := s.config.UserRepo.GetUser(ctx, &userRepo.GetUserInput{
			UserID: partnerID,
		})
		if err == nil {
			output.PartnerProfile = partner
		} else if !errors.Is(err, userRepo.ErrUserNotFound) {
			return nil, err
		}
	}

	return output, nil
}

// SubmitDraft stores one driver's draft; the second draft triggers the merge
func (s *service) SubmitDraft(ctx context.Context, input *SubmitDraftInput) (*SubmitDraftOutput, error) {
	if input == nil || input.SessionID == "" || input.DriverID == "" || input.Draft == nil {
		return nil, errors.New("input, session ID, driver ID and draft cannot be empty")
	}

	unlock := s.locks.acquire(input.SessionID)
	defer unlock()

	session, err := s.getSession(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	// Drafts are only accepted before the merge; the case record is created
	// exactly once
	switch session.Status {
	case models.SessionStatusCreated, models.SessionStatusHandshake:
	default:
		return nil, ErrDraftAlreadyMerged
	}

	var previousDraftID string
	switch input.DriverID {
	case session.DriverAID:
		previousDraftID = session.DriverADraftID
	case session.DriverBID:
		previousDraftID = session.DriverBDraftID
	default:
		return nil, ErrNotParticipant
	}

	now := s.config.Clock.Now()
	draft := &models.Draft{
		ID:             s.config.UUIDGenerator.NewUUID(),
		SessionID:      session.ID,
		DriverID:       input.DriverID,
		AccidentTime:   input.Draft.AccidentTime,
		Location:       input.Draft.Location,
		IncidentType:   input.Draft.IncidentType,
		Description:    input.Draft.Description,
		Weather:        input.Draft.Weather,
		RoadSurface:    input.Draft.RoadSurface,
		RoadType:       input.Draft.RoadType,
		FaultAssertion: input.Draft.FaultAssertion,
		CreatedAt:      now,
	}

	evidence := make([]*models.Evidence, 0, len(input.Evidence))
	for _, item := range input.Evidence {
		title := item.Title
		if title == "" {
			title = string(item.Tag)
		}
		evidence = append(evidence, &models.Evidence{
			ID:         s.config.UUIDGenerator.NewUUID(),
			DraftID:    draft.ID,
			UploaderID: input.DriverID,
			Type:       item.Type,
			Tag:        item.Tag,
			Title:      title,
			Content:    item.Content,
			CreatedAt:  now,
		})
	}

	if err := s.config.DraftRepo.SaveDraft(ctx, &draftRepo.SaveDraftInput{
		Draft:    draft,
		Evidence: evidence,
	}); err != nil {
		return nil, err
	}

	// Resubmission before the merge replaces the driver's earlier draft
	if previousDraftID != "" {
		if err := s.config.DraftRepo.DeleteDraft(ctx, &draftRepo.DeleteDraftInput{
			DraftID: previousDraftID,
		}); err != nil {
			return nil, err
		}
	}

	if input.DriverID == session.DriverAID {
		session.DriverADraftID = draft.ID
	} else {
		session.DriverBDraftID = draft.ID
	}
	session.UpdatedAt = now

	// The slot references are the authoritative completion check: both set
	// means the partner's draft is committed and the merge can run
	if session.DriverADraftID != "" && session.DriverBDraftID != "" {
		reportID, err := s.createCaseFile(ctx, session)
		if err != nil {
			return nil, err
		}

		s.config.EventBus.Publish(session.ID, eventbus.EventAllReportsSubmitted, map[string]any{
			"user_id":   input.DriverID,
			"report_id": reportID,
		})

		return &SubmitDraftOutput{
			Status:   SubmitStatusSubmitted,
			DraftID:  draft.ID,
			ReportID: reportID,
		}, nil
	}

	if err := s.config.SessionRepo.SaveSession(ctx, &sessionRepo.SaveSessionInput{
		Session: session,
	}); err != nil {
		return nil, err
	}

	s.config.EventBus.Publish(session.ID, eventbus.EventReportSubmitted, map[string]any{
		"user_id": input.DriverID,
	})

	return &SubmitDraftOutput{
		Status:  SubmitStatusWaitingForPartner,
		DraftID: draft.ID,
	}, nil
}

// createCaseFile runs the merge, persists the case record and report,
// re-associates evidence and moves the session to PENDING_POLICE. Caller
// holds the session lock.
func (s *service) createCaseFile(ctx context.Context, session *models.Session) (string, error) {
	if !session.Status.CanTransitionTo(models.SessionStatusPendingPolice) {
		return "", ErrInvalidState
	}

	draftA, err := s.config.DraftRepo.GetDraft(ctx, &draftRepo.GetDraftInput{
		DraftID: session.DriverADraftID,
	})
	if err != nil {
		return "", err
	}

	draftB, err := s.config.DraftRepo.GetDraft(ctx, &draftRepo.GetDraftInput{
		DraftID: session.DriverBDraftID,
	})
	if err != nil {
		return "", err
	}

	userA := s.getUserOrEmpty(ctx, session.DriverAID)
	userB := s.getUserOrEmpty(ctx, session.DriverBID)

	now := s.config.Clock.Now()
	details := aggregate.Merge(&aggregate.MergeInput{
		SessionID: session.ID,
		DraftA:    draftA,
		DraftB:    draftB,
		UserA:     userA,
		UserB:     userB,
		Now:       now,
	})
	details.ID = s.config.UUIDGenerator.NewUUID()
	details.CreatedAt = now
	details.UpdatedAt = now

	if err := s.config.ReportRepo.SaveCaseDetails(ctx, &reportRepo.SaveCaseDetailsInput{
		CaseDetails: details,
	}); err != nil {
		return "", err
	}

	report := &models.Report{
		ID:             s.config.UUIDGenerator.NewUUID(),
		SessionID:      session.ID,
		CaseDetailsID:  details.ID,
		DriverADraftID: session.DriverADraftID,
		DriverBDraftID: session.DriverBDraftID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.config.ReportRepo.SaveReport(ctx, &reportRepo.SaveReportInput{
		Report: report,
	}); err != nil {
		return "", err
	}

	// Carry evidence from both drafts onto the report
	for _, draftID := range []string{session.DriverADraftID, session.DriverBDraftID} {
		if err := s.config.DraftRepo.AttachEvidenceToReport(ctx, &draftRepo.AttachEvidenceToReportInput{
			DraftID:  draftID,
			ReportID: report.ID,
		}); err != nil {
			return "", err
		}
	}

	session.ReportID = report.ID
	session.Status = models.SessionStatusPendingPolice
	session.UpdatedAt = now

	if err := s.config.SessionRepo.SaveSession(ctx, &sessionRepo.SaveSessionInput{
		Session: session,
	}); err != nil {
		return "", err
	}

	return report.ID, nil
}

// StartMeeting assigns the police officer and opens the review meeting.
// Calling it again regenerates the meeting reference without a second
// transition.
func (s *service) StartMeeting(ctx context.Context, input *StartMeetingInput) (*StartMeetingOutput, error) {
	if input == nil || input.SessionID == "" || input.PoliceID == "" {
		return nil, errors.New("input, session ID and police ID cannot be empty")
	}

	unlock := s.locks.acquire(input.SessionID)
	defer unlock()

	session, err := s.getSession(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	if session.Status != models.SessionStatusMeetingStarted &&
		!session.Status.CanTransitionTo(models.SessionStatusMeetingStarted) {
		return nil, ErrInvalidState
	}

	session.PoliceID = input.PoliceID
	session.MeetingRef = fmt.Sprintf("meet-%s", s.config.UUIDGenerator.NewUUID())
	session.Status = models.SessionStatusMeetingStarted
	session.UpdatedAt = s.config.Clock.Now()

	if err := s.config.SessionRepo.SaveSession(ctx, &sessionRepo.SaveSessionInput{
		Session: session,
	}); err != nil {
		return nil, err
	}

	s.config.EventBus.Publish(session.ID, eventbus.EventMeetingStarted, map[string]any{
		"link":      session.MeetingRef,
		"police_id": input.PoliceID,
	})

	return &StartMeetingOutput{
		MeetingRef: session.MeetingRef,
	}, nil
}

// SignDriver records a driver signature and re-evaluates closure
func (s *service) SignDriver(ctx context.Context, input *SignDriverInput) (*SignOutput, error) {
	if input == nil || input.SessionID == "" || input.DriverID == "" || input.Signature == "" {
		return nil, errors.New("input, session ID, driver ID and signature cannot be empty")
	}

	unlock := s.locks.acquire(input.SessionID)
	defer unlock()

	session, err := s.getSession(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	if session.Status == models.SessionStatusCompleted {
		return nil, ErrInvalidState
	}

	report, err := s.getReport(ctx, session)
	if err != nil {
		return nil, err
	}

	switch input.DriverID {
	case session.DriverAID:
		report.DriverASignature = input.Signature
	case session.DriverBID:
		report.DriverBSignature = input.Signature
	default:
		return nil, ErrNotParticipant
	}
	report.UpdatedAt = s.config.Clock.Now()

	if err := s.config.ReportRepo.SaveReport(ctx, &reportRepo.SaveReportInput{
		Report: report,
	}); err != nil {
		return nil, err
	}

	completed, err := s.evaluateClosure(ctx, session, report)
	if err != nil {
		return nil, err
	}
	if !completed {
		s.config.EventBus.Publish(session.ID, eventbus.EventUserSigned, map[string]any{
			"user_id": input.DriverID,
		})
	}

	return &SignOutput{
		Completed: completed,
	}, nil
}

// SignPolice records the police signature, moves the session to
// POLICE_SIGNED and re-evaluates closure
func (s *service) SignPolice(ctx context.Context, input *SignPoliceInput) (*SignOutput, error) {
	if input == nil || input.SessionID == "" || input.PoliceID == "" || input.Signature == "" {
		return nil, errors.New("input, session ID, police ID and signature cannot be empty")
	}

	unlock := s.locks.acquire(input.SessionID)
	defer unlock()

	session, err := s.getSession(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	if session.PoliceID == "" || session.PoliceID != input.PoliceID {
		return nil, ErrNotParticipant
	}

	if !session.Status.CanTransitionTo(models.SessionStatusPoliceSigned) {
		return nil, ErrInvalidState
	}

	report, err := s.getReport(ctx, session)
	if err != nil {
		return nil, err
	}

	now := s.config.Clock.Now()
	report.PoliceSignature = input.Signature
	report.UpdatedAt = now

	if err := s.config.ReportRepo.SaveReport(ctx, &reportRepo.SaveReportInput{
		Report: report,
	}); err != nil {
		return nil, err
	}

	session.Status = models.SessionStatusPoliceSigned
	session.UpdatedAt = now

	if err := s.config.SessionRepo.SaveSession(ctx, &sessionRepo.SaveSessionInput{
		Session: session,
	}); err != nil {
		return nil, err
	}

	s.config.EventBus.Publish(session.ID, eventbus.EventPoliceSigned, map[string]any{
		"police_id": input.PoliceID,
	})

	completed, err := s.evaluateClosure(ctx, session, report)
	if err != nil {
		return nil, err
	}

	return &SignOutput{
		Completed: completed,
	}, nil
}

// evaluateClosure moves the session to COMPLETED and publishes CASE_CLOSED
// when all three signature slots are populated and the police transition has
// happened. Caller holds the session lock.
func (s *service) evaluateClosure(ctx context.Context, session *models.Session, report *models.Report) (bool, error) {
	if !report.AllSigned() {
		return false, nil
	}
	if !session.Status.CanTransitionTo(models.SessionStatusCompleted) {
		// Drivers may sign before the police; closure is re-evaluated after
		// the police transition
		return false, nil
	}

	session.Status = models.SessionStatusCompleted
	session.UpdatedAt = s.config.Clock.Now()

	if err := s.config.SessionRepo.SaveSession(ctx, &sessionRepo.SaveSessionInput{
		Session: session,
	}); err != nil {
		return false, err
	}

	s.config.EventBus.Publish(session.ID, eventbus.EventCaseClosed, map[string]any{
		"report_id":       report.ID,
		"case_details_id": report.CaseDetailsID,
	})

	return true, nil
}

// UpdateCaseDetails lets the police edit decision fields on the case record
func (s *service) UpdateCaseDetails(ctx context.Context, input *UpdateCaseDetailsInput) (*UpdateCaseDetailsOutput, error) {
	if input == nil || input.SessionID == "" || input.PoliceID == "" {
		return nil, errors.New("input, session ID and police ID cannot be empty")
	}

	unlock := s.locks.acquire(input.SessionID)
	defer unlock()

	session, err := s.getSession(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	if session.PoliceID == "" || session.PoliceID != input.PoliceID {
		return nil, ErrNotParticipant
	}

	details, err := s.config.ReportRepo.GetCaseDetailsBySession(ctx, &reportRepo.GetCaseDetailsBySessionInput{
		SessionID: session.ID,
	})
	if err != nil {
		if errors.Is(err, reportRepo.ErrCaseDetailsNotFound) {
			return nil, ErrDetailsNotFound
		}
		return nil, err
	}

	applyIfSet := func(dst *string, value string) {
		if value != "" {
			*dst = value
		}
	}
	applyIfSet(&details.Station, input.Station)
	applyIfSet(&details.District, input.District)
	applyIfSet(&details.Contingent, input.Contingent)
	applyIfSet(&details.OffenceSection, input.OffenceSection)
	applyIfSet(&details.Decision, input.Decision)
	applyIfSet(&details.DecisionNotes, input.DecisionNotes)
	applyIfSet(&details.OfficerName, input.OfficerName)
	applyIfSet(&details.OfficerRank, input.OfficerRank)
	details.UpdatedAt = s.config.Clock.Now()

	if err := s.config.ReportRepo.SaveCaseDetails(ctx, &reportRepo.SaveCaseDetailsInput{
		CaseDetails: details,
	}); err != nil {
		return nil, err
	}

	return &UpdateCaseDetailsOutput{
		CaseDetails: details,
	}, nil
}

// GetCaseFile reads the report envelope and case record of a session
func (s *service) GetCaseFile(ctx context.Context, input *GetCaseFileInput) (*GetCaseFileOutput, error) {
	if input == nil || input.SessionID == "" {
		return nil, errors.New("input and session ID cannot be empty")
	}

	session, err := s.getSession(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	report, err := s.getReport(ctx, session)
	if err != nil {
		return nil, err
	}

	details, err := s.config.ReportRepo.GetCaseDetails(ctx, &reportRepo.GetCaseDetailsInput{
		CaseDetailsID: report.CaseDetailsID,
	})
	if err != nil {
		if errors.Is(err, reportRepo.ErrCaseDetailsNotFound) {
			return nil, ErrDetailsNotFound
		}
		return nil, err
	}

	return &GetCaseFileOutput{
		Report:      report,
		CaseDetails: details,
	}, nil
}

// GetDashboard lists sessions by status for the police dashboard
func (s *service) GetDashboard(ctx context.Context, input *GetDashboardInput) (*GetDashboardOutput, error) {
	statuses := []models.SessionStatus{models.SessionStatusPendingPolice}
	if input != nil && len(input.Statuses) > 0 {
		statuses = input.Statuses
	}

	output, err := s.config.SessionRepo.GetSessionsByStatus(ctx, &sessionRepo.GetSessionsByStatusInput{
		Statuses: statuses,
	})
	if err != nil {
		return nil, err
	}

	return &GetDashboardOutput{
		Sessions: output.Sessions,
	}, nil
}

// Login upserts a user profile. Unknown users get a generated placeholder
// profile so demo flows work without a registration step.
func (s *service) Login(ctx context.Context, input *LoginInput) (*LoginOutput, error) {
	if input == nil || input.UserID == "" {
		return nil, errors.New("input and user ID cannot be empty")
	}

	existing, err := s.config.UserRepo.GetUser(ctx, &userRepo.GetUserInput{
		UserID: input.UserID,
	})
	if err == nil && input.Profile == nil {
		return &LoginOutput{
			User: existing,
		}, nil
	}
	if err != nil && !errors.Is(err, userRepo.ErrUserNotFound) {
		return nil, err
	}

	user := input.Profile
	if user == nil {
		user = &models.User{
			Name:            fmt.Sprintf("User %s", input.UserID),
			IdentityNo:      "900101-14-1234",
			CarPlate:        fmt.Sprintf("W%s123", input.UserID),
			CarModel:        "Myvi",
			InsurancePolicy: "AXA-123-456",
		}
	}
	user.ID = input.UserID

	if err := s.config.UserRepo.SaveUser(ctx, &userRepo.SaveUserInput{
		User: user,
	}); err != nil {
		return nil, err
	}

	return &LoginOutput{
		User: user,
	}, nil
}

// StreamEvents subscribes the caller to a session's event stream. Events
// published before the subscription are gone; clients reconcile through
// Reconnect.
func (s *service) StreamEvents(ctx context.Context, input *StreamEventsInput) (*eventbus.Subscription, error) {
	if input == nil || input.SessionID == "" {
		return nil, errors.New("input and session ID cannot be empty")
	}

	if _, err := s.getSession(ctx, input.SessionID); err != nil {
		return nil, err
	}

	return s.config.EventBus.Subscribe(input.SessionID), nil
}

func (s *service) getSession(ctx context.Context, sessionID string) (*models.Session, error) {
	session, err := s.config.SessionRepo.GetSession(ctx, &sessionRepo.GetSessionInput{
		SessionID: sessionID,
	})
	if err != nil {
		if errors.Is(err, sessionRepo.ErrSessionNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return session, nil
}

func (s *service) getReport(ctx context.Context, session *models.Session) (*models.Report, error) {
	if session.ReportID == "" {
		return nil, ErrReportNotFound
	}

	report, err := s.config.ReportRepo.GetReport(ctx, &reportRepo.GetReportInput{
		ReportID: session.ReportID,
	})
	if err != nil {
		if errors.Is(err, reportRepo.ErrReportNotFound) {
			return nil, ErrReportNotFound
		}
		return nil, err
	}
	return report, nil
}

// getUserOrEmpty falls back to a bare profile; the merge tolerates missing
// profile data
func (s *service) getUserOrEmpty(ctx context.Context, userID string) *models.User {
	user, err := s.config.UserRepo.GetUser(ctx, &userRepo.GetUserInput{
		UserID: userID,
	})
	if err != nil {
		return &models.User{ID: userID}
	}
	return user
}
