package casefile

import (
	"errors"
	"fmt"
)

// Error kinds. Handlers dispatch on these with errors.Is; the specific
// errors below wrap them so callers can match either level.
var (
	// ErrNotFound covers unknown sessions, join codes and reports
	ErrNotFound = errors.New("not found")

	// ErrForbidden covers callers that are not a recognized participant
	ErrForbidden = errors.New("forbidden")

	// ErrConflict covers slots already occupied by a different identity
	ErrConflict = errors.New("conflict")

	// ErrInvalidState covers transitions not legal from the current status
	ErrInvalidState = errors.New("invalid state")
)

var (
	ErrSessionNotFound = fmt.Errorf("session %w", ErrNotFound)
	ErrReportNotFound  = fmt.Errorf("report %w", ErrNotFound)
	ErrDetailsNotFound = fmt.Errorf("case details %w", ErrNotFound)

	// ErrNotParticipant is returned when the caller matches none of the
	// session's driver or police slots for the requested action
	ErrNotParticipant = fmt.Errorf("%w: caller is not a participant of this session", ErrForbidden)

	// ErrSlotOccupied is returned when the second driver slot already holds
	// a different identity
	ErrSlotOccupied = fmt.Errorf("%w: session already has a second driver", ErrConflict)

	// ErrSelfJoin is returned when a driver tries to join their own session
	ErrSelfJoin = fmt.Errorf("%w: cannot join own session as second driver", ErrConflict)

	// ErrDraftAlreadyMerged is returned when a driver resubmits after
	// aggregation has already produced the canonical case record
	ErrDraftAlreadyMerged = fmt.Errorf("%w: drafts already merged into case record", ErrInvalidState)
)
