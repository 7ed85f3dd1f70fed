package draft

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/settleco/accord/internal/repositories/draft Repository

import (
	"context"

	"github.com/settleco/accord/internal/models"
)

// Repository defines the interface for draft and evidence persistence
type Repository interface {
	// SaveDraft persists a draft together with its evidence items
	SaveDraft(ctx context.Context, input *SaveDraftInput) error

	// GetDraft retrieves a draft by ID
	GetDraft(ctx context.Context, input *GetDraftInput) (*models.Draft, error)

	// GetEvidenceByDraft retrieves all evidence owned by a draft
	GetEvidenceByDraft(ctx context.Context, input *GetEvidenceByDraftInput) (*GetEvidenceByDraftOutput, error)

	// DeleteDraft removes a draft and its evidence
	DeleteDraft(ctx context.Context, input *DeleteDraftInput) error

	// AttachEvidenceToReport stamps a report ID onto every evidence item of a draft
	AttachEvidenceToReport(ctx context.Context, input *AttachEvidenceToReportInput) error
}
