package draft

import "github.com/settleco/accord/internal/models"

// SaveDraftInput contains parameters for saving a draft and its evidence
type SaveDraftInput struct {
	Draft    *models.Draft
	Evidence []*models.Evidence
}

// GetDraftInput contains parameters for retrieving a draft
type GetDraftInput struct {
	DraftID string
}

// GetEvidenceByDraftInput contains parameters for retrieving a draft's evidence
type GetEvidenceByDraftInput struct {
	DraftID string
}

// GetEvidenceByDraftOutput contains the result of retrieving a draft's evidence
type GetEvidenceByDraftOutput struct {
	Evidence []*models.Evidence
}

// DeleteDraftInput contains parameters for removing a draft
type DeleteDraftInput struct {
	DraftID string
}

// AttachEvidenceToReportInput contains parameters for re-associating evidence
type AttachEvidenceToReportInput struct {
	DraftID  string
	ReportID string
}
