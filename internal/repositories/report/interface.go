package report

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/settleco/accord/internal/repositories/report Repository

import (
	"context"

	"github.com/settleco/accord/internal/models"
)

// Repository defines the interface for report and case-details persistence
type Repository interface {
	// SaveReport persists a report
	SaveReport(ctx context.Context, input *SaveReportInput) error

	// GetReport retrieves a report by ID
	GetReport(ctx context.Context, input *GetReportInput) (*models.Report, error)

	// GetReportBySession retrieves the report belonging to a session
	GetReportBySession(ctx context.Context, input *GetReportBySessionInput) (*models.Report, error)

	// SaveCaseDetails persists a canonical case record
	SaveCaseDetails(ctx context.Context, input *SaveCaseDetailsInput) error

	// GetCaseDetails retrieves a case record by ID
	GetCaseDetails(ctx context.Context, input *GetCaseDetailsInput) (*models.CaseDetails, error)

	// GetCaseDetailsBySession retrieves the case record belonging to a session
	GetCaseDetailsBySession(ctx context.Context, input *GetCaseDetailsBySessionInput) (*models.CaseDetails, error)
}
