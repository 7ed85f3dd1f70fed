package report

import "github.com/settleco/accord/internal/models"

// SaveReportInput contains parameters for saving a report
type SaveReportInput struct {
	Report *models.Report
}

// GetReportInput contains parameters for retrieving a report
type GetReportInput struct {
	ReportID string
}

// GetReportBySessionInput contains parameters for retrieving a session's report
type GetReportBySessionInput struct {
	SessionID string
}

// SaveCaseDetailsInput contains parameters for saving a case record
type SaveCaseDetailsInput struct {
	CaseDetails *models.CaseDetails
}

// GetCaseDetailsInput contains parameters for retrieving a case record
type GetCaseDetailsInput struct {
	CaseDetailsID string
}

// GetCaseDetailsBySessionInput contains parameters for retrieving a session's case record
type GetCaseDetailsBySessionInput struct {
	SessionID string
}
