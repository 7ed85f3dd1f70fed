package models

import (
	"time"
)

// Report is the signing envelope for a case. It references the merged case
// details and holds up to three signatures. It is logically sealed once all
// three are present.
type Report struct {
	// ID is the unique identifier for the report
	ID string

	// SessionID is the session this report belongs to
	SessionID string

	// CaseDetailsID references the merged canonical case details
	CaseDetailsID string

	// DriverADraftID and DriverBDraftID reference the source drafts
	DriverADraftID string
	DriverBDraftID string

	// DriverASignature, DriverBSignature and PoliceSignature are the three
	// signature slots; empty until the corresponding party signs
	DriverASignature string
	DriverBSignature string
	PoliceSignature  string

	// CreatedAt is when the report was created
	CreatedAt time.Time

	// UpdatedAt is when the report was last updated
	UpdatedAt time.Time
}

// AllSigned reports whether every signature slot is populated.
func (r *Report) AllSigned() bool {
	return r.DriverASignature != "" && r.DriverBSignature != "" && r.PoliceSignature != ""
}

// CaseDetails is the single canonical record merged from both drivers'
// drafts and profiles. Created exactly once per session; police may edit the
// decision fields afterwards, drivers never mutate it.
type CaseDetails struct {
	// ID is the unique identifier for the case details
	ID string

	// SessionID is the session this record belongs to
	SessionID string

	// ReportNo is the draft report number assigned at creation
	ReportNo string

	// Station, District and Contingent identify the handling police unit
	Station    string
	District   string
	Contingent string

	// Year is the filing year
	Year string

	// ReceiverName, ReceiverID and ReceiverRank describe who received the
	// report; filled with system placeholders at creation
	ReceiverName string
	ReceiverID   string
	ReceiverRank string

	// Complainant block, taken from driver A's profile
	ComplainantName        string
	ComplainantIdentityNo  string
	ComplainantAddress     string
	ComplainantPhone       string
	ComplainantOccupation  string
	ComplainantNationality string
	ComplainantBirthDate   *time.Time
	ComplainantAge         string
	ComplainantGender      string

	// Incident block, merged from both drafts
	IncidentTime time.Time
	Location     string
	IncidentType string
	Description  string

	// Vehicle A block (driver A)
	VehicleAPlate      string
	VehicleAModel      string
	DriverAName        string
	DriverAIdentityNo  string
	DriverALicenceNo   string

	// Vehicle B block (driver B)
	VehicleBPlate      string
	VehicleBModel      string
	DriverBName        string
	DriverBIdentityNo  string
	DriverBLicenceNo   string

	// Decision block, editable by police after creation
	OffenceSection string
	Decision       string
	DecisionNotes  string

	// OfficerName and OfficerRank identify the investigating officer
	OfficerName string
	OfficerRank string

	// CreatedAt is when the record was merged
	CreatedAt time.Time

	// UpdatedAt is when the record was last edited
	UpdatedAt time.Time
}
