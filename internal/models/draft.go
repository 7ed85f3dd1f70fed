package models

import (
	"time"
)

// EvidenceType represents the media kind of an evidence item
type EvidenceType string

const (
	// EvidenceTypePhoto is a still photo attachment
	EvidenceTypePhoto EvidenceType = "PHOTO"

	// EvidenceTypeVideo is a video attachment
	EvidenceTypeVideo EvidenceType = "VIDEO"

	// EvidenceTypeSketch is a scene sketch attachment
	EvidenceTypeSketch EvidenceType = "MAP_SKETCH"

	// EvidenceTypeText is a free-text attachment
	EvidenceTypeText EvidenceType = "TEXT"
)

// EvidenceTag represents the semantic category of an evidence item
type EvidenceTag string

const (
	EvidenceTagCarFront    EvidenceTag = "Car Front"
	EvidenceTagCarBack     EvidenceTag = "Car Back"
	EvidenceTagCarLeft     EvidenceTag = "Car Left"
	EvidenceTagCarRight    EvidenceTag = "Car Right"
	EvidenceTagDamagePart  EvidenceTag = "Damage Part"
	EvidenceTagRoughSketch EvidenceTag = "Rough Sketch"
	EvidenceTagDashcam     EvidenceTag = "Dashcam"
	EvidenceTagDocument    EvidenceTag = "Document"
	EvidenceTagOther       EvidenceTag = "Other"
)

// Evidence is a typed, tagged attachment owned by exactly one draft.
// Immutable once created; at aggregation time it is re-associated onto the
// report but never edited.
type Evidence struct {
	// ID is the unique identifier for this evidence item
	ID string

	// DraftID is the draft this evidence belongs to
	DraftID string

	// ReportID is set once the case report exists and evidence is carried over
	ReportID string

	// UploaderID is the driver who attached this evidence
	UploaderID string

	// Type is the media kind
	Type EvidenceType

	// Tag is the semantic category
	Tag EvidenceTag

	// Title is a short human label; defaults to the tag when absent
	Title string

	// Content is the attachment body (base64 or URL)
	Content string

	// CreatedAt is when the evidence was attached
	CreatedAt time.Time
}

// Draft is one driver's independently submitted account of the incident
type Draft struct {
	// ID is the unique identifier for the draft
	ID string

	// SessionID is the session this draft belongs to
	SessionID string

	// DriverID is the driver who submitted the draft
	DriverID string

	// AccidentTime is when the incident happened, as stated by the driver
	AccidentTime *time.Time

	// Location is the incident location, free form
	Location string

	// IncidentType is the driver's classification of the incident
	IncidentType string

	// Description is the driver's narrative of what happened
	Description string

	// Weather, RoadSurface and RoadType are optional context fields
	Weather     string
	RoadSurface string
	RoadType    string

	// FaultAssertion is the driver's own claim of who was at fault
	FaultAssertion string

	// CreatedAt is when the draft was submitted
	CreatedAt time.Time
}
