package aggregate

import (
	"fmt"
	"strings"
	"time"

	"github.com/settleco/accord/internal/models"
)

// Fixed fallbacks used when neither draft provides a value
const (
	defaultLocation     = "Location not specified"
	defaultIncidentType = "Road Traffic Accident"
	defaultNarrative    = "No narrative provided."
	defaultAddress      = "Address not specified"
	defaultNationality  = "Malaysia"
	defaultLicenceClass = "D"
)

// MergeInput carries everything the merge needs. Draft A belongs to the
// session creator, who is treated as the complainant.
type MergeInput struct {
	SessionID string
	DraftA    *models.Draft
	DraftB    *models.Draft
	UserA     *models.User
	UserB     *models.User

	// Now anchors incident-time fallback, identity decoding and the filing
	// year so the merge stays deterministic under test
	Now time.Time
}

// Merge combines two independently submitted drafts and both driver
// profiles into the canonical case record. Field resolution prefers draft
// A, falls back to draft B, then to a fixed literal. Contextual fields are
// appended to the narrative as a parenthetical only when at least one draft
// provides them. The caller assigns the record's ID and persists it; Merge
// itself has no side effects and is invoked exactly once per session.
func Merge(input *MergeInput) *models.CaseDetails {
	draftA, draftB := input.DraftA, input.DraftB
	userA, userB := input.UserA, input.UserB

	incidentTime := input.Now
	if draftA.AccidentTime != nil {
		incidentTime = *draftA.AccidentTime
	} else if draftB.AccidentTime != nil {
		incidentTime = *draftB.AccidentTime
	}

	location := firstNonEmpty(draftA.Location, draftB.Location, defaultLocation)
	incidentType := firstNonEmpty(draftA.IncidentType, draftB.IncidentType, defaultIncidentType)
	description := buildDescription(draftA, draftB)

	year := fmt.Sprintf("%d", input.Now.Year())
	identity := DecodeIdentity(userA.IdentityNo, input.Now)

	return &models.CaseDetails{
		SessionID: input.SessionID,
		ReportNo:  fmt.Sprintf("DRAFT/%s/%s", strings.ToUpper(shortID(input.SessionID)), year),

		Station:    "TBD (Auto-assigned)",
		District:   "TBD",
		Contingent: "TBD",
		Year:       year,

		ReceiverName: "ACCORD SYSTEM",
		ReceiverID:   "SYS-AUTO",
		ReceiverRank: "-",

		ComplainantName:        userA.Name,
		ComplainantIdentityNo:  userA.IdentityNo,
		ComplainantAddress:     firstNonEmpty(userA.Address, defaultAddress),
		ComplainantPhone:       firstNonEmpty(userA.Phone, "-"),
		ComplainantOccupation:  firstNonEmpty(userA.Occupation, "-"),
		ComplainantNationality: defaultNationality,
		ComplainantBirthDate:   identity.BirthDate,
		ComplainantAge:         firstNonEmpty(identity.Age, "-"),
		ComplainantGender:      firstNonEmpty(identity.Gender, "-"),

		IncidentTime: incidentTime,
		Location:     location,
		IncidentType: incidentType,
		Description:  description,

		VehicleAPlate:     userA.CarPlate,
		VehicleAModel:     userA.CarModel,
		DriverAName:       userA.Name,
		DriverAIdentityNo: userA.IdentityNo,
		DriverALicenceNo:  firstNonEmpty(userA.LicenceNo, defaultLicenceClass),

		VehicleBPlate:     userB.CarPlate,
		VehicleBModel:     userB.CarModel,
		DriverBName:       userB.Name,
		DriverBIdentityNo: userB.IdentityNo,
		DriverBLicenceNo:  firstNonEmpty(userB.LicenceNo, defaultLicenceClass),

		OffenceSection: "Under investigation",
		Decision:       "Not yet decided",
		DecisionNotes:  "-",

		OfficerName: "TBD",
		OfficerRank: "-",
	}
}

// buildDescription assembles the narrative plus a parenthetical context
// annotation. Context lines are never fabricated: each appears only when one
// of the drafts supplied it.
func buildDescription(draftA, draftB *models.Draft) string {
	story := firstNonEmpty(draftA.Description, draftB.Description, defaultNarrative)

	var context []string
	if weather := firstNonEmpty(draftA.Weather, draftB.Weather); weather != "" {
		context = append(context, "Weather: "+weather)
	}
	if surface := firstNonEmpty(draftA.RoadSurface, draftB.RoadSurface); surface != "" {
		context = append(context, "Road surface: "+surface)
	}
	if roadType := firstNonEmpty(draftA.RoadType, draftB.RoadType); roadType != "" {
		context = append(context, "Road type: "+roadType)
	}

	if len(context) == 0 {
		return story
	}

	return story + " \n(" + strings.Join(context, ", ") + ")"
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
