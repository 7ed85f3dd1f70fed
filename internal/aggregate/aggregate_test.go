package aggregate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/settleco/accord/internal/models"
)

var mergeNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func mergeFixture() *MergeInput {
	return &MergeInput{
		SessionID: "11112222-3333-4444-5555-666677778888",
		DraftA:    &models.Draft{ID: "draft-a", DriverID: "driver-a"},
		DraftB:    &models.Draft{ID: "draft-b", DriverID: "driver-b"},
		UserA: &models.User{
			ID:         "driver-a",
			Name:       "Aisha",
			IdentityNo: "900101-14-1234",
			CarPlate:   "WXY 1234",
			CarModel:   "Myvi",
		},
		UserB: &models.User{
			ID:         "driver-b",
			Name:       "Ben",
			IdentityNo: "880505-10-5678",
			CarPlate:   "JQK 5678",
			CarModel:   "Saga",
		},
		Now: mergeNow,
	}
}

func TestMerge_PrefersDraftA(t *testing.T) {
	input := mergeFixture()
	timeA := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	timeB := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	input.DraftA.AccidentTime = &timeA
	input.DraftA.Location = "Jalan Ampang"
	input.DraftA.Description = "Rear-ended at the traffic light."
	input.DraftB.AccidentTime = &timeB
	input.DraftB.Location = "Jalan Tun Razak"
	input.DraftB.Description = "The other car stopped suddenly."

	details := Merge(input)

	assert.Equal(t, timeA, details.IncidentTime)
	assert.Equal(t, "Jalan Ampang", details.Location)
	assert.Equal(t, "Rear-ended at the traffic light.", details.Description)
}

func TestMerge_FallsBackToDraftB(t *testing.T) {
	input := mergeFixture()
	timeB := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	input.DraftB.AccidentTime = &timeB
	input.DraftB.Location = "Jalan Tun Razak"
	input.DraftB.IncidentType = "Side collision"
	input.DraftB.Description = "The other car stopped suddenly."

	details := Merge(input)

	assert.Equal(t, timeB, details.IncidentTime)
	assert.Equal(t, "Jalan Tun Razak", details.Location)
	assert.Equal(t, "Side collision", details.IncidentType)
	assert.Equal(t, "The other car stopped suddenly.", details.Description)
}

func TestMerge_FixedDefaultsWhenBothEmpty(t *testing.T) {
	details := Merge(mergeFixture())

	assert.Equal(t, mergeNow, details.IncidentTime)
	assert.Equal(t, "Location not specified", details.Location)
	assert.Equal(t, "Road Traffic Accident", details.IncidentType)
	assert.Equal(t, "No narrative provided.", details.Description)
}

func TestMerge_ContextAnnotation(t *testing.T) {
	t.Run("appended when present", func(t *testing.T) {
		input := mergeFixture()
		input.DraftA.Description = "Collision at the junction."
		input.DraftA.Weather = "Heavy rain"
		input.DraftB.RoadSurface = "Wet"

		details := Merge(input)

		assert.Contains(t, details.Description, "Collision at the junction.")
		assert.Contains(t, details.Description, "Weather: Heavy rain")
		assert.Contains(t, details.Description, "Road surface: Wet")
		assert.NotContains(t, details.Description, "Road type")
	})

	t.Run("never fabricated", func(t *testing.T) {
		input := mergeFixture()
		input.DraftA.Description = "Collision at the junction."

		details := Merge(input)

		assert.Equal(t, "Collision at the junction.", details.Description)
	})
}

func TestMerge_ComplainantFromDriverA(t *testing.T) {
	input := mergeFixture()
	input.UserA.Address = "12 Jalan Bukit"
	input.UserA.Phone = "012-3456789"

	details := Merge(input)

	assert.Equal(t, "Aisha", details.ComplainantName)
	assert.Equal(t, "900101-14-1234", details.ComplainantIdentityNo)
	assert.Equal(t, "12 Jalan Bukit", details.ComplainantAddress)
	assert.Equal(t, "012-3456789", details.ComplainantPhone)
	require.NotNil(t, details.ComplainantBirthDate)
	assert.Equal(t, 1990, details.ComplainantBirthDate.Year())
	assert.Equal(t, "35", details.ComplainantAge)
	assert.Equal(t, "Female", details.ComplainantGender)
}

func TestMerge_MalformedIdentityDoesNotBlock(t *testing.T) {
	input := mergeFixture()
	input.UserA.IdentityNo = "not-an-identity-number"

	details := Merge(input)

	assert.Nil(t, details.ComplainantBirthDate)
	assert.Equal(t, "-", details.ComplainantAge)
	assert.Equal(t, "-", details.ComplainantGender)
	assert.Equal(t, "Aisha", details.ComplainantName)
}

func TestMerge_VehicleBlocksAndReportNo(t *testing.T) {
	details := Merge(mergeFixture())

	assert.Equal(t, "WXY 1234", details.VehicleAPlate)
	assert.Equal(t, "Myvi", details.VehicleAModel)
	assert.Equal(t, "JQK 5678", details.VehicleBPlate)
	assert.Equal(t, "Saga", details.VehicleBModel)
	assert.Equal(t, "D", details.DriverALicenceNo)
	assert.Equal(t, "DRAFT/11112222/2025", details.ReportNo)
	assert.Equal(t, "2025", details.Year)
}
