package aggregate

import (
	"strconv"
	"strings"
	"time"
)

// IdentityDetails holds the fields decodable from a national identity
// number. All fields are empty/nil when the input could not be decoded.
type IdentityDetails struct {
	// BirthDate is the decoded date of birth
	BirthDate *time.Time

	// Age is the age in whole years at the reference time
	Age string

	// Gender is derived from the parity of the final digit
	Gender string
}

const (
	genderMale   = "Male"
	genderFemale = "Female"
)

// DecodeIdentity extracts birth date, age and gender from a 12-digit
// identity number (YYMMDD-PB-#### with optional hyphens). The two-digit year
// is resolved against the reference year: YY greater than the current
// two-digit year means 19YY, otherwise 20YY. Malformed input decodes to an
// empty result, never an error; profile quality must not block case
// creation.
func DecodeIdentity(identityNo string, now time.Time) IdentityDetails {
	cleaned := strings.TrimSpace(strings.ReplaceAll(identityNo, "-", ""))
	if len(cleaned) != 12 {
		return IdentityDetails{}
	}

	digits := make([]int, len(cleaned))
	for i, r := range cleaned {
		if r < '0' || r > '9' {
			return IdentityDetails{}
		}
		digits[i] = int(r - '0')
	}

	yy := digits[0]*10 + digits[1]
	mm := digits[2]*10 + digits[3]
	dd := digits[4]*10 + digits[5]

	currentYY := now.Year() % 100
	year := 2000 + yy
	if yy > currentYY {
		year = 1900 + yy
	}

	birthDate := time.Date(year, time.Month(mm), dd, 0, 0, 0, 0, time.UTC)
	// time.Date normalizes out-of-range components, so round-trip them
	if birthDate.Year() != year || int(birthDate.Month()) != mm || birthDate.Day() != dd {
		return IdentityDetails{}
	}

	age := now.Year() - birthDate.Year()
	if now.Month() < birthDate.Month() ||
		(now.Month() == birthDate.Month() && now.Day() < birthDate.Day()) {
		age--
	}

	gender := genderFemale
	if digits[11]%2 != 0 {
		gender = genderMale
	}

	return IdentityDetails{
		BirthDate: &birthDate,
		Age:       strconv.Itoa(age),
		Gender:    gender,
	}
}
