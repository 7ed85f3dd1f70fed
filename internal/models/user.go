package models

// User is a driver or police profile. Profile data feeds the case-details
// merge; it is never authoritative for authentication.
type User struct {
	// ID is the unique identifier for the user
	ID string

	// Name is the user's display name
	Name string

	// IdentityNo is the national identity number (YYMMDD-PB-#### format)
	IdentityNo string

	// CarPlate is the registration number of the user's vehicle
	CarPlate string

	// CarModel is the make/model of the user's vehicle
	CarModel string

	// InsurancePolicy is the user's insurance policy number
	InsurancePolicy string

	// IsPolice marks police-officer accounts
	IsPolice bool

	// Address, Phone, Occupation and LicenceNo are optional extended
	// profile fields used by the merged case record
	Address    string
	Phone      string
	Occupation string
	LicenceNo  string
}
