package emergency

import "time"

// Profile es la información de emergencia del hogar (contacto, grupo
// sanguíneo, alergias). Un solo registro por hogar, sobrescrito al guardar.
type Profile struct {
	HouseholdID string

	ContactName  string
	ContactPhone string

	BloodType         string
	Allergies         string
	ChronicConditions string
	Address           string
	Notes             string

	UpdatedAt time.Time
}
