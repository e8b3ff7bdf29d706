package models

// ClientDetail is the barber-facing record the admin dashboard edits.
type ClientDetail struct {
	ID               int64  `json:"id"`
	UserID           int64  `json:"userId"`
	CoffeePreference string `json:"coffeePreference"`
	LastHaircut      string `json:"lastHaircut"`
	AppointmentCount int    `json:"appointmentCount"`
	Notes            string `json:"notes"`
}
