package models

// Service is a bookable barbershop treatment. Duration and price are
// fixed once the service exists; PriceCents is in minor currency units.
type Service struct {
	ID              int64   `json:"id"`
	Name            string  `json:"name"`
	Description     *string `json:"description"`
	DurationMinutes int     `json:"durationMinutes"`
	PriceCents      int     `json:"price"`
}
