package models

import "time"

const (
	AppointmentStatusPending   = "pending"
	AppointmentStatusCompleted = "completed"
	AppointmentStatusCancelled = "cancelled"
)

// Appointment occupies the half-open interval
// [StartsAt, StartsAt+service.DurationMinutes).
type Appointment struct {
	ID               int64     `json:"id"`
	UserID           int64     `json:"userId"`
	ServiceID        int64     `json:"serviceId"`
	StartsAt         time.Time `json:"appointmentDate"`
	Status           string    `json:"status"`
	NotificationSent bool      `json:"notificationSent"`
	CreatedAt        time.Time `json:"createdAt"`
}
