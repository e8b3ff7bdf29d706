// Package scheduling holds the slot-availability and overlap logic for
// the booking flow. The shop takes bookings between 09:00 and 19:30 on
// a 10-minute grid; an appointment occupies the half-open interval
// [start, start+duration), so touching endpoints never conflict.
package scheduling

import "time"

const (
	OpenHour     = 9
	CloseHour    = 19
	CloseMinute  = 30
	SlotStepMins = 10
)

// Interval is a half-open time range [Start, End).
type Interval struct {
	Start time.Time
	End   time.Time
}

func NewInterval(start time.Time, durationMinutes int) Interval {
	return Interval{
		Start: start,
		End:   start.Add(time.Duration(durationMinutes) * time.Minute),
	}
}

// Overlaps reports whether the two half-open intervals share at least
// one instant. An interval ending exactly when the other starts does
// not overlap.
func (i Interval) Overlaps(other Interval) bool {
	return i.Start.Before(other.End) && other.Start.Before(i.End)
}

// Opening returns 09:00 on the same calendar day as t, in t's location.
func Opening(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), OpenHour, 0, 0, 0, t.Location())
}

// Closing returns 19:30 on the same calendar day as t, in t's location.
func Closing(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), CloseHour, CloseMinute, 0, 0, t.Location())
}

// WithinBusinessHours reports whether t's time of day is inside the
// booking window [09:00, 19:30]. Only the start is checked here; the
// caller separately verifies the appointment ends by closing.
func WithinBusinessHours(t time.Time) bool {
	if t.Hour() < OpenHour || t.Hour() > CloseHour {
		return false
	}
	if t.Hour() == CloseHour && t.Minute() > CloseMinute {
		return false
	}
	return true
}

// OnGrid reports whether t lands on the 10-minute booking grid.
func OnGrid(t time.Time) bool {
	return t.Minute()%SlotStepMins == 0 && t.Second() == 0 && t.Nanosecond() == 0
}

// EndsByClosing reports whether a service of the given duration started
// at t finishes no later than 19:30 the same day.
func EndsByClosing(t time.Time, durationMinutes int) bool {
	end := t.Add(time.Duration(durationMinutes) * time.Minute)
	return !end.After(Closing(t))
}

// HasConflict reports whether the candidate interval overlaps any of
// the busy intervals. Busy intervals must already exclude cancelled
// appointments.
func HasConflict(candidate Interval, busy []Interval) bool {
	for _, b := range busy {
		if candidate.Overlaps(b) {
			return true
		}
	}
	return false
}

// AvailableSlots enumerates every bookable start time on day for a
// service of the given duration: grid-aligned starts from 09:00 to
// 19:30, excluding starts in the past (before now), starts whose end
// would run past closing, and starts that overlap a busy interval.
// Results are in ascending order; an empty slice means the day is
// fully booked for that duration.
func AvailableSlots(day time.Time, durationMinutes int, busy []Interval, now time.Time) []time.Time {
	slots := make([]time.Time, 0)
	for hour := OpenHour; hour <= CloseHour; hour++ {
		maxMinute := 50
		if hour == CloseHour {
			maxMinute = CloseMinute
		}
		for minute := 0; minute <= maxMinute; minute += SlotStepMins {
			slot := time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, day.Location())
			if slot.Before(now) {
				continue
			}
			if !EndsByClosing(slot, durationMinutes) {
				continue
			}
			if HasConflict(NewInterval(slot, durationMinutes), busy) {
				continue
			}
			slots = append(slots, slot)
		}
	}
	return slots
}
