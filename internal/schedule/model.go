// Package schedule holds doctor reference data and the authoritative
// appointment map, and computes slot availability over both.
package schedule

import (
	"fmt"
	"time"
)

// Doctor is static reference data for a single practitioner. Doctors are
// loaded at startup and never mutated; occupancy lives in appointments.
type Doctor struct {
	// ID is the canonical key used everywhere internally (e.g. "ramirez").
	ID string `json:"id"`
	// DisplayName is the spoken name, honorific included (e.g. "Dra. Ramírez").
	DisplayName string `json:"display_name"`
	// Specialty is the medical specialty (e.g. "Pediatría").
	Specialty string `json:"specialty"`
	// Days are the weekdays the doctor attends (time.Weekday, Sunday=0).
	Days []time.Weekday `json:"days"`
	// OpenHour is the first bookable hour, inclusive (24h clock).
	OpenHour int `json:"open_hour"`
	// CloseHour is the end of the working window, exclusive. The last
	// bookable slot starts at CloseHour-1.
	CloseHour int `json:"close_hour"`
}

// Validate checks the doctor's reference data invariants.
func (d *Doctor) Validate() error {
	if d.ID == "" {
		return fmt.Errorf("schedule: doctor id required")
	}
	if d.OpenHour < 0 || d.CloseHour > 24 || d.OpenHour >= d.CloseHour {
		return fmt.Errorf("schedule: doctor %s: invalid hours %d-%d", d.ID, d.OpenHour, d.CloseHour)
	}
	if len(d.Days) == 0 {
		return fmt.Errorf("schedule: doctor %s: no attended days", d.ID)
	}
	for _, day := range d.Days {
		if day < time.Sunday || day > time.Saturday {
			return fmt.Errorf("schedule: doctor %s: invalid weekday %d", d.ID, day)
		}
	}
	return nil
}

// AttendsOn reports whether the doctor works on the given weekday.
func (d *Doctor) AttendsOn(day time.Weekday) bool {
	for _, attended := range d.Days {
		if attended == day {
			return true
		}
	}
	return false
}

// Appointment is a booked slot for one patient. There is at most one
// appointment per patient key at any time.
type Appointment struct {
	DoctorID string `json:"doctor_id"`
	// Date is an ISO calendar date, "2006-01-02".
	Date string `json:"date"`
	// Time is "HH:MM" at hour granularity.
	Time string `json:"time"`
}

// dateLayout is the ISO calendar date format used for all slot keys.
const dateLayout = "2006-01-02"

// ParseDate parses an ISO calendar date as used in slot keys.
func ParseDate(date string) (time.Time, error) {
	return time.Parse(dateLayout, date)
}
