package schedule

import "errors"

var (
	// ErrUnknownDoctor is returned when a doctor id is not in the roster
	ErrUnknownDoctor = errors.New("doctor not found")

	// ErrOffSchedule is returned when a date falls outside the doctor's attended days
	ErrOffSchedule = errors.New("doctor does not attend on that date")

	// ErrSlotTaken is returned when the requested slot is already booked
	ErrSlotTaken = errors.New("slot is no longer available")

	// ErrNoAppointment is returned when the patient has no appointment to act on
	ErrNoAppointment = errors.New("patient has no appointment")
)
