package schedule

import "fmt"

// AvailableSlots returns the open "HH:MM" slots for a doctor on an ISO
// date, ascending by hour. It is empty when the doctor is unknown, the
// date is malformed, or the date's weekday is not attended. One slot is
// generated per whole hour in [OpenHour, CloseHour).
func (s *Store) AvailableSlots(doctorID, date string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.availableLocked(doctorID, date)
}

// IsAvailable reports whether the exact (doctor, date, time) slot is open.
func (s *Store) IsAvailable(doctorID, date, timeStr string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, slot := range s.availableLocked(doctorID, date) {
		if slot == timeStr {
			return true
		}
	}
	return false
}

func (s *Store) availableLocked(doctorID, date string) []string {
	doctor, ok := s.doctors[doctorID]
	if !ok {
		return nil
	}
	day, err := ParseDate(date)
	if err != nil {
		return nil
	}
	if !doctor.AttendsOn(day.Weekday()) {
		return nil
	}

	occupied := make(map[string]struct{})
	for _, t := range s.occupiedLocked(doctorID, date) {
		occupied[t] = struct{}{}
	}

	var slots []string
	for h := doctor.OpenHour; h < doctor.CloseHour; h++ {
		slot := fmt.Sprintf("%02d:00", h)
		if _, taken := occupied[slot]; taken {
			continue
		}
		slots = append(slots, slot)
	}
	return slots
}

// checkAvailableLocked validates a candidate slot while the write lock is
// held, distinguishing the failure modes the session machine speaks about.
func (s *Store) checkAvailableLocked(doctorID, date, timeStr string) error {
	doctor, ok := s.doctors[doctorID]
	if !ok {
		return ErrUnknownDoctor
	}
	day, err := ParseDate(date)
	if err != nil {
		return ErrOffSchedule
	}
	if !doctor.AttendsOn(day.Weekday()) {
		return ErrOffSchedule
	}
	for _, slot := range s.availableLocked(doctorID, date) {
		if slot == timeStr {
			return nil
		}
	}
	return ErrSlotTaken
}
