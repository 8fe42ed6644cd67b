package schedule

import (
	"fmt"
	"sort"
	"sync"
)

// Store is the in-memory source of truth for doctors and appointments.
// Reads and writes are serialized by a single mutex, which is also what
// makes the commit helpers (BookIfAvailable, MoveIfAvailable) safe against
// concurrent confirmations from different conversations: the availability
// re-check and the write happen inside the same critical section.
type Store struct {
	mu      sync.RWMutex
	doctors map[string]*Doctor
	order   []string // doctor ids in seed order, for stable listings
	aliases map[string]string
	// appointments is keyed by patient key; one entry per patient.
	appointments map[string]Appointment
}

// NewStore creates a store from a doctor roster and an alias table mapping
// normalized spoken references (e.g. "dr gomez") to canonical doctor ids.
func NewStore(doctors []Doctor, aliases map[string]string) (*Store, error) {
	s := &Store{
		doctors:      make(map[string]*Doctor, len(doctors)),
		aliases:      make(map[string]string, len(aliases)),
		appointments: make(map[string]Appointment),
	}
	for i := range doctors {
		d := doctors[i]
		if err := d.Validate(); err != nil {
			return nil, err
		}
		if _, dup := s.doctors[d.ID]; dup {
			return nil, fmt.Errorf("schedule: duplicate doctor id %q", d.ID)
		}
		s.doctors[d.ID] = &d
		s.order = append(s.order, d.ID)
	}
	for ref, id := range aliases {
		if _, ok := s.doctors[id]; !ok {
			return nil, fmt.Errorf("schedule: alias %q points to unknown doctor %q", ref, id)
		}
		s.aliases[ref] = id
	}
	return s, nil
}

// GetDoctor returns the doctor for a canonical id, or nil.
func (s *Store) GetDoctor(doctorID string) *Doctor {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doctors[doctorID]
}

// ListDoctors returns all doctors in seed order.
func (s *Store) ListDoctors() []*Doctor {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Doctor, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.doctors[id])
	}
	return out
}

// ResolveDoctor maps an already-normalized doctor reference to a canonical
// id, either directly or through the alias table.
func (s *Store) ResolveDoctor(ref string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.doctors[ref]; ok {
		return ref, true
	}
	if id, ok := s.aliases[ref]; ok {
		return id, true
	}
	return "", false
}

// GetAppointment returns the patient's appointment, if any.
func (s *Store) GetAppointment(patientKey string) (Appointment, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	appt, ok := s.appointments[patientKey]
	return appt, ok
}

// SetAppointment writes the patient's appointment unconditionally,
// replacing any prior one. Callers must have validated availability;
// prefer BookIfAvailable unless availability was checked under the
// same lock.
func (s *Store) SetAppointment(patientKey, doctorID, date, timeStr string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.appointments[patientKey] = Appointment{DoctorID: doctorID, Date: date, Time: timeStr}
}

// DeleteAppointment removes the patient's appointment. Returns true if one
// existed.
func (s *Store) DeleteAppointment(patientKey string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.appointments[patientKey]; !ok {
		return false
	}
	delete(s.appointments, patientKey)
	return true
}

// AppointmentsFor returns the occupied times for a doctor on a date,
// ascending.
func (s *Store) AppointmentsFor(doctorID, date string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.occupiedLocked(doctorID, date)
}

func (s *Store) occupiedLocked(doctorID, date string) []string {
	var times []string
	for _, appt := range s.appointments {
		if appt.DoctorID == doctorID && appt.Date == date {
			times = append(times, appt.Time)
		}
	}
	sort.Strings(times)
	return times
}

// BookIfAvailable books the slot for the patient after re-checking
// availability under the write lock. This is the commit path for the
// confirmation step: a slot that disappeared between proposal and
// confirmation surfaces as ErrSlotTaken instead of a double booking.
func (s *Store) BookIfAvailable(patientKey, doctorID, date, timeStr string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkAvailableLocked(doctorID, date, timeStr); err != nil {
		return err
	}
	s.appointments[patientKey] = Appointment{DoctorID: doctorID, Date: date, Time: timeStr}
	return nil
}

// MoveIfAvailable relocates the patient's existing appointment to a new
// date and time with the same doctor, re-checking availability under the
// write lock.
func (s *Store) MoveIfAvailable(patientKey, newDate, newTime string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	appt, ok := s.appointments[patientKey]
	if !ok {
		return ErrNoAppointment
	}
	if err := s.checkAvailableLocked(appt.DoctorID, newDate, newTime); err != nil {
		return err
	}
	s.appointments[patientKey] = Appointment{DoctorID: appt.DoctorID, Date: newDate, Time: newTime}
	return nil
}
