// Package patients keeps the in-memory patient registry: registration is
// an idempotent upsert keyed by normalized name, falling back to a
// phone-derived key when no name is available.
package patients

import (
	"strings"
	"sync"

	"github.com/clinicavoz/voice-scheduler/internal/resolver"
)

// Patient is a registered caller.
type Patient struct {
	Key   string `json:"key"`
	Name  string `json:"name"`
	Phone string `json:"phone,omitempty"`
}

// Registry stores patients in memory. Patients are never deleted;
// re-registration overwrites.
type Registry struct {
	mu       sync.RWMutex
	patients map[string]Patient
}

// NewRegistry creates an empty patient registry.
func NewRegistry() *Registry {
	return &Registry{patients: make(map[string]Patient)}
}

// Register upserts a patient and returns their key. The key is the
// normalized name when present, otherwise "tel_" plus the phone digits.
func (r *Registry) Register(name, phone string) (string, error) {
	key := resolver.NormalizeName(name)
	if key == "" && phone != "" {
		key = "tel_" + resolver.Digits(phone)
	}
	if key == "" || key == "tel_" {
		return "", ErrMissingIdentity
	}

	r.mu.Lock()
	r.patients[key] = Patient{Key: key, Name: strings.TrimSpace(name), Phone: strings.TrimSpace(phone)}
	r.mu.Unlock()
	return key, nil
}

// Get returns the patient for a key.
func (r *Registry) Get(key string) (Patient, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.patients[key]
	return p, ok
}

// Find looks a patient up from free identifying text: digit input matches
// against stored phone numbers first, otherwise the normalized name is
// tried exactly and then as a substring.
func (r *Registry) Find(text string) (string, bool) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return "", false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	if digits := resolver.Digits(trimmed); digits != "" && digits == trimmed {
		for key, p := range r.patients {
			if p.Phone != "" && strings.Contains(resolver.Digits(p.Phone), digits) {
				return key, true
			}
		}
		return "", false
	}

	candidate := resolver.NormalizeName(trimmed)
	if candidate == "" {
		return "", false
	}
	if _, ok := r.patients[candidate]; ok {
		return candidate, true
	}
	for key, p := range r.patients {
		if strings.Contains(resolver.NormalizeName(p.Name), candidate) {
			return key, true
		}
	}
	return "", false
}
