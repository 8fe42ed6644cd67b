package schedule

import (
	"encoding/json"
	"fmt"
	"time"
)

// DefaultRoster returns the built-in clinic roster used when no
// DOCTORS_JSON override is configured.
func DefaultRoster() []Doctor {
	return []Doctor{
		{
			ID:          "ramirez",
			DisplayName: "Dra. Ramírez",
			Specialty:   "Pediatría",
			Days:        []time.Weekday{time.Monday, time.Wednesday},
			OpenHour:    9,
			CloseHour:   13,
		},
		{
			ID:          "gomez",
			DisplayName: "Dr. Gómez",
			Specialty:   "Cardiología",
			Days:        []time.Weekday{time.Tuesday, time.Thursday},
			OpenHour:    15,
			CloseHour:   19,
		},
		{
			ID:          "hernandez",
			DisplayName: "Dr. Hernández",
			Specialty:   "Dermatología",
			Days:        []time.Weekday{time.Friday},
			OpenHour:    10,
			CloseHour:   14,
		},
	}
}

// DefaultAliases returns the built-in spoken-reference synonyms for the
// default roster. Keys are normalized references (lowercase, no accents).
func DefaultAliases() map[string]string {
	return map[string]string{
		"dra ramirez":  "ramirez",
		"dr ramirez":   "ramirez",
		"dr gomez":     "gomez",
		"dra gomez":    "gomez",
		"dr hernandez": "hernandez",
	}
}

// rosterFile is the JSON shape accepted by LoadRoster.
type rosterFile struct {
	Doctors []Doctor          `json:"doctors"`
	Aliases map[string]string `json:"aliases"`
}

// LoadRoster parses a JSON roster override. An empty input yields the
// default roster and aliases.
func LoadRoster(raw string) ([]Doctor, map[string]string, error) {
	if raw == "" {
		return DefaultRoster(), DefaultAliases(), nil
	}
	var file rosterFile
	if err := json.Unmarshal([]byte(raw), &file); err != nil {
		return nil, nil, fmt.Errorf("schedule: parse roster: %w", err)
	}
	if len(file.Doctors) == 0 {
		return nil, nil, fmt.Errorf("schedule: roster has no doctors")
	}
	if file.Aliases == nil {
		file.Aliases = map[string]string{}
	}
	return file.Doctors, file.Aliases, nil
}
