package session

import (
	"fmt"
	"strings"
	"time"

	"github.com/clinicavoz/voice-scheduler/internal/schedule"
)

// Spoken weekday and month names for date readouts.
var spanishWeekdays = [...]string{
	"domingo", "lunes", "martes", "miércoles", "jueves", "viernes", "sábado",
}

var spanishMonths = [...]string{
	"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

// speakDate renders an ISO date as "lunes 17 de junio". Malformed dates
// fall back to the raw string rather than breaking the reply.
func speakDate(isoDate string) string {
	day, err := schedule.ParseDate(isoDate)
	if err != nil {
		return isoDate
	}
	return fmt.Sprintf("%s %d de %s",
		spanishWeekdays[day.Weekday()], day.Day(), spanishMonths[day.Month()-1])
}

// speakWeekdays renders a doctor's attended days as "lunes y miércoles".
func speakWeekdays(days []time.Weekday) string {
	names := make([]string, 0, len(days))
	for _, d := range days {
		names = append(names, spanishWeekdays[d])
	}
	return joinSpoken(names)
}

// joinSpoken joins items with commas and a final "y".
func joinSpoken(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	}
	return strings.Join(items[:len(items)-1], ", ") + " y " + items[len(items)-1]
}

// speakSlots renders up to max open times as a spoken list.
func speakSlots(slots []string, max int) string {
	if len(slots) > max {
		slots = slots[:max]
	}
	return joinSpoken(slots)
}

// doctorNames renders the roster display names for prompts.
func doctorNames(doctors []*schedule.Doctor) string {
	names := make([]string, 0, len(doctors))
	for _, d := range doctors {
		names = append(names, d.DisplayName)
	}
	return joinSpoken(names)
}

// optionLabels are the letters used for availability menus.
const optionLabels = "ABCDEF"
