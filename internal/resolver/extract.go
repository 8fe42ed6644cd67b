package resolver

import "strings"

// timeMarkers introduce the time part of a combined utterance like
// "martes a las tres" or "el lunes a la una".
var timeMarkers = []string{" a las ", " a la "}

// ExtractDayAndTime splits a combined utterance into a day token and a
// trailing time fragment, best effort. The day is the first token that
// matches the weekday vocabulary; the time fragment is whatever follows a
// time marker, or failing that, whatever follows the day token.
func ExtractDayAndTime(text string) (day string, timeFragment string) {
	folded := Fold(text)
	if folded == "" {
		return "", ""
	}

	tokens := strings.Fields(folded)
	dayEnd := -1
	for i, token := range tokens {
		if IsDayWord(token) {
			day = token
			dayEnd = i
			break
		}
	}

	// Pad so a marker at the very start of the utterance still matches.
	padded := " " + folded
	for _, marker := range timeMarkers {
		if idx := strings.Index(padded, marker); idx >= 0 {
			timeFragment = strings.TrimSpace(padded[idx+len(marker):])
			return day, timeFragment
		}
	}

	if dayEnd >= 0 && dayEnd+1 < len(tokens) {
		timeFragment = strings.Join(tokens[dayEnd+1:], " ")
	}
	return day, timeFragment
}
