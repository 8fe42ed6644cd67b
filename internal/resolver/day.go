package resolver

import (
	"regexp"
	"time"
)

// weekdayNames maps folded day words to weekdays. Spanish first, English
// as fallback; accents are already folded away by the caller.
var weekdayNames = map[string]time.Weekday{
	"domingo":   time.Sunday,
	"lunes":     time.Monday,
	"martes":    time.Tuesday,
	"miercoles": time.Wednesday,
	"jueves":    time.Thursday,
	"viernes":   time.Friday,
	"sabado":    time.Saturday,

	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

var isoDateRE = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

const dateLayout = "2006-01-02"

// ResolveDay resolves a spoken day word to the next occurrence of that
// weekday strictly after the reference moment: naming today's weekday
// rolls forward a full week, never returning the reference date itself.
// Already-ISO dates pass through after validation.
func ResolveDay(word string, ref time.Time) (string, bool) {
	folded := Fold(word)
	if folded == "" {
		return "", false
	}

	if isoDateRE.MatchString(folded) {
		if _, err := time.Parse(dateLayout, folded); err != nil {
			return "", false
		}
		return folded, true
	}

	target, ok := weekdayNames[folded]
	if !ok {
		return "", false
	}
	delta := (int(target) - int(ref.Weekday()) + 7) % 7
	if delta == 0 {
		delta = 7
	}
	return ref.AddDate(0, 0, delta).Format(dateLayout), true
}

// IsDayWord reports whether the folded token is a known weekday name.
func IsDayWord(token string) bool {
	_, ok := weekdayNames[Fold(token)]
	return ok
}
