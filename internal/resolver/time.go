package resolver

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// numberWords maps Spanish number words 0-23 to their values. Keys are
// folded (no accents), so "dieciséis" arrives as "dieciseis".
var numberWords = map[string]int{
	"cero":         0,
	"uno":          1,
	"una":          1,
	"dos":          2,
	"tres":         3,
	"cuatro":       4,
	"cinco":        5,
	"seis":         6,
	"siete":        7,
	"ocho":         8,
	"nueve":        9,
	"diez":         10,
	"once":         11,
	"doce":         12,
	"trece":        13,
	"catorce":      14,
	"quince":       15,
	"dieciseis":    16,
	"diecisiete":   17,
	"dieciocho":    18,
	"diecinueve":   19,
	"veinte":       20,
	"veintiuno":    21,
	"veintiuna":    21,
	"veintidos":    22,
	"veintitres":   23,
}

// meridiemRE matches a trailing am/pm marker in its common spoken
// spellings: "am", "a.m.", "a. m.", "p m", etc.
var meridiemRE = regexp.MustCompile(`(?i)\b([ap])\.?\s*m\.?\s*$`)

// clockRE matches an explicit H:MM or HH:MM anywhere in the fragment.
var clockRE = regexp.MustCompile(`\b(\d{1,2}):(\d{2})\b`)

var timeTokenRE = regexp.MustCompile(`[a-z]+|\d+`)

// spokenNumber is one recognized number token and the digit width it was
// spoken with; width matters for the verbatim-minutes rule.
type spokenNumber struct {
	value int
	width int
}

// ParseSpokenTime normalizes a spoken or typed time expression to "HH:MM".
// Accepted forms, in priority order:
//   - explicit clock times ("15:30", "3:05 pm")
//   - number words or digits with an optional trailing meridiem
//     ("tres pm" -> 15:00, "doce am" -> 00:00)
//
// When several numbers follow the hour, single-digit numbers concatenate
// verbatim into the minutes ("tres cero cinco" -> 03:05, never 03:50).
func ParseSpokenTime(text string) (string, bool) {
	folded := Fold(text)
	if folded == "" {
		return "", false
	}

	meridiem := ""
	if m := meridiemRE.FindStringSubmatch(folded); m != nil {
		meridiem = strings.ToLower(m[1]) + "m"
		folded = strings.TrimSpace(folded[:len(folded)-len(m[0])])
	}

	if m := clockRE.FindStringSubmatch(folded); m != nil {
		hour, _ := strconv.Atoi(m[1])
		minute, _ := strconv.Atoi(m[2])
		return formatTime(applyMeridiem(hour, meridiem), minute)
	}

	numbers := scanNumbers(folded)
	if len(numbers) == 0 {
		return "", false
	}

	hour := numbers[0].value
	minute := 0
	rest := numbers[1:]
	switch {
	case len(rest) == 1 && rest[0].width >= 2:
		minute = rest[0].value
	case len(rest) > 0:
		// Single-digit numbers are minute digits verbatim: "cero cinco"
		// is 05, "tres cinco" is 03:05.
		var digits strings.Builder
		for _, n := range rest {
			if n.width != 1 {
				return "", false
			}
			digits.WriteString(strconv.Itoa(n.value))
		}
		if digits.Len() > 2 {
			return "", false
		}
		minute, _ = strconv.Atoi(digits.String())
	}

	return formatTime(applyMeridiem(hour, meridiem), minute)
}

// scanNumbers extracts number tokens (words or digit runs) in order.
func scanNumbers(text string) []spokenNumber {
	var numbers []spokenNumber
	for _, token := range timeTokenRE.FindAllString(text, -1) {
		if value, ok := numberWords[token]; ok {
			width := 1
			if value >= 10 {
				width = 2
			}
			numbers = append(numbers, spokenNumber{value: value, width: width})
			continue
		}
		if token[0] >= '0' && token[0] <= '9' {
			value, err := strconv.Atoi(token)
			if err != nil {
				continue
			}
			numbers = append(numbers, spokenNumber{value: value, width: len(token)})
		}
	}
	return numbers
}

// applyMeridiem moves an hour into 24h range: pm adds 12 for hours 1-11,
// "12 am" is midnight. Hours already in 24h form pass through.
func applyMeridiem(hour int, meridiem string) int {
	switch meridiem {
	case "pm":
		if hour >= 1 && hour <= 11 {
			return hour + 12
		}
	case "am":
		if hour == 12 {
			return 0
		}
	}
	return hour
}

func formatTime(hour, minute int) (string, bool) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return "", false
	}
	return fmt.Sprintf("%02d:%02d", hour, minute), true
}
