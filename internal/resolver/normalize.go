// Package resolver turns noisy spoken or typed fragments into canonical
// values: doctor ids, ISO dates and "HH:MM" times. It never mutates state;
// failed resolutions return ok=false and the caller re-prompts.
package resolver

import (
	"regexp"
	"strings"
)

// accentFolder maps the accented characters that show up in Spanish speech
// transcripts to their plain forms.
var accentFolder = strings.NewReplacer(
	"á", "a", "é", "e", "í", "i", "ó", "o", "ú", "u", "ü", "u", "ñ", "n",
	"Á", "a", "É", "e", "Í", "i", "Ó", "o", "Ú", "u", "Ü", "u", "Ñ", "n",
)

// honorificRE strips leading doctor honorifics, with or without a trailing
// period: "dr", "dr.", "dra", "dra.", "doctor", "doctora".
var honorificRE = regexp.MustCompile(`^(?:doctora|doctor|dra|dr)\.?\s+`)

var whitespaceRE = regexp.MustCompile(`\s+`)

// Fold lowercases, strips accents and collapses whitespace.
func Fold(text string) string {
	text = strings.ToLower(strings.TrimSpace(text))
	text = accentFolder.Replace(text)
	return whitespaceRE.ReplaceAllString(text, " ")
}

// NormalizeName folds a person's name and drops any doctor honorific.
// Used both for doctor references and for patient keys.
func NormalizeName(text string) string {
	folded := Fold(text)
	return strings.TrimSpace(honorificRE.ReplaceAllString(folded, ""))
}

// Digits returns only the decimal digits of the input.
func Digits(text string) string {
	var b strings.Builder
	for _, r := range text {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
