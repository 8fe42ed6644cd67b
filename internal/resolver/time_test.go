package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSpokenTime(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
		ok    bool
	}{
		// Explicit clock times
		{name: "24h clock", input: "15:30", want: "15:30", ok: true},
		{name: "clock with pm", input: "3:05 pm", want: "15:05", ok: true},
		{name: "clock with dotted meridiem", input: "3:05 p.m.", want: "15:05", ok: true},
		{name: "clock am passthrough", input: "9:00 am", want: "09:00", ok: true},

		// Spanish number words
		{name: "bare hour word", input: "tres", want: "03:00", ok: true},
		{name: "hour word with pm", input: "tres pm", want: "15:00", ok: true},
		{name: "hour word with spaced meridiem", input: "tres p m", want: "15:00", ok: true},
		{name: "una with pm", input: "una pm", want: "13:00", ok: true},
		{name: "24h number word", input: "quince", want: "15:00", ok: true},
		{name: "noon stays noon", input: "doce pm", want: "12:00", ok: true},
		{name: "midnight", input: "doce am", want: "00:00", ok: true},

		// Minutes
		{name: "hour and two-digit minutes", input: "tres quince", want: "03:15", ok: true},
		{name: "digit minutes", input: "3 15", want: "03:15", ok: true},
		{name: "verbatim minute digits", input: "tres cero cinco", want: "03:05", ok: true},
		{name: "verbatim digits with pm", input: "tres cero cinco pm", want: "15:05", ok: true},
		{name: "two single digit minutes", input: "tres uno cinco", want: "03:15", ok: true},

		// Digits mixed with words
		{name: "plain digits", input: "15", want: "15:00", ok: true},
		{name: "digits with pm", input: "3 pm", want: "15:00", ok: true},
		{name: "a las prefix noise", input: "las tres de la tarde pm", want: "15:00", ok: true},

		// Rejections
		{name: "empty", input: "", ok: false},
		{name: "no numbers", input: "por la manana", ok: false},
		{name: "hour out of range", input: "25", ok: false},
		{name: "minutes out of range", input: "10:75", ok: false},
		{name: "too many minute digits", input: "tres uno dos cuatro", ok: false},
		{name: "mixed width minute digits", input: "tres quince cinco", ok: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseSpokenTime(tt.input)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}
