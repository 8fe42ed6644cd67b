package resolver

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestResolveDay(t *testing.T) {
	// 2024-06-10 is a Monday.
	ref := time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		word string
		want string
		ok   bool
	}{
		{name: "next day", word: "martes", want: "2024-06-11", ok: true},
		{name: "later in week", word: "viernes", want: "2024-06-14", ok: true},
		{name: "accented weekday", word: "miércoles", want: "2024-06-12", ok: true},
		{name: "english fallback", word: "friday", want: "2024-06-14", ok: true},
		{name: "same weekday rolls a full week", word: "lunes", want: "2024-06-17", ok: true},
		{name: "wraps past the weekend", word: "domingo", want: "2024-06-16", ok: true},
		{name: "iso date passes through", word: "2024-07-01", want: "2024-07-01", ok: true},
		{name: "invalid iso date", word: "2024-13-40", ok: false},
		{name: "not a day", word: "pasado manana", ok: false},
		{name: "empty", word: "", ok: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ResolveDay(tt.word, ref)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestIsDayWord(t *testing.T) {
	assert.True(t, IsDayWord("sábado"))
	assert.True(t, IsDayWord("LUNES"))
	assert.False(t, IsDayWord("hoy"))
}
