package schedule

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAvailableSlots(t *testing.T) {
	// 2024-06-10 is a Monday; ramirez attends Mon/Wed 9-13.
	const monday = "2024-06-10"

	t.Run("full open day", func(t *testing.T) {
		store := newTestStore(t)
		slots := store.AvailableSlots("ramirez", monday)
		assert.Equal(t, []string{"09:00", "10:00", "11:00", "12:00"}, slots)
	})

	t.Run("excludes occupied slots", func(t *testing.T) {
		store := newTestStore(t)
		require.NoError(t, store.BookIfAvailable("maria lopez", "ramirez", monday, "10:00"))
		require.NoError(t, store.BookIfAvailable("juan perez", "ramirez", monday, "12:00"))

		slots := store.AvailableSlots("ramirez", monday)
		assert.Equal(t, []string{"09:00", "11:00"}, slots)
	})

	t.Run("fully booked day", func(t *testing.T) {
		store := newTestStore(t)
		for i, patient := range []string{"a", "b", "c", "d"} {
			slot := fmt.Sprintf("%02d:00", 9+i)
			require.NoError(t, store.BookIfAvailable(patient, "ramirez", monday, slot))
		}
		assert.Empty(t, store.AvailableSlots("ramirez", monday))
	})

	t.Run("off-schedule weekday", func(t *testing.T) {
		store := newTestStore(t)
		// 2024-06-11 is a Tuesday.
		assert.Empty(t, store.AvailableSlots("ramirez", "2024-06-11"))
	})

	t.Run("unknown doctor", func(t *testing.T) {
		store := newTestStore(t)
		assert.Empty(t, store.AvailableSlots("lopez", monday))
	})

	t.Run("malformed date", func(t *testing.T) {
		store := newTestStore(t)
		assert.Empty(t, store.AvailableSlots("ramirez", "el lunes"))
	})
}

func TestIsAvailable(t *testing.T) {
	const thursday = "2024-06-13" // gomez attends Tue/Thu 15-19
	store := newTestStore(t)

	assert.True(t, store.IsAvailable("gomez", thursday, "15:00"))
	assert.False(t, store.IsAvailable("gomez", thursday, "19:00")) // close hour is exclusive
	assert.False(t, store.IsAvailable("gomez", thursday, "15:30")) // hour granularity only

	require.NoError(t, store.BookIfAvailable("maria lopez", "gomez", thursday, "15:00"))
	assert.False(t, store.IsAvailable("gomez", thursday, "15:00"))
}
