package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(DefaultRoster(), DefaultAliases())
	require.NoError(t, err)
	return store
}

func TestNewStoreValidation(t *testing.T) {
	t.Run("duplicate doctor id", func(t *testing.T) {
		roster := append(DefaultRoster(), DefaultRoster()[0])
		_, err := NewStore(roster, nil)
		require.Error(t, err)
	})

	t.Run("alias to unknown doctor", func(t *testing.T) {
		_, err := NewStore(DefaultRoster(), map[string]string{"dr who": "who"})
		require.Error(t, err)
	})

	t.Run("invalid hours", func(t *testing.T) {
		roster := DefaultRoster()
		roster[0].OpenHour = 13
		roster[0].CloseHour = 9
		_, err := NewStore(roster, nil)
		require.Error(t, err)
	})
}

func TestResolveDoctor(t *testing.T) {
	store := newTestStore(t)

	tests := []struct {
		name   string
		ref    string
		wantID string
		wantOK bool
	}{
		{name: "canonical id", ref: "gomez", wantID: "gomez", wantOK: true},
		{name: "alias with honorific", ref: "dr gomez", wantID: "gomez", wantOK: true},
		{name: "feminine honorific alias", ref: "dra ramirez", wantID: "ramirez", wantOK: true},
		{name: "unknown", ref: "lopez", wantOK: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := store.ResolveDoctor(tt.ref)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantID, id)
		})
	}
}

func TestListDoctorsKeepsSeedOrder(t *testing.T) {
	store := newTestStore(t)
	doctors := store.ListDoctors()
	require.Len(t, doctors, 3)
	assert.Equal(t, "ramirez", doctors[0].ID)
	assert.Equal(t, "gomez", doctors[1].ID)
	assert.Equal(t, "hernandez", doctors[2].ID)
}

func TestBookIfAvailable(t *testing.T) {
	// 2024-06-10 is a Monday, attended by ramirez (9-13).
	const monday = "2024-06-10"

	t.Run("books an open slot", func(t *testing.T) {
		store := newTestStore(t)
		require.NoError(t, store.BookIfAvailable("maria lopez", "ramirez", monday, "10:00"))

		appt, ok := store.GetAppointment("maria lopez")
		require.True(t, ok)
		assert.Equal(t, "ramirez", appt.DoctorID)
		assert.Equal(t, monday, appt.Date)
		assert.Equal(t, "10:00", appt.Time)
	})

	t.Run("rejects a taken slot", func(t *testing.T) {
		store := newTestStore(t)
		require.NoError(t, store.BookIfAvailable("maria lopez", "ramirez", monday, "10:00"))

		err := store.BookIfAvailable("juan perez", "ramirez", monday, "10:00")
		assert.ErrorIs(t, err, ErrSlotTaken)
	})

	t.Run("rejects an off-schedule day", func(t *testing.T) {
		store := newTestStore(t)
		// 2024-06-11 is a Tuesday; ramirez attends Mon/Wed.
		err := store.BookIfAvailable("maria lopez", "ramirez", "2024-06-11", "10:00")
		assert.ErrorIs(t, err, ErrOffSchedule)
	})

	t.Run("rejects an unknown doctor", func(t *testing.T) {
		store := newTestStore(t)
		err := store.BookIfAvailable("maria lopez", "lopez", monday, "10:00")
		assert.ErrorIs(t, err, ErrUnknownDoctor)
	})

	t.Run("second booking replaces the first", func(t *testing.T) {
		store := newTestStore(t)
		require.NoError(t, store.BookIfAvailable("maria lopez", "ramirez", monday, "10:00"))
		require.NoError(t, store.BookIfAvailable("maria lopez", "ramirez", monday, "11:00"))

		appt, ok := store.GetAppointment("maria lopez")
		require.True(t, ok)
		assert.Equal(t, "11:00", appt.Time)
		// The 10:00 slot stays occupied until the old appointment is
		// replaced, and this write replaced it.
		assert.True(t, store.IsAvailable("ramirez", monday, "10:00"))
	})
}

func TestMoveIfAvailable(t *testing.T) {
	const monday = "2024-06-10"
	const wednesday = "2024-06-12"

	t.Run("moves to an open slot", func(t *testing.T) {
		store := newTestStore(t)
		require.NoError(t, store.BookIfAvailable("maria lopez", "ramirez", monday, "10:00"))

		require.NoError(t, store.MoveIfAvailable("maria lopez", wednesday, "09:00"))
		appt, _ := store.GetAppointment("maria lopez")
		assert.Equal(t, wednesday, appt.Date)
		assert.Equal(t, "09:00", appt.Time)
		assert.Equal(t, "ramirez", appt.DoctorID)
	})

	t.Run("no appointment to move", func(t *testing.T) {
		store := newTestStore(t)
		err := store.MoveIfAvailable("maria lopez", wednesday, "09:00")
		assert.ErrorIs(t, err, ErrNoAppointment)
	})

	t.Run("target slot taken by someone else", func(t *testing.T) {
		store := newTestStore(t)
		require.NoError(t, store.BookIfAvailable("maria lopez", "ramirez", monday, "10:00"))
		require.NoError(t, store.BookIfAvailable("juan perez", "ramirez", wednesday, "09:00"))

		err := store.MoveIfAvailable("maria lopez", wednesday, "09:00")
		assert.ErrorIs(t, err, ErrSlotTaken)

		// The original appointment survives a failed move.
		appt, ok := store.GetAppointment("maria lopez")
		require.True(t, ok)
		assert.Equal(t, monday, appt.Date)
	})
}

func TestDeleteAppointment(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.BookIfAvailable("maria lopez", "ramirez", "2024-06-10", "10:00"))

	assert.True(t, store.DeleteAppointment("maria lopez"))
	assert.False(t, store.DeleteAppointment("maria lopez"))

	_, ok := store.GetAppointment("maria lopez")
	assert.False(t, ok)
	assert.True(t, store.IsAvailable("ramirez", "2024-06-10", "10:00"))
}

func TestLoadRoster(t *testing.T) {
	t.Run("empty input yields defaults", func(t *testing.T) {
		doctors, aliases, err := LoadRoster("")
		require.NoError(t, err)
		assert.Len(t, doctors, 3)
		assert.Equal(t, "gomez", aliases["dr gomez"])
	})

	t.Run("custom roster", func(t *testing.T) {
		raw := `{"doctors":[{"id":"lopez","display_name":"Dra. López","specialty":"Neurología","days":[1,4],"open_hour":8,"close_hour":12}],"aliases":{"dra lopez":"lopez"}}`
		doctors, aliases, err := LoadRoster(raw)
		require.NoError(t, err)
		require.Len(t, doctors, 1)
		assert.Equal(t, "lopez", doctors[0].ID)
		assert.Equal(t, "lopez", aliases["dra lopez"])
	})

	t.Run("malformed JSON", func(t *testing.T) {
		_, _, err := LoadRoster("{not json")
		require.Error(t, err)
	})

	t.Run("no doctors", func(t *testing.T) {
		_, _, err := LoadRoster(`{"doctors":[]}`)
		require.Error(t, err)
	})
}
