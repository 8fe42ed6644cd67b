package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore(30 * time.Minute)
	ctx := context.Background()

	loaded, err := store.Load(ctx, "c1")
	require.NoError(t, err)
	assert.Nil(t, loaded)

	state := NewState("c1")
	state.PatientKey = "maria lopez"
	state.Pending = ActionAwaitingTime
	state.Touch(time.Now())
	require.NoError(t, store.Save(ctx, state))

	loaded, err = store.Load(ctx, "c1")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, "maria lopez", loaded.PatientKey)
	assert.Equal(t, ActionAwaitingTime, loaded.Pending)

	// Loads return copies: mutating one does not leak into the store.
	loaded.PatientKey = "someone else"
	again, err := store.Load(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, "maria lopez", again.PatientKey)

	require.NoError(t, store.Delete(ctx, "c1"))
	loaded, err = store.Load(ctx, "c1")
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestMemoryStoreIdleExpiry(t *testing.T) {
	store := NewMemoryStore(30 * time.Minute)
	ctx := context.Background()

	current := time.Date(2024, 6, 10, 10, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return current }

	state := NewState("c1")
	state.Touch(current)
	require.NoError(t, store.Save(ctx, state))

	// Within the TTL the session survives.
	current = current.Add(29 * time.Minute)
	loaded, err := store.Load(ctx, "c1")
	require.NoError(t, err)
	assert.NotNil(t, loaded)

	// Past the TTL it reads as absent.
	current = current.Add(2 * time.Minute)
	loaded, err = store.Load(ctx, "c1")
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestMemoryStoreZeroTTLNeverExpires(t *testing.T) {
	store := NewMemoryStore(0)
	ctx := context.Background()

	state := NewState("c1")
	state.Touch(time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, store.Save(ctx, state))

	loaded, err := store.Load(ctx, "c1")
	require.NoError(t, err)
	assert.NotNil(t, loaded)
}
