package patients

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	t.Run("name key", func(t *testing.T) {
		r := NewRegistry()
		key, err := r.Register("María López", "555-1234")
		require.NoError(t, err)
		assert.Equal(t, "maria lopez", key)

		p, ok := r.Get(key)
		require.True(t, ok)
		assert.Equal(t, "María López", p.Name)
		assert.Equal(t, "555-1234", p.Phone)
	})

	t.Run("phone fallback key", func(t *testing.T) {
		r := NewRegistry()
		key, err := r.Register("", "+34 600 11 22 33")
		require.NoError(t, err)
		assert.Equal(t, "tel_34600112233", key)
	})

	t.Run("no identity", func(t *testing.T) {
		r := NewRegistry()
		_, err := r.Register("", "")
		assert.ErrorIs(t, err, ErrMissingIdentity)

		_, err = r.Register("   ", "sin numero")
		assert.ErrorIs(t, err, ErrMissingIdentity)
	})

	t.Run("re-registration overwrites", func(t *testing.T) {
		r := NewRegistry()
		key1, err := r.Register("María López", "555-1111")
		require.NoError(t, err)
		key2, err := r.Register("maría lópez", "555-2222")
		require.NoError(t, err)
		assert.Equal(t, key1, key2)

		p, _ := r.Get(key1)
		assert.Equal(t, "555-2222", p.Phone)
	})
}

func TestFind(t *testing.T) {
	r := NewRegistry()
	_, err := r.Register("María López", "555-123-4567")
	require.NoError(t, err)
	_, err = r.Register("", "600112233")
	require.NoError(t, err)

	t.Run("exact normalized name", func(t *testing.T) {
		key, ok := r.Find("maría lópez")
		require.True(t, ok)
		assert.Equal(t, "maria lopez", key)
	})

	t.Run("name substring", func(t *testing.T) {
		key, ok := r.Find("lópez")
		require.True(t, ok)
		assert.Equal(t, "maria lopez", key)
	})

	t.Run("phone digits", func(t *testing.T) {
		key, ok := r.Find("5551234567")
		require.True(t, ok)
		assert.Equal(t, "maria lopez", key)
	})

	t.Run("partial phone", func(t *testing.T) {
		key, ok := r.Find("600112233")
		require.True(t, ok)
		assert.Equal(t, "tel_600112233", key)
	})

	t.Run("no match", func(t *testing.T) {
		_, ok := r.Find("juan perez")
		assert.False(t, ok)
		_, ok = r.Find("999999")
		assert.False(t, ok)
		_, ok = r.Find("")
		assert.False(t, ok)
	})
}
