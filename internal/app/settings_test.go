package app

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSettingsStore_GetCreatesDefaults(t *testing.T) {
	req := require.New(t)
	s := NewSettingsStore()

	_, ok := s.Peek("room")
	req.False(ok)

	got := s.Get("room")
	req.Equal("room", string(got.RoomID))
	req.False(got.EveryoneCanEdit)
	req.Equal(1, s.Len())
}

func TestSettingsStore_Toggle(t *testing.T) {
	req := require.New(t)
	s := NewSettingsStore()

	// Toggling a room that was never read creates it first
	req.True(s.ToggleEveryoneCanEdit("room"))
	req.True(s.Get("room").EveryoneCanEdit)
	req.False(s.ToggleEveryoneCanEdit("room"))
	req.False(s.Get("room").EveryoneCanEdit)
}

func TestSettingsStore_Dispose(t *testing.T) {
	req := require.New(t)
	s := NewSettingsStore()
	s.ToggleEveryoneCanEdit("room")

	s.Dispose("room")
	s.Dispose("room")

	req.Equal(0, s.Len())
	req.False(s.Get("room").EveryoneCanEdit)
}
