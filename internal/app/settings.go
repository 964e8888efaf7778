package app

import (
	"sync"

	"github.com/dkeye/coderoom/internal/domain"
	"github.com/rs/zerolog/log"
)

// SettingsStore owns per-room flags. Rooms have no explicit creation event,
// so settings are created on first access and dropped when the room empties.
type SettingsStore struct {
	mu    sync.RWMutex
	rooms map[domain.RoomID]*domain.RoomSettings
}

func NewSettingsStore() *SettingsStore {
	return &SettingsStore{rooms: make(map[domain.RoomID]*domain.RoomSettings)}
}

// Get returns the settings of a room, creating defaults if absent.
func (s *SettingsStore) Get(id domain.RoomID) domain.RoomSettings {
	s.mu.RLock()
	settings, ok := s.rooms[id]
	if ok {
		out := *settings
		s.mu.RUnlock()
		return out
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	if settings, ok = s.rooms[id]; ok {
		return *settings
	}
	created := domain.DefaultRoomSettings(id)
	s.rooms[id] = &created
	log.Info().Str("module", "app.settings").Str("room", string(id)).Msg("settings created")
	return created
}

// Peek returns the settings without creating them.
func (s *SettingsStore) Peek(id domain.RoomID) (domain.RoomSettings, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	settings, ok := s.rooms[id]
	if !ok {
		return domain.RoomSettings{}, false
	}
	return *settings, true
}

// ToggleEveryoneCanEdit flips the flag and returns its new value.
func (s *SettingsStore) ToggleEveryoneCanEdit(id domain.RoomID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	settings, ok := s.rooms[id]
	if !ok {
		created := domain.DefaultRoomSettings(id)
		settings = &created
		s.rooms[id] = settings
	}
	settings.EveryoneCanEdit = !settings.EveryoneCanEdit
	log.Info().Str("module", "app.settings").Str("room", string(id)).Bool("everyone_can_edit", settings.EveryoneCanEdit).Msg("everyone can edit toggled")
	return settings.EveryoneCanEdit
}

func (s *SettingsStore) Dispose(id domain.RoomID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rooms[id]; !ok {
		return
	}
	delete(s.rooms, id)
	log.Info().Str("module", "app.settings").Str("room", string(id)).Msg("settings disposed")
}

func (s *SettingsStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.rooms)
}
