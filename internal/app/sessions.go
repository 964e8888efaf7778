package app

import (
	"context"
	"sync"

	"github.com/dkeye/coderoom/internal/core"
	"github.com/dkeye/coderoom/internal/domain"
	"github.com/rs/zerolog/log"
)

type sessionEntry struct {
	Signal core.SignalConnection
	Cancel context.CancelFunc
}

// Sessions maps live connections to their transport endpoint.
// A connection is bound before it joins any room and unbound on disconnect.
type Sessions struct {
	mu       sync.RWMutex
	sessions map[domain.ConnectionID]*sessionEntry
}

func NewSessions() *Sessions {
	return &Sessions{sessions: make(map[domain.ConnectionID]*sessionEntry)}
}

func (s *Sessions) Bind(id domain.ConnectionID, sig core.SignalConnection, cancel context.CancelFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[id] = &sessionEntry{Signal: sig, Cancel: cancel}
	log.Info().Str("module", "app.sessions").Str("conn", string(id)).Msg("bound signal")
}

func (s *Sessions) Signal(id domain.ConnectionID) (core.SignalConnection, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if e, ok := s.sessions[id]; ok {
		return e.Signal, true
	}
	return nil, false
}

func (s *Sessions) Unbind(id domain.ConnectionID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	log.Info().Str("module", "app.sessions").Str("conn", string(id)).Msg("unbind session")
}

// Cancel stops the connection's pumps; the adapter reports the disconnect afterwards.
func (s *Sessions) Cancel(id domain.ConnectionID) bool {
	s.mu.RLock()
	e, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return false
	}
	if e.Cancel != nil {
		e.Cancel()
	}
	log.Info().Str("module", "app.sessions").Str("conn", string(id)).Msg("canceled session")
	return true
}

func (s *Sessions) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
