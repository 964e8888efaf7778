package app

import (
	"cmp"
	"slices"
	"sync"

	"github.com/dkeye/coderoom/internal/core"
	"github.com/dkeye/coderoom/internal/domain"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
)

// roomState exists only while the room has participants.
// members keeps join order; succession promotes members[0].
type roomState struct {
	id      domain.RoomID
	members []*domain.Participant
}

// LeaveResult describes everything a departure changed, computed once under lock.
type LeaveResult struct {
	Participant domain.Participant
	WasInCall   bool
	// Promoted is set when the departing admin was replaced.
	Promoted    *domain.Participant
	RoomEmptied bool
}

// Registry is the in-memory membership table: connection -> participant, room -> ordered members.
// Settings are created and disposed under the registry lock so a rejoin cannot race a disposal.
type Registry struct {
	mu       sync.RWMutex
	settings *SettingsStore
	rooms    map[domain.RoomID]*roomState
	byConn   map[domain.ConnectionID]*domain.Participant
}

func NewRegistry(settings *SettingsStore) *Registry {
	return &Registry{
		settings: settings,
		rooms:    make(map[domain.RoomID]*roomState),
		byConn:   make(map[domain.ConnectionID]*domain.Participant),
	}
}

// Join admits connID into roomID. The first joiner of a room becomes admin, everyone else a viewer.
func (r *Registry) Join(roomID domain.RoomID, username string, connID domain.ConnectionID) (domain.Participant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byConn[connID]; ok {
		return domain.Participant{}, domain.ErrAlreadyJoined
	}

	room, ok := r.rooms[roomID]
	if ok {
		taken := lo.ContainsBy(room.members, func(p *domain.Participant) bool {
			return p.Username == username
		})
		if taken {
			log.Info().Str("module", "app.registry").Str("room", string(roomID)).Str("username", username).Msg("username conflict")
			return domain.Participant{}, domain.ErrUsernameConflict
		}
	}

	first := !ok || len(room.members) == 0
	role := domain.RoleViewer
	if first {
		role = domain.RoleAdmin
		room = &roomState{id: roomID}
		r.rooms[roomID] = room
		r.settings.Get(roomID)
	}

	p := domain.NewParticipant(roomID, username, connID, role)
	room.members = append(room.members, p)
	r.byConn[connID] = p
	log.Info().Str("module", "app.registry").Str("conn", string(connID)).Str("room", string(roomID)).Str("role", string(role)).Msg("participant joined")
	return p.Snapshot(), nil
}

// Leave removes the participant bound to connID. Unknown connections yield domain.ErrNotFound,
// which callers treat as a benign race (disconnect before join, double leave).
func (r *Registry) Leave(connID domain.ConnectionID) (LeaveResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.byConn[connID]
	if !ok {
		log.Debug().Str("module", "app.registry").Str("conn", string(connID)).Msg("leave: unknown connection")
		return LeaveResult{}, domain.ErrNotFound
	}
	delete(r.byConn, connID)

	res := LeaveResult{Participant: p.Snapshot(), WasInCall: p.InCall}
	room, ok := r.rooms[p.RoomID]
	if !ok {
		return res, nil
	}
	room.members = lo.Reject(room.members, func(m *domain.Participant, _ int) bool {
		return m.ConnectionID == connID
	})

	if len(room.members) == 0 {
		delete(r.rooms, room.id)
		r.settings.Dispose(room.id)
		res.RoomEmptied = true
		log.Info().Str("module", "app.registry").Str("room", string(room.id)).Msg("room emptied")
	} else if p.Role == domain.RoleAdmin {
		promoted := r.succeed(room)
		res.Promoted = &promoted
	}
	log.Info().Str("module", "app.registry").Str("conn", string(connID)).Str("room", string(p.RoomID)).Msg("participant left")
	return res, nil
}

// ListByRoom returns snapshots in join order.
func (r *Registry) ListByRoom(roomID domain.RoomID) []domain.Participant {
	r.mu.RLock()
	defer r.mu.RUnlock()
	room, ok := r.rooms[roomID]
	if !ok {
		return nil
	}
	return snapshots(room.members)
}

// ListInCall returns the room members currently in a voice/video call, in join order.
func (r *Registry) ListInCall(roomID domain.RoomID) []domain.Participant {
	r.mu.RLock()
	defer r.mu.RUnlock()
	room, ok := r.rooms[roomID]
	if !ok {
		return nil
	}
	return snapshots(lo.Filter(room.members, func(p *domain.Participant, _ int) bool {
		return p.InCall
	}))
}

func (r *Registry) FindByConnectionID(connID domain.ConnectionID) (domain.Participant, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.byConn[connID]
	if !ok {
		return domain.Participant{}, false
	}
	return p.Snapshot(), true
}

// AdminOf returns the admin of a non-empty room.
func (r *Registry) AdminOf(roomID domain.RoomID) (domain.Participant, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	admin, ok := r.adminLocked(roomID)
	if !ok {
		return domain.Participant{}, false
	}
	return admin.Snapshot(), true
}

func (r *Registry) SetStatus(connID domain.ConnectionID, status domain.ConnectionStatus) (domain.Participant, bool) {
	return r.update(connID, func(p *domain.Participant) { p.Status = status })
}

// SetTyping updates the typing flag and, when given, the cursor position.
func (r *Registry) SetTyping(connID domain.ConnectionID, typing bool, cursor *int) (domain.Participant, bool) {
	return r.update(connID, func(p *domain.Participant) {
		p.Typing = typing
		if cursor != nil {
			p.CursorPosition = *cursor
		}
	})
}

func (r *Registry) SetInCall(connID domain.ConnectionID, inCall bool) (domain.Participant, bool) {
	return r.update(connID, func(p *domain.Participant) { p.InCall = inCall })
}

func (r *Registry) SetCurrentFile(connID domain.ConnectionID, fileID *string) (domain.Participant, bool) {
	return r.update(connID, func(p *domain.Participant) {
		if fileID == nil {
			p.CurrentFileID = nil
			return
		}
		id := *fileID
		p.CurrentFileID = &id
	})
}

// Settings is the store the registry resets when a room empties.
func (r *Registry) Settings() *SettingsStore {
	return r.settings
}

// Rooms lists live rooms for inspection APIs, sorted by id.
func (r *Registry) Rooms() []core.RoomInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]core.RoomInfo, 0, len(r.rooms))
	for id, room := range r.rooms {
		settings, _ := r.settings.Peek(id)
		out = append(out, core.RoomInfo{
			ID:              id,
			MemberCount:     len(room.members),
			EveryoneCanEdit: settings.EveryoneCanEdit,
		})
	}
	slices.SortFunc(out, func(a, b core.RoomInfo) int { return cmp.Compare(a.ID, b.ID) })
	return out
}

func (r *Registry) update(connID domain.ConnectionID, fn func(p *domain.Participant)) (domain.Participant, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.byConn[connID]
	if !ok {
		log.Debug().Str("module", "app.registry").Str("conn", string(connID)).Msg("update: unknown connection")
		return domain.Participant{}, false
	}
	fn(p)
	return p.Snapshot(), true
}

func snapshots(members []*domain.Participant) []domain.Participant {
	return lo.Map(members, func(p *domain.Participant, _ int) domain.Participant {
		return p.Snapshot()
	})
}
