package app

import (
	"github.com/dkeye/coderoom/internal/domain"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
)

// AccessRequest is a pending edit-access request to forward to the room admin.
type AccessRequest struct {
	Admin     domain.Participant
	Requester domain.Participant
}

// AccessDecision is the admin's answer to an access request.
type AccessDecision struct {
	Target   domain.Participant
	Approved bool
}

// RoleManager implements the role state machine:
//
//	viewer <-> editor   (admin decides)
//	viewer/editor -> admin   (succession only, see Registry.Leave)
//
// Every transition runs under the registry lock so it cannot interleave with a succession.
type RoleManager struct {
	registry *Registry
	settings *SettingsStore
}

func NewRoleManager(registry *Registry, settings *SettingsStore) *RoleManager {
	return &RoleManager{registry: registry, settings: settings}
}

// RequestEditAccess never changes a role; it only resolves who should be asked.
func (m *RoleManager) RequestEditAccess(connID domain.ConnectionID) (AccessRequest, error) {
	r := m.registry
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byConn[connID]
	if !ok {
		return AccessRequest{}, domain.ErrNotFound
	}
	if CanParticipantEdit(*p, m.settings.Get(p.RoomID)) {
		return AccessRequest{}, domain.ErrAlreadyHasAccess
	}
	admin, ok := r.adminLocked(p.RoomID)
	if !ok {
		return AccessRequest{}, domain.ErrNotFound
	}
	return AccessRequest{Admin: admin.Snapshot(), Requester: p.Snapshot()}, nil
}

// RespondToAccessRequest promotes the target to editor on approval. Denial changes nothing.
func (m *RoleManager) RespondToAccessRequest(adminID, targetID domain.ConnectionID, approved bool) (AccessDecision, error) {
	r := m.registry
	r.mu.Lock()
	defer r.mu.Unlock()

	target, err := r.authorizeLocked(adminID, targetID)
	if err != nil {
		return AccessDecision{}, err
	}
	if approved {
		if target.Role == domain.RoleAdmin {
			return AccessDecision{}, domain.ErrAdminImmutable
		}
		target.Role = domain.RoleEditor
		log.Info().Str("module", "app.roles").Str("conn", string(targetID)).Msg("edit access granted")
	} else {
		log.Info().Str("module", "app.roles").Str("conn", string(targetID)).Msg("edit access denied")
	}
	return AccessDecision{Target: target.Snapshot(), Approved: approved}, nil
}

// SetRole moves a participant between viewer and editor. The admin seat is not reachable from here.
func (m *RoleManager) SetRole(adminID, targetID domain.ConnectionID, role domain.Role) (domain.Participant, error) {
	if !role.Valid() || role == domain.RoleAdmin {
		return domain.Participant{}, domain.ErrInvalidRole
	}

	r := m.registry
	r.mu.Lock()
	defer r.mu.Unlock()

	target, err := r.authorizeLocked(adminID, targetID)
	if err != nil {
		return domain.Participant{}, err
	}
	if target.Role == domain.RoleAdmin {
		return domain.Participant{}, domain.ErrAdminImmutable
	}
	target.Role = role
	log.Info().Str("module", "app.roles").Str("conn", string(targetID)).Str("role", string(role)).Msg("role updated")
	return target.Snapshot(), nil
}

// ToggleEveryoneCanEdit flips the room flag on behalf of its admin.
func (m *RoleManager) ToggleEveryoneCanEdit(adminID domain.ConnectionID) (domain.RoomID, bool, error) {
	r := m.registry
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.byConn[adminID]
	if !ok {
		return "", false, domain.ErrNotFound
	}
	if p.Role != domain.RoleAdmin {
		return "", false, domain.ErrNotAuthorized
	}
	return p.RoomID, m.settings.ToggleEveryoneCanEdit(p.RoomID), nil
}

// authorizeLocked resolves the target and checks that adminID is the admin of the target's room.
func (r *Registry) authorizeLocked(adminID, targetID domain.ConnectionID) (*domain.Participant, error) {
	caller, ok := r.byConn[adminID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if caller.Role != domain.RoleAdmin {
		return nil, domain.ErrNotAuthorized
	}
	target, ok := r.byConn[targetID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if target.RoomID != caller.RoomID {
		return nil, domain.ErrNotAuthorized
	}
	return target, nil
}

func (r *Registry) adminLocked(roomID domain.RoomID) (*domain.Participant, bool) {
	room, ok := r.rooms[roomID]
	if !ok {
		return nil, false
	}
	return lo.Find(room.members, func(p *domain.Participant) bool {
		return p.Role == domain.RoleAdmin
	})
}

// succeed promotes the oldest remaining member. Caller holds the write lock and
// guarantees the room is non-empty and has just lost its admin.
func (r *Registry) succeed(room *roomState) domain.Participant {
	next := room.members[0]
	next.Role = domain.RoleAdmin
	log.Info().Str("module", "app.roles").Str("room", string(room.id)).Str("conn", string(next.ConnectionID)).Msg("admin succession")
	return next.Snapshot()
}
