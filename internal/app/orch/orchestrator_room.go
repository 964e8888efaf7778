package orch

import (
	"errors"

	"github.com/dkeye/coderoom/internal/domain"
	"github.com/dkeye/coderoom/internal/protocol"
	"github.com/rs/zerolog/log"
)

func (o *Orchestrator) join(id domain.ConnectionID, m protocol.JoinRequest) {
	if err := domain.ValidateUsername(m.Username); err != nil {
		log.Warn().Err(err).Str("module", "orch").Str("conn", string(id)).Msg("join rejected")
		return
	}
	if prev, ok := o.Registry.FindByConnectionID(id); ok {
		o.leave(id)
		log.Info().Str("module", "orch").Str("conn", string(id)).Str("from_room", string(prev.RoomID)).Msg("left previous room")
	}

	roomID := domain.RoomID(m.RoomID)
	p, err := o.Registry.Join(roomID, m.Username, id)
	if errors.Is(err, domain.ErrUsernameConflict) {
		o.send(id, protocol.EventUsernameExists, protocol.Empty{})
		return
	}
	if err != nil {
		log.Error().Err(err).Str("module", "orch").Str("conn", string(id)).Msg("join failed")
		return
	}

	users := o.Registry.ListByRoom(roomID)
	o.send(id, protocol.EventJoinAccepted, protocol.JoinAccepted{
		User:         p,
		Users:        users,
		RoomSettings: o.Settings.Get(roomID),
		UsersInCall:  o.Registry.ListInCall(roomID),
	})
	o.broadcast(roomID, "", protocol.EventUserJoined, protocol.UserJoined{User: p, Users: users})
	log.Info().Str("module", "orch").Str("conn", string(id)).Str("room", string(roomID)).Str("role", string(p.Role)).Msg("join accepted")
}

// leave removes the connection from its room and tells the remaining members,
// including the succession when the admin was the one leaving.
func (o *Orchestrator) leave(id domain.ConnectionID) {
	res, err := o.Registry.Leave(id)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			log.Error().Err(err).Str("module", "orch").Str("conn", string(id)).Msg("leave")
		}
		return
	}

	p := res.Participant
	if res.RoomEmptied {
		return
	}
	if res.WasInCall {
		o.broadcast(p.RoomID, id, protocol.EventVideoCallPeerDisconnected, protocol.PeerInfo{PeerID: id, Username: p.Username})
		o.broadcast(p.RoomID, id, protocol.EventVoiceLeave, protocol.VoicePeer{ConnectionID: id, Username: p.Username})
	}
	o.broadcast(p.RoomID, id, protocol.EventUserDisconnected, protocol.UserRef{User: p})
	if res.Promoted != nil {
		o.broadcast(p.RoomID, "", protocol.EventUserRoleUpdated, protocol.RoleUpdated{
			ConnectionID: res.Promoted.ConnectionID,
			Role:         domain.RoleAdmin,
		})
	}
}

func (o *Orchestrator) setStatus(id domain.ConnectionID, status domain.ConnectionStatus, event protocol.Event) {
	p, ok := o.Registry.SetStatus(id, status)
	if !ok {
		return
	}
	o.broadcast(p.RoomID, id, event, protocol.ConnectionRef{ConnectionID: id})
}
