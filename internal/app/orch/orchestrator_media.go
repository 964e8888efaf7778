package orch

import (
	"encoding/json"

	"github.com/dkeye/coderoom/internal/domain"
	"github.com/dkeye/coderoom/internal/protocol"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
)

// Voice chat

func (o *Orchestrator) voiceJoin(id domain.ConnectionID) {
	p, ok := o.Registry.SetInCall(id, true)
	if !ok {
		return
	}
	o.send(id, protocol.EventVoiceJoin, protocol.VoiceRoster{
		UsersInCall: o.Registry.ListInCall(p.RoomID),
		JoinSuccess: true,
	})
	o.broadcast(p.RoomID, id, protocol.EventVoiceJoin, protocol.VoicePeer{ConnectionID: id, Username: p.Username})
}

func (o *Orchestrator) voiceLeave(id domain.ConnectionID) {
	p, ok := o.Registry.SetInCall(id, false)
	if !ok {
		return
	}
	o.broadcast(p.RoomID, id, protocol.EventVoiceLeave, protocol.VoicePeer{ConnectionID: id, Username: p.Username})
}

func (o *Orchestrator) voiceSignal(id domain.ConnectionID, m protocol.VoiceSignal) {
	p, ok := o.sender(id, m.Event())
	if !ok {
		return
	}
	target, err := o.roomTarget(p, domain.ConnectionID(m.TargetID))
	if err != nil {
		log.Warn().Err(err).Str("module", "orch").Str("conn", string(id)).Str("target", m.TargetID).Msg("voice signal dropped")
		return
	}
	logSignal(id, target.ConnectionID, m.Signal)
	o.send(target.ConnectionID, protocol.EventVoiceSignal, protocol.VoiceSignalRelay{Signal: m.Signal, From: id})
}

func (o *Orchestrator) userSpeaking(id domain.ConnectionID, m protocol.UserSpeaking) {
	p, ok := o.sender(id, m.Event())
	if !ok {
		return
	}
	o.broadcast(p.RoomID, id, protocol.EventUserSpeaking, protocol.Speaking{ConnectionID: id, IsSpeaking: m.IsSpeaking})
}

// muteStatus goes to one peer when targetId is set, otherwise to the whole room.
func (o *Orchestrator) muteStatus(id domain.ConnectionID, m protocol.MuteStatus) {
	p, ok := o.sender(id, m.Event())
	if !ok {
		return
	}
	payload := protocol.Muted{ConnectionID: id, IsMuted: m.IsMuted}
	if m.TargetID == "" {
		o.broadcast(p.RoomID, id, protocol.EventMuteStatus, payload)
		return
	}
	target, err := o.roomTarget(p, domain.ConnectionID(m.TargetID))
	if err != nil {
		log.Debug().Err(err).Str("module", "orch").Str("conn", string(id)).Str("target", m.TargetID).Msg("mute status dropped")
		return
	}
	o.send(target.ConnectionID, protocol.EventMuteStatus, payload)
}

// Video call

func (o *Orchestrator) videoCallJoined(id domain.ConnectionID) {
	p, ok := o.Registry.SetInCall(id, true)
	if !ok {
		return
	}
	o.broadcast(p.RoomID, id, protocol.EventVideoCallUserJoined, protocol.PeerInfo{PeerID: id, Username: p.Username})
}

// videoCallAccepted introduces the accepting peer to the caller and to every other member.
func (o *Orchestrator) videoCallAccepted(id domain.ConnectionID, m protocol.VideoCallAccepted) {
	p, ok := o.sender(id, m.Event())
	if !ok {
		return
	}
	info := protocol.PeerInfo{PeerID: id, Username: p.Username}
	peer, err := o.roomTarget(p, domain.ConnectionID(m.PeerID))
	if err == nil {
		o.send(peer.ConnectionID, protocol.EventVideoCallPeerConnected, info)
	}
	others := lo.Filter(o.Registry.ListByRoom(p.RoomID), func(u domain.Participant, _ int) bool {
		return u.ConnectionID != id && u.ConnectionID != domain.ConnectionID(m.PeerID)
	})
	for _, u := range others {
		o.send(u.ConnectionID, protocol.EventVideoCallPeerConnected, info)
	}
}

// videoCallSignal tells the sender its peer is gone when the target cannot be reached.
func (o *Orchestrator) videoCallSignal(id domain.ConnectionID, m protocol.VideoCallSignal) {
	p, ok := o.sender(id, m.Event())
	if !ok {
		return
	}
	target, err := o.roomTarget(p, domain.ConnectionID(m.PeerID))
	if err != nil {
		log.Debug().Err(err).Str("module", "orch").Str("conn", string(id)).Str("peer", m.PeerID).Msg("video signal target gone")
		o.send(id, protocol.EventVideoCallPeerDisconnected, protocol.PeerInfo{
			PeerID:   domain.ConnectionID(m.PeerID),
			Username: protocol.UnknownPeerUsername,
		})
		return
	}
	logSignal(id, target.ConnectionID, m.Signal)
	o.send(target.ConnectionID, protocol.EventVideoCallSignal, protocol.VideoSignalRelay{
		Signal:   m.Signal,
		PeerID:   id,
		Username: p.Username,
	})
}

func (o *Orchestrator) videoCallEnded(id domain.ConnectionID) {
	p, ok := o.Registry.SetInCall(id, false)
	if !ok {
		return
	}
	o.broadcast(p.RoomID, id, protocol.EventVideoCallPeerDisconnected, protocol.PeerInfo{PeerID: id, Username: p.Username})
}

func logSignal(from, to domain.ConnectionID, raw json.RawMessage) {
	kind, err := protocol.ClassifySignal(raw)
	if err != nil {
		log.Debug().Err(err).Str("module", "orch").Str("from", string(from)).Str("to", string(to)).Msg("opaque signal relayed")
		return
	}
	log.Debug().Str("module", "orch").Str("from", string(from)).Str("to", string(to)).Str("kind", string(kind)).Msg("signal relayed")
}
