package orch

import (
	"context"
	"errors"
	"sync"

	"github.com/dkeye/coderoom/internal/app"
	"github.com/dkeye/coderoom/internal/core"
	"github.com/dkeye/coderoom/internal/domain"
	"github.com/dkeye/coderoom/internal/protocol"
	"github.com/rs/zerolog/log"
)

// Orchestrator routes inbound messages to the registry and role manager and fans the
// results out to room members. Handlers run one at a time under mu: lookups, gating,
// mutations and enqueueing happen in acceptance order, and enqueueing never blocks.
type Orchestrator struct {
	mu sync.Mutex

	Registry *app.Registry
	Settings *app.SettingsStore
	Roles    *app.RoleManager
	Sessions *app.Sessions
	Policy   app.Policy
}

func New(registry *app.Registry, sessions *app.Sessions, policy app.Policy) *Orchestrator {
	return &Orchestrator{
		Registry: registry,
		Settings: registry.Settings(),
		Roles:    app.NewRoleManager(registry, registry.Settings()),
		Sessions: sessions,
		Policy:   policy,
	}
}

// Connect binds a fresh transport endpoint. The connection joins no room until it sends join-request.
func (o *Orchestrator) Connect(id domain.ConnectionID, sig core.SignalConnection, cancel context.CancelFunc) {
	o.Sessions.Bind(id, sig, cancel)
}

// OnDisconnect is safe to call more than once and for connections that never joined.
func (o *Orchestrator) OnDisconnect(id domain.ConnectionID) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.leave(id)
	o.Sessions.Unbind(id)
}

// Dispatch handles one decoded client message.
func (o *Orchestrator) Dispatch(id domain.ConnectionID, msg protocol.Inbound) {
	o.mu.Lock()
	defer o.mu.Unlock()

	switch m := msg.(type) {
	case protocol.JoinRequest:
		o.join(id, m)
	case protocol.Ping:
		o.send(id, protocol.EventPong, protocol.Empty{})
	case protocol.UserOnline:
		o.setStatus(id, domain.StatusOnline, protocol.EventUserOnline)
	case protocol.UserOffline:
		o.setStatus(id, domain.StatusOffline, protocol.EventUserOffline)

	case protocol.RequestEditAccess:
		o.requestEditAccess(id)
	case protocol.EditAccessResponse:
		o.respondToAccessRequest(id, m)
	case protocol.ToggleEveryoneCanEdit:
		o.toggleEveryoneCanEdit(id)
	case protocol.UpdateUserRole:
		o.updateUserRole(id, m)

	case protocol.ContentMutation:
		o.relayMutation(id, m)
	case protocol.SyncFileStructure:
		o.syncFileStructure(id, m)
	case protocol.SendMessage:
		o.sendMessage(id, m)
	case protocol.TypingStart:
		o.setTyping(id, true, m.CursorPosition, protocol.EventTypingStart)
	case protocol.TypingPause:
		o.setTyping(id, false, nil, protocol.EventTypingPause)
	case protocol.CurrentFileChanged:
		o.currentFileChanged(id, m)

	case protocol.RequestDrawing:
		o.requestDrawing(id)
	case protocol.SyncDrawing:
		o.syncDrawing(id, m)
	case protocol.DrawingUpdate:
		o.drawingUpdate(id, m)

	case protocol.VideoCallRequest, protocol.VideoCallUserJoined:
		o.videoCallJoined(id)
	case protocol.VideoCallAccepted:
		o.videoCallAccepted(id, m)
	case protocol.VideoCallSignal:
		o.videoCallSignal(id, m)
	case protocol.VideoCallEnded:
		o.videoCallEnded(id)

	case protocol.VoiceJoin:
		o.voiceJoin(id)
	case protocol.VoiceLeave:
		o.voiceLeave(id)
	case protocol.VoiceSignal:
		o.voiceSignal(id, m)
	case protocol.UserSpeaking:
		o.userSpeaking(id, m)
	case protocol.MuteStatus:
		o.muteStatus(id, m)

	default:
		log.Warn().Str("module", "orch").Str("conn", string(id)).Str("event", string(msg.Event())).Msg("unhandled message")
	}
}

// sender resolves the participant behind a connection. Unknown senders are a benign race.
func (o *Orchestrator) sender(id domain.ConnectionID, event protocol.Event) (domain.Participant, bool) {
	p, ok := o.Registry.FindByConnectionID(id)
	if !ok {
		log.Debug().Str("module", "orch").Str("conn", string(id)).Str("event", string(event)).Msg("sender not in a room, dropped")
	}
	return p, ok
}

// roomTarget resolves a unicast target that must share the sender's room.
func (o *Orchestrator) roomTarget(from domain.Participant, target domain.ConnectionID) (domain.Participant, error) {
	p, ok := o.Registry.FindByConnectionID(target)
	if !ok || p.RoomID != from.RoomID {
		return domain.Participant{}, domain.ErrRelayTargetGone
	}
	return p, nil
}

// send is a best-effort unicast.
func (o *Orchestrator) send(to domain.ConnectionID, event protocol.Event, payload any) {
	frame, err := protocol.Encode(event, payload)
	if err != nil {
		log.Error().Err(err).Str("module", "orch").Msg("encode")
		return
	}
	if err := o.deliver(to, frame); err != nil {
		if gone(err) {
			log.Debug().Err(err).Str("module", "orch").Str("to", string(to)).Str("event", string(event)).Msg("unicast target gone")
			return
		}
		log.Warn().Err(err).Str("module", "orch").Str("to", string(to)).Str("event", string(event)).Msg("unicast dropped")
		o.applyPolicy("", core.PublishResult{Dropped: []domain.ConnectionID{to}})
	}
}

// broadcast sends to every member of roomID except exclude (empty exclude reaches everyone).
func (o *Orchestrator) broadcast(roomID domain.RoomID, exclude domain.ConnectionID, event protocol.Event, payload any) core.PublishResult {
	res := core.PublishResult{}
	frame, err := protocol.Encode(event, payload)
	if err != nil {
		log.Error().Err(err).Str("module", "orch").Msg("encode")
		return res
	}
	for _, p := range o.Registry.ListByRoom(roomID) {
		if p.ConnectionID == exclude {
			continue
		}
		if err := o.deliver(p.ConnectionID, frame); err != nil {
			if gone(err) {
				log.Debug().Err(err).Str("module", "orch").Str("to", string(p.ConnectionID)).Msg("broadcast target gone")
				continue
			}
			res.Dropped = append(res.Dropped, p.ConnectionID)
			continue
		}
		res.SendTo++
	}
	log.Debug().Str("module", "orch").Str("room", string(roomID)).Str("event", string(event)).Int("sent_to", res.SendTo).Int("dropped", len(res.Dropped)).Msg("broadcast result")
	o.applyPolicy(roomID, res)
	return res
}

func (o *Orchestrator) deliver(to domain.ConnectionID, frame core.Frame) error {
	sig, ok := o.Sessions.Signal(to)
	if !ok {
		return domain.ErrRelayTargetGone
	}
	return sig.TrySend(frame)
}

// gone reports a target that is unbound or already closing; the policy does not apply to it.
func gone(err error) bool {
	return errors.Is(err, domain.ErrRelayTargetGone) || errors.Is(err, core.ErrConnClosed)
}

func (o *Orchestrator) applyPolicy(roomID domain.RoomID, res core.PublishResult) {
	if o.Policy == nil {
		return
	}
	for _, slow := range res.Dropped {
		switch o.Policy.OnBackPressure(roomID, slow) {
		case app.KickMember:
			log.Warn().Str("module", "orch").Str("conn", string(slow)).Msg("kicking slow connection")
			o.Sessions.Cancel(slow)
		case app.MarkSlow, app.DropFrame, app.NoAction:
		}
	}
}
