package orch

import (
	"github.com/dkeye/coderoom/internal/app"
	"github.com/dkeye/coderoom/internal/domain"
	"github.com/dkeye/coderoom/internal/protocol"
	"github.com/rs/zerolog/log"
)

// relayMutation forwards a file tree change to the sender's room if the sender may edit.
// Rejected mutations are dropped without telling the sender.
func (o *Orchestrator) relayMutation(id domain.ConnectionID, m protocol.ContentMutation) {
	p, ok := o.sender(id, m.Event())
	if !ok {
		return
	}
	if !app.CanParticipantEdit(p, o.Settings.Get(p.RoomID)) {
		log.Debug().Str("module", "orch").Str("conn", string(id)).Str("role", string(p.Role)).Str("event", string(m.Event())).Msg("edit rejected")
		return
	}
	o.broadcast(p.RoomID, id, m.Event(), m)
}

func (o *Orchestrator) syncFileStructure(id domain.ConnectionID, m protocol.SyncFileStructure) {
	p, ok := o.sender(id, m.Event())
	if !ok {
		return
	}
	target, err := o.roomTarget(p, domain.ConnectionID(m.ConnectionID))
	if err != nil {
		log.Debug().Err(err).Str("module", "orch").Str("conn", string(id)).Str("target", m.ConnectionID).Msg("file structure sync dropped")
		return
	}
	o.send(target.ConnectionID, protocol.EventSyncFileStructure, protocol.FileStructureSync{
		FileStructure: m.FileStructure,
		OpenFiles:     m.OpenFiles,
		ActiveFile:    m.ActiveFile,
	})
}

func (o *Orchestrator) sendMessage(id domain.ConnectionID, m protocol.SendMessage) {
	p, ok := o.sender(id, m.Event())
	if !ok {
		return
	}
	o.broadcast(p.RoomID, id, protocol.EventReceiveMessage, protocol.MessageReceived{Message: m.Message})
}

func (o *Orchestrator) setTyping(id domain.ConnectionID, typing bool, cursor *int, event protocol.Event) {
	p, ok := o.Registry.SetTyping(id, typing, cursor)
	if !ok {
		return
	}
	o.broadcast(p.RoomID, id, event, protocol.UserRef{User: p})
}

func (o *Orchestrator) currentFileChanged(id domain.ConnectionID, m protocol.CurrentFileChanged) {
	p, ok := o.Registry.SetCurrentFile(id, m.FileID)
	if !ok {
		return
	}
	o.broadcast(p.RoomID, id, protocol.EventCurrentFileChanged, protocol.UserRef{User: p})
}

func (o *Orchestrator) requestDrawing(id domain.ConnectionID) {
	p, ok := o.sender(id, protocol.EventRequestDrawing)
	if !ok {
		return
	}
	o.broadcast(p.RoomID, id, protocol.EventRequestDrawing, protocol.ConnectionRef{ConnectionID: id})
}

func (o *Orchestrator) syncDrawing(id domain.ConnectionID, m protocol.SyncDrawing) {
	p, ok := o.sender(id, m.Event())
	if !ok {
		return
	}
	target, err := o.roomTarget(p, domain.ConnectionID(m.ConnectionID))
	if err != nil {
		log.Debug().Err(err).Str("module", "orch").Str("conn", string(id)).Str("target", m.ConnectionID).Msg("drawing sync dropped")
		return
	}
	o.send(target.ConnectionID, protocol.EventSyncDrawing, protocol.DrawingSync{DrawingData: m.DrawingData})
}

func (o *Orchestrator) drawingUpdate(id domain.ConnectionID, m protocol.DrawingUpdate) {
	p, ok := o.sender(id, m.Event())
	if !ok {
		return
	}
	o.broadcast(p.RoomID, id, protocol.EventDrawingUpdate, protocol.DrawingSnapshot{Snapshot: m.Snapshot})
}
