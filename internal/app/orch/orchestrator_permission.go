package orch

import (
	"errors"

	"github.com/dkeye/coderoom/internal/domain"
	"github.com/dkeye/coderoom/internal/protocol"
	"github.com/rs/zerolog/log"
)

func (o *Orchestrator) requestEditAccess(id domain.ConnectionID) {
	req, err := o.Roles.RequestEditAccess(id)
	switch {
	case errors.Is(err, domain.ErrAlreadyHasAccess):
		o.send(id, protocol.EventAlreadyHasAccess, protocol.Empty{})
		return
	case err != nil:
		log.Debug().Err(err).Str("module", "orch").Str("conn", string(id)).Msg("edit access request dropped")
		return
	}
	o.send(req.Admin.ConnectionID, protocol.EventRequestEditAccess, protocol.EditAccessRequested{
		Username:     req.Requester.Username,
		ConnectionID: req.Requester.ConnectionID,
	})
}

func (o *Orchestrator) respondToAccessRequest(id domain.ConnectionID, m protocol.EditAccessResponse) {
	target := domain.ConnectionID(m.TargetConnectionID)
	d, err := o.Roles.RespondToAccessRequest(id, target, m.Approved)
	if err != nil {
		log.Debug().Err(err).Str("module", "orch").Str("conn", string(id)).Str("target", string(target)).Msg("access response dropped")
		return
	}
	if !d.Approved {
		o.send(target, protocol.EventEditAccessResponse, protocol.EditAccessResult{Approved: false, Message: protocol.MessageAccessDenied})
		return
	}
	o.send(target, protocol.EventEditAccessResponse, protocol.EditAccessResult{Approved: true, Message: protocol.MessageAccessApproved})
	o.broadcast(d.Target.RoomID, "", protocol.EventUserRoleUpdated, protocol.RoleUpdated{
		ConnectionID: d.Target.ConnectionID,
		Role:         d.Target.Role,
	})
}

func (o *Orchestrator) toggleEveryoneCanEdit(id domain.ConnectionID) {
	roomID, everyone, err := o.Roles.ToggleEveryoneCanEdit(id)
	if err != nil {
		log.Debug().Err(err).Str("module", "orch").Str("conn", string(id)).Msg("toggle dropped")
		return
	}
	o.broadcast(roomID, "", protocol.EventEveryoneCanEditToggled, protocol.EveryoneCanEditToggled{EveryoneCanEdit: everyone})
}

func (o *Orchestrator) updateUserRole(id domain.ConnectionID, m protocol.UpdateUserRole) {
	p, err := o.Roles.SetRole(id, domain.ConnectionID(m.TargetConnectionID), domain.Role(m.NewRole))
	if err != nil {
		log.Debug().Err(err).Str("module", "orch").Str("conn", string(id)).Str("target", m.TargetConnectionID).Msg("role update dropped")
		return
	}
	o.broadcast(p.RoomID, "", protocol.EventUserRoleUpdated, protocol.RoleUpdated{ConnectionID: p.ConnectionID, Role: p.Role})
}
