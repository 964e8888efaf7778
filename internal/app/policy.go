package app

import (
	"github.com/dkeye/coderoom/internal/domain"
)

// CanEdit decides whether a participant holding role may mutate room content.
func CanEdit(role domain.Role, settings domain.RoomSettings) bool {
	if role == domain.RoleAdmin {
		return true
	}
	if settings.EveryoneCanEdit {
		return true
	}
	return role == domain.RoleEditor
}

func CanParticipantEdit(p domain.Participant, settings domain.RoomSettings) bool {
	return CanEdit(p.Role, settings)
}

type BackpressureAction int

const (
	NoAction BackpressureAction = iota
	MarkSlow
	KickMember
	DropFrame
)

// Policy decides what happens to a connection whose send buffer is full.
type Policy interface {
	OnBackPressure(room domain.RoomID, conn domain.ConnectionID) BackpressureAction
}

type SimplePolicy struct{}

func (SimplePolicy) OnBackPressure(domain.RoomID, domain.ConnectionID) BackpressureAction {
	return KickMember
}

// DropPolicy only loses the frame; the slow connection stays.
type DropPolicy struct{}

func (DropPolicy) OnBackPressure(domain.RoomID, domain.ConnectionID) BackpressureAction {
	return DropFrame
}
