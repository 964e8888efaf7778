package domain

type Role string

const (
	RoleAdmin  Role = "admin"
	RoleEditor Role = "editor"
	RoleViewer Role = "viewer"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleEditor, RoleViewer:
		return true
	}
	return false
}

type ConnectionStatus string

const (
	StatusOnline  ConnectionStatus = "online"
	StatusOffline ConnectionStatus = "offline"
)

// Participant is one live connection's membership record within a room.
// No transport or lifecycle logic here.
type Participant struct {
	ConnectionID   ConnectionID     `json:"connectionId"`
	Username       string           `json:"username"`
	RoomID         RoomID           `json:"roomId"`
	Role           Role             `json:"role"`
	Status         ConnectionStatus `json:"status"`
	InCall         bool             `json:"isInCall"`
	CursorPosition int              `json:"cursorPosition"`
	Typing         bool             `json:"isTyping"`
	CurrentFileID  *string          `json:"currentFileId"`
}

// NewParticipant keeps construction obvious and applies join defaults.
func NewParticipant(roomID RoomID, username string, connID ConnectionID, role Role) *Participant {
	return &Participant{
		ConnectionID: connID,
		Username:     username,
		RoomID:       roomID,
		Role:         role,
		Status:       StatusOnline,
	}
}

// Snapshot returns a copy safe to hand out of a locked section.
func (p *Participant) Snapshot() Participant {
	out := *p
	if p.CurrentFileID != nil {
		id := *p.CurrentFileID
		out.CurrentFileID = &id
	}
	return out
}
