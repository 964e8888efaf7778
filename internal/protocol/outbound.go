package protocol

import (
	"encoding/json"

	"github.com/dkeye/coderoom/internal/domain"
)

type JoinAccepted struct {
	User         domain.Participant   `json:"user"`
	Users        []domain.Participant `json:"users"`
	RoomSettings domain.RoomSettings  `json:"roomSettings"`
	UsersInCall  []domain.Participant `json:"usersInCall"`
}

type UserJoined struct {
	User  domain.Participant   `json:"user"`
	Users []domain.Participant `json:"users"`
}

// UserRef carries a whole participant snapshot (disconnect, typing).
type UserRef struct {
	User domain.Participant `json:"user"`
}

type ConnectionRef struct {
	ConnectionID domain.ConnectionID `json:"connectionId"`
}

type Empty struct{}

type EditAccessRequested struct {
	Username     string              `json:"username"`
	ConnectionID domain.ConnectionID `json:"connectionId"`
}

type EditAccessResult struct {
	Approved bool   `json:"approved"`
	Message  string `json:"message"`
}

type RoleUpdated struct {
	ConnectionID domain.ConnectionID `json:"connectionId"`
	Role         domain.Role         `json:"role"`
}

type EveryoneCanEditToggled struct {
	EveryoneCanEdit bool `json:"everyoneCanEdit"`
}

type MessageReceived struct {
	Message json.RawMessage `json:"message"`
}

type FileStructureSync struct {
	FileStructure json.RawMessage `json:"fileStructure"`
	OpenFiles     json.RawMessage `json:"openFiles"`
	ActiveFile    json.RawMessage `json:"activeFile"`
}

type DrawingSync struct {
	DrawingData json.RawMessage `json:"drawingData"`
}

type DrawingSnapshot struct {
	Snapshot json.RawMessage `json:"snapshot"`
}

// PeerInfo identifies a video call peer.
type PeerInfo struct {
	PeerID   domain.ConnectionID `json:"peerId"`
	Username string              `json:"username"`
}

type VideoSignalRelay struct {
	Signal   json.RawMessage     `json:"signal"`
	PeerID   domain.ConnectionID `json:"peerId"`
	Username string              `json:"username"`
}

type VoiceRoster struct {
	UsersInCall []domain.Participant `json:"usersInCall"`
	JoinSuccess bool                 `json:"joinSuccess"`
}

type VoicePeer struct {
	ConnectionID domain.ConnectionID `json:"connectionId"`
	Username     string              `json:"username"`
}

type VoiceSignalRelay struct {
	Signal json.RawMessage     `json:"signal"`
	From   domain.ConnectionID `json:"from"`
}

type Speaking struct {
	ConnectionID domain.ConnectionID `json:"connectionId"`
	IsSpeaking   bool                `json:"isSpeaking"`
}

type Muted struct {
	ConnectionID domain.ConnectionID `json:"connectionId"`
	IsMuted      bool                `json:"isMuted"`
}

const (
	MessageAccessApproved = "Your edit access request was approved"
	MessageAccessDenied   = "Your edit access request was denied"
	UnknownPeerUsername   = "Unknown User"
)
