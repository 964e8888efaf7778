package protocol

import "encoding/json"

// Inbound is a decoded client message. The marker method keeps the set closed to this package.
type Inbound interface {
	Event() Event
	isInbound()
}

// ContentMutation is an inbound change to the shared file tree. Only editors may send one.
type ContentMutation interface {
	Inbound
	isContentMutation()
}

type inbound struct{}

func (inbound) isInbound() {}

type mutation struct{ inbound }

func (mutation) isContentMutation() {}

type JoinRequest struct {
	inbound
	RoomID   string `json:"roomId" validate:"required,max=64"`
	Username string `json:"username" validate:"required,max=36"`
}

type Ping struct{ inbound }

type UserOnline struct{ inbound }

type UserOffline struct{ inbound }

// Permissions

type RequestEditAccess struct{ inbound }

type EditAccessResponse struct {
	inbound
	TargetConnectionID string `json:"targetConnectionId" validate:"required"`
	Approved           bool   `json:"approved"`
}

type ToggleEveryoneCanEdit struct{ inbound }

type UpdateUserRole struct {
	inbound
	TargetConnectionID string `json:"targetConnectionId" validate:"required"`
	NewRole            string `json:"newRole" validate:"required,oneof=admin editor viewer"`
}

// File tree

type FileUpdated struct {
	mutation
	FileID     string `json:"fileId" validate:"required"`
	NewContent string `json:"newContent"`
}

type FileCreated struct {
	mutation
	ParentDirID string          `json:"parentDirId" validate:"required"`
	NewFile     json.RawMessage `json:"newFile" validate:"required"`
}

type FileRenamed struct {
	mutation
	FileID  string `json:"fileId" validate:"required"`
	NewName string `json:"newName" validate:"required"`
}

type FileDeleted struct {
	mutation
	FileID string `json:"fileId" validate:"required"`
}

type DirectoryCreated struct {
	mutation
	ParentDirID  string          `json:"parentDirId" validate:"required"`
	NewDirectory json.RawMessage `json:"newDirectory" validate:"required"`
}

type DirectoryUpdated struct {
	mutation
	DirID    string          `json:"dirId" validate:"required"`
	Children json.RawMessage `json:"children"`
}

type DirectoryRenamed struct {
	mutation
	DirID   string `json:"dirId" validate:"required"`
	NewName string `json:"newName" validate:"required"`
}

type DirectoryDeleted struct {
	mutation
	DirID string `json:"dirId" validate:"required"`
}

// SyncFileStructure hands the sender's tree to one newcomer.
type SyncFileStructure struct {
	inbound
	FileStructure json.RawMessage `json:"fileStructure"`
	OpenFiles     json.RawMessage `json:"openFiles"`
	ActiveFile    json.RawMessage `json:"activeFile"`
	ConnectionID  string          `json:"connectionId" validate:"required"`
}

// Chat and presence

type SendMessage struct {
	inbound
	Message json.RawMessage `json:"message" validate:"required"`
}

type TypingStart struct {
	inbound
	CursorPosition *int `json:"cursorPosition" validate:"omitempty,min=0"`
}

type TypingPause struct{ inbound }

type CurrentFileChanged struct {
	inbound
	FileID *string `json:"fileId"`
}

// Drawing

type RequestDrawing struct{ inbound }

type SyncDrawing struct {
	inbound
	DrawingData  json.RawMessage `json:"drawingData"`
	ConnectionID string          `json:"connectionId" validate:"required"`
}

type DrawingUpdate struct {
	inbound
	Snapshot json.RawMessage `json:"snapshot" validate:"required"`
}

// Video call

type VideoCallRequest struct{ inbound }

type VideoCallUserJoined struct{ inbound }

type VideoCallAccepted struct {
	inbound
	PeerID string `json:"peerId" validate:"required"`
}

type VideoCallSignal struct {
	inbound
	Signal   json.RawMessage `json:"signal" validate:"required"`
	PeerID   string          `json:"peerId" validate:"required"`
	Username string          `json:"username"`
}

type VideoCallEnded struct{ inbound }

// Voice chat

type VoiceJoin struct{ inbound }

type VoiceLeave struct{ inbound }

type VoiceSignal struct {
	inbound
	Signal   json.RawMessage `json:"signal" validate:"required"`
	TargetID string          `json:"targetId" validate:"required"`
}

type UserSpeaking struct {
	inbound
	IsSpeaking bool `json:"isSpeaking"`
}

type MuteStatus struct {
	inbound
	IsMuted  bool   `json:"isMuted"`
	TargetID string `json:"targetId"`
}

func (JoinRequest) Event() Event           { return EventJoinRequest }
func (Ping) Event() Event                  { return EventPing }
func (UserOnline) Event() Event            { return EventUserOnline }
func (UserOffline) Event() Event           { return EventUserOffline }
func (RequestEditAccess) Event() Event     { return EventRequestEditAccess }
func (EditAccessResponse) Event() Event    { return EventEditAccessResponse }
func (ToggleEveryoneCanEdit) Event() Event { return EventToggleEveryoneCanEdit }
func (UpdateUserRole) Event() Event        { return EventUpdateUserRole }
func (FileUpdated) Event() Event           { return EventFileUpdated }
func (FileCreated) Event() Event           { return EventFileCreated }
func (FileRenamed) Event() Event           { return EventFileRenamed }
func (FileDeleted) Event() Event           { return EventFileDeleted }
func (DirectoryCreated) Event() Event      { return EventDirectoryCreated }
func (DirectoryUpdated) Event() Event      { return EventDirectoryUpdated }
func (DirectoryRenamed) Event() Event      { return EventDirectoryRenamed }
func (DirectoryDeleted) Event() Event      { return EventDirectoryDeleted }
func (SyncFileStructure) Event() Event     { return EventSyncFileStructure }
func (SendMessage) Event() Event           { return EventSendMessage }
func (TypingStart) Event() Event           { return EventTypingStart }
func (TypingPause) Event() Event           { return EventTypingPause }
func (CurrentFileChanged) Event() Event    { return EventCurrentFileChanged }
func (RequestDrawing) Event() Event        { return EventRequestDrawing }
func (SyncDrawing) Event() Event           { return EventSyncDrawing }
func (DrawingUpdate) Event() Event         { return EventDrawingUpdate }
func (VideoCallRequest) Event() Event      { return EventVideoCallRequest }
func (VideoCallUserJoined) Event() Event   { return EventVideoCallUserJoined }
func (VideoCallAccepted) Event() Event     { return EventVideoCallAccepted }
func (VideoCallSignal) Event() Event       { return EventVideoCallSignal }
func (VideoCallEnded) Event() Event        { return EventVideoCallEnded }
func (VoiceJoin) Event() Event             { return EventVoiceJoin }
func (VoiceLeave) Event() Event            { return EventVoiceLeave }
func (VoiceSignal) Event() Event           { return EventVoiceSignal }
func (UserSpeaking) Event() Event          { return EventUserSpeaking }
func (MuteStatus) Event() Event            { return EventMuteStatus }
