// Package protocol defines the closed set of messages exchanged over the signaling socket.
//
// Every frame is an envelope {"event": <name>, "data": <payload>}. Inbound frames decode
// into one concrete type per event; the router switches on those types, never on names.
package protocol

type Event string

// Connection and membership.
const (
	EventJoinRequest      Event = "join-request"
	EventJoinAccepted     Event = "join-accepted"
	EventUserJoined       Event = "user-joined"
	EventUserDisconnected Event = "user-disconnected"
	EventUsernameExists   Event = "username-exists"
	EventUserOffline      Event = "user-offline"
	EventUserOnline       Event = "user-online"
	EventPing             Event = "ping"
	EventPong             Event = "pong"
)

// File tree.
const (
	EventSyncFileStructure Event = "sync-file-structure"
	EventFileUpdated       Event = "file-updated"
	EventFileCreated       Event = "file-created"
	EventFileRenamed       Event = "file-renamed"
	EventFileDeleted       Event = "file-deleted"
	EventDirectoryCreated  Event = "directory-created"
	EventDirectoryUpdated  Event = "directory-updated"
	EventDirectoryRenamed  Event = "directory-renamed"
	EventDirectoryDeleted  Event = "directory-deleted"
)

// Chat and presence.
const (
	EventSendMessage        Event = "send-message"
	EventReceiveMessage     Event = "receive-message"
	EventTypingStart        Event = "typing-start"
	EventTypingPause        Event = "typing-pause"
	EventCurrentFileChanged Event = "current-file-changed"
)

// Permissions.
const (
	EventRequestEditAccess      Event = "request-edit-access"
	EventEditAccessResponse     Event = "edit-access-response"
	EventAlreadyHasAccess       Event = "already-has-access"
	EventToggleEveryoneCanEdit  Event = "toggle-everyone-can-edit"
	EventEveryoneCanEditToggled Event = "everyone-can-edit-toggled"
	EventUpdateUserRole         Event = "update-user-role"
	EventUserRoleUpdated        Event = "user-role-updated"
)

// Drawing.
const (
	EventRequestDrawing Event = "request-drawing"
	EventSyncDrawing    Event = "sync-drawing"
	EventDrawingUpdate  Event = "drawing-update"
)

// Video call.
const (
	EventVideoCallRequest          Event = "video-call-request"
	EventVideoCallAccepted         Event = "video-call-accepted"
	EventVideoCallUserJoined       Event = "video-call-user-joined"
	EventVideoCallPeerConnected    Event = "video-call-peer-connected"
	EventVideoCallPeerDisconnected Event = "video-call-peer-disconnected"
	EventVideoCallSignal           Event = "video-call-signal"
	EventVideoCallEnded            Event = "video-call-ended"
)

// Voice chat.
const (
	EventVoiceJoin    Event = "voice-join"
	EventVoiceLeave   Event = "voice-leave"
	EventVoiceSignal  Event = "voice-signal"
	EventUserSpeaking Event = "user-speaking"
	EventMuteStatus   Event = "mute-status"
)
