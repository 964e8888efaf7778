package protocol

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dkeye/coderoom/internal/core"
	"github.com/go-playground/validator/v10"
)

var (
	ErrMalformed    = errors.New("malformed message")
	ErrUnknownEvent = errors.New("unknown event")
)

var validate = validator.New()

// Envelope is the wire frame in both directions.
type Envelope struct {
	Event Event           `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// Decode parses one client frame into its concrete Inbound type and validates the payload.
func Decode(data []byte) (Inbound, error) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return decodeEvent(env.Event, env.Data)
}

// Encode wraps a payload into an envelope frame.
func Encode(event Event, payload any) (core.Frame, error) {
	var data json.RawMessage
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", event, err)
		}
		data = b
	}
	b, err := json.Marshal(Envelope{Event: event, Data: data})
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", event, err)
	}
	return b, nil
}

func decodeEvent(event Event, data json.RawMessage) (Inbound, error) {
	switch event {
	case EventJoinRequest:
		return decodeAs[JoinRequest](event, data)
	case EventPing:
		return decodeAs[Ping](event, data)
	case EventUserOnline:
		return decodeAs[UserOnline](event, data)
	case EventUserOffline:
		return decodeAs[UserOffline](event, data)
	case EventRequestEditAccess:
		return decodeAs[RequestEditAccess](event, data)
	case EventEditAccessResponse:
		return decodeAs[EditAccessResponse](event, data)
	case EventToggleEveryoneCanEdit:
		return decodeAs[ToggleEveryoneCanEdit](event, data)
	case EventUpdateUserRole:
		return decodeAs[UpdateUserRole](event, data)
	case EventFileUpdated:
		return decodeAs[FileUpdated](event, data)
	case EventFileCreated:
		return decodeAs[FileCreated](event, data)
	case EventFileRenamed:
		return decodeAs[FileRenamed](event, data)
	case EventFileDeleted:
		return decodeAs[FileDeleted](event, data)
	case EventDirectoryCreated:
		return decodeAs[DirectoryCreated](event, data)
	case EventDirectoryUpdated:
		return decodeAs[DirectoryUpdated](event, data)
	case EventDirectoryRenamed:
		return decodeAs[DirectoryRenamed](event, data)
	case EventDirectoryDeleted:
		return decodeAs[DirectoryDeleted](event, data)
	case EventSyncFileStructure:
		return decodeAs[SyncFileStructure](event, data)
	case EventSendMessage:
		return decodeAs[SendMessage](event, data)
	case EventTypingStart:
		return decodeAs[TypingStart](event, data)
	case EventTypingPause:
		return decodeAs[TypingPause](event, data)
	case EventCurrentFileChanged:
		return decodeAs[CurrentFileChanged](event, data)
	case EventRequestDrawing:
		return decodeAs[RequestDrawing](event, data)
	case EventSyncDrawing:
		return decodeAs[SyncDrawing](event, data)
	case EventDrawingUpdate:
		return decodeAs[DrawingUpdate](event, data)
	case EventVideoCallRequest:
		return decodeAs[VideoCallRequest](event, data)
	case EventVideoCallUserJoined:
		return decodeAs[VideoCallUserJoined](event, data)
	case EventVideoCallAccepted:
		return decodeAs[VideoCallAccepted](event, data)
	case EventVideoCallSignal:
		return decodeAs[VideoCallSignal](event, data)
	case EventVideoCallEnded:
		return decodeAs[VideoCallEnded](event, data)
	case EventVoiceJoin:
		return decodeAs[VoiceJoin](event, data)
	case EventVoiceLeave:
		return decodeAs[VoiceLeave](event, data)
	case EventVoiceSignal:
		return decodeAs[VoiceSignal](event, data)
	case EventUserSpeaking:
		return decodeAs[UserSpeaking](event, data)
	case EventMuteStatus:
		return decodeAs[MuteStatus](event, data)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEvent, event)
	}
}

func decodeAs[T Inbound](event Event, data json.RawMessage) (Inbound, error) {
	var msg T
	if len(data) > 0 && string(data) != "null" {
		if err := json.Unmarshal(data, &msg); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrMalformed, event, err)
		}
	}
	if err := validate.Struct(msg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformed, event, err)
	}
	return msg, nil
}
