package domain

type RoomID string

// RoomSettings holds per-room flags. It lives exactly as long as the room has participants.
type RoomSettings struct {
	RoomID          RoomID `json:"roomId"`
	EveryoneCanEdit bool   `json:"everyoneCanEdit"`
}

func DefaultRoomSettings(id RoomID) RoomSettings {
	return RoomSettings{RoomID: id}
}
