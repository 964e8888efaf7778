//go:generate go run go.uber.org/mock/mockgen -source=interfaces.go -destination=../mocks/mock_signal.go -package=mocks
package core

import (
	"errors"

	"github.com/dkeye/coderoom/internal/domain"
)

// ErrConnClosed is returned by TrySend once the connection is shutting down.
var ErrConnClosed = errors.New("connection closed")

// Frame is one encoded envelope, ready for the wire.
type Frame []byte

// SignalConnection is the outbound half of a client transport.
// TrySend must not block; a full buffer is reported as an error and the router applies its Policy.
// The adapter owns the connection and is the one to Close it.
type SignalConnection interface {
	TrySend(Frame) error
	Close()
}

// PublishResult reports delivery stats/backpressure to orchestrator.
type PublishResult struct {
	SendTo  int
	Dropped []domain.ConnectionID
}

// RoomInfo is a read-only view for APIs (no transport fields).
type RoomInfo struct {
	ID              domain.RoomID `json:"roomId"`
	MemberCount     int           `json:"memberCount"`
	EveryoneCanEdit bool          `json:"everyoneCanEdit"`
}
