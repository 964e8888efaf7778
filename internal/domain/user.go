// Package domain contains entity without logic, just meta-data
package domain

import (
	"unicode/utf8"

	"github.com/google/uuid"
)

const (
	MaxConnectionIDLen = 36
	MaxUsernameLen     = 36
)

type ConnectionID string

// NewConnectionID is a tiny helper to avoid ad-hoc id generation in adapters.
func NewConnectionID() ConnectionID {
	return ConnectionID(uuid.NewString())
}

// ValidateUsername checks the username a client offers on join. Length is counted in characters.
func ValidateUsername(username string) error {
	if len(username) == 0 {
		return ErrUsernameEmpty
	}
	if utf8.RuneCountInString(username) > MaxUsernameLen {
		return ErrUsernameTooLong
	}
	return nil
}
