package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateUsername(t *testing.T) {
	req := require.New(t)
	req.NoError(ValidateUsername("alice"))
	req.NoError(ValidateUsername(strings.Repeat("a", MaxUsernameLen)))
	req.ErrorIs(ValidateUsername(""), ErrUsernameEmpty)
	req.ErrorIs(ValidateUsername(strings.Repeat("a", MaxUsernameLen+1)), ErrUsernameTooLong)
}

func TestValidateUsername_CountsCharacters(t *testing.T) {
	req := require.New(t)
	req.NoError(ValidateUsername(strings.Repeat("Ж", 20)))
	req.NoError(ValidateUsername(strings.Repeat("é", MaxUsernameLen)))
	req.ErrorIs(ValidateUsername(strings.Repeat("Ж", MaxUsernameLen+1)), ErrUsernameTooLong)
}

func TestNewConnectionID(t *testing.T) {
	req := require.New(t)
	a, b := NewConnectionID(), NewConnectionID()
	req.NotEqual(a, b)
	req.Len(string(a), MaxConnectionIDLen)
}

func TestRoleValid(t *testing.T) {
	req := require.New(t)
	req.True(RoleViewer.Valid())
	req.False(Role("owner").Valid())
}
