package app

import (
	"testing"

	"github.com/dkeye/coderoom/internal/domain"
	"github.com/stretchr/testify/require"
)

// room with alice (admin, c1), bob (viewer, c2) and, in another room, eve (admin, c9)
func newRoles(t *testing.T) (*RoleManager, *Registry) {
	t.Helper()
	r, settings := newRegistry()
	_, err := r.Join("room", "alice", "c1")
	require.NoError(t, err)
	_, err = r.Join("room", "bob", "c2")
	require.NoError(t, err)
	_, err = r.Join("other", "eve", "c9")
	require.NoError(t, err)
	return NewRoleManager(r, settings), r
}

func TestRoleManager_RequestEditAccess(t *testing.T) {
	req := require.New(t)
	m, _ := newRoles(t)

	got, err := m.RequestEditAccess("c2")
	req.NoError(err)
	req.Equal(domain.ConnectionID("c1"), got.Admin.ConnectionID)
	req.Equal("bob", got.Requester.Username)

	_, err = m.RequestEditAccess("c1")
	req.ErrorIs(err, domain.ErrAlreadyHasAccess)

	_, err = m.RequestEditAccess("ghost")
	req.ErrorIs(err, domain.ErrNotFound)
}

func TestRoleManager_RequestEditAccessWhenEveryoneCanEdit(t *testing.T) {
	req := require.New(t)
	m, _ := newRoles(t)
	_, _, err := m.ToggleEveryoneCanEdit("c1")
	req.NoError(err)

	_, err = m.RequestEditAccess("c2")
	req.ErrorIs(err, domain.ErrAlreadyHasAccess)
}

func TestRoleManager_RespondToAccessRequest(t *testing.T) {
	req := require.New(t)
	m, r := newRoles(t)

	// Denial changes nothing
	d, err := m.RespondToAccessRequest("c1", "c2", false)
	req.NoError(err)
	req.False(d.Approved)
	bob, _ := r.FindByConnectionID("c2")
	req.Equal(domain.RoleViewer, bob.Role)

	// Approval promotes to editor
	d, err = m.RespondToAccessRequest("c1", "c2", true)
	req.NoError(err)
	req.True(d.Approved)
	req.Equal(domain.RoleEditor, d.Target.Role)
	bob, _ = r.FindByConnectionID("c2")
	req.Equal(domain.RoleEditor, bob.Role)
}

func TestRoleManager_OnlyAdminOfSameRoom(t *testing.T) {
	req := require.New(t)
	m, r := newRoles(t)

	_, err := m.RespondToAccessRequest("c2", "c2", true)
	req.ErrorIs(err, domain.ErrNotAuthorized)

	_, err = m.RespondToAccessRequest("c9", "c2", true)
	req.ErrorIs(err, domain.ErrNotAuthorized)

	_, err = m.SetRole("c9", "c2", domain.RoleEditor)
	req.ErrorIs(err, domain.ErrNotAuthorized)

	_, _, err = m.ToggleEveryoneCanEdit("c2")
	req.ErrorIs(err, domain.ErrNotAuthorized)

	bob, _ := r.FindByConnectionID("c2")
	req.Equal(domain.RoleViewer, bob.Role)
}

func TestRoleManager_SetRole(t *testing.T) {
	req := require.New(t)
	m, _ := newRoles(t)

	p, err := m.SetRole("c1", "c2", domain.RoleEditor)
	req.NoError(err)
	req.Equal(domain.RoleEditor, p.Role)

	p, err = m.SetRole("c1", "c2", domain.RoleViewer)
	req.NoError(err)
	req.Equal(domain.RoleViewer, p.Role)

	_, err = m.SetRole("c1", "c2", domain.RoleAdmin)
	req.ErrorIs(err, domain.ErrInvalidRole)

	_, err = m.SetRole("c1", "c1", domain.RoleViewer)
	req.ErrorIs(err, domain.ErrAdminImmutable)

	_, err = m.SetRole("c1", "ghost", domain.RoleEditor)
	req.ErrorIs(err, domain.ErrNotFound)
}

func TestRoleManager_ToggleEveryoneCanEdit(t *testing.T) {
	req := require.New(t)
	m, _ := newRoles(t)

	roomID, on, err := m.ToggleEveryoneCanEdit("c1")
	req.NoError(err)
	req.Equal(domain.RoomID("room"), roomID)
	req.True(on)

	_, on, err = m.ToggleEveryoneCanEdit("c1")
	req.NoError(err)
	req.False(on)
}
