package domain

import "errors"

var (
	ErrUsernameEmpty    = errors.New("username empty")
	ErrUsernameTooLong  = errors.New("username too long")
	ErrUsernameConflict = errors.New("username already taken in room")

	ErrNotFound         = errors.New("participant not found")
	ErrAlreadyJoined    = errors.New("connection already joined a room")
	ErrNotAuthorized    = errors.New("caller is not the room admin")
	ErrAlreadyHasAccess = errors.New("participant can already edit")
	ErrAdminImmutable   = errors.New("admin role can only change by succession")
	ErrInvalidRole      = errors.New("invalid role")

	ErrRelayTargetGone = errors.New("relay target is not connected")
)
