package users

import "errors"

var (
	// ErrNotFound is returned when no user matches a lookup.
	ErrNotFound = errors.New("user not found")
	// ErrEmailTaken is returned when an email address is already registered.
	ErrEmailTaken = errors.New("user already exists")
	// ErrInvalidRole is returned for role names outside Roles().
	ErrInvalidRole = errors.New("invalid role")
)
