package service

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrRoleNotFound       = errors.New("role not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrRoleCatalogMissing = errors.New("role catalog is not seeded")
	ErrAlreadyBanned      = errors.New("user is already banned")
	ErrNotBanned          = errors.New("user is not banned")
)
