package service

import "errors"

// Sentinel errors mapped to HTTP status codes by the handler layer.
var (
	ErrNotFound           = errors.New("resource not found")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrAlreadyPaid        = errors.New("bill is already settled")
)
