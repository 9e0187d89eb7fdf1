package auth

import "errors"

var (
	ErrNotFound           = errors.New("auth: not found")
	ErrEmailTaken         = errors.New("auth: email already registered")
	ErrInvalidCredentials = errors.New("auth: invalid email address and/or password")
	ErrInvalidToken       = errors.New("auth: invalid token")
	ErrSessionInvalid     = errors.New("auth: refresh token has expired or the session is invalid")
)
