package domain

import "errors"

var (
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrMissingToken       = errors.New("missing authorization header")
	ErrMalformedToken     = errors.New("malformed token")
	ErrExpiredToken       = errors.New("token expired")
	ErrSessionRevoked     = errors.New("session revoked")
	ErrUserNotFound       = errors.New("user not found")
)
