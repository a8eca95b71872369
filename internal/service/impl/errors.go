package impl

import "errors"

var (
	ErrEmptyPassword   = errors.New("empty password")
	ErrEmptyCredential = errors.New("empty credential(s)")
	ErrPasswordLength  = errors.New("password too short")
	ErrSigningKey      = errors.New("signing key not configured")
)
