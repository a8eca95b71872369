package service

import (
	"time"

	"sso-auth/internal/domain"
)

// TokenClaims is what a verified token asserts. Revocation state is not part
// of it; callers check the session registry separately.
type TokenClaims struct {
	UserID    domain.UserID
	SessionID domain.SessionID
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// TokenService mints and verifies the signed bearer tokens bound to sessions.
// It is stateless; Decode fails only on signature, structure or expiry.
type TokenService interface {
	Issue(userID domain.UserID, sessionID domain.SessionID) (string, error)
	Decode(token string) (*TokenClaims, error)
}
