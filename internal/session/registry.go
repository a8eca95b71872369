// Package session holds the authoritative registry of live sessions. The
// registry enforces at most one live session per (user, device type): creating
// a session for an occupied slot revokes the previous occupant in the same
// transition.
package session

import (
	"context"

	"sso-auth/internal/domain"
)

// Registry is the session store contract. Implementations must be safe for
// concurrent use, including racing Create calls for the same
// (user, device type) pair. A missing session is an empty result everywhere,
// never an error.
type Registry interface {
	// Create installs a fresh live session, revoking any live session the
	// user already holds for the same device type.
	Create(ctx context.Context, userID domain.UserID, deviceType domain.DeviceType, deviceName, ip string) (domain.Session, error)

	// Get returns the live session with the given id, or nil. Callers use it
	// to decide both liveness and ownership of a presented session id.
	Get(ctx context.Context, id domain.SessionID) (*domain.Session, error)

	// Revoke marks the session revoked. Idempotent; absent sessions are a no-op.
	Revoke(ctx context.Context, id domain.SessionID) error

	// RevokeDevice revokes the user's live session for the device type, if
	// any, and reports whether a revocation occurred.
	RevokeDevice(ctx context.Context, userID domain.UserID, deviceType domain.DeviceType) (bool, error)

	// RevokeAll revokes every live session the user holds and returns the count.
	RevokeAll(ctx context.Context, userID domain.UserID) (int, error)

	// ListLive returns the user's live sessions in creation order.
	ListLive(ctx context.Context, userID domain.UserID) ([]domain.Session, error)
}
