package http

import (
	"context"

	"sso-auth/internal/domain"
)

// Identity is the authenticated principal the guard resolves for downstream
// handlers.
type Identity struct {
	UserID    domain.UserID
	SessionID domain.SessionID
}

type identityKey struct{}

func withIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(Identity)
	return id, ok
}
