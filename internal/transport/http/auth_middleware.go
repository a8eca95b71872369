package http

import (
	"errors"
	"net/http"
	"strings"

	"sso-auth/internal/domain"
	"sso-auth/internal/observability/metrics"
	"sso-auth/internal/service"
	"sso-auth/internal/session"
)

// AuthGuard gates protected routes. Per request: extract the bearer token,
// decode it, check the bound session against the registry, then either admit
// with a resolved Identity or reject with 401. It never mutates the registry.
//
// Decode failures and revoked sessions intentionally answer with the same
// wording so a client cannot tell a revoked token from a tampered one.
func AuthGuard(tokens service.TokenService, registry session.Registry) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := bearerToken(r)
			if err != nil {
				metrics.GuardRejectionsTotal.WithLabelValues("missing_token").Inc()
				writeError(w, domain.ErrMissingToken)
				return
			}

			claims, err := tokens.Decode(token)
			if err != nil {
				if errors.Is(err, domain.ErrExpiredToken) {
					metrics.GuardRejectionsTotal.WithLabelValues("expired_token").Inc()
				} else {
					metrics.GuardRejectionsTotal.WithLabelValues("malformed_token").Inc()
				}
				writeError(w, err)
				return
			}

			sess, err := registry.Get(r.Context(), claims.SessionID)
			if err != nil {
				writeError(w, err)
				return
			}
			// A live session must also belong to the token's subject; a sid
			// pointing at someone else's session is as dead as a revoked one.
			if sess == nil || sess.UserID != claims.UserID {
				metrics.GuardRejectionsTotal.WithLabelValues("session_revoked").Inc()
				writeError(w, domain.ErrSessionRevoked)
				return
			}

			ctx := withIdentity(r.Context(), Identity{
				UserID:    claims.UserID,
				SessionID: claims.SessionID,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", domain.ErrMissingToken
	}
	// RFC 7235: scheme comparison is case-insensitive.
	scheme, token, ok := strings.Cut(header, " ")
	token = strings.TrimSpace(token)
	if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
		return "", domain.ErrMissingToken
	}
	return token, nil
}
