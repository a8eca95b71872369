package impl

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"sso-auth/internal/domain"
	"sso-auth/internal/service"
)

type TokenConfig struct {
	Issuer     string
	Audience   string
	AccessTTL  time.Duration
	SigningKey []byte // HS256 secret, never logged
}

// SessionClaims binds a token to exactly one session via the sid claim. The
// registry, not the token, decides whether that session is still live.
type SessionClaims struct {
	SID string `json:"sid"`
	jwt.RegisteredClaims
}

type TokenServiceImpl struct {
	cfg TokenConfig
	now func() time.Time
}

// NewTokenServiceHS256 builds the codec. A missing signing key is a startup
// misconfiguration, not a runtime path, so it fails here.
func NewTokenServiceHS256(cfg TokenConfig) (*TokenServiceImpl, error) {
	if len(cfg.SigningKey) == 0 {
		return nil, ErrSigningKey
	}
	if cfg.AccessTTL <= 0 {
		cfg.AccessTTL = 24 * time.Hour
	}
	return &TokenServiceImpl{cfg: cfg, now: time.Now}, nil
}

func (t *TokenServiceImpl) Issue(userID domain.UserID, sessionID domain.SessionID) (string, error) {
	now := t.now().UTC()
	claims := SessionClaims{
		SID: sessionID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    t.cfg.Issuer,
			Subject:   userID.String(),
			Audience:  jwt.ClaimStrings{t.cfg.Audience},
			ExpiresAt: jwt.NewNumericDate(now.Add(t.cfg.AccessTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        uuid.New().String(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.cfg.SigningKey)
}

// Decode verifies signature and expiry only. Expired tokens surface as
// domain.ErrExpiredToken; every other failure collapses into
// domain.ErrMalformedToken so callers leak nothing about why.
func (t *TokenServiceImpl) Decode(tokenStr string) (*service.TokenClaims, error) {
	claims := &SessionClaims{}
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(t.now),
		jwt.WithIssuer(t.cfg.Issuer),
		jwt.WithAudience(t.cfg.Audience),
	)
	_, err := parser.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		return t.cfg.SigningKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrExpiredToken
		}
		return nil, domain.ErrMalformedToken
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, domain.ErrMalformedToken
	}
	sessionID, err := uuid.Parse(claims.SID)
	if err != nil {
		return nil, domain.ErrMalformedToken
	}

	out := &service.TokenClaims{
		UserID:    userID,
		SessionID: sessionID,
	}
	if claims.IssuedAt != nil {
		out.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Time
	}
	return out, nil
}
