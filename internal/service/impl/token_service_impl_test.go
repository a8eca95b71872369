package impl

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"sso-auth/internal/domain"
)

func newTestTokenService(t *testing.T, key string) *TokenServiceImpl {
	t.Helper()
	ts, err := NewTokenServiceHS256(TokenConfig{
		Issuer:     "sso-auth-test",
		Audience:   "clients",
		AccessTTL:  time.Hour,
		SigningKey: []byte(key),
	})
	if err != nil {
		t.Fatalf("token service: %v", err)
	}
	return ts
}

func TestTokenRoundTrip(t *testing.T) {
	ts := newTestTokenService(t, "test-secret")
	userID := uuid.New()
	sessionID := uuid.New()

	token, err := ts.Issue(userID, sessionID)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	claims, err := ts.Decode(token)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if claims.UserID != userID {
		t.Fatalf("expected user %s, got %s", userID, claims.UserID)
	}
	if claims.SessionID != sessionID {
		t.Fatalf("expected session %s, got %s", sessionID, claims.SessionID)
	}
	if !claims.ExpiresAt.After(claims.IssuedAt) {
		t.Fatal("expiry must be after issuance")
	}
	if got := claims.ExpiresAt.Sub(claims.IssuedAt); got != time.Hour {
		t.Fatalf("expected 1h ttl, got %s", got)
	}
}

func TestDecodeExpiredToken(t *testing.T) {
	ts := newTestTokenService(t, "test-secret")
	token, err := ts.Issue(uuid.New(), uuid.New())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	// Shift the verifier's clock past expiry.
	ts.now = func() time.Time { return time.Now().Add(2 * time.Hour) }

	if _, err := ts.Decode(token); !errors.Is(err, domain.ErrExpiredToken) {
		t.Fatalf("expected ErrExpiredToken, got %v", err)
	}
}

func TestDecodeMalformedToken(t *testing.T) {
	ts := newTestTokenService(t, "test-secret")

	cases := map[string]string{
		"garbage":     "not-a-jwt",
		"empty":       "",
		"wrong parts": "a.b",
	}
	for name, token := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := ts.Decode(token); !errors.Is(err, domain.ErrMalformedToken) {
				t.Fatalf("expected ErrMalformedToken, got %v", err)
			}
		})
	}
}

func TestDecodeTamperedToken(t *testing.T) {
	ts := newTestTokenService(t, "test-secret")
	token, err := ts.Issue(uuid.New(), uuid.New())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	// Flip a character inside the payload segment.
	parts := strings.Split(token, ".")
	payload := []byte(parts[1])
	if payload[0] == 'A' {
		payload[0] = 'B'
	} else {
		payload[0] = 'A'
	}
	parts[1] = string(payload)

	if _, err := ts.Decode(strings.Join(parts, ".")); !errors.Is(err, domain.ErrMalformedToken) {
		t.Fatalf("expected ErrMalformedToken, got %v", err)
	}
}

func TestDecodeWrongKey(t *testing.T) {
	issuer := newTestTokenService(t, "key-one")
	verifier := newTestTokenService(t, "key-two")

	token, err := issuer.Issue(uuid.New(), uuid.New())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := verifier.Decode(token); !errors.Is(err, domain.ErrMalformedToken) {
		t.Fatalf("expected ErrMalformedToken, got %v", err)
	}
}

func TestDecodeWrongIssuer(t *testing.T) {
	issuer, err := NewTokenServiceHS256(TokenConfig{
		Issuer:     "someone-else",
		Audience:   "clients",
		AccessTTL:  time.Hour,
		SigningKey: []byte("test-secret"),
	})
	if err != nil {
		t.Fatalf("token service: %v", err)
	}
	verifier := newTestTokenService(t, "test-secret")

	token, err := issuer.Issue(uuid.New(), uuid.New())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := verifier.Decode(token); !errors.Is(err, domain.ErrMalformedToken) {
		t.Fatalf("expected ErrMalformedToken, got %v", err)
	}
}

func TestNewTokenServiceRequiresKey(t *testing.T) {
	if _, err := NewTokenServiceHS256(TokenConfig{Issuer: "x", Audience: "y"}); !errors.Is(err, ErrSigningKey) {
		t.Fatalf("expected ErrSigningKey, got %v", err)
	}
}
