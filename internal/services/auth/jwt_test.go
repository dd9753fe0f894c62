package auth

import (
	"errors"
	"testing"
	"time"
)

func newTestJWTManager(now func() time.Time) *JWTManager {
	m := NewJWTManager("access-secret", "refresh-secret", 15*time.Minute, 720*time.Hour)
	if now != nil {
		m.now = now
	}
	return m
}

func TestAccessTokenRoundTrip(t *testing.T) {
	m := newTestJWTManager(nil)

	signed, expiresAt, err := m.GenerateAccessToken("user-1", "Admin")
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}
	if time.Until(expiresAt) <= 0 {
		t.Fatal("access token expiry must be in the future")
	}

	claims, err := m.ParseAccessToken(signed)
	if err != nil {
		t.Fatalf("ParseAccessToken: %v", err)
	}
	if claims.UserID != "user-1" {
		t.Fatalf("user id: got %q, want %q", claims.UserID, "user-1")
	}
	if claims.Role != "Admin" {
		t.Fatalf("role: got %q, want %q", claims.Role, "Admin")
	}
}

func TestAccessTokenExpires(t *testing.T) {
	current := time.Now()
	m := newTestJWTManager(func() time.Time { return current })

	signed, _, err := m.GenerateAccessToken("user-1", "User")
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	if _, err := m.ParseAccessToken(signed); err != nil {
		t.Fatalf("token should be valid before expiry: %v", err)
	}

	current = current.Add(16 * time.Minute)
	if _, err := m.ParseAccessToken(signed); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired after TTL, got %v", err)
	}
}

func TestAccessTokenWrongSecret(t *testing.T) {
	m := newTestJWTManager(nil)
	other := NewJWTManager("different-secret", "refresh-secret", 15*time.Minute, 720*time.Hour)

	signed, _, err := m.GenerateAccessToken("user-1", "User")
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	if _, err := other.ParseAccessToken(signed); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid for wrong secret, got %v", err)
	}
}

func TestRefreshTokenNotValidAsAccess(t *testing.T) {
	m := newTestJWTManager(nil)

	refresh, _, _, err := m.GenerateRefreshToken("user-1", "User")
	if err != nil {
		t.Fatalf("GenerateRefreshToken: %v", err)
	}

	if _, err := m.ParseAccessToken(refresh); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("refresh token must not parse as access token, got %v", err)
	}
}

func TestRefreshTokenCarriesJTI(t *testing.T) {
	m := newTestJWTManager(nil)

	signed, jti, expiresAt, err := m.GenerateRefreshToken("user-1", "Admin")
	if err != nil {
		t.Fatalf("GenerateRefreshToken: %v", err)
	}
	if jti == "" {
		t.Fatal("refresh token must carry a JTI")
	}
	if time.Until(expiresAt) <= 0 {
		t.Fatal("refresh token expiry must be in the future")
	}

	claims, err := m.ParseRefreshToken(signed)
	if err != nil {
		t.Fatalf("ParseRefreshToken: %v", err)
	}
	if claims.JTI != jti {
		t.Fatalf("jti: got %q, want %q", claims.JTI, jti)
	}
	if claims.UserID != "user-1" || claims.Role != "Admin" {
		t.Fatalf("unexpected refresh claims: %+v", claims)
	}

	signed2, jti2, _, err := m.GenerateRefreshToken("user-1", "Admin")
	if err != nil {
		t.Fatalf("second GenerateRefreshToken: %v", err)
	}
	if jti2 == jti || signed2 == signed {
		t.Fatal("each refresh token must be unique")
	}
}

func TestParseGarbageTokens(t *testing.T) {
	m := newTestJWTManager(nil)

	for _, raw := range []string{"", "   ", "garbage", "a.b.c"} {
		if _, err := m.ParseAccessToken(raw); !errors.Is(err, ErrTokenInvalid) {
			t.Fatalf("access %q: expected ErrTokenInvalid, got %v", raw, err)
		}
		if _, err := m.ParseRefreshToken(raw); !errors.Is(err, ErrTokenInvalid) {
			t.Fatalf("refresh %q: expected ErrTokenInvalid, got %v", raw, err)
		}
	}
}
