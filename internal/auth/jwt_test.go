package auth

import (
	"testing"
	"time"

	"activity-platform/internal/config"

	"github.com/golang-jwt/jwt/v5"
)

func TestIssueAndVerify(t *testing.T) {
	m, err := NewManager(config.AuthConfig{
		JWTSecret:      "secret",
		JWTIssuer:      "issuer",
		AccessTokenTTL: 24 * time.Hour,
	})
	if err != nil {
		t.Fatalf("manager: %v", err)
	}

	now := time.Unix(1700000000, 0).UTC()
	tok, err := m.Issue(now, "user-1")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if tok == "" {
		t.Fatalf("expected token string")
	}

	claims, err := m.Verify(tok, now.Add(1*time.Minute))
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.PrincipalID() != "user-1" {
		t.Fatalf("unexpected principal: %q", claims.PrincipalID())
	}
	if claims.Subject != "user-1" {
		t.Fatalf("expected sub claim, got %q", claims.Subject)
	}
}

func TestVerifyUsesSuppliedInstant(t *testing.T) {
	m, _ := NewManager(config.AuthConfig{JWTSecret: "secret", AccessTokenTTL: time.Hour})

	// Issued far in the past relative to the wall clock. Validation must be
	// anchored to the caller's instant, so the token is still accepted inside
	// its own window.
	issued := time.Date(2023, 11, 14, 12, 0, 0, 0, time.UTC)
	tok, err := m.Issue(issued, "u")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := m.Verify(tok, issued.Add(30*time.Minute)); err != nil {
		t.Fatalf("verify at in-window instant: %v", err)
	}

	// Slightly past expiry falls inside the clock-skew leeway.
	if _, err := m.Verify(tok, issued.Add(time.Hour+20*time.Second)); err != nil {
		t.Fatalf("verify inside leeway: %v", err)
	}
	if _, err := m.Verify(tok, issued.Add(time.Hour+time.Minute)); err == nil {
		t.Fatalf("expected expiry error past leeway")
	}
}

func TestVerifyRejectsExpired(t *testing.T) {
	m, _ := NewManager(config.AuthConfig{JWTSecret: "secret", AccessTokenTTL: time.Minute})
	now := time.Unix(1700000000, 0).UTC()
	tok, err := m.Issue(now, "u")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := m.Verify(tok, now.Add(2*time.Hour)); err == nil {
		t.Fatalf("expected expiry error")
	}
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	m1, _ := NewManager(config.AuthConfig{JWTSecret: "secret-a", AccessTokenTTL: time.Hour})
	m2, _ := NewManager(config.AuthConfig{JWTSecret: "secret-b", AccessTokenTTL: time.Hour})
	tok, err := m1.Issue(time.Now(), "u")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := m2.Verify(tok, time.Now()); err == nil {
		t.Fatalf("expected signature error")
	}
}

func TestPrincipalIDFallsBackToSubject(t *testing.T) {
	c := Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "sub-user"}}
	if got := c.PrincipalID(); got != "sub-user" {
		t.Fatalf("expected sub fallback, got %q", got)
	}
	c.UserID = "id-user"
	if got := c.PrincipalID(); got != "id-user" {
		t.Fatalf("expected id claim preferred, got %q", got)
	}
}

func TestVerifyRejectsTokenWithoutPrincipal(t *testing.T) {
	m, _ := NewManager(config.AuthConfig{JWTSecret: "secret", AccessTokenTTL: time.Hour})

	now := time.Now()
	raw := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
	})
	tok, err := raw.SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := m.Verify(tok, now); err == nil {
		t.Fatalf("expected error for token without id or sub")
	}
}

func TestBearerToken(t *testing.T) {
	if got := BearerToken("Bearer abc"); got != "abc" {
		t.Fatalf("expected abc, got %q", got)
	}
	if got := BearerToken(""); got != "" {
		t.Fatalf("expected empty, got %q", got)
	}
	if got := BearerToken("Basic abc"); got != "" {
		t.Fatalf("expected empty for non-bearer scheme, got %q", got)
	}
}
