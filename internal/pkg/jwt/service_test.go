package jwt

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func newTestService() *HMACService {
	return NewHMACService("access-secret", "refresh-secret", 15*time.Minute, 24*time.Hour)
}

func TestAccessTokenRoundTrip(t *testing.T) {
	svc := newTestService()
	userID := uuid.New()

	tok, err := svc.GenerateAccessToken(userID, "dev@example.com", "recruiter")
	if err != nil {
		t.Fatalf("GenerateAccessToken returned error: %v", err)
	}

	claims, err := svc.ValidateToken(tok)
	if err != nil {
		t.Fatalf("ValidateToken returned error: %v", err)
	}

	if claims.UserID != userID {
		t.Fatalf("user id mismatch: got %s want %s", claims.UserID, userID)
	}
	if claims.Email != "dev@example.com" || claims.Role != "recruiter" {
		t.Fatalf("claims not carried: email=%q role=%q", claims.Email, claims.Role)
	}
	if claims.TokenType != TokenTypeAccess {
		t.Fatalf("expected access token type, got %q", claims.TokenType)
	}
	if svc.IsRefreshToken(claims) {
		t.Fatal("access token must not validate as refresh")
	}
}

func TestRefreshTokenCarriesNoIdentityClaims(t *testing.T) {
	svc := newTestService()

	tok, err := svc.GenerateRefreshToken(uuid.New())
	if err != nil {
		t.Fatalf("GenerateRefreshToken returned error: %v", err)
	}

	claims, err := svc.ValidateToken(tok)
	if err != nil {
		t.Fatalf("ValidateToken returned error: %v", err)
	}
	if !svc.IsRefreshToken(claims) {
		t.Fatal("expected refresh token type")
	}
	if claims.Email != "" || claims.Role != "" {
		t.Fatalf("refresh tokens must not carry identity claims, got email=%q role=%q", claims.Email, claims.Role)
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	svc := newTestService()
	svc.now = func() time.Time { return time.Now().Add(-time.Hour) }

	tok, err := svc.GenerateAccessToken(uuid.New(), "", "")
	if err != nil {
		t.Fatalf("GenerateAccessToken returned error: %v", err)
	}

	svc.now = time.Now
	if _, err := svc.ValidateToken(tok); err != ErrTokenExpired {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestTamperedTokenRejected(t *testing.T) {
	svc := newTestService()

	tok, err := svc.GenerateAccessToken(uuid.New(), "", "")
	if err != nil {
		t.Fatalf("GenerateAccessToken returned error: %v", err)
	}

	other := NewHMACService("wrong-secret", "also-wrong", 15*time.Minute, 24*time.Hour)
	if _, err := other.ValidateToken(tok); err != ErrTokenInvalid {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}
