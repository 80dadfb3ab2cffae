package auth

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/vaultkeep/internal/common"
)

func newTestService(validity time.Duration) *TokenService {
	return NewTokenService([]byte("super-secret"), "vaultkeep", "vaultkeep-clients", validity)
}

func TestGenerateAndParse_Success(t *testing.T) {
	t.Parallel()

	svc := newTestService(time.Hour)
	userID := "user-7"

	tok, err := svc.GenerateToken(userID, "alice")
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	gotUserID, err := svc.GetUserIDFromToken(tok)
	if err != nil {
		t.Fatalf("GetUserIDFromToken error: %v", err)
	}
	if gotUserID != userID {
		t.Fatalf("userID mismatch: got %q want %q", gotUserID, userID)
	}
}

func TestGetUserIDFromToken_Expired(t *testing.T) {
	t.Parallel()

	svc := newTestService(-1 * time.Second)

	tok, err := svc.GenerateToken("u1", "alice")
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	_, err = svc.GetUserIDFromToken(tok)
	if !errors.Is(err, common.ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
	if !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("expired token must also match ErrInvalidToken, got %v", err)
	}
}

func TestGetUserIDFromToken_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := newTestService(time.Hour).GenerateToken("u2", "bob")
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	other := NewTokenService([]byte("wrong-secret"), "vaultkeep", "vaultkeep-clients", time.Hour)
	if _, err := other.GetUserIDFromToken(tok); !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for invalid signature, got %v", err)
	}
}

func TestGetUserIDFromToken_WrongIssuer(t *testing.T) {
	t.Parallel()

	issued := NewTokenService([]byte("super-secret"), "someone-else", "vaultkeep-clients", time.Hour)
	tok, err := issued.GenerateToken("u3", "eve")
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	if _, err := newTestService(time.Hour).GetUserIDFromToken(tok); !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for wrong issuer, got %v", err)
	}
}

func TestGetUserIDFromToken_WrongAudience(t *testing.T) {
	t.Parallel()

	issued := NewTokenService([]byte("super-secret"), "vaultkeep", "other-audience", time.Hour)
	tok, err := issued.GenerateToken("u4", "eve")
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	if _, err := newTestService(time.Hour).GetUserIDFromToken(tok); !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for wrong audience, got %v", err)
	}
}

func TestGetUserIDFromToken_Tampered(t *testing.T) {
	t.Parallel()

	svc := newTestService(time.Hour)
	tok, err := svc.GenerateToken("u5", "mallory")
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	// Flip a byte in the payload segment.
	parts := strings.Split(tok, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token shape: %q", tok)
	}
	payload := []byte(parts[1])
	if payload[0] == 'A' {
		payload[0] = 'B'
	} else {
		payload[0] = 'A'
	}
	tampered := parts[0] + "." + string(payload) + "." + parts[2]

	if _, err := svc.GetUserIDFromToken(tampered); !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for tampered token, got %v", err)
	}
}

func TestGetUserIDFromToken_MalformedString(t *testing.T) {
	t.Parallel()

	if _, err := newTestService(time.Hour).GetUserIDFromToken("not.a.jwt"); !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for malformed token, got %v", err)
	}
}
