package service_test

import (
	"errors"
	"testing"
	"time"

	"github.com/penmark/penmark/internal/domain"
	"github.com/penmark/penmark/internal/service"
)

const testSecret = "test-secret-key-for-unit-tests-0123456789"

func TestTokens_RoundTrip(t *testing.T) {
	tokens := service.NewTokens(testSecret, time.Hour)

	raw, err := tokens.Issue(42, "alice_01")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	identity, err := tokens.Verify(raw)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if identity.UserID != 42 {
		t.Fatalf("expected user ID 42, got %d", identity.UserID)
	}
	if identity.Username != "alice_01" {
		t.Fatalf("expected username alice_01, got %q", identity.Username)
	}
}

func TestTokens_Expired(t *testing.T) {
	tokens := service.NewTokens(testSecret, -time.Minute)

	raw, err := tokens.Issue(42, "alice_01")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	_, err = tokens.Verify(raw)
	if !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestTokens_WrongSecret(t *testing.T) {
	issuer := service.NewTokens(testSecret, time.Hour)
	verifier := service.NewTokens("a-completely-different-secret-value-xyz", time.Hour)

	raw, err := issuer.Issue(42, "alice_01")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	_, err = verifier.Verify(raw)
	if !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for wrong secret, got %v", err)
	}
}

func TestTokens_Garbage(t *testing.T) {
	tokens := service.NewTokens(testSecret, time.Hour)

	for _, raw := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := tokens.Verify(raw); !errors.Is(err, domain.ErrInvalidToken) {
			t.Fatalf("Verify(%q): expected ErrInvalidToken, got %v", raw, err)
		}
	}
}

func TestTokens_Tampered(t *testing.T) {
	tokens := service.NewTokens(testSecret, time.Hour)

	raw, err := tokens.Issue(42, "alice_01")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	// Flip a character in the payload segment.
	tampered := []byte(raw)
	mid := len(tampered) / 2
	if tampered[mid] == 'A' {
		tampered[mid] = 'B'
	} else {
		tampered[mid] = 'A'
	}

	if _, err := tokens.Verify(string(tampered)); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for tampered token, got %v", err)
	}
}
