package tokens

import (
	"context"
	"testing"
	"time"
)

func TestManager_IssueAndVerify(t *testing.T) {
	mgr, err := NewManager("test-secret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	token, err := mgr.Issue("u1", "a@b.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	claims, err := mgr.Verify(context.Background(), token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if claims.UserID != "u1" || claims.Email != "a@b.com" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestManager_RejectsWrongSecret(t *testing.T) {
	issuer, _ := NewManager("secret-a")
	verifier, _ := NewManager("secret-b")

	token, err := issuer.Issue("u1", "a@b.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := verifier.Verify(context.Background(), token); err == nil {
		t.Fatalf("expected rejection with different secret")
	}
}

func TestManager_RejectsExpiredToken(t *testing.T) {
	mgr, _ := NewManager("test-secret")

	issuedAt := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	mgr.now = func() time.Time { return issuedAt }

	token, err := mgr.Issue("u1", "a@b.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 31 días después, pasado el TTL de 30
	mgr.now = func() time.Time { return issuedAt.AddDate(0, 0, 31) }

	if _, err := mgr.Verify(context.Background(), token); err == nil {
		t.Fatalf("expected expired token rejection")
	}
}

func TestManager_RejectsGarbage(t *testing.T) {
	mgr, _ := NewManager("test-secret")

	if _, err := mgr.Verify(context.Background(), "not-a-jwt"); err == nil {
		t.Fatalf("expected rejection")
	}
}

func TestNewManager_RequiresSecret(t *testing.T) {
	if _, err := NewManager("   "); err == nil {
		t.Fatalf("expected error for blank secret")
	}
}
