package identity

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/isha-gupta80/loomaproject2222/internal/model"
)

func TestSessionExpiry(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	current := time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return current }

	session, err := svc.CreateSession(ctx, "user-1")
	if err != nil {
		t.Fatalf("create session: %v", err)
	}
	if got := session.ExpiresAt.Std(); !got.Equal(current.Add(7 * 24 * time.Hour)) {
		t.Fatalf("expected 7-day expiry, got %s", got)
	}

	if _, err := svc.ValidateSession(ctx, session.Token); err != nil {
		t.Fatalf("expected fresh session to validate, got %v", err)
	}

	// Just before expiry the session is still good.
	current = current.Add(7*24*time.Hour - time.Second)
	if _, err := svc.ValidateSession(ctx, session.Token); err != nil {
		t.Fatalf("expected near-expiry session to validate, got %v", err)
	}

	// At and past expiry it is treated as absent even though the record
	// is still stored.
	current = current.Add(2 * time.Second)
	if _, err := svc.ValidateSession(ctx, session.Token); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("expected expired session to be not found, got %v", err)
	}
}

func TestValidateSessionUnknownToken(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	if _, err := svc.ValidateSession(ctx, "no-such-token"); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("expected unknown token to be not found, got %v", err)
	}
}

func TestRevokeSession(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	session, err := svc.CreateSession(ctx, "user-1")
	if err != nil {
		t.Fatalf("create session: %v", err)
	}

	revoked, err := svc.RevokeSession(ctx, session.Token)
	if err != nil || !revoked {
		t.Fatalf("expected revoke to delete, got %v %v", revoked, err)
	}
	if _, err := svc.ValidateSession(ctx, session.Token); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("expected revoked session to be gone, got %v", err)
	}

	// Revoking a token that does not exist is not an error.
	revoked, err = svc.RevokeSession(ctx, session.Token)
	if err != nil || revoked {
		t.Fatalf("expected second revoke to report false, got %v %v", revoked, err)
	}
}
