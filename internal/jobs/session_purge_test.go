package jobs

import (
	"context"
	"testing"
	"time"

	"github.com/isha-gupta80/loomaproject2222/internal/model"
	"github.com/isha-gupta80/loomaproject2222/internal/store"
)

func TestPurgeExpiredRemovesOnlyStaleSessions(t *testing.T) {
	st := store.NewMemory()
	ctx := context.Background()
	now := time.Now().UTC()

	sessions := []model.Session{
		{ID: "stale-1", UserID: "u1", Token: "t1", ExpiresAt: model.At(now.Add(-time.Hour))},
		{ID: "stale-2", UserID: "u2", Token: "t2", ExpiresAt: model.At(now.Add(-time.Minute))},
		{ID: "fresh", UserID: "u3", Token: "t3", ExpiresAt: model.At(now.Add(time.Hour))},
	}
	for _, s := range sessions {
		if err := st.Sessions.Insert(ctx, s); err != nil {
			t.Fatalf("insert %s: %v", s.ID, err)
		}
	}

	purged, err := purgeExpired(ctx, st.Sessions, now)
	if err != nil {
		t.Fatalf("purge: %v", err)
	}
	if purged != 2 {
		t.Fatalf("purged = %d, want 2", purged)
	}

	remaining, err := st.Sessions.Find(ctx, store.Filter{})
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if len(remaining) != 1 || remaining[0].ID != "fresh" {
		t.Fatalf("remaining = %+v", remaining)
	}
}

func TestPurgeExpiredNoMatches(t *testing.T) {
	st := store.NewMemory()
	ctx := context.Background()

	purged, err := purgeExpired(ctx, st.Sessions, time.Now())
	if err != nil {
		t.Fatalf("purge: %v", err)
	}
	if purged != 0 {
		t.Fatalf("purged = %d, want 0", purged)
	}
}
