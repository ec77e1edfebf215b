package jobs

import (
	"context"
	"log"
	"time"

	"github.com/isha-gupta80/loomaproject2222/internal/model"
	"github.com/isha-gupta80/loomaproject2222/internal/store"
)

// StartSessionPurge deletes expired sessions on a fixed interval until
// ctx is cancelled. A non-positive interval disables the job.
func StartSessionPurge(ctx context.Context, interval time.Duration, sessions store.Collection[model.Session]) {
	if interval <= 0 {
		log.Printf("session purge disabled")
		return
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				purged, err := purgeExpired(ctx, sessions, time.Now())
				if err != nil {
					log.Printf("session purge: %v", err)
					continue
				}
				if purged > 0 {
					log.Printf("session purge: removed %d expired sessions", purged)
				}
			}
		}
	}()
}

func purgeExpired(ctx context.Context, sessions store.Collection[model.Session], now time.Time) (int64, error) {
	return sessions.DeleteMany(ctx, store.Filter{
		Before: map[string]time.Time{"expiresAt": now},
	})
}
