package database

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// ExpireSessions drops every session created before cutoff along with its
// cart and returns how many were removed.
func ExpireSessions(sessions *SessionStore, carts *CartStore, cutoff time.Time) int {
	ids := sessions.Sweep(cutoff)
	for _, id := range ids {
		carts.Delete(id)
	}
	return len(ids)
}

// SweepSessions expires sessions older than maxAge every interval until ctx
// is done. The session cookie carries the same max age.
func SweepSessions(ctx context.Context, sessions *SessionStore, carts *CartStore, maxAge, interval time.Duration, log *zap.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if n := ExpireSessions(sessions, carts, now.Add(-maxAge)); n > 0 {
				log.Info("🧹 expired sessions removed", zap.Int("count", n), zap.Int("remaining", sessions.Len()))
			}
		}
	}
}
