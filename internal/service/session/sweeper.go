package session

import (
	"context"
	"log"
	"time"

	model "github.com/trainloop/fitcoach/internal/model/session"
)

// StartSweeper runs a background goroutine that periodically ends sessions
// idle past the store TTL. It returns immediately; the goroutine exits when
// ctx is canceled. A zero TTL makes this a no-op.
func (s *Store) StartSweeper(ctx context.Context, interval time.Duration) {
	if s.ttl <= 0 {
		return
	}
	if interval <= 0 {
		interval = time.Minute
	}

	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		log.Printf("[session] sweeper started interval=%s ttl=%s", interval, s.ttl)

		for {
			select {
			case <-ctx.Done():
				log.Printf("[session] sweeper stopped")
				return
			case <-ticker.C:
				if n := s.sweep(time.Now().UTC()); n > 0 {
					log.Printf("[session] swept %d idle session(s)", n)
				}
			}
		}
	}()
}

// sweep removes sessions whose last activity is older than the TTL and
// reports how many it ended.
func (s *Store) sweep(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	swept := 0
	for id, sess := range s.sessions {
		if now.Sub(lastActivity(sess)) > s.ttl {
			delete(s.sessions, id)
			swept++
		}
	}
	return swept
}

func lastActivity(sess *model.Session) time.Time {
	if n := len(sess.Transcript); n > 0 {
		return sess.Transcript[n-1].Timestamp
	}
	return sess.StartTime
}
