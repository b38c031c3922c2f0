package shortlink

import (
	"time"

	"go.uber.org/zap"
)

// StartJanitor launches a background sweep that removes expired entries
// every interval. It is a no-op when the store has no TTL.
func (s *Store) StartJanitor(interval time.Duration) {
	if s.ttl <= 0 || interval <= 0 {
		return
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				removed := s.sweep()
				if removed > 0 {
					s.logger.Info("swept expired short links",
						zap.Int("removed", removed),
						zap.Int("remaining", s.Len()),
					)
				}
			case <-s.janitorStop:
				return
			}
		}
	}()
}

// Close stops the janitor. Safe to call multiple times.
func (s *Store) Close() {
	s.janitorOnce.Do(func() {
		close(s.janitorStop)
	})
}

// sweep removes all expired entries and returns how many were dropped.
func (s *Store) sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	removed := 0

	live := s.order[:0]
	for _, code := range s.order {
		e, ok := s.entries[code]
		if !ok {
			continue // evicted earlier
		}
		if now.Sub(e.IssuedAt) > s.ttl {
			delete(s.entries, code)
			s.expired++
			removed++
			continue
		}
		live = append(live, code)
	}
	s.order = live

	return removed
}
