// Package shortlink implements the in-memory store mapping opaque short
// codes to origin media URLs. Entries are minted during format
// classification and redeemed by the download proxy. The store is
// bounded: oldest-issued entries are evicted at capacity and a janitor
// removes expired entries, so memory stays flat no matter how long the
// process runs.
package shortlink

import (
	"encoding/hex"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CodeLength is the number of lowercase hex characters in a short code.
const CodeLength = 6

// maxIssueAttempts bounds collision retries before Issue gives up.
const maxIssueAttempts = 8

// ErrCodeSpaceExhausted is returned when a free code could not be found
// within maxIssueAttempts. With 16^6 possible codes and a bounded store
// this indicates the store is effectively full.
var ErrCodeSpaceExhausted = errors.New("short code space exhausted")

// Entry maps a short code to the origin URL and the filename suggested
// to the downloading client.
type Entry struct {
	Code      string
	OriginURL string
	Filename  string
	IssuedAt  time.Time
}

// Stats is a point-in-time snapshot of store counters.
type Stats struct {
	Entries int   `json:"entries"`
	Issued  int64 `json:"issued"`
	Evicted int64 `json:"evicted"`
	Expired int64 `json:"expired"`
}

// Store is a bounded, concurrency-safe code→entry map.
type Store struct {
	mu      sync.RWMutex
	entries map[string]*Entry
	order   []string // codes in issuance order, oldest first
	cap     int
	ttl     time.Duration

	issued  int64
	evicted int64
	expired int64

	logger *zap.Logger

	janitorStop chan struct{}
	janitorOnce sync.Once
}

// New creates a store holding at most capacity entries. A ttl of zero
// disables expiry.
func New(capacity int, ttl time.Duration, logger *zap.Logger) *Store {
	if capacity < 1 {
		capacity = 1
	}
	return &Store{
		entries:     make(map[string]*Entry, capacity),
		order:       make([]string, 0, capacity),
		cap:         capacity,
		ttl:         ttl,
		logger:      logger,
		janitorStop: make(chan struct{}),
	}
}

// Issue stores a new entry for originURL under a freshly generated code
// and returns the code. Codes are checked for collisions and retried a
// bounded number of times; a colliding code never overwrites an
// existing entry.
func (s *Store) Issue(originURL, filename string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for attempt := 0; attempt < maxIssueAttempts; attempt++ {
		code := newCode()
		if _, taken := s.entries[code]; taken {
			s.logger.Warn("short code collision, regenerating",
				zap.String("code", code),
				zap.Int("attempt", attempt+1),
			)
			continue
		}

		if len(s.entries) >= s.cap {
			s.evictOldestLocked()
		}

		s.entries[code] = &Entry{
			Code:      code,
			OriginURL: originURL,
			Filename:  filename,
			IssuedAt:  time.Now(),
		}
		s.order = append(s.order, code)
		s.issued++
		return code, nil
	}

	return "", ErrCodeSpaceExhausted
}

// Resolve looks up a code. The boolean is false for codes that were
// never issued, were evicted, or have expired.
func (s *Store) Resolve(code string) (Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entries[code]
	if !ok {
		return Entry{}, false
	}
	if s.ttl > 0 && time.Since(e.IssuedAt) > s.ttl {
		// Expired but not yet swept. Report not-found; the janitor
		// will reclaim the slot.
		return Entry{}, false
	}
	return *e, true
}

// Len returns the number of live entries.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Snapshot returns current store counters.
func (s *Store) Snapshot() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Stats{
		Entries: len(s.entries),
		Issued:  s.issued,
		Evicted: s.evicted,
		Expired: s.expired,
	}
}

// evictOldestLocked drops the least-recently-issued live entry. Caller
// holds the write lock.
func (s *Store) evictOldestLocked() {
	for len(s.order) > 0 {
		code := s.order[0]
		s.order = s.order[1:]
		if _, ok := s.entries[code]; ok {
			delete(s.entries, code)
			s.evicted++
			s.logger.Debug("evicted short link", zap.String("code", code))
			return
		}
		// Stale order slot for an already-expired entry, keep scanning.
	}
}

// newCode derives a short code from a random UUID: first CodeLength
// characters of its lowercase hex form.
func newCode() string {
	u := uuid.New()
	return hex.EncodeToString(u[:])[:CodeLength]
}
