package shortlink

import (
	"regexp"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"
)

var codePattern = regexp.MustCompile(`^[0-9a-f]{6}$`)

func newTestStore(capacity int, ttl time.Duration) *Store {
	return New(capacity, ttl, zap.NewNop())
}

func TestIssueResolveRoundtrip(t *testing.T) {
	s := newTestStore(10, 0)

	code, err := s.Issue("https://cdn.example.com/v.mp4", "clip_720p.mp4")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	if !codePattern.MatchString(code) {
		t.Fatalf("Issue() code = %q, want 6 lowercase hex chars", code)
	}

	entry, ok := s.Resolve(code)
	if !ok {
		t.Fatalf("Resolve(%q) ok = false, want true", code)
	}
	if entry.OriginURL != "https://cdn.example.com/v.mp4" {
		t.Errorf("entry.OriginURL = %q", entry.OriginURL)
	}
	if entry.Filename != "clip_720p.mp4" {
		t.Errorf("entry.Filename = %q", entry.Filename)
	}
	if entry.Code != code {
		t.Errorf("entry.Code = %q, want %q", entry.Code, code)
	}
}

func TestResolveUnknownCode(t *testing.T) {
	s := newTestStore(10, 0)

	if _, ok := s.Resolve("abc123"); ok {
		t.Fatal("Resolve() ok = true for a code that was never issued")
	}
}

func TestIssueMintsDistinctCodes(t *testing.T) {
	s := newTestStore(100, 0)

	seen := make(map[string]struct{})
	for i := 0; i < 50; i++ {
		code, err := s.Issue("https://origin.example/a", "a.mp4")
		if err != nil {
			t.Fatalf("Issue() error = %v", err)
		}
		if _, dup := seen[code]; dup {
			t.Fatalf("Issue() returned duplicate code %q", code)
		}
		seen[code] = struct{}{}
	}
}

func TestCapacityEvictsOldestFirst(t *testing.T) {
	s := newTestStore(3, 0)

	first, _ := s.Issue("https://origin.example/1", "1.mp4")
	second, _ := s.Issue("https://origin.example/2", "2.mp4")
	third, _ := s.Issue("https://origin.example/3", "3.mp4")

	// Fourth entry pushes the store past capacity; the oldest goes.
	fourth, err := s.Issue("https://origin.example/4", "4.mp4")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	if _, ok := s.Resolve(first); ok {
		t.Error("oldest entry still resolvable after eviction")
	}
	for _, code := range []string{second, third, fourth} {
		if _, ok := s.Resolve(code); !ok {
			t.Errorf("Resolve(%q) ok = false, want true", code)
		}
	}

	if got := s.Len(); got != 3 {
		t.Errorf("Len() = %d, want 3", got)
	}
	if stats := s.Snapshot(); stats.Evicted != 1 {
		t.Errorf("Snapshot().Evicted = %d, want 1", stats.Evicted)
	}
}

func TestExpiredEntryNotResolvable(t *testing.T) {
	s := newTestStore(10, 20*time.Millisecond)

	code, err := s.Issue("https://origin.example/v", "v.mp4")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	if _, ok := s.Resolve(code); !ok {
		t.Fatal("fresh entry not resolvable")
	}

	time.Sleep(40 * time.Millisecond)

	if _, ok := s.Resolve(code); ok {
		t.Fatal("expired entry still resolvable")
	}
}

func TestSweepReclaimsExpiredEntries(t *testing.T) {
	s := newTestStore(10, 20*time.Millisecond)

	for i := 0; i < 4; i++ {
		if _, err := s.Issue("https://origin.example/v", "v.mp4"); err != nil {
			t.Fatalf("Issue() error = %v", err)
		}
	}

	time.Sleep(40 * time.Millisecond)
	s.sweep()

	if got := s.Len(); got != 0 {
		t.Errorf("Len() after sweep = %d, want 0", got)
	}
	if stats := s.Snapshot(); stats.Expired != 4 {
		t.Errorf("Snapshot().Expired = %d, want 4", stats.Expired)
	}
}

func TestConcurrentIssueAndResolve(t *testing.T) {
	s := newTestStore(1000, 0)

	var wg sync.WaitGroup
	codes := make(chan string, 200)

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 10; j++ {
				code, err := s.Issue("https://origin.example/v", "v.mp4")
				if err != nil {
					t.Errorf("Issue() error = %v", err)
					return
				}
				codes <- code
			}
		}()
	}

	wg.Wait()
	close(codes)

	for code := range codes {
		if _, ok := s.Resolve(code); !ok {
			t.Errorf("Resolve(%q) ok = false after concurrent issue", code)
		}
	}

	if stats := s.Snapshot(); stats.Issued != 200 {
		t.Errorf("Snapshot().Issued = %d, want 200", stats.Issued)
	}
}
