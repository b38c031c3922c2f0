package testutil

import (
	"context"
	"sync"

	"github.com/auraflux/auraflux/internal/resolver"
	"github.com/auraflux/auraflux/internal/types"
)

// MockResolver is a scriptable resolver.Resolver implementation for
// handler tests.
type MockResolver struct {
	mu sync.Mutex

	// Resolution is returned for every call when Err is nil.
	Resolution *types.Resolution
	// Err, when set, is returned for every call.
	Err error

	calls []string
	opts  []resolver.Options
}

var _ resolver.Resolver = (*MockResolver)(nil)

// Resolve records the call and returns the scripted outcome.
func (m *MockResolver) Resolve(_ context.Context, url string, opts resolver.Options) (*types.Resolution, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, url)
	m.opts = append(m.opts, opts)

	if m.Err != nil {
		return nil, m.Err
	}
	return m.Resolution, nil
}

// Calls returns the URLs Resolve was invoked with, in order.
func (m *MockResolver) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

// LastOptions returns the options of the most recent call.
func (m *MockResolver) LastOptions() (resolver.Options, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.opts) == 0 {
		return resolver.Options{}, false
	}
	return m.opts[len(m.opts)-1], true
}

// IntPtr returns a pointer to v, for building raw format fixtures.
func IntPtr(v int) *int { return &v }

// FloatPtr returns a pointer to v.
func FloatPtr(v float64) *float64 { return &v }
