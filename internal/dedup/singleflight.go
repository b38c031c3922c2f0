// Package dedup coalesces concurrent resolutions of the same source
// URL: only one resolver invocation runs per URL at a time, and every
// concurrent caller shares its result.
package dedup

import (
	"sync"
	"sync/atomic"

	"github.com/auraflux/auraflux/internal/types"
)

// Singleflight deduplicates in-flight resolutions by key.
type Singleflight struct {
	mu    sync.Mutex
	calls map[string]*call

	coalesced atomic.Uint64
}

// call represents an in-flight or completed resolution
type call struct {
	wg  sync.WaitGroup
	res *types.Resolution
	err error
}

// Result is the outcome of a Do call. Shared is true when the caller
// received a result produced by another goroutine's invocation.
type Result struct {
	Res    *types.Resolution
	Err    error
	Shared bool
}

// NewSingleflight creates a new Singleflight instance
func NewSingleflight() *Singleflight {
	return &Singleflight{
		calls: make(map[string]*call),
	}
}

// Do executes fn, ensuring only one execution is in flight for key at a
// time. Duplicate callers wait for the original and share its result.
func (sf *Singleflight) Do(key string, fn func() (*types.Resolution, error)) Result {
	sf.mu.Lock()

	if c, ok := sf.calls[key]; ok {
		sf.mu.Unlock()
		c.wg.Wait()
		sf.coalesced.Add(1)
		return Result{Res: c.res, Err: c.err, Shared: true}
	}

	c := &call{}
	c.wg.Add(1)
	sf.calls[key] = c
	sf.mu.Unlock()

	c.res, c.err = fn()
	c.wg.Done()

	sf.mu.Lock()
	delete(sf.calls, key)
	sf.mu.Unlock()

	return Result{Res: c.res, Err: c.err}
}

// Stats returns deduplication counters for the metrics endpoint.
func (sf *Singleflight) Stats() map[string]interface{} {
	sf.mu.Lock()
	inFlight := len(sf.calls)
	sf.mu.Unlock()

	return map[string]interface{}{
		"in_flight":          inFlight,
		"coalesced_requests": sf.coalesced.Load(),
	}
}
