package rawmem

import (
	"fmt"
	"sync"
)

// TrackingStats is a snapshot of a [Tracking] allocator's counters.
type TrackingStats struct {
	Allocations    int // successful Allocate calls
	Failures       int // Allocate calls that returned an error
	Releases       int // successful Release calls
	DoubleReleases int // Release calls for a buffer already released
	Live           int // buffers allocated and not yet released
}

// Tracking wraps an [Allocator] and records every allocation and release.
//
// It turns the single-release discipline into something a test can assert:
// a second Release of the same buffer returns [ErrDoubleRelease] without
// reaching the wrapped allocator, and a buffer the wrapped allocator never
// produced returns [ErrUnknownBuffer]. It can also inject an allocation
// failure with [Tracking.FailAllocation].
//
// Tracking is safe for concurrent use.
type Tracking struct {
	inner Allocator

	mu       sync.Mutex
	calls    int
	failOn   int
	live     map[*Buffer]struct{}
	released map[*Buffer]struct{}
	stats    TrackingStats
}

var _ Allocator = (*Tracking)(nil)

// NewTracking wraps inner.
func NewTracking(inner Allocator) *Tracking {
	return &Tracking{
		inner:    inner,
		live:     make(map[*Buffer]struct{}),
		released: make(map[*Buffer]struct{}),
	}
}

// FailAllocation makes the n-th Allocate call (1-based, counted from the
// creation of t) fail with [ErrAllocation] without reaching the wrapped
// allocator. n <= 0 disables injection.
func (t *Tracking) FailAllocation(n int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.failOn = n
}

// Allocate implements [Allocator].
func (t *Tracking) Allocate(size int) (*Buffer, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.calls++

	if t.failOn > 0 && t.calls == t.failOn {
		t.stats.Failures++

		return nil, fmt.Errorf("%w: injected failure on allocation %d (%d bytes)", ErrAllocation, t.calls, size)
	}

	b, err := t.inner.Allocate(size)
	if err != nil {
		t.stats.Failures++

		return nil, err
	}

	t.live[b] = struct{}{}
	t.stats.Allocations++

	return b, nil
}

// Release implements [Allocator].
func (t *Tracking) Release(b *Buffer) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.live[b]; !ok {
		if _, ok := t.released[b]; ok {
			t.stats.DoubleReleases++

			return ErrDoubleRelease
		}

		return ErrUnknownBuffer
	}

	delete(t.live, b)
	t.released[b] = struct{}{}
	t.stats.Releases++

	return t.inner.Release(b)
}

// Stats returns a snapshot of the counters.
func (t *Tracking) Stats() TrackingStats {
	t.mu.Lock()
	defer t.mu.Unlock()

	stats := t.stats
	stats.Live = len(t.live)

	return stats
}
