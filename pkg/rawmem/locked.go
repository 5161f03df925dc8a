package rawmem

import (
	"fmt"
	"sync"

	"github.com/awnumar/memguard"
	"golang.org/x/sys/unix"
)

// memguardReservedPages covers the locked pages memguard keeps for its own
// key material, which count against RLIMIT_MEMLOCK alongside our buffers.
const memguardReservedPages = 4

// lockedBytes is the number of bytes currently mlock'd by [Locked] buffers
// in this process. RLIMIT_MEMLOCK is per process, so the count is too.
var lockedBytes struct {
	mu sync.Mutex
	n  uint64
}

// Locked allocates memguard locked buffers: the data pages are mlock'd so
// they cannot be swapped out during a measurement, and are surrounded by
// inaccessible guard pages.
//
// Locked memory counts against RLIMIT_MEMLOCK. Use [MemlockLimit] to find
// out how much is available. The zero value is ready to use.
//
// When memguard itself fails to map or lock memory it purges: every live
// memguard buffer in the process is wiped and unmapped, and any [Buffer]
// still pointing at one faults on the next access. Allocate therefore
// refuses, without calling memguard, any request that would take the
// bytes locked by Locked buffers in this process past the limit. Memory
// locked by other means in the same process is not counted.
type Locked struct{}

var _ Allocator = Locked{}

// NewLocked returns a memguard-backed allocator.
func NewLocked() Locked {
	return Locked{}
}

// Allocate implements [Allocator].
func (Locked) Allocate(size int) (b *Buffer, err error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: size must be positive, got %d", ErrAllocation, size)
	}

	limit, unlimited, err := MemlockLimit()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAllocation, err)
	}

	need := lockedSize(size)

	lockedBytes.mu.Lock()
	defer lockedBytes.mu.Unlock()

	if !unlimited {
		reserved := uint64(memguardReservedPages * unix.Getpagesize())
		if lockedBytes.n+need+reserved > limit {
			return nil, fmt.Errorf("%w: %d bytes (%d locked) with %d already locked exceeds RLIMIT_MEMLOCK of %d bytes",
				ErrAllocation, size, need, lockedBytes.n, limit)
		}
	}

	// memguard panics when mmap or mlock fails. The purge has already
	// happened by then; see the Locked doc.
	defer func() {
		if r := recover(); r != nil {
			b = nil
			err = fmt.Errorf("%w: memguard: %v", ErrAllocation, r)
		}
	}()

	locked := memguard.NewBuffer(size)
	if !locked.IsAlive() {
		return nil, fmt.Errorf("%w: memguard returned a null buffer for %d bytes", ErrAllocation, size)
	}

	lockedBytes.n += need

	return newBuffer(locked.Bytes(), locked), nil
}

// Release implements [Allocator]. The contents are wiped before the pages
// are unlocked and unmapped.
func (Locked) Release(b *Buffer) error {
	locked, ok := b.backing.(*memguard.LockedBuffer)
	if !ok {
		return fmt.Errorf("%w: not allocated by memguard", ErrUnknownBuffer)
	}

	need := lockedSize(b.size)

	b.base = nil
	b.backing = nil

	locked.Destroy()

	lockedBytes.mu.Lock()
	lockedBytes.n -= min(need, lockedBytes.n)
	lockedBytes.mu.Unlock()

	return nil
}

// LockedBytes returns how many bytes [Locked] buffers currently hold
// mlock'd in this process, rounded up to whole pages per buffer.
func LockedBytes() uint64 {
	lockedBytes.mu.Lock()
	defer lockedBytes.mu.Unlock()

	return lockedBytes.n
}

// lockedSize is the number of bytes memguard mlocks for a buffer of size
// bytes: the data region rounded up to whole pages.
func lockedSize(size int) uint64 {
	page := unix.Getpagesize()

	return uint64((size + page - 1) / page * page)
}

// MemlockLimit returns the soft RLIMIT_MEMLOCK of the current process in
// bytes. unlimited is true when no limit applies.
func MemlockLimit() (limit uint64, unlimited bool, err error) {
	var rlimit unix.Rlimit

	err = unix.Getrlimit(unix.RLIMIT_MEMLOCK, &rlimit)
	if err != nil {
		return 0, false, fmt.Errorf("getrlimit(RLIMIT_MEMLOCK): %w", err)
	}

	if rlimit.Cur == unix.RLIM_INFINITY {
		return 0, true, nil
	}

	return rlimit.Cur, false, nil
}
