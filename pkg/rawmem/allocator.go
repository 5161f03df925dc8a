package rawmem

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// Allocator hands out and takes back raw [Buffer]s.
//
// Every buffer returned by Allocate must be passed to Release on the same
// allocator exactly once.
type Allocator interface {
	// Allocate reserves size bytes. Errors match [ErrAllocation].
	// The contents of a fresh buffer are unspecified.
	Allocate(size int) (*Buffer, error)

	// Release returns the buffer's memory. The buffer must not be used
	// afterwards.
	Release(b *Buffer) error
}

// Mmap allocates anonymous, private, read-write mappings.
//
// The zero value is ready to use.
type Mmap struct{}

var _ Allocator = Mmap{}

// NewMmap returns an mmap-backed allocator.
func NewMmap() Mmap {
	return Mmap{}
}

// Allocate implements [Allocator].
func (Mmap) Allocate(size int) (*Buffer, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: size must be positive, got %d", ErrAllocation, size)
	}

	data, err := unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANON)
	if err != nil {
		return nil, fmt.Errorf("%w: mmap %d bytes: %w", ErrAllocation, size, err)
	}

	return newBuffer(data, data), nil
}

// Release implements [Allocator].
func (Mmap) Release(b *Buffer) error {
	data, ok := b.backing.([]byte)
	if !ok {
		return fmt.Errorf("%w: not allocated by mmap", ErrUnknownBuffer)
	}

	b.base = nil
	b.backing = nil

	err := unix.Munmap(data)
	if err != nil {
		return fmt.Errorf("munmap: %w", err)
	}

	return nil
}
