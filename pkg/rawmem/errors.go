package rawmem

import "errors"

// Sentinel errors returned by rawmem operations.
//
// Callers should use [errors.Is] to check error types:
//
//	if errors.Is(err, rawmem.ErrAllocation) {
//	    // nothing was allocated for this call
//	}
var (
	// ErrAllocation indicates the allocator could not reserve the requested
	// memory. No buffer is returned and nothing needs to be released.
	//
	// From [Locked], an error carrying a "memguard:" detail means memguard
	// failed internally and purged: every live [Locked] buffer in
	// the process is gone and must not be touched again. Limit refusals
	// happen before memguard is called and leave live buffers intact.
	ErrAllocation = errors.New("rawmem: allocation failed")

	// ErrDoubleRelease indicates a buffer was released more than once.
	//
	// Only [Tracking] detects this; the raw allocators treat it as
	// undefined behavior. This is a programming error.
	ErrDoubleRelease = errors.New("rawmem: buffer released twice")

	// ErrUnknownBuffer indicates a buffer was released to an allocator
	// that never handed it out.
	//
	// Only [Tracking] detects this. This is a programming error.
	ErrUnknownBuffer = errors.New("rawmem: unknown buffer")
)
