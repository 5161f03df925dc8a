package bench

import "github.com/calvinalkan/memcopy-bench/pkg/rawmem"

// Export internal hooks for testing.
// This file is only compiled during tests.

// SetAfterCopyForTesting installs fn to run between each phase's copy and
// its verification, with the destination buffer.
func (r *Runner) SetAfterCopyForTesting(fn func(Phase, *rawmem.Buffer)) {
	r.afterCopy = fn
}
