package cli

import (
	"io"

	"github.com/calvinalkan/memcopy-bench/internal/bench"
	"github.com/calvinalkan/memcopy-bench/pkg/rawmem"
)

// Export internal functions for testing.
// This file is only compiled during tests.

// RunWithForTesting runs the command with the given allocator and config
// instead of the fixed ones.
func RunWithForTesting(out, errOut io.Writer, args []string, alloc rawmem.Allocator, cfg bench.Config) int {
	return run(out, errOut, args, alloc, cfg)
}
