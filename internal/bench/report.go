package bench

import (
	"fmt"
	"time"
)

// Result holds the measured durations of one run.
type Result struct {
	Sequential time.Duration
	Random     time.Duration

	// Chunks is the number of copies the random phase performed.
	Chunks int
}

// FormatReport renders r as the single report line, durations in whole
// milliseconds.
func FormatReport(r Result) string {
	return fmt.Sprintf("sequentialAccessCopyTime = %d, randomAccessCopyTime = %d",
		r.Sequential.Milliseconds(), r.Random.Milliseconds())
}
