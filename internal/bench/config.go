package bench

import "fmt"

// maxTotalLength is a guardrail, not a RAM limit: larger buffers are
// outside what this harness claims to measure.
const maxTotalLength int64 = 1 << 34 // 16 GiB

// Config describes one benchmark run.
type Config struct {
	// TotalLength is the size in bytes of the source and destination
	// buffers. Must be in [1, 16 GiB].
	TotalLength int

	// MaxChunkSize is the upper bound for chunk sizes in the random phase.
	// Must be in [1, TotalLength]; out-of-range values are rejected by the
	// partitioner with chunk.ErrInvalidArgument before anything is
	// allocated.
	MaxChunkSize int

	// VerifyWrites decodes the destination after each phase and compares
	// it with the payload written to the source.
	VerifyWrites bool
}

// DefaultConfig returns the fixed configuration the command runs with.
func DefaultConfig() Config {
	return Config{
		TotalLength:  1 << 20,
		MaxChunkSize: 1 << 5,
		VerifyWrites: true,
	}
}

// Validate checks the fields that are not the partitioner's business.
func (c Config) Validate() error {
	if c.TotalLength < 1 {
		return fmt.Errorf("%w: total length must be >= 1, got %d", ErrInvalidConfig, c.TotalLength)
	}

	if int64(c.TotalLength) > maxTotalLength {
		return fmt.Errorf("%w: total length %d exceeds max %d", ErrInvalidConfig, c.TotalLength, maxTotalLength)
	}

	return nil
}
