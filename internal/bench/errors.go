package bench

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the runner. Allocation and partition
// failures are reported with rawmem.ErrAllocation and
// chunk.ErrInvalidArgument respectively.
var (
	// ErrVerification indicates the destination did not hold the payload
	// written to the source after a copy.
	ErrVerification = errors.New("bench: verification failed")

	// ErrInvalidConfig indicates a [Config] field is out of range.
	ErrInvalidConfig = errors.New("bench: invalid config")
)

// excerptRadius is how many bytes around the first mismatch a
// [VerificationError] shows on each side.
const excerptRadius = 16

// VerificationError describes the first byte at which the destination
// differs from the expected payload.
//
// errors.Is(err, ErrVerification) reports true for it.
type VerificationError struct {
	Phase  Phase
	Offset int    // first mismatching offset
	Start  int    // offset of the excerpts below
	Want   string // expected bytes around Offset
	Got    string // actual bytes around Offset
}

func (e *VerificationError) Error() string {
	return fmt.Sprintf("%s phase: destination differs from payload at offset %d: expected=%q, got=%q (from offset %d)",
		e.Phase, e.Offset, e.Want, e.Got, e.Start)
}

// Is reports whether target is [ErrVerification].
func (e *VerificationError) Is(target error) bool {
	return target == ErrVerification
}

// verify compares got against want and returns a *VerificationError for
// the first difference, or nil if they are equal.
func verify(phase Phase, want, got string) error {
	if want == got {
		return nil
	}

	offset := 0
	for offset < len(want) && offset < len(got) && want[offset] == got[offset] {
		offset++
	}

	start := max(0, offset-excerptRadius)

	return &VerificationError{
		Phase:  phase,
		Offset: offset,
		Start:  start,
		Want:   want[start:min(len(want), offset+excerptRadius)],
		Got:    got[start:min(len(got), offset+excerptRadius)],
	}
}
