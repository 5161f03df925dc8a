// Package chunk splits a byte range into randomly sized contiguous chunks
// and shuffles the order in which they are visited.
//
// A partition of [0, N) is an exact cover: sorted by offset, the chunks
// are contiguous, never overlap and their sizes sum to N. The slice order
// returned by [Partition] is the presentation order, a uniform random
// permutation that is independent of the offsets. Walking the slice touches
// the same bytes as one sequential pass, in a different order.
package chunk

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
)

// Sentinel errors returned by chunk operations.
var (
	// ErrInvalidArgument indicates Partition was called with a length or
	// upper bound it refuses, most notably an upper bound larger than the
	// total length. Partition never clamps silently.
	ErrInvalidArgument = errors.New("chunk: invalid argument")

	// ErrInvalidPartition indicates a chunk list is not an exact cover.
	ErrInvalidPartition = errors.New("chunk: invalid partition")
)

// Chunk is the byte range [Offset, Offset+Size).
type Chunk struct {
	Offset int
	Size   int
}

// End returns the exclusive end offset.
func (c Chunk) End() int {
	return c.Offset + c.Size
}

func (c Chunk) String() string {
	return fmt.Sprintf("[%d,%d)", c.Offset, c.End())
}

// Partition covers [0, totalLength) with chunks whose sizes are drawn
// uniformly from [1, upperBound], then shuffles them.
//
// Sizes are drawn walking left to right; the chunk that reaches the end is
// clamped to whatever remains, so it may be smaller than its draw. The
// result is deterministic for a given rng state.
//
// Returns [ErrInvalidArgument] if totalLength < 1, upperBound < 1 or
// upperBound > totalLength.
func Partition(totalLength, upperBound int, rng *rand.Rand) ([]Chunk, error) {
	if totalLength < 1 {
		return nil, fmt.Errorf("%w: total length must be >= 1, got %d", ErrInvalidArgument, totalLength)
	}

	if upperBound < 1 {
		return nil, fmt.Errorf("%w: upper bound must be >= 1, got %d", ErrInvalidArgument, upperBound)
	}

	if upperBound > totalLength {
		return nil, fmt.Errorf("%w: upper bound %d cannot be larger than total length %d",
			ErrInvalidArgument, upperBound, totalLength)
	}

	// Expected chunk size is about upperBound/2; this is a lower bound
	// on the count, so the slice grows at most a few times.
	chunks := make([]Chunk, 0, totalLength/upperBound+1)

	for cursor := 0; cursor < totalLength; {
		size := min(rng.IntN(upperBound)+1, totalLength-cursor)

		chunks = append(chunks, Chunk{Offset: cursor, Size: size})
		cursor += size
	}

	rng.Shuffle(len(chunks), func(i, j int) {
		chunks[i], chunks[j] = chunks[j], chunks[i]
	})

	return chunks, nil
}

// SortedByOffset returns a copy of chunks in offset order. The input is
// not modified.
func SortedByOffset(chunks []Chunk) []Chunk {
	sorted := slices.Clone(chunks)
	slices.SortFunc(sorted, func(a, b Chunk) int {
		return a.Offset - b.Offset
	})

	return sorted
}

// Validate reports whether chunks, in any order, form an exact cover of
// [0, totalLength) with every size in [1, upperBound].
//
// Returns an error wrapping [ErrInvalidPartition] describing the first
// defect in offset order.
func Validate(chunks []Chunk, totalLength, upperBound int) error {
	sorted := SortedByOffset(chunks)

	cursor := 0

	for _, c := range sorted {
		if c.Size < 1 || c.Size > upperBound {
			return fmt.Errorf("%w: chunk %s has size %d outside [1, %d]", ErrInvalidPartition, c, c.Size, upperBound)
		}

		if c.Offset < cursor {
			return fmt.Errorf("%w: chunk %s overlaps bytes before offset %d", ErrInvalidPartition, c, cursor)
		}

		if c.Offset > cursor {
			return fmt.Errorf("%w: gap [%d,%d) before chunk %s", ErrInvalidPartition, cursor, c.Offset, c)
		}

		cursor = c.End()
	}

	if cursor != totalLength {
		return fmt.Errorf("%w: chunks cover [0,%d), want [0,%d)", ErrInvalidPartition, cursor, totalLength)
	}

	return nil
}
