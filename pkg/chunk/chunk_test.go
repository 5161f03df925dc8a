package chunk_test

import (
	"math/rand/v2"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calvinalkan/memcopy-bench/internal/testutil"
	"github.com/calvinalkan/memcopy-bench/pkg/chunk"
)

func newRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func Test_Partition_Covers_Range_Exactly_When_Arguments_Valid(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name        string
		totalLength int
		upperBound  int
	}{
		{name: "SingleByte", totalLength: 1, upperBound: 1},
		{name: "UnitChunks", totalLength: 100, upperBound: 1},
		{name: "BoundEqualsLength", totalLength: 64, upperBound: 64},
		{name: "Scenario", totalLength: 1024, upperBound: 16},
		{name: "OddLength", totalLength: 997, upperBound: 13},
		{name: "Default", totalLength: 1 << 20, upperBound: 1 << 5},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			chunks, err := chunk.Partition(testCase.totalLength, testCase.upperBound, newRand(42))
			require.NoError(t, err)

			require.NoError(t, chunk.Validate(chunks, testCase.totalLength, testCase.upperBound))

			sum := 0
			for _, c := range chunks {
				sum += c.Size
			}

			assert.Equal(t, testCase.totalLength, sum, "chunk sizes should sum to total length")
		})
	}
}

func Test_Partition_Returns_ErrInvalidArgument_When_Arguments_Invalid(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name        string
		totalLength int
		upperBound  int
	}{
		{name: "BoundExceedsLength", totalLength: 1024, upperBound: 2000},
		{name: "BoundOneOver", totalLength: 10, upperBound: 11},
		{name: "ZeroBound", totalLength: 10, upperBound: 0},
		{name: "NegativeBound", totalLength: 10, upperBound: -3},
		{name: "ZeroLength", totalLength: 0, upperBound: 0},
		{name: "NegativeLength", totalLength: -1, upperBound: 1},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			chunks, err := chunk.Partition(testCase.totalLength, testCase.upperBound, newRand(1))
			require.ErrorIs(t, err, chunk.ErrInvalidArgument)
			assert.Nil(t, chunks, "rejected partition should not return chunks")
		})
	}
}

func Test_Partition_Error_Names_Offending_Values(t *testing.T) {
	t.Parallel()

	_, err := chunk.Partition(1024, 2000, newRand(1))
	require.Error(t, err)

	assert.Contains(t, err.Error(), "2000")
	assert.Contains(t, err.Error(), "1024")
}

func Test_Partition_Is_Deterministic_For_Same_Seed(t *testing.T) {
	t.Parallel()

	first, err := chunk.Partition(4096, 32, newRand(7))
	require.NoError(t, err)

	second, err := chunk.Partition(4096, 32, newRand(7))
	require.NoError(t, err)

	assert.Empty(t, cmp.Diff(first, second), "same seed should produce the same partition")

	other, err := chunk.Partition(4096, 32, newRand(8))
	require.NoError(t, err)

	assert.NotEmpty(t, cmp.Diff(first, other), "different seeds should produce different partitions")
}

func Test_Partition_Presentation_Order_Differs_From_Offset_Order(t *testing.T) {
	t.Parallel()

	chunks, err := chunk.Partition(1024, 16, newRand(3))
	require.NoError(t, err)
	require.Greater(t, len(chunks), 2)

	sorted := chunk.SortedByOffset(chunks)
	assert.NotEmpty(t, cmp.Diff(sorted, chunks), "presentation order should be shuffled")
}

func Test_Partition_Clamps_Only_The_Final_Chunk(t *testing.T) {
	t.Parallel()

	chunks, err := chunk.Partition(1000, 7, newRand(11))
	require.NoError(t, err)

	sorted := chunk.SortedByOffset(chunks)
	last := sorted[len(sorted)-1]

	assert.Equal(t, 1000, last.End(), "last chunk in offset order should end at the total length")
	assert.LessOrEqual(t, last.Size, 7)
}

func Test_SortedByOffset_Does_Not_Modify_Input(t *testing.T) {
	t.Parallel()

	chunks := []chunk.Chunk{{Offset: 4, Size: 2}, {Offset: 0, Size: 4}}
	original := append([]chunk.Chunk(nil), chunks...)

	sorted := chunk.SortedByOffset(chunks)

	assert.Empty(t, cmp.Diff(original, chunks))
	assert.Empty(t, cmp.Diff([]chunk.Chunk{{Offset: 0, Size: 4}, {Offset: 4, Size: 2}}, sorted))
}

func Test_Validate_Returns_ErrInvalidPartition_When_Cover_Broken(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name   string
		chunks []chunk.Chunk
	}{
		{name: "Gap", chunks: []chunk.Chunk{{Offset: 0, Size: 4}, {Offset: 5, Size: 5}}},
		{name: "Overlap", chunks: []chunk.Chunk{{Offset: 0, Size: 6}, {Offset: 5, Size: 5}}},
		{name: "Short", chunks: []chunk.Chunk{{Offset: 0, Size: 4}, {Offset: 4, Size: 4}}},
		{name: "Long", chunks: []chunk.Chunk{{Offset: 0, Size: 6}, {Offset: 6, Size: 6}}},
		{name: "ZeroSize", chunks: []chunk.Chunk{{Offset: 0, Size: 0}, {Offset: 0, Size: 10}}},
		{name: "OverBound", chunks: []chunk.Chunk{{Offset: 0, Size: 10}}},
		{name: "Empty", chunks: nil},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			err := chunk.Validate(testCase.chunks, 10, 6)
			require.ErrorIs(t, err, chunk.ErrInvalidPartition)
		})
	}
}

// -----------------------------------------------------------------------------
// FuzzPartition_ExactCover
//
// Property: for every totalLength >= 1 and upperBound in [1, totalLength],
// the partition is an exact cover with every size in [1, upperBound];
// every upperBound > totalLength is rejected.
// -----------------------------------------------------------------------------

func FuzzPartition_ExactCover(f *testing.F) {
	f.Add([]byte{0x00, 0x04, 0x10, 0x00, 1, 2, 3, 4, 5, 6, 7, 8})
	f.Add([]byte{0x01, 0x00, 0x01, 0x00})
	f.Add([]byte{0xff, 0xff, 0xff, 0xff, 0xff})
	f.Add([]byte{})

	f.Fuzz(func(t *testing.T, data []byte) {
		stream := testutil.NewByteStream(data)

		totalLength := stream.NextIntRange(1, 1<<14)
		upperBound := stream.NextIntRange(1, totalLength+8)
		seed := stream.NextUint64()

		chunks, err := chunk.Partition(totalLength, upperBound, newRand(seed))

		if upperBound > totalLength {
			if err == nil {
				t.Fatalf("Partition(%d, %d) should fail", totalLength, upperBound)
			}

			return
		}

		if err != nil {
			t.Fatalf("Partition(%d, %d): %v", totalLength, upperBound, err)
		}

		if err := chunk.Validate(chunks, totalLength, upperBound); err != nil {
			t.Fatalf("Partition(%d, %d) seed=%d: %v", totalLength, upperBound, seed, err)
		}
	})
}
