// Package testutil holds deterministic helpers shared by tests.
package testutil

import "encoding/binary"

// ByteStream reads bytes sequentially from a byte slice.
//
// Used by fuzz tests to deterministically derive values from fuzz input.
// When the stream is exhausted, all reads return zero values. This ensures
// determinism: the same input always produces the same sequence of values.
type ByteStream struct {
	bytes []byte
	pos   int
}

// NewByteStream creates a stream over the given bytes.
func NewByteStream(b []byte) *ByteStream {
	return &ByteStream{bytes: b}
}

// NextByte returns the next byte, or 0 if exhausted.
func (s *ByteStream) NextByte() byte {
	if s.pos >= len(s.bytes) {
		return 0
	}

	v := s.bytes[s.pos]
	s.pos++

	return v
}

// NextBytes reads n bytes, padding with zeros if exhausted.
func (s *ByteStream) NextBytes(n int) []byte {
	if n <= 0 {
		return []byte{}
	}

	out := make([]byte, n)
	for i := range n {
		out[i] = s.NextByte()
	}

	return out
}

// NextUint16 returns the next two bytes as a little-endian uint16.
func (s *ByteStream) NextUint16() uint16 {
	return binary.LittleEndian.Uint16(s.NextBytes(2))
}

// NextUint64 returns the next eight bytes as a little-endian uint64.
func (s *ByteStream) NextUint64() uint64 {
	return binary.LittleEndian.Uint64(s.NextBytes(8))
}

// NextIntRange returns an int in [lo, hi] derived from the next two bytes.
// Returns lo if hi <= lo.
func (s *ByteStream) NextIntRange(lo, hi int) int {
	if hi <= lo {
		return lo
	}

	return lo + int(s.NextUint16())%(hi-lo+1)
}

// NextASCII returns a string of printable ASCII characters of length n.
func (s *ByteStream) NextASCII(n int) string {
	out := s.NextBytes(n)

	for i := range out {
		out[i] = ' ' + out[i]%95
	}

	return string(out)
}
