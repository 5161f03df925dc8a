// Package content writes text payloads into raw buffers one byte per
// character and reads them back, so a copy can be verified against the
// text that was written.
//
// The encoding is deliberately narrow: every character keeps only its low
// eight bits. Text made of single-byte characters (ASCII, which is all
// [RandomText] produces) round-trips exactly; anything wider is truncated.
package content

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/calvinalkan/memcopy-bench/pkg/rawmem"
)

// uuidStringLength is the length of a UUID in its canonical
// xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx form.
const uuidStringLength = 36

// EncodeNarrow writes text into b starting at offset 0, one character per
// byte slot, truncating each character to its low byte. Returns the number
// of slots written.
//
// Characters are runes; invalid UTF-8 bytes are written as U+FFFD
// truncated, i.e. 0xFD. The caller guarantees b holds at least that many
// bytes.
func EncodeNarrow(b *rawmem.Buffer, text string) int {
	offset := 0

	for _, r := range text {
		b.SetByte(offset, byte(r))
		offset++
	}

	return offset
}

// Decode reads length byte slots from the start of b into a string whose
// byte length is length. The string owns a copy of the bytes.
//
// Each slot becomes one byte of the string, not one rune. Only ASCII text
// survives EncodeNarrow followed by Decode: a U+0080..U+00FF character is
// stored as its single byte and comes back as that raw byte, which is not
// valid UTF-8, and wider characters have already lost their high bits.
func Decode(b *rawmem.Buffer, length int) string {
	return string(b.Bytes(0, length))
}

// RandomText returns exactly length characters cut from a run of random
// (version 4) UUID strings. Two calls collide with negligible probability.
func RandomText(length int) (string, error) {
	if length < 0 {
		return "", fmt.Errorf("random text length must be >= 0, got %d", length)
	}

	var sb strings.Builder

	sb.Grow(length + uuidStringLength)

	for sb.Len() < length {
		id, err := uuid.NewRandom()
		if err != nil {
			return "", fmt.Errorf("generate uuid: %w", err)
		}

		sb.WriteString(id.String())
	}

	return sb.String()[:length], nil
}
