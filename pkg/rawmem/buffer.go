package rawmem

import (
	"sync/atomic"
	"unsafe"
)

// Buffer is a fixed-size region of memory that the garbage collector
// neither sees nor moves.
//
// A Buffer is exclusively owned by whoever allocated it until it is handed
// back to the same [Allocator] via Release. It must not be copied by value.
type Buffer struct {
	base unsafe.Pointer
	size int

	// backing is allocator-specific state needed to release the region.
	backing any
}

// Len returns the size of the buffer in bytes.
func (b *Buffer) Len() int {
	return b.size
}

// Addr returns the base address of the buffer.
//
// The value is for diagnostics only; it must not be converted back into a
// pointer.
func (b *Buffer) Addr() uintptr {
	return uintptr(b.base)
}

// SetByte stores v at offset. No bounds checking.
func (b *Buffer) SetByte(offset int, v byte) {
	*(*byte)(unsafe.Add(b.base, offset)) = v
}

// ByteAt loads the byte at offset. No bounds checking.
func (b *Buffer) ByteAt(offset int) byte {
	return *(*byte)(unsafe.Add(b.base, offset))
}

// Bytes returns a slice aliasing [offset, offset+length) of the buffer.
//
// The slice points directly into the raw region. Do not hold it beyond the
// lifetime of the Buffer. No bounds checking beyond length >= 0.
func (b *Buffer) Bytes(offset, length int) []byte {
	return unsafe.Slice((*byte)(unsafe.Add(b.base, offset)), length)
}

// Copy copies length bytes from src at srcOffset to dst at dstOffset.
//
// The caller guarantees both ranges are in bounds. Overlapping ranges
// within the same buffer behave like memmove.
func Copy(src *Buffer, srcOffset int, dst *Buffer, dstOffset int, length int) {
	copy(
		unsafe.Slice((*byte)(unsafe.Add(dst.base, dstOffset)), length),
		unsafe.Slice((*byte)(unsafe.Add(src.base, srcOffset)), length),
	)
}

// fenceWord is the target of [Fence]'s read-modify-write. Its value is
// meaningless.
var fenceWord atomic.Uint64

// Fence is a full memory barrier for the calling goroutine.
//
// Go's sync/atomic operations are sequentially consistent: neither the
// compiler nor the CPU moves loads or stores across them. Fence is not a
// synchronization point between goroutines.
func Fence() {
	fenceWord.Add(1)
}

func newBuffer(data []byte, backing any) *Buffer {
	return &Buffer{
		base:    unsafe.Pointer(unsafe.SliceData(data)),
		size:    len(data),
		backing: backing,
	}
}
