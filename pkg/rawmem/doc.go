// Package rawmem provides fixed-size byte buffers that live outside the Go
// heap, together with the unchecked copy and byte accessors used to
// measure raw memory access patterns.
//
// Memory is obtained from an [Allocator]. The allocator is an explicit
// capability: construct one at program start and pass it to whatever
// needs to allocate. Three implementations are provided:
//   - [Mmap]: anonymous private mappings via mmap(2), released with munmap(2)
//   - [Locked]: memguard locked buffers (mlock'd, guard pages on both sides)
//   - [Tracking]: wraps another allocator and records every allocation and
//     release, for tests that must prove buffers were released exactly once
//
// # Basic Usage
//
//	alloc := rawmem.NewMmap()
//
//	src, err := alloc.Allocate(1 << 20)
//	if err != nil {
//	    return err // matches rawmem.ErrAllocation
//	}
//	defer alloc.Release(src)
//
//	src.SetByte(0, 'x')
//	rawmem.Copy(src, 0, dst, 0, src.Len())
//
// # Safety
//
// [Copy], [Buffer.SetByte], [Buffer.ByteAt] and [Buffer.Bytes] perform no
// bounds checking. Out-of-range offsets are undefined behavior, not errors:
// the unchecked access is exactly what a benchmark built on this package
// measures. Using a buffer after it was released, or releasing it twice,
// is likewise undefined.
package rawmem
