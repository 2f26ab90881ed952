// Package pixbuf provides float32 pixel buffer storage for rawpipe.
//
// Pipeline stages exchange planar or interleaved float32 data. Buf owns
// a single backing slice and encapsulates the reuse-or-reallocate
// decision so that buffer lifetime rules live in one place instead of
// being spread across call sites.
package pixbuf

import "errors"

// Common errors for buffer operations.
var (
	// ErrInvalidSize is returned when a requested size is non-positive.
	ErrInvalidSize = errors.New("pixbuf: invalid size")
)

// Buf is an owning handle for a float32 sample buffer.
//
// The backing slice is allocated lazily and kept across reuses: a Buf
// whose capacity already covers a request hands out a resliced view
// instead of allocating. This matters for interactive re-renders where
// the same stage sizes recur on every parameter tweak.
//
// Thread safety: Buf requires external synchronization. The pipeline
// cache serializes access to its lines; standalone users must do the
// same.
type Buf struct {
	data []float32
	size int // samples currently handed out, <= cap(data)
}

// New creates an empty buffer handle. No memory is allocated until the
// first EnsureCapacity call.
func New() *Buf {
	return &Buf{}
}

// EnsureCapacity makes the buffer hold exactly size samples, reusing
// the existing allocation when it is large enough and reallocating
// otherwise. Reused memory is zeroed so stale samples never leak into
// a new consumer.
func (b *Buf) EnsureCapacity(size int) error {
	if size <= 0 {
		return ErrInvalidSize
	}
	if cap(b.data) >= size {
		b.data = b.data[:size]
		clear(b.data)
		b.size = size
		return nil
	}
	b.data = make([]float32, size)
	b.size = size
	return nil
}

// Data returns the current sample slice. Returns nil before the first
// EnsureCapacity call.
func (b *Buf) Data() []float32 {
	if b.size == 0 {
		return nil
	}
	return b.data
}

// Size returns the number of samples currently held.
func (b *Buf) Size() int { return b.size }

// Bytes returns the buffer size in bytes.
func (b *Buf) Bytes() int { return b.size * 4 }

// Owns reports whether data is backed by this buffer's allocation.
// Used by the pipeline cache to map a handed-out slice back to its
// cache line.
func (b *Buf) Owns(data []float32) bool {
	if b.size == 0 || len(data) == 0 {
		return false
	}
	return &b.data[0] == &data[0]
}

// Release drops the backing allocation.
func (b *Buf) Release() {
	b.data = nil
	b.size = 0
}
