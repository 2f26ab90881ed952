package pipecache

import (
	"math"

	"github.com/gogpu/rawpipe"
)

// Piece is one element of the active module stack, as seen by the
// hash functions: the module's stable operation identifier, its
// parameter-format version and its serialized parameter blob.
type Piece struct {
	// Op is the module's operation identifier, stable across runs.
	Op string

	// Version is the parameter-format version of the module.
	Version int

	// Params is the module's serialized parameter blob.
	Params []byte

	// Enabled marks whether the module participates in the render.
	// Disabled modules do not contribute to hashes.
	Enabled bool
}

// FNV-1a, folded inline so hashing stays allocation-free on the
// per-module render path.
const (
	fnvOffset uint64 = 14695981039346656037
	fnvPrime  uint64 = 1099511628211
)

func foldByte(h uint64, b byte) uint64 {
	return (h ^ uint64(b)) * fnvPrime
}

func foldUint64(h, v uint64) uint64 {
	for i := 0; i < 64; i += 8 {
		h = foldByte(h, byte(v>>i))
	}
	return h
}

// foldBytes folds the blob length before its contents so that a blob
// boundary shift between adjacent fields cannot collide.
func foldBytes(h uint64, b []byte) uint64 {
	h = foldUint64(h, uint64(len(b)))
	for _, c := range b {
		h = foldByte(h, c)
	}
	return h
}

func foldString(h uint64, s string) uint64 {
	h = foldUint64(h, uint64(len(s)))
	for i := 0; i < len(s); i++ {
		h = foldByte(h, s[i])
	}
	return h
}

// basicFold folds the image identifier and every enabled module up to
// and including stack[upto]. A negative upto folds the image
// identifier alone.
func basicFold(imageID uint32, stack []Piece, upto int) uint64 {
	h := foldUint64(fnvOffset, uint64(imageID))
	if upto >= len(stack) {
		upto = len(stack) - 1
	}
	for i := 0; i <= upto; i++ {
		p := &stack[i]
		if !p.Enabled {
			continue
		}
		h = foldString(h, p.Op)
		h = foldUint64(h, uint64(int64(p.Version)))
		h = foldBytes(h, p.Params)
	}
	return h
}

// BasicHash computes the viewport-independent cache key: the image
// identifier folded with every enabled module's operation identifier,
// version and parameter blob, in stack order, up to and including
// stack[upto].
//
// The fold is order- and length-sensitive: swapping two modules'
// parameter blobs, or moving bytes across a blob boundary, changes the
// hash. The result is stable across process runs.
func BasicHash(imageID uint32, stack []Piece, upto int) uint64 {
	return basicFold(imageID, stack, upto)
}

// FullHash is BasicHash additionally folded with the requested region
// and pipeline-wide display-mode flags: everything that affects the
// rendered bytes beyond the logical parameters.
func FullHash(imageID uint32, stack []Piece, upto int, roi rawpipe.ROI, flags uint64) uint64 {
	h := basicFold(imageID, stack, upto)
	h = foldUint64(h, uint64(int64(roi.X)))
	h = foldUint64(h, uint64(int64(roi.Y)))
	h = foldUint64(h, uint64(int64(roi.Width)))
	h = foldUint64(h, uint64(int64(roi.Height)))
	h = foldUint64(h, math.Float64bits(roi.Scale))
	h = foldUint64(h, flags)
	return h
}

// BasicHashPrior computes BasicHash over the stack truncated to the
// last enabled module strictly before stack[module]: the most specific
// cacheable upstream state when the module itself is disabled or
// bypassed. With no enabled module before it, the hash covers the
// image identifier alone.
func BasicHashPrior(imageID uint32, stack []Piece, module int) uint64 {
	if module > len(stack) {
		module = len(stack)
	}
	for i := module - 1; i >= 0; i-- {
		if stack[i].Enabled {
			return basicFold(imageID, stack, i)
		}
	}
	return basicFold(imageID, stack, -1)
}
