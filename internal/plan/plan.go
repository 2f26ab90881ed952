// Package plan precomputes 1-D resampling plans.
//
// A plan maps N input samples to M output samples along one axis. For
// each output position it records which input samples contribute
// ("taps") and with what weight. Building the plan once per axis
// amortizes kernel evaluation across every row or column the resampler
// processes, and the flat storage layout gives row workers O(1) access
// to any position's taps.
package plan

import (
	"errors"
	"math"
)

// Common errors for plan construction.
var (
	// ErrInvalidGeometry is returned when an input or output extent is
	// smaller than one sample.
	ErrInvalidGeometry = errors.New("plan: invalid resampling geometry")

	// ErrInvalidScale is returned for non-positive scale factors.
	ErrInvalidScale = errors.New("plan: invalid scale factor")
)

// Kernel describes the interpolation kernel a plan is built from.
// Width is the support radius; Tap computes one tap weight at a
// continuous offset from the kernel center.
type Kernel struct {
	Width int
	Tap   func(width int, t float64) float64
}

// Meta locates one output position's taps inside the flat arrays,
// allowing direct indexing without scanning the preceding positions.
// The vertical plan carries Meta so parallel row workers can seed
// their cursors independently.
type Meta struct {
	Length int32 // offset into Lengths
	Kernel int32 // offset into Weights
	Index  int32 // offset into Indices
}

// Plan holds the precomputed taps for one axis.
//
// Position p owns Lengths[p] consecutive entries of Weights and
// Indices starting at Meta[p].Kernel and Meta[p].Index. Weights for a
// position sum to 1 after the planner's renormalization.
type Plan struct {
	Lengths []int32
	Weights []float32
	Indices []int32
	Meta    []Meta
}

// maxTaps returns a safe upper bound for the tap count of one output
// position at the given scale.
func maxTaps(k Kernel, scale float64) int {
	if scale > 1 {
		return 2 * k.Width
	}
	return 2*int(math.Ceil(float64(k.Width)/scale)) + 2
}

// UpsamplingKernel evaluates the kernel centered at continuous input
// coordinate t. It fills taps[0:2*Width] with raw weights, returns
// their sum (used for renormalization once border handling drops or
// clamps taps) and the input index the first tap applies to.
func UpsamplingKernel(k Kernel, t float64, taps []float64) (norm float64, first int) {
	f := math.Floor(t)
	first = int(f) - k.Width + 1

	// Distance from t to the first tap position.
	offset := t - (f - float64(k.Width-1))
	for i := 0; i < 2*k.Width; i++ {
		w := k.Tap(k.Width, offset)
		taps[i] = w
		norm += w
		offset--
	}
	return norm, first
}

// downsamplingKernel evaluates the kernel for output position out at
// scale <= 1. The kernel footprint widens by 1/scale so one output
// sample integrates over the full input extent it covers: taps are
// evaluated at steps of scale in kernel space, which corresponds to
// steps of one input sample. Returns the raw weights in taps, their
// count and sum, and the first contributing input index.
func downsamplingKernel(k Kernel, scale float64, out int, taps []float64) (count int, norm float64, first int) {
	w := float64(k.Width)

	// First input sample whose scaled position falls inside the
	// kernel support, conservatively rounded up.
	xin := math.Ceil((float64(out) - w) / scale)
	first = int(xin)

	// Kernel-space coordinate of that first sample.
	t := xin*scale - float64(out)

	count = int((w - t) / scale)
	// The closed-form tap count can go off by one for scales sitting
	// on an integer boundary; clamp instead of trusting it.
	if count < 1 {
		count = 1
	}
	if count > len(taps) {
		count = len(taps)
	}

	for i := 0; i < count; i++ {
		tap := k.Tap(k.Width, t)
		taps[i] = tap
		norm += tap
		t += scale
	}
	return count, norm, first
}

// Build constructs the plan transforming in input samples (origin
// offset inX0 in full-image coordinates) into out output samples
// (origin offset outX0) at the given scale.
//
// A scale of exactly 1 returns (nil, nil): no plan is needed and the
// caller takes a straight copy path. Out-of-range taps are clipped to
// the valid input range with replicate indexing and every position's
// kept weights are renormalized to sum to 1.
//
// withMeta controls whether the Meta offset array is built; the
// resampler requests it for the vertical axis only, where parallel row
// workers need random access.
func Build(k Kernel, in, inX0, out, outX0 int, scale float64, withMeta bool) (*Plan, error) {
	if scale == 1.0 {
		return nil, nil
	}
	if scale <= 0 || math.IsNaN(scale) {
		return nil, ErrInvalidScale
	}
	if in < 1 || out < 1 {
		return nil, ErrInvalidGeometry
	}

	capTaps := maxTaps(k, scale)
	p := &Plan{
		Lengths: make([]int32, 0, out),
		Weights: make([]float32, 0, out*capTaps),
		Indices: make([]int32, 0, out*capTaps),
	}
	if withMeta {
		p.Meta = make([]Meta, 0, out)
	}

	scratch := make([]float64, capTaps)
	for x := 0; x < out; x++ {
		if withMeta {
			p.Meta = append(p.Meta, Meta{
				Length: int32(len(p.Lengths)),
				Kernel: int32(len(p.Weights)),
				Index:  int32(len(p.Indices)),
			})
		}

		var (
			taps  int
			norm  float64
			first int
		)
		if scale > 1 {
			fx := float64(outX0+x)/scale - float64(inX0)
			norm, first = UpsamplingKernel(k, fx, scratch)
			taps = 2 * k.Width
		} else {
			taps, norm, first = downsamplingKernel(k, scale, outX0+x, scratch)
			first -= inX0
		}
		if norm == 0 {
			// All taps vanished; fall back to the nearest sample so
			// the position still has a contributor.
			scratch[0] = 1
			norm = 1
			taps = 1
		}

		for t := 0; t < taps; t++ {
			idx := first + t
			if idx < 0 {
				idx = 0
			} else if idx > in-1 {
				idx = in - 1
			}
			p.Indices = append(p.Indices, int32(idx))
			p.Weights = append(p.Weights, float32(scratch[t]/norm))
		}
		p.Lengths = append(p.Lengths, int32(taps))
	}
	return p, nil
}
