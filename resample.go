package rawpipe

import (
	"fmt"

	"github.com/gogpu/rawpipe/internal/parallel"
	"github.com/gogpu/rawpipe/internal/plan"
)

// Resample transforms the 4-channel input region into the output
// region using separable plan-driven interpolation.
//
// Both buffers are interleaved RGBA float32. The input buffer
// materializes roiIn and the output buffer roiOut, with rows inStride
// and outStride float32 elements apart. The effective scale change is
// roiOut.Scale / roiIn.Scale; when it is exactly 1 the call reduces to
// a row-wise copy of the output window, in which case roiOut must lie
// within roiIn.
//
// Output rows are computed concurrently; each row reads only the input
// buffer and the precomputed plans and writes only its own row, so
// results do not depend on scheduling order.
func Resample(itp Interpolator, out, in []float32, roiOut, roiIn ROI, outStride, inStride int) error {
	return resample(itp, out, in, roiOut, roiIn, outStride, inStride, 4)
}

// ResampleROI is Resample for buffers that are already windowed to
// their regions: both regions are treated as anchored at the origin
// and only extents and scales matter.
func ResampleROI(itp Interpolator, out, in []float32, roiOut, roiIn ROI, outStride, inStride int) error {
	roiOut.X, roiOut.Y = 0, 0
	roiIn.X, roiIn.Y = 0, 0
	return resample(itp, out, in, roiOut, roiIn, outStride, inStride, 4)
}

// Resample1 is the 1-channel (mask) variant of Resample.
func Resample1(itp Interpolator, out, in []float32, roiOut, roiIn ROI, outStride, inStride int) error {
	return resample(itp, out, in, roiOut, roiIn, outStride, inStride, 1)
}

// ResampleROI1 is the 1-channel (mask) variant of ResampleROI.
func ResampleROI1(itp Interpolator, out, in []float32, roiOut, roiIn ROI, outStride, inStride int) error {
	roiOut.X, roiOut.Y = 0, 0
	roiIn.X, roiIn.Y = 0, 0
	return resample(itp, out, in, roiOut, roiIn, outStride, inStride, 1)
}

// resample is the shared implementation behind the channel-count
// specific entry points.
func resample(itp Interpolator, out, in []float32, roiOut, roiIn ROI, outStride, inStride, channels int) error {
	if err := roiOut.Validate(); err != nil {
		return fmt.Errorf("output region: %w", err)
	}
	if err := roiIn.Validate(); err != nil {
		return fmt.Errorf("input region: %w", err)
	}

	scale := roiOut.Scale / roiIn.Scale

	// Pass-through: straight row-wise copy of the output window.
	if scale == 1.0 {
		if roiOut.X < roiIn.X || roiOut.Y < roiIn.Y ||
			roiOut.X+roiOut.Width > roiIn.X+roiIn.Width ||
			roiOut.Y+roiOut.Height > roiIn.Y+roiIn.Height {
			return fmt.Errorf("pass-through: output region %dx%d+%d+%d exceeds input %dx%d+%d+%d: %w",
				roiOut.Width, roiOut.Height, roiOut.X, roiOut.Y,
				roiIn.Width, roiIn.Height, roiIn.X, roiIn.Y, ErrInvalidROI)
		}
		sx := (roiOut.X - roiIn.X) * channels
		sy := roiOut.Y - roiIn.Y
		rowLen := roiOut.Width * channels
		for y := 0; y < roiOut.Height; y++ {
			src := (sy+y)*inStride + sx
			dst := y * outStride
			copy(out[dst:dst+rowLen], in[src:src+rowLen])
		}
		return nil
	}

	k := itp.kernel()
	hplan, err := plan.Build(k, roiIn.Width, roiIn.X, roiOut.Width, roiOut.X, scale, false)
	if err != nil {
		return fmt.Errorf("horizontal plan: %w", err)
	}
	vplan, err := plan.Build(k, roiIn.Height, roiIn.Y, roiOut.Height, roiOut.Y, scale, true)
	if err != nil {
		return fmt.Errorf("vertical plan: %w", err)
	}

	Logger().Debug("resample",
		"interpolator", itp.Name, "channels", channels, "scale", scale,
		"out", fmt.Sprintf("%dx%d", roiOut.Width, roiOut.Height),
		"in", fmt.Sprintf("%dx%d", roiIn.Width, roiIn.Height))

	parallel.Default().Rows(roiOut.Height, func(oy int) {
		// Vertical taps for this row, located via the meta array so
		// rows need no shared cursor state.
		m := vplan.Meta[oy]
		vtaps := int(vplan.Lengths[m.Length])
		vk := int(m.Kernel)
		vi := int(m.Index)

		// Horizontal cursors are row-local and advance across columns.
		hk, hi := 0, 0

		outRow := out[oy*outStride:]
		for ox := 0; ox < roiOut.Width; ox++ {
			htaps := int(hplan.Lengths[ox])

			var acc [4]float64
			sum := acc[:channels]
			for iv := 0; iv < vtaps; iv++ {
				rowBase := int(vplan.Indices[vi+iv]) * inStride

				// Horizontal pass for one contributing input row.
				var hacc [4]float64
				hsum := hacc[:channels]
				for ih := 0; ih < htaps; ih++ {
					pix := rowBase + int(hplan.Indices[hi+ih])*channels
					w := float64(hplan.Weights[hk+ih])
					for c := 0; c < channels; c++ {
						hsum[c] += w * float64(in[pix+c])
					}
				}

				// Vertical pass across the row accumulators.
				vw := float64(vplan.Weights[vk+iv])
				for c := 0; c < channels; c++ {
					sum[c] += vw * hsum[c]
				}
			}

			dst := ox * channels
			for c := 0; c < channels; c++ {
				outRow[dst+c] = float32(sum[c])
			}
			hk += htaps
			hi += htaps
		}
	})

	return nil
}
