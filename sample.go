package rawpipe

import "github.com/gogpu/rawpipe/internal/plan"

// maxKernelTaps sizes stack-local tap buffers for the widest supported
// kernel (lanczos3, support radius 3).
const maxKernelTaps = 6

// kernel adapts the interpolator for the plan package.
func (i Interpolator) kernel() plan.Kernel {
	return plan.Kernel{Width: i.Width, Tap: i.Tap}
}

// ComputeSample interpolates one sample from a 1-channel buffer at the
// continuous coordinate (x, y).
//
// The buffer holds height lines of width samples; consecutive samples
// of a line are sampleStride apart and consecutive lines are
// lineStride apart, both measured in float32 elements. Kernel
// footprints spilling over an edge are resolved with the mirror border
// policy; coordinates farther than the kernel's support radius outside
// the image return exactly 0.
//
// Used by modules needing one-off point samples (geometric and lens
// distortion remapping), not bulk resampling. The computation is
// sequential within one call, so results are bit-reproducible for
// identical inputs.
func ComputeSample(itp Interpolator, in []float32, x, y float64, width, height, sampleStride, lineStride int) float32 {
	w := itp.Width
	k := itp.kernel()

	var khBuf, kvBuf [maxKernelTaps]float64
	kh := khBuf[:2*w]
	kv := kvBuf[:2*w]

	normh, firsth := plan.UpsamplingKernel(k, x, kh)
	normv, firstv := plan.UpsamplingKernel(k, y, kv)

	switch {
	case firsth >= 0 && firstv >= 0 && firsth+2*w <= width && firstv+2*w <= height:
		// Full footprint inside the image: no per-tap bounds checks.
		var s float64
		for i := 0; i < 2*w; i++ {
			rowBase := (firstv + i) * lineStride
			var h float64
			for j := 0; j < 2*w; j++ {
				h += kh[j] * float64(in[rowBase+(firsth+j)*sampleStride])
			}
			s += kv[i] * h
		}
		return float32(s / (normh * normv))

	case x > -float64(w) && y > -float64(w) &&
		x < float64(width-1+w) && y < float64(height-1+w):
		// Footprint spills over an edge: clip taps per axis.
		var s float64
		for i := 0; i < 2*w; i++ {
			iy := clipIndex(firstv+i, 0, height-1, sampleBorder)
			if iy < 0 {
				continue
			}
			rowBase := iy * lineStride
			var h float64
			for j := 0; j < 2*w; j++ {
				ix := clipIndex(firsth+j, 0, width-1, sampleBorder)
				if ix < 0 {
					continue
				}
				h += kh[j] * float64(in[rowBase+ix*sampleStride])
			}
			s += kv[i] * h
		}
		return float32(s / (normh * normv))

	default:
		return 0
	}
}

// ComputePixel interpolates one multi-channel pixel from an
// interleaved buffer at the continuous coordinate (x, y), writing
// channels values to out. The horizontal and vertical kernels are
// computed once and shared across channels.
//
// The buffer holds height lines of width pixels with channels
// interleaved float32 samples each; lineStride is measured in float32
// elements. channels must be between 1 and 4 and out must hold at
// least channels elements. Border handling matches ComputeSample:
// mirror within the kernel's support radius of the image, zero beyond.
func ComputePixel(itp Interpolator, in, out []float32, x, y float64, width, height, lineStride, channels int) {
	w := itp.Width
	k := itp.kernel()

	var khBuf, kvBuf [maxKernelTaps]float64
	kh := khBuf[:2*w]
	kv := kvBuf[:2*w]

	normh, firsth := plan.UpsamplingKernel(k, x, kh)
	normv, firstv := plan.UpsamplingKernel(k, y, kv)
	norm := normh * normv

	switch {
	case firsth >= 0 && firstv >= 0 && firsth+2*w <= width && firstv+2*w <= height:
		var acc [4]float64
		sum := acc[:channels]
		for i := 0; i < 2*w; i++ {
			rowBase := (firstv + i) * lineStride
			for j := 0; j < 2*w; j++ {
				pix := rowBase + (firsth+j)*channels
				kw := kv[i] * kh[j]
				for c := 0; c < channels; c++ {
					sum[c] += kw * float64(in[pix+c])
				}
			}
		}
		for c := 0; c < channels; c++ {
			out[c] = float32(sum[c] / norm)
		}

	case x > -float64(w) && y > -float64(w) &&
		x < float64(width-1+w) && y < float64(height-1+w):
		var acc [4]float64
		sum := acc[:channels]
		for i := 0; i < 2*w; i++ {
			iy := clipIndex(firstv+i, 0, height-1, sampleBorder)
			if iy < 0 {
				continue
			}
			rowBase := iy * lineStride
			for j := 0; j < 2*w; j++ {
				ix := clipIndex(firsth+j, 0, width-1, sampleBorder)
				if ix < 0 {
					continue
				}
				pix := rowBase + ix*channels
				kw := kv[i] * kh[j]
				for c := 0; c < channels; c++ {
					sum[c] += kw * float64(in[pix+c])
				}
			}
		}
		for c := 0; c < channels; c++ {
			out[c] = float32(sum[c] / norm)
		}

	default:
		for c := 0; c < channels; c++ {
			out[c] = 0
		}
	}
}
