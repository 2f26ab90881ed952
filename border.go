package rawpipe

// BorderMode defines how sample indices falling outside the valid
// input range are handled.
type BorderMode uint8

const (
	// BorderReplicate clamps the index to the nearest edge sample.
	BorderReplicate BorderMode = iota

	// BorderWrap translates the index to the opposite edge.
	BorderWrap

	// BorderMirror reflects the index back into range about the edge.
	BorderMirror

	// BorderClamp marks the index invalid; the caller must skip the tap.
	BorderClamp
)

// String returns a string representation of the border mode.
func (m BorderMode) String() string {
	switch m {
	case BorderReplicate:
		return "replicate"
	case BorderWrap:
		return "wrap"
	case BorderMirror:
		return "mirror"
	case BorderClamp:
		return "clamp"
	default:
		return "unknown"
	}
}

// Fixed policy choices for the two interpolation call sites. Mirror
// avoids introducing a hard edge color in point samples, which land
// arbitrarily close to edges during geometric warps. Replicate is
// adequate for bulk resampling because the planner restricts taps to
// the valid input range by construction.
const (
	sampleBorder   = BorderMirror
	resampleBorder = BorderReplicate
)

// clipIndex maps index i into [min, max] according to the border mode.
// Returns -1 for BorderClamp when i is out of range; the tap must then
// be skipped.
func clipIndex(i, min, max int, mode BorderMode) int {
	switch mode {
	case BorderReplicate:
		if i < min {
			i = min
		} else if i > max {
			i = max
		}
	case BorderMirror:
		if i < min || i > max {
			// Reflect about the edge samples. The modular form keeps
			// the result in range even when the extent is smaller than
			// the kernel footprint, where one reflection is not enough.
			if max == min {
				return min
			}
			period := 2 * (max - min)
			i = (i - min) % period
			if i < 0 {
				i += period
			}
			if i > max-min {
				i = period - i
			}
			i += min
		}
	case BorderWrap:
		if i < min {
			i = max - (min - i - 1)
		} else if i > max {
			i = min + (i - max - 1)
		}
	case BorderClamp:
		if i < min || i > max {
			return -1
		}
	}
	return i
}
