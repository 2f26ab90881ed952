package rawpipe

import "math"

// Interpolation identifies an interpolation kernel.
type Interpolation uint8

const (
	// InterpBilinear performs linear interpolation between 2 neighboring samples
	// per axis. Good balance between quality and performance.
	InterpBilinear Interpolation = iota

	// InterpBicubic performs cubic interpolation using a 4-sample neighborhood
	// per axis (Catmull-Rom). Higher quality than bilinear.
	InterpBicubic

	// InterpLanczos2 is a windowed-sinc kernel with support radius 2.
	InterpLanczos2

	// InterpLanczos3 is a windowed-sinc kernel with support radius 3.
	// Sharpest results, widest footprint.
	InterpLanczos3
)

// String returns a string representation of the interpolation kind.
func (i Interpolation) String() string {
	switch i {
	case InterpBilinear:
		return "bilinear"
	case InterpBicubic:
		return "bicubic"
	case InterpLanczos2:
		return "lanczos2"
	case InterpLanczos3:
		return "lanczos3"
	default:
		return "unknown"
	}
}

// TapFunc computes the weight of one filter tap at continuous offset t
// from the kernel center. width is the kernel's support radius; taps
// beyond it have zero weight.
type TapFunc func(width int, t float64) float64

// Interpolator is an immutable kernel descriptor. One instance exists
// per Interpolation kind; instances are looked up, never constructed.
type Interpolator struct {
	// ID identifies the kernel.
	ID Interpolation

	// Name is the stable string used for persisted user preferences.
	Name string

	// Width is the support radius: the kernel spans 2*Width input
	// samples.
	Width int

	// Tap computes one tap weight.
	Tap TapFunc
}

// interpolators holds the one instance per kind, indexed by ID.
var interpolators = [...]Interpolator{
	{ID: InterpBilinear, Name: "bilinear", Width: 1, Tap: bilinearTap},
	{ID: InterpBicubic, Name: "bicubic", Width: 2, Tap: bicubicTap},
	{ID: InterpLanczos2, Name: "lanczos2", Width: 2, Tap: lanczosTap},
	{ID: InterpLanczos3, Name: "lanczos3", Width: 3, Tap: lanczosTap},
}

// Lookup returns the interpolator for the given kind. Unknown kinds
// resolve to the default; Lookup never fails.
func Lookup(id Interpolation) Interpolator {
	if int(id) < len(interpolators) {
		return interpolators[id]
	}
	return Default()
}

// LookupName resolves an interpolator from a persisted preference
// string by matching against each interpolator's Name. An empty or
// unknown string resolves to the default; LookupName never fails.
func LookupName(name string) Interpolator {
	for _, itp := range interpolators {
		if itp.Name == name {
			return itp
		}
	}
	if name != "" {
		Logger().Warn("unknown interpolator preference, using default",
			"name", name, "default", Default().Name)
	}
	return Default()
}

// Default returns the default interpolator (bilinear).
func Default() Interpolator {
	return interpolators[InterpBilinear]
}

// bilinearTap is the triangular kernel: 1-|t| inside the unit support,
// zero beyond. width is ignored (fixed support radius 1).
func bilinearTap(_ int, t float64) float64 {
	t = math.Abs(t)
	if t > 1 {
		return 0
	}
	return 1 - t
}

// bicubicTap is the Catmull-Rom cubic convolution kernel:
//
//	|t| < 1:     1.5|t|³ - 2.5|t|² + 1
//	1 ≤ |t| < 2: -0.5|t|³ + 2.5|t|² - 4|t| + 2
//	|t| ≥ 2:     0
//
// width is ignored (fixed support radius 2).
func bicubicTap(_ int, t float64) float64 {
	t = math.Abs(t)
	if t < 1 {
		return 1.5*t*t*t - 2.5*t*t + 1.0
	}
	if t < 2 {
		return -0.5*t*t*t + 2.5*t*t - 4.0*t + 2.0
	}
	return 0
}

// lanczosEpsilon keeps the windowed-sinc quotient finite when t lands
// on an integer, where both sin factors vanish. Added to numerator and
// denominator alike it biases the limit toward the exact 1 (center) or
// 0 (other integers) values.
const lanczosEpsilon = 1e-9

// lanczosTap is the windowed-sinc kernel
//
//	sinc(t) * sinc(t/width)  for |t| < width, 0 beyond
//
// evaluated without transcendental calls: sin(πt) is split into
// (-1)^⌊t⌋ * sin(π·frac(t)) so both sine factors stay within [-π,π]
// where the polynomial approximation sinApprox holds.
func lanczosTap(width int, t float64) float64 {
	w := float64(width)
	if math.Abs(t) >= w {
		return 0
	}

	a := int(t)
	r := t - float64(a)
	sign := 1.0
	if a&1 != 0 {
		sign = -1
	}

	num := lanczosEpsilon + w*sign*sinApprox(math.Pi*r)*sinApprox(math.Pi*t/w)
	den := lanczosEpsilon + math.Pi*math.Pi*t*t
	return num / den
}

// sinApprox is a fast polynomial sine approximation valid on [-π,π].
// Maximum absolute error is about 1e-3, well below the quantization
// step of the float32 pixel data this library processes.
func sinApprox(t float64) float64 {
	const (
		a = 4 / (math.Pi * math.Pi)
		p = 0.225
	)
	t = a * t * (math.Pi - math.Abs(t))
	return t * (p*(math.Abs(t)-1) + 1)
}
