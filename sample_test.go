package rawpipe

import (
	"math"
	"testing"
)

// rampImage builds a width×height 1-channel buffer with value = column
// index, the standard test pattern for interpolation checks: every
// kernel preserving affine functions must reproduce it exactly in the
// interior.
func rampImage(width, height int) []float32 {
	buf := make([]float32, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			buf[y*width+x] = float32(x)
		}
	}
	return buf
}

func TestComputeSampleInterior(t *testing.T) {
	const w, h = 32, 16
	buf := rampImage(w, h)

	tests := []struct {
		name string
		itp  Interpolation
		x, y float64
		want float64
		tol  float64
	}{
		{"bilinear on sample", InterpBilinear, 10, 8, 10, 1e-6},
		{"bilinear between samples", InterpBilinear, 10.5, 8, 10.5, 1e-6},
		{"bilinear quarter offset", InterpBilinear, 10.25, 7.75, 10.25, 1e-6},
		{"bicubic on sample", InterpBicubic, 12, 5, 12, 1e-6},
		{"bicubic between samples", InterpBicubic, 12.5, 5.5, 12.5, 1e-5},
		{"lanczos3 on sample", InterpLanczos3, 15, 8, 15, 1e-5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeSample(Lookup(tt.itp), buf, tt.x, tt.y, w, h, 1, w)
			if math.Abs(float64(got)-tt.want) > tt.tol {
				t.Errorf("ComputeSample(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestComputeSampleMirrorBorder(t *testing.T) {
	const w, h = 32, 16
	buf := rampImage(w, h)
	itp := Lookup(InterpBilinear)

	// Near the left edge the mirror policy makes the result symmetric
	// about the edge sample, never zero.
	left := ComputeSample(itp, buf, -0.4, 8, w, h, 1, w)
	inside := ComputeSample(itp, buf, 0.4, 8, w, h, 1, w)
	if math.Abs(float64(left-inside)) > 1e-6 {
		t.Errorf("left mirror: sample(-0.4) = %v, sample(0.4) = %v, want equal", left, inside)
	}
	if left == 0 {
		t.Error("left mirror returned 0")
	}

	// Right edge: the ramp mirrors about column w-1.
	right := ComputeSample(itp, buf, float64(w)-0.6, 8, w, h, 1, w)
	rightIn := ComputeSample(itp, buf, float64(w)-1.4, 8, w, h, 1, w)
	if math.Abs(float64(right-rightIn)) > 1e-6 {
		t.Errorf("right mirror: sample(w-0.6) = %v, sample(w-1.4) = %v, want equal", right, rightIn)
	}
}

func TestComputeSampleTinyImage(t *testing.T) {
	// Images smaller than the kernel footprint: the mirror reflection
	// must wrap repeatedly instead of running past the far edge. On a
	// constant buffer every kernel reproduces the constant exactly.
	kernels := []Interpolation{InterpBilinear, InterpBicubic, InterpLanczos2, InterpLanczos3}

	tests := []struct {
		name string
		w, h int
		x, y float64
	}{
		{"2x2 center", 2, 2, 0.5, 0.5},
		{"2x2 corner", 2, 2, 0.1, 1.9},
		{"1x1", 1, 1, 0.3, 0.3},
		{"3x1", 3, 1, 1.5, 0.0},
		{"2x2 spill left", 2, 2, -0.4, 0.5},
	}
	for _, tt := range tests {
		buf := make([]float32, tt.w*tt.h)
		for i := range buf {
			buf[i] = 7
		}
		for _, k := range kernels {
			itp := Lookup(k)
			t.Run(tt.name+"/"+itp.Name, func(t *testing.T) {
				got := ComputeSample(itp, buf, tt.x, tt.y, tt.w, tt.h, 1, tt.w)
				if math.Abs(float64(got)-7) > 1e-5 {
					t.Errorf("ComputeSample(%v, %v) on %dx%d = %v, want 7",
						tt.x, tt.y, tt.w, tt.h, got)
				}
			})
		}
	}
}

func TestComputePixelTinyImage(t *testing.T) {
	const w, h, ch = 2, 2, 4
	buf := make([]float32, w*h*ch)
	for i := range buf {
		buf[i] = float32(i%ch + 1)
	}
	var pix [4]float32
	ComputePixel(Lookup(InterpLanczos3), buf, pix[:], 0.5, 0.5, w, h, w*ch, ch)
	for c := 0; c < ch; c++ {
		if math.Abs(float64(pix[c])-float64(c+1)) > 1e-5 {
			t.Errorf("channel %d = %v, want %v", c, pix[c], c+1)
		}
	}
}

func TestComputeSampleOutside(t *testing.T) {
	const w, h = 32, 16
	buf := rampImage(w, h)

	tests := []struct {
		name string
		itp  Interpolation
		x, y float64
	}{
		{"far left", InterpBilinear, -5, 8},
		{"just beyond support", InterpBilinear, -1.0, 8},
		{"far below", InterpBicubic, 10, 100},
		{"both outside", InterpLanczos3, -10, -10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeSample(Lookup(tt.itp), buf, tt.x, tt.y, w, h, 1, w)
			if got != 0 {
				t.Errorf("ComputeSample(%v, %v) = %v, want exactly 0", tt.x, tt.y, got)
			}
		})
	}
}

func TestComputeSampleDeterministic(t *testing.T) {
	const w, h = 64, 64
	buf := make([]float32, w*h)
	for i := range buf {
		buf[i] = float32(math.Sin(float64(i) * 0.37))
	}
	itp := Lookup(InterpLanczos3)

	a := ComputeSample(itp, buf, 31.37, 12.81, w, h, 1, w)
	b := ComputeSample(itp, buf, 31.37, 12.81, w, h, 1, w)
	if a != b {
		t.Errorf("repeated calls differ: %v vs %v", a, b)
	}
}

func TestComputeSampleStride(t *testing.T) {
	// A buffer with padding between lines: lineStride > width.
	const w, h, stride = 8, 4, 11
	buf := make([]float32, stride*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			buf[y*stride+x] = float32(x + y*100)
		}
	}
	itp := Lookup(InterpBilinear)
	got := ComputeSample(itp, buf, 3.5, 1.5, w, h, 1, stride)
	if math.Abs(float64(got)-153.5) > 1e-5 {
		t.Errorf("ComputeSample = %v, want 153.5", got)
	}
}

func TestComputePixelMatchesComputeSample(t *testing.T) {
	const w, h, ch = 16, 16, 4
	// Interleaved image whose channel c value is c*1000 + column.
	buf := make([]float32, w*h*ch)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			for c := 0; c < ch; c++ {
				buf[(y*w+x)*ch+c] = float32(c*1000 + x)
			}
		}
	}
	// Matching planar view per channel for ComputeSample.
	planar := func(c int) []float32 {
		p := make([]float32, w*h)
		for i := range p {
			p[i] = buf[i*ch+c]
		}
		return p
	}

	itp := Lookup(InterpBicubic)
	coords := [][2]float64{{7.3, 4.9}, {0.2, 0.2}, {14.8, 15.1}, {-0.3, 8}}
	for _, xy := range coords {
		var pix [4]float32
		ComputePixel(itp, buf, pix[:], xy[0], xy[1], w, h, w*ch, ch)
		for c := 0; c < ch; c++ {
			want := ComputeSample(itp, planar(c), xy[0], xy[1], w, h, 1, w)
			if math.Abs(float64(pix[c]-want)) > 1e-4 {
				t.Errorf("coord %v channel %d: ComputePixel = %v, ComputeSample = %v",
					xy, c, pix[c], want)
			}
		}
	}
}

func TestComputePixelOutsideZeroes(t *testing.T) {
	const w, h, ch = 8, 8, 4
	buf := make([]float32, w*h*ch)
	for i := range buf {
		buf[i] = 7
	}
	pix := [4]float32{1, 2, 3, 4}
	ComputePixel(Lookup(InterpBilinear), buf, pix[:], -4, -4, w, h, w*ch, ch)
	for c, v := range pix {
		if v != 0 {
			t.Errorf("channel %d = %v, want 0", c, v)
		}
	}
}
