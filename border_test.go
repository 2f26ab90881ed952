package rawpipe

import "testing"

func TestClipIndexMirror(t *testing.T) {
	tests := []struct {
		name     string
		i        int
		min, max int
		want     int
	}{
		{"in range", 3, 0, 9, 3},
		{"one below", -2, 0, 9, 2},
		{"one above", 11, 0, 9, 7},
		{"tiny extent above", 3, 0, 1, 1},
		{"tiny extent far above", 4, 0, 1, 0},
		{"tiny extent below", -2, 0, 1, 0},
		{"tiny extent far below", -3, 0, 1, 1},
		{"single sample", 5, 2, 2, 2},
		{"single sample below", -7, 0, 0, 0},
		{"offset range", 14, 4, 9, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := clipIndex(tt.i, tt.min, tt.max, BorderMirror)
			if got != tt.want {
				t.Errorf("clipIndex(%d, %d, %d, mirror) = %d, want %d",
					tt.i, tt.min, tt.max, got, tt.want)
			}
			if got < tt.min || got > tt.max {
				t.Errorf("clipIndex(%d, %d, %d, mirror) = %d, out of range",
					tt.i, tt.min, tt.max, got)
			}
		})
	}
}

func TestClipIndexModes(t *testing.T) {
	tests := []struct {
		name string
		i    int
		mode BorderMode
		want int
	}{
		{"replicate below", -3, BorderReplicate, 0},
		{"replicate above", 12, BorderReplicate, 9},
		{"wrap below", -1, BorderWrap, 9},
		{"wrap above", 10, BorderWrap, 0},
		{"clamp in range", 5, BorderClamp, 5},
		{"clamp below", -1, BorderClamp, -1},
		{"clamp above", 10, BorderClamp, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := clipIndex(tt.i, 0, 9, tt.mode); got != tt.want {
				t.Errorf("clipIndex(%d, 0, 9, %v) = %d, want %d", tt.i, tt.mode, got, tt.want)
			}
		})
	}
}
