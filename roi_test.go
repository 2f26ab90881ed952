package rawpipe

import "testing"

func TestROIValidate(t *testing.T) {
	tests := []struct {
		name    string
		roi     ROI
		wantErr bool
	}{
		{"valid", ROI{X: 0, Y: 0, Width: 10, Height: 10, Scale: 1}, false},
		{"valid offset", ROI{X: 5, Y: 7, Width: 1, Height: 1, Scale: 0.25}, false},
		{"zero width", ROI{Width: 0, Height: 10, Scale: 1}, true},
		{"zero height", ROI{Width: 10, Height: 0, Scale: 1}, true},
		{"negative x", ROI{X: -1, Width: 10, Height: 10, Scale: 1}, true},
		{"negative y", ROI{Y: -2, Width: 10, Height: 10, Scale: 1}, true},
		{"zero scale", ROI{Width: 10, Height: 10, Scale: 0}, true},
		{"negative scale", ROI{Width: 10, Height: 10, Scale: -1}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.roi.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestROISamples(t *testing.T) {
	roi := ROI{Width: 10, Height: 20, Scale: 1}
	if got := roi.Samples(4); got != 800 {
		t.Errorf("Samples(4) = %d, want 800", got)
	}
	if got := roi.Samples(1); got != 200 {
		t.Errorf("Samples(1) = %d, want 200", got)
	}
}
