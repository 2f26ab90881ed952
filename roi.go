package rawpipe

import "errors"

// Common errors for region geometry.
var (
	// ErrInvalidROI is returned when a region has non-positive extent,
	// a negative origin or a non-positive scale.
	ErrInvalidROI = errors.New("rawpipe: invalid region of interest")
)

// ROI describes which window of a conceptual full-resolution image a
// buffer materializes: a rectangle in scaled coordinates plus the
// scale factor relating it to full resolution.
type ROI struct {
	// X, Y is the window origin, relative to the scaled full image.
	X, Y int

	// Width, Height is the window extent in samples.
	Width, Height int

	// Scale relates the window to full resolution (1 = native).
	Scale float64
}

// Validate reports whether the region is well-formed.
func (r ROI) Validate() error {
	if r.Width < 1 || r.Height < 1 || r.X < 0 || r.Y < 0 || r.Scale <= 0 {
		return ErrInvalidROI
	}
	return nil
}

// Samples returns the number of float32 samples a buffer materializing
// this region holds at the given channel count.
func (r ROI) Samples(channels int) int {
	return r.Width * r.Height * channels
}
