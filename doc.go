// Package rawpipe provides the pixel-pipeline core for non-destructive
// RAW photo development: geometric resampling and a content-addressed
// cache for intermediate pipeline buffers.
//
// # Overview
//
// rawpipe is a pure Go library designed to sit underneath an image
// processing pipeline. Processing modules call into it for two things:
//
//   - Interpolation and resampling: point sampling of a buffer at a
//     continuous coordinate (for geometric warps such as lens
//     correction), and full separable resampling of an image region to
//     a different scale (for zoom and export).
//   - Caching: reuse of intermediate stage buffers across repeated
//     partial re-renders while the user tweaks parameters, keyed by a
//     hash of the active module stack and viewport.
//
// # Quick Start
//
//	import "github.com/gogpu/rawpipe"
//
//	// Pick an interpolator (bilinear, bicubic, lanczos2, lanczos3).
//	itp := rawpipe.Lookup(rawpipe.InterpBicubic)
//
//	// Point-sample a 1-channel buffer at a continuous coordinate.
//	v := rawpipe.ComputeSample(itp, buf, 12.37, 44.81, w, h, 1, w)
//
//	// Resample a 4-channel region to half scale. Strides are in
//	// float32 elements per row.
//	out := rawpipe.ROI{Width: w / 2, Height: h / 2, Scale: 0.5}
//	in := rawpipe.ROI{Width: w, Height: h, Scale: 1}
//	err := rawpipe.ResampleROI(itp, dst, src, out, in, out.Width*4, w*4)
//
// # Architecture
//
// The library is organized into:
//   - Public API: Interpolator, ComputeSample/ComputePixel, Resample,
//     ROI, BorderMode
//   - pipecache: fixed-capacity intermediate-buffer cache and the
//     two-level stack hashing that keys it
//   - Internal: plan (per-axis tap precomputation), pixbuf (float32
//     buffer management), parallel (row worker pool)
//
// # Coordinate System
//
// Uses standard image coordinates: origin (0,0) at top-left, X
// increases right, Y increases down. Continuous sample coordinates
// address sample centers, so (0,0) is the center of the top-left
// sample.
package rawpipe

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
