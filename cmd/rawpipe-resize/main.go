// Command rawpipe-resize resamples images with the rawpipe engine.
//
// It demonstrates the plan-based resampler on regular image files:
// each input is decoded, converted to float32 RGBA, resampled by the
// requested scale factor and written back as TIFF. Multiple inputs are
// processed concurrently.
//
// The interpolator is chosen from, in order: the -interp flag, the
// RAWPIPE_INTERPOLATOR environment variable (also read from a .env
// file in the working directory), falling back to bilinear.
package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"golang.org/x/image/draw"
	"golang.org/x/image/tiff"
	"golang.org/x/sync/errgroup"

	"github.com/gogpu/rawpipe"
)

func main() {
	var (
		scale   = flag.Float64("scale", 0.5, "output scale factor")
		interp  = flag.String("interp", "", "interpolator: bilinear, bicubic, lanczos2, lanczos3")
		suffix  = flag.String("suffix", "_resized", "output filename suffix")
		jobs    = flag.Int("jobs", 4, "number of files processed concurrently")
		verbose = flag.Bool("v", false, "enable debug logging")
	)
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: rawpipe-resize [flags] file...")
		flag.PrintDefaults()
		os.Exit(2)
	}
	if *scale <= 0 {
		log.Fatalf("invalid scale %v", *scale)
	}
	if *verbose {
		rawpipe.SetLogger(newStderrLogger())
	}

	// A missing .env file is fine; the environment still applies.
	_ = godotenv.Load()
	pref := *interp
	if pref == "" {
		pref = os.Getenv("RAWPIPE_INTERPOLATOR")
	}
	itp := rawpipe.LookupName(pref)
	log.Printf("using %s interpolation, scale %v", itp.Name, *scale)

	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(*jobs)
	for _, path := range flag.Args() {
		path := path
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			out, err := resizeFile(path, *suffix, *scale, itp)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			log.Printf("%s -> %s", path, out)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Fatal(err)
	}
}

// resizeFile decodes path, resamples it and writes the result next to
// the input. Returns the output path.
func resizeFile(path, suffix string, scale float64, itp rawpipe.Interpolator) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return "", fmt.Errorf("decode: %w", err)
	}

	src, w, h := toFloat32(img)
	outW := max(1, int(float64(w)*scale))
	outH := max(1, int(float64(h)*scale))
	dst := make([]float32, outW*outH*4)

	roiOut := rawpipe.ROI{Width: outW, Height: outH, Scale: scale}
	roiIn := rawpipe.ROI{Width: w, Height: h, Scale: 1}
	if err := rawpipe.ResampleROI(itp, dst, src, roiOut, roiIn, outW*4, w*4); err != nil {
		return "", fmt.Errorf("resample: %w", err)
	}

	ext := filepath.Ext(path)
	out := strings.TrimSuffix(path, ext) + suffix + ".tiff"
	of, err := os.Create(out)
	if err != nil {
		return "", err
	}
	defer of.Close()

	if err := tiff.Encode(of, fromFloat32(dst, outW, outH), &tiff.Options{
		Compression: tiff.Deflate,
	}); err != nil {
		return "", fmt.Errorf("encode: %w", err)
	}
	return out, nil
}

// toFloat32 converts any decoded image to interleaved RGBA float32 in
// [0,255], going through NRGBA so the resampler never sees
// premultiplied data.
func toFloat32(img image.Image) (data []float32, w, h int) {
	b := img.Bounds()
	w, h = b.Dx(), b.Dy()

	nrgba := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.Copy(nrgba, image.Point{}, img, b, draw.Src, nil)

	data = make([]float32, w*h*4)
	for i := 0; i < w*h; i++ {
		data[i*4+0] = float32(nrgba.Pix[i*4+0])
		data[i*4+1] = float32(nrgba.Pix[i*4+1])
		data[i*4+2] = float32(nrgba.Pix[i*4+2])
		data[i*4+3] = float32(nrgba.Pix[i*4+3])
	}
	return data, w, h
}

// fromFloat32 converts interleaved RGBA float32 back to an 8-bit image
// for encoding, clamping out-of-range values the sharper kernels can
// produce near edges.
func fromFloat32(data []float32, w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < w*h; i++ {
		img.SetNRGBA(i%w, i/w, color.NRGBA{
			R: clamp8(data[i*4+0]),
			G: clamp8(data[i*4+1]),
			B: clamp8(data[i*4+2]),
			A: clamp8(data[i*4+3]),
		})
	}
	return img
}

func newStderrLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
}

func clamp8(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v + 0.5)
}
