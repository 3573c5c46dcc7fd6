// Package output serializes rendered pixel buffers to image files.
package output

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

// ErrUnsupportedFormat is returned for output paths with an unknown extension
var ErrUnsupportedFormat = errors.New("unsupported output format")

// Gamma is the display gamma applied to averaged linear colors
const Gamma = 2.0

// ToRGB8 normalizes a sample sum, applies Gamma and clamps into 8 bits.
// NaN and negative channels come out black.
func ToRGB8(sum core.Vec3, samplesPerPixel int) (r, g, b uint8) {
	scale := 1.0
	if samplesPerPixel > 0 {
		scale = 1.0 / float64(samplesPerPixel)
	}
	c := sum.Multiply(scale)
	c = core.NewVec3(nonNegative(c.X), nonNegative(c.Y), nonNegative(c.Z))
	c = c.GammaCorrect(Gamma).Clamp(0, 0.999)
	return uint8(256 * c.X), uint8(256 * c.Y), uint8(256 * c.Z)
}

// nonNegative maps NaN and negative values to zero before the gamma power
func nonNegative(c float64) float64 {
	if !(c > 0) {
		return 0
	}
	return c
}

// WritePPM writes buf as a plain-text P3 image, top row first
func WritePPM(w io.Writer, buf *renderer.PixelBuffer) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "P3\n%d %d\n255\n", buf.Width, buf.Height); err != nil {
		return err
	}

	for y := 0; y < buf.Height; y++ {
		for x := 0; x < buf.Width; x++ {
			r, g, b := ToRGB8(buf.At(x, y), buf.SamplesPerPixel)
			if _, err := fmt.Fprintf(bw, "%d %d %d\n", r, g, b); err != nil {
				return err
			}
		}
	}
	return bw.Flush()
}

// ToImage converts buf with the same normalization as WritePPM
func ToImage(buf *renderer.PixelBuffer) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, buf.Width, buf.Height))
	for y := 0; y < buf.Height; y++ {
		for x := 0; x < buf.Width; x++ {
			r, g, b := ToRGB8(buf.At(x, y), buf.SamplesPerPixel)
			img.SetRGBA(x, y, color.RGBA{R: r, G: g, B: b, A: 255})
		}
	}
	return img
}

// WritePNG encodes buf as PNG
func WritePNG(w io.Writer, buf *renderer.PixelBuffer) error {
	return png.Encode(w, ToImage(buf))
}

func writerFor(filename string) (func(io.Writer, *renderer.PixelBuffer) error, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".ppm":
		return WritePPM, nil
	case ".png":
		return WritePNG, nil
	}
	return nil, fmt.Errorf("%w: %q (use .ppm or .png)", ErrUnsupportedFormat, filename)
}

// CheckPath reports whether filename has an extension WriteFile can encode
func CheckPath(filename string) error {
	_, err := writerFor(filename)
	return err
}

// WriteFile writes buf to filename, choosing PPM or PNG by extension
func WriteFile(filename string, buf *renderer.PixelBuffer) (err error) {
	write, err := writerFor(filename)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(filename); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("error creating output directory: %w", err)
		}
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("error creating file: %w", err)
	}
	defer func() {
		if cerr := file.Close(); err == nil {
			err = cerr
		}
	}()

	if err := write(file, buf); err != nil {
		return fmt.Errorf("error writing %s: %w", filename, err)
	}
	return nil
}
