package renderer

import "github.com/df07/go-pathtracer/pkg/core"

// PixelBuffer holds one accumulated, unnormalized color sum per pixel.
// Row 0 is the top of the image. Each entry is written by exactly one task,
// so workers fill it without locking.
type PixelBuffer struct {
	Width           int
	Height          int
	SamplesPerPixel int         // Number of samples summed into every entry
	Pixels          []core.Vec3 // Row-major, Width*Height entries
}

// NewPixelBuffer creates a zeroed buffer
func NewPixelBuffer(width, height, samplesPerPixel int) *PixelBuffer {
	return &PixelBuffer{
		Width:           width,
		Height:          height,
		SamplesPerPixel: samplesPerPixel,
		Pixels:          make([]core.Vec3, width*height),
	}
}

// Index returns the flat index of pixel (x, y)
func (b *PixelBuffer) Index(x, y int) int {
	return y*b.Width + x
}

// At returns the color sum of pixel (x, y)
func (b *PixelBuffer) At(x, y int) core.Vec3 {
	return b.Pixels[b.Index(x, y)]
}

// Set stores the color sum of pixel (x, y)
func (b *PixelBuffer) Set(x, y int, sum core.Vec3) {
	b.Pixels[b.Index(x, y)] = sum
}

// Color returns the average linear color of pixel (x, y)
func (b *PixelBuffer) Color(x, y int) core.Vec3 {
	if b.SamplesPerPixel <= 0 {
		return core.Vec3{}
	}
	return b.At(x, y).Multiply(1.0 / float64(b.SamplesPerPixel))
}
