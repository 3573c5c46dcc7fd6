package material

import (
	"errors"
	"fmt"
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/loaders"
)

// ErrInvalidTexture is returned when a texture cannot be constructed from its inputs
var ErrInvalidTexture = errors.New("invalid texture")

// TextureFilter selects how an image texture is sampled between texel centers
type TextureFilter int

const (
	FilterNearest TextureFilter = iota
	FilterBilinear
)

// ParseTextureFilter maps "nearest" / "bilinear" to a TextureFilter
func ParseTextureFilter(name string) (TextureFilter, error) {
	switch name {
	case "", "nearest":
		return FilterNearest, nil
	case "bilinear":
		return FilterBilinear, nil
	default:
		return FilterNearest, fmt.Errorf("%w: unknown filter %q", ErrInvalidTexture, name)
	}
}

// ImageTexture provides color from a 2D image
type ImageTexture struct {
	Width  int
	Height int
	Pixels []core.Vec3 // Row-major: Pixels[y*Width + x], row 0 at the top
	Filter TextureFilter
}

// NewImageTexture creates a new image texture
func NewImageTexture(width, height int, pixels []core.Vec3, filter TextureFilter) (*ImageTexture, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: non-positive size %dx%d", ErrInvalidTexture, width, height)
	}
	if len(pixels) != width*height {
		return nil, fmt.Errorf("%w: %d pixels for a %dx%d image", ErrInvalidTexture, len(pixels), width, height)
	}
	return &ImageTexture{
		Width:  width,
		Height: height,
		Pixels: pixels,
		Filter: filter,
	}, nil
}

// NewImageTextureFromFile decodes an image file into a texture. A missing or
// undecodable file is reported here rather than at render time.
func NewImageTextureFromFile(filename string, filter TextureFilter) (*ImageTexture, error) {
	data, err := loaders.LoadImage(filename)
	if err != nil {
		return nil, fmt.Errorf("image texture %s: %w", filename, err)
	}
	return NewImageTexture(data.Width, data.Height, data.Pixels, filter)
}

// Evaluate samples the texture at given UV coordinates.
// UV is clamped to [0,1]; V=0 is the bottom row of the image.
func (t *ImageTexture) Evaluate(uv core.Vec2, point core.Vec3) core.Vec3 {
	u := clamp01(uv.X)
	v := 1.0 - clamp01(uv.Y)

	if t.Filter == FilterBilinear {
		return t.bilinear(u, v)
	}

	x := min(int(u*float64(t.Width)), t.Width-1)
	y := min(int(v*float64(t.Height)), t.Height-1)
	return t.texel(x, y)
}

// bilinear blends the four texels surrounding (u, v) in image space
func (t *ImageTexture) bilinear(u, v float64) core.Vec3 {
	x := u*float64(t.Width) - 0.5
	y := v*float64(t.Height) - 0.5

	x0 := math.Floor(x)
	y0 := math.Floor(y)
	fx := x - x0
	fy := y - y0
	ix, iy := int(x0), int(y0)

	top := t.texel(ix, iy).Lerp(t.texel(ix+1, iy), fx)
	bottom := t.texel(ix, iy+1).Lerp(t.texel(ix+1, iy+1), fx)
	return top.Lerp(bottom, fy)
}

// texel returns the pixel at (x, y) with coordinates clamped to the image edge
func (t *ImageTexture) texel(x, y int) core.Vec3 {
	x = max(0, min(x, t.Width-1))
	y = max(0, min(y, t.Height-1))
	return t.Pixels[y*t.Width+x]
}

func clamp01(x float64) float64 {
	if math.IsNaN(x) {
		return 0
	}
	return max(0, min(1, x))
}
