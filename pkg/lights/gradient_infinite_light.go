package lights

import (
	"github.com/df07/go-pathtracer/pkg/core"
)

var (
	// DefaultSkyTop is the sky-blue zenith of the default gradient
	DefaultSkyTop = core.NewVec3(0.5, 0.7, 1.0)
	// DefaultSkyBottom is the white horizon of the default gradient
	DefaultSkyBottom = core.NewVec3(1.0, 1.0, 1.0)
)

// GradientInfiniteLight blends two colors by the vertical component of the ray direction
type GradientInfiniteLight struct {
	topColor    core.Vec3
	bottomColor core.Vec3
}

// NewGradientInfiniteLight creates a new gradient infinite light
func NewGradientInfiniteLight(topColor, bottomColor core.Vec3) *GradientInfiniteLight {
	return &GradientInfiniteLight{
		topColor:    topColor,
		bottomColor: bottomColor,
	}
}

// NewSkyGradient creates the white to sky-blue gradient used by scenes without their own lighting
func NewSkyGradient() *GradientInfiniteLight {
	return NewGradientInfiniteLight(DefaultSkyTop, DefaultSkyBottom)
}

func (gil *GradientInfiniteLight) Type() BackgroundType {
	return BackgroundTypeGradient
}

// Emit maps the normalized direction's Y from [-1,1] to [0,1] and blends bottom to top
func (gil *GradientInfiniteLight) Emit(ray core.Ray) core.Vec3 {
	direction := ray.Direction.Normalize()
	t := 0.5 * (direction.Y + 1.0)
	return gil.bottomColor.Multiply(1.0 - t).Add(gil.topColor.Multiply(t))
}
