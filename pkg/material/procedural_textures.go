package material

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// DefaultCheckerFrequency gives squares roughly 0.31 world units wide
const DefaultCheckerFrequency = 10.0

// CheckerTexture is a 3D checkerboard that depends only on the world-space hit point
type CheckerTexture struct {
	Even      ColorSource
	Odd       ColorSource
	Frequency float64
}

// NewCheckerTexture creates a checkerboard alternating between two solid colors
func NewCheckerTexture(even, odd core.Vec3) *CheckerTexture {
	return &CheckerTexture{
		Even:      NewSolidColor(even),
		Odd:       NewSolidColor(odd),
		Frequency: DefaultCheckerFrequency,
	}
}

// NewCheckerTextureFrom creates a checkerboard from two arbitrary color sources
func NewCheckerTextureFrom(even, odd ColorSource, frequency float64) *CheckerTexture {
	if frequency <= 0 {
		frequency = DefaultCheckerFrequency
	}
	return &CheckerTexture{Even: even, Odd: odd, Frequency: frequency}
}

// Evaluate picks the odd or even color from the sign of a product of sines
func (c *CheckerTexture) Evaluate(uv core.Vec2, point core.Vec3) core.Vec3 {
	f := c.Frequency
	sines := math.Sin(f*point.X) * math.Sin(f*point.Y) * math.Sin(f*point.Z)
	if sines < 0 {
		return c.Odd.Evaluate(uv, point)
	}
	return c.Even.Evaluate(uv, point)
}

// NoiseTexture is a marble-like pattern driven by Perlin turbulence
type NoiseTexture struct {
	noise *Perlin
	Scale float64
}

// NewNoiseTexture creates a marble texture. The sampler seeds the lattice only.
func NewNoiseTexture(scale float64, sampler core.Sampler) *NoiseTexture {
	return &NoiseTexture{noise: NewPerlin(sampler), Scale: scale}
}

// Evaluate returns a grey level in [0,1] phase-shifted by turbulence
func (n *NoiseTexture) Evaluate(uv core.Vec2, point core.Vec3) core.Vec3 {
	grey := 0.5 * (1 + math.Sin(n.Scale*point.Z+10*n.noise.Turbulence(point, DefaultTurbulenceDepth)))
	return core.NewVec3(grey, grey, grey)
}
