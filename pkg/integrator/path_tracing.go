package integrator

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/lights"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// MinHitDistance keeps scattered rays from re-hitting the surface they left
const MinHitDistance = 0.001

// PathTracingIntegrator implements unidirectional path tracing with a fixed bounce budget
type PathTracingIntegrator struct {
	config scene.SamplingConfig
}

// NewPathTracingIntegrator creates a new path tracing integrator
func NewPathTracingIntegrator(config scene.SamplingConfig) *PathTracingIntegrator {
	return &PathTracingIntegrator{
		config: config,
	}
}

// RayColor computes the color for a single ray using the scene's shapes and background
func (pt *PathTracingIntegrator) RayColor(ray core.Ray, s *scene.Scene, sampler core.Sampler) core.Vec3 {
	return pt.rayColor(ray, s.Shapes, s.Background, pt.config.MaxDepth, sampler)
}

// rayColor follows one path, adding the emission seen at every bounce scaled by
// the product of attenuations so far. The depth counter is the only termination guarantee.
func (pt *PathTracingIntegrator) rayColor(ray core.Ray, world geometry.Shape, background lights.Background, depth int, sampler core.Sampler) core.Vec3 {
	color := core.Vec3{}
	throughput := core.NewVec3(1, 1, 1)

	for ; depth > 0; depth-- {
		hit, isHit := world.Hit(ray, MinHitDistance, math.Inf(1))
		if !isHit {
			return color.Add(throughput.MultiplyVec(background.Emit(ray)))
		}
		if hit.Material == nil {
			return color
		}

		color = color.Add(throughput.MultiplyVec(material.Emitted(ray, *hit)))

		scatter, didScatter := hit.Material.Scatter(ray, *hit, sampler)
		if !didScatter {
			return color
		}

		throughput = throughput.MultiplyVec(scatter.Attenuation)
		ray = scatter.Scattered
	}

	// Bounce budget exhausted: no more light is gathered
	return color
}

// rayColorRecursive is the direct recursive statement of rayColor, used to check
// that both consume samples in the same order and agree numerically
func (pt *PathTracingIntegrator) rayColorRecursive(ray core.Ray, world geometry.Shape, background lights.Background, depth int, sampler core.Sampler) core.Vec3 {
	if depth <= 0 {
		return core.Vec3{}
	}

	hit, isHit := world.Hit(ray, MinHitDistance, math.Inf(1))
	if !isHit {
		return background.Emit(ray)
	}
	if hit.Material == nil {
		return core.Vec3{}
	}

	emitted := material.Emitted(ray, *hit)
	scatter, didScatter := hit.Material.Scatter(ray, *hit, sampler)
	if !didScatter {
		return emitted
	}

	return emitted.Add(scatter.Attenuation.MultiplyVec(
		pt.rayColorRecursive(scatter.Scattered, world, background, depth-1, sampler)))
}
