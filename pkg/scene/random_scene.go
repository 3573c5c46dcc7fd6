package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/lights"
	"github.com/df07/go-pathtracer/pkg/material"
)

// buildStream is the sampler stream reserved for scene construction, so
// building a scene never shares random numbers with pixel sampling
const buildStream = ^uint64(0)

var (
	skyBlue       = core.NewVec3(0.70, 0.80, 1.00)
	checkerGreen  = core.NewVec3(0.2, 0.3, 0.1)
	checkerWhite  = core.NewVec3(0.9, 0.9, 0.9)
	defaultLookAt = core.NewVec3(0, 0, 0)
)

// bookCamera is the camera shared by the outdoor scenes: looking at the origin
// from (13,2,3) with a 20 degree field of view and a [0,1] shutter
func bookCamera(aperture float64) geometry.CameraConfig {
	return geometry.CameraConfig{
		Center:        core.NewVec3(13, 2, 3),
		LookAt:        defaultLookAt,
		Up:            core.NewVec3(0, 1, 0),
		VFov:          20,
		AspectRatio:   16.0 / 9.0,
		Aperture:      aperture,
		FocusDistance: 10,
		Time0:         0,
		Time1:         1,
	}
}

// NewRandomScene creates the final scene of the first book with moving diffuse
// spheres: a checkered ground, a field of small random spheres and three large ones
func NewRandomScene(seed uint64) *Scene {
	s := NewScene(bookCamera(0.1), DefaultSamplingConfig(), lights.NewUniformInfiniteLight(skyBlue))
	addRandomWorld(s, core.NewSeededSampler(seed, buildStream))
	return s
}

// NewRandomSkyScene is the random scene lit by the white to sky-blue gradient
// instead of a flat background color
func NewRandomSkyScene(seed uint64) *Scene {
	s := NewScene(bookCamera(0.1), DefaultSamplingConfig(), lights.NewSkyGradient())
	addRandomWorld(s, core.NewSeededSampler(seed, buildStream))
	return s
}

func addRandomWorld(s *Scene, sampler core.Sampler) {
	checker := material.NewCheckerTexture(checkerGreen, checkerWhite)
	s.Add(geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, material.NewTexturedLambertian(checker)))

	// Shared by every small glass sphere
	glass := material.NewDielectric(1.5)
	clearance := core.NewVec3(4, 0.2, 0)

	for a := -11; a < 11; a++ {
		for b := -11; b < 11; b++ {
			chooseMat := sampler.Get1D()
			center := core.NewVec3(float64(a)+0.9*sampler.Get1D(), 0.2, float64(b)+0.9*sampler.Get1D())

			if center.Subtract(clearance).Length() <= 0.9 {
				continue
			}

			switch {
			case chooseMat < 0.8:
				// diffuse, bouncing upwards during the shutter interval
				albedo := sampler.Get3D().MultiplyVec(sampler.Get3D())
				center2 := center.Add(core.NewVec3(0, core.RandomInRange(sampler.Get1D(), 0, 0.5), 0))
				s.Add(geometry.NewMovingSphere(center, center2, 0, 1, 0.2, material.NewLambertian(albedo)))
			case chooseMat < 0.95:
				// metal
				albedo := core.NewVec3(
					core.RandomInRange(sampler.Get1D(), 0.5, 1),
					core.RandomInRange(sampler.Get1D(), 0.5, 1),
					core.RandomInRange(sampler.Get1D(), 0.5, 1),
				)
				fuzz := core.RandomInRange(sampler.Get1D(), 0, 0.5)
				s.Add(geometry.NewSphere(center, 0.2, material.NewMetal(albedo, fuzz)))
			default:
				s.Add(geometry.NewSphere(center, 0.2, glass))
			}
		}
	}

	s.Add(
		geometry.NewSphere(core.NewVec3(0, 1, 0), 1.0, material.NewDielectric(1.5)),
		geometry.NewSphere(core.NewVec3(-4, 1, 0), 1.0, material.NewLambertian(core.NewVec3(0.4, 0.2, 0.1))),
		geometry.NewSphere(core.NewVec3(4, 1, 0), 1.0, material.NewMetal(core.NewVec3(0.7, 0.6, 0.5), 0.0)),
	)
}
