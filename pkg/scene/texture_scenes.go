package scene

import (
	"fmt"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/lights"
	"github.com/df07/go-pathtracer/pkg/material"
)

// DefaultEarthTexture is the image the earth scene loads when no path is given
const DefaultEarthTexture = "earthmap.jpg"

// NewTwoSpheresScene creates two large checkered spheres touching at the origin
func NewTwoSpheresScene() *Scene {
	s := NewScene(bookCamera(0), DefaultSamplingConfig(), lights.NewUniformInfiniteLight(skyBlue))

	checker := material.NewTexturedLambertian(material.NewCheckerTexture(checkerGreen, checkerWhite))
	s.Add(
		geometry.NewSphere(core.NewVec3(0, -10, 0), 10, checker),
		geometry.NewSphere(core.NewVec3(0, 10, 0), 10, checker),
	)
	return s
}

// NewTwoPerlinSpheresScene creates a marble ground and a marble sphere
func NewTwoPerlinSpheresScene(seed uint64) *Scene {
	s := NewScene(bookCamera(0), DefaultSamplingConfig(), lights.NewUniformInfiniteLight(skyBlue))
	addPerlinSpheres(s, seed)
	return s
}

// NewEarthScene creates a single image-textured globe. A texture that cannot be
// loaded fails here, before any rendering starts.
func NewEarthScene(texturePath string) (*Scene, error) {
	if texturePath == "" {
		texturePath = DefaultEarthTexture
	}
	texture, err := material.NewImageTextureFromFile(texturePath, material.FilterBilinear)
	if err != nil {
		return nil, fmt.Errorf("earth scene: %w", err)
	}

	s := NewScene(bookCamera(0), DefaultSamplingConfig(), lights.NewUniformInfiniteLight(skyBlue))
	s.Add(geometry.NewSphere(core.NewVec3(0, 0, 0), 2, material.NewTexturedLambertian(texture)))
	return s, nil
}

// NewSimpleLightScene lights the marble spheres with a single rectangular
// light and no environment
func NewSimpleLightScene(seed uint64) *Scene {
	camera := bookCamera(0)
	camera.Center = core.NewVec3(26, 3, 6)
	camera.LookAt = core.NewVec3(0, 2, 0)

	sampling := DefaultSamplingConfig()
	sampling.SamplesPerPixel = 400

	s := NewScene(camera, sampling, lights.NewUniformInfiniteLight(core.Vec3{}))
	addPerlinSpheres(s, seed)
	s.Add(geometry.NewXYRect(3, 5, 1, 3, -2, material.NewDiffuseLight(core.NewVec3(4, 4, 4))))
	return s
}

func addPerlinSpheres(s *Scene, seed uint64) {
	marble := material.NewTexturedLambertian(material.NewNoiseTexture(4, core.NewSeededSampler(seed, buildStream)))
	s.Add(
		geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, marble),
		geometry.NewSphere(core.NewVec3(0, 2, 0), 2, marble),
	)
}
