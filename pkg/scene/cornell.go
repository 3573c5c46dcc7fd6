package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/lights"
	"github.com/df07/go-pathtracer/pkg/material"
)

// NewCornellScene creates the empty Cornell box: five walls made of
// axis-aligned rectangles and a ceiling light, with no environment light
func NewCornellScene() *Scene {
	config := geometry.CameraConfig{
		Center:        core.NewVec3(278, 278, -800), // Position camera outside the box looking in
		LookAt:        core.NewVec3(278, 278, 0),    // Look at the center of the box
		Up:            core.NewVec3(0, 1, 0),        // Standard up direction
		AspectRatio:   1.0,                          // Square aspect ratio for Cornell box
		VFov:          40.0,
		Aperture:      0.0, // No depth of field for Cornell box
		FocusDistance: 10.0,
		Time0:         0,
		Time1:         1,
	}

	samplingConfig := SamplingConfig{
		Width:           600,
		Height:          600,
		SamplesPerPixel: 200,
		MaxDepth:        50,
	}

	s := NewScene(config, samplingConfig, lights.NewUniformInfiniteLight(core.Vec3{}))

	red := material.NewLambertian(core.NewVec3(0.65, 0.05, 0.05))
	white := material.NewLambertian(core.NewVec3(0.73, 0.73, 0.73))
	green := material.NewLambertian(core.NewVec3(0.12, 0.45, 0.15))
	light := material.NewDiffuseLight(core.NewVec3(15, 15, 15))

	// Cornell box dimensions (standard 555x555x555 units)
	boxSize := 555.0

	s.Add(
		geometry.NewYZRect(0, boxSize, 0, boxSize, boxSize, green), // Left wall as seen from the camera
		geometry.NewYZRect(0, boxSize, 0, boxSize, 0, red),         // Right wall
		// The light faces down into the box; emission is one-sided
		geometry.NewFlipFace(geometry.NewXZRect(213, 343, 227, 332, 554, light)),
		geometry.NewXZRect(0, boxSize, 0, boxSize, 0, white),       // Floor
		geometry.NewXZRect(0, boxSize, 0, boxSize, boxSize, white), // Ceiling
		geometry.NewXYRect(0, boxSize, 0, boxSize, boxSize, white), // Back wall
	)

	return s
}
