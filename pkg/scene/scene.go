package scene

import (
	"errors"
	"fmt"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/lights"
	"github.com/df07/go-pathtracer/pkg/material"
)

// ErrInvalidScene is returned by Preprocess when a scene cannot be rendered as configured
var ErrInvalidScene = errors.New("invalid scene")

// Scene contains all the elements needed for rendering.
// Shapes are append-only during setup; after Preprocess the scene is read-only
// and shared by every render worker without locking.
type Scene struct {
	Camera         *geometry.Camera
	Shapes         *geometry.ShapeList // Objects in the scene, traversed linearly
	Background     lights.Background   // What escaped rays see
	SamplingConfig SamplingConfig
	CameraConfig   geometry.CameraConfig
}

// SamplingConfig contains rendering configuration
type SamplingConfig struct {
	Width           int // Image width
	Height          int // Image height
	SamplesPerPixel int // Number of rays per pixel
	MaxDepth        int // Maximum ray bounce depth
}

// DefaultSamplingConfig is 400x225 at 100 samples per pixel and 50 bounces
func DefaultSamplingConfig() SamplingConfig {
	return SamplingConfig{
		Width:           400,
		Height:          225,
		SamplesPerPixel: 100,
		MaxDepth:        50,
	}
}

// Validate checks image size and sampling limits
func (c SamplingConfig) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: image size %dx%d", ErrInvalidScene, c.Width, c.Height)
	}
	if c.SamplesPerPixel <= 0 {
		return fmt.Errorf("%w: samples per pixel %d", ErrInvalidScene, c.SamplesPerPixel)
	}
	if c.MaxDepth < 0 {
		return fmt.Errorf("%w: negative max depth %d", ErrInvalidScene, c.MaxDepth)
	}
	return nil
}

// HeightForAspect returns the image height for a width and aspect ratio, at least 1
func HeightForAspect(width int, aspectRatio float64) int {
	return max(1, int(float64(width)/aspectRatio))
}

// NewScene creates an empty scene
func NewScene(cameraConfig geometry.CameraConfig, samplingConfig SamplingConfig, background lights.Background) *Scene {
	return &Scene{
		Shapes:         geometry.NewShapeList(),
		Background:     background,
		SamplingConfig: samplingConfig,
		CameraConfig:   cameraConfig,
	}
}

// Add appends shapes to the scene
func (s *Scene) Add(shapes ...geometry.Shape) {
	s.Shapes.Add(shapes...)
}

// Hit returns the nearest intersection among all shapes in the scene
func (s *Scene) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	return s.Shapes.Hit(ray, tMin, tMax)
}

// UseSkyGradient replaces the background with the white to sky-blue gradient
func (s *Scene) UseSkyGradient() {
	s.Background = lights.NewSkyGradient()
}

// Preprocess validates the scene and builds its camera. It must be called
// once after setup and before rendering.
func (s *Scene) Preprocess() error {
	if err := s.SamplingConfig.Validate(); err != nil {
		return err
	}
	if s.Background == nil {
		return fmt.Errorf("%w: no background", ErrInvalidScene)
	}
	if s.Shapes == nil {
		s.Shapes = geometry.NewShapeList()
	}
	if err := s.Shapes.Validate(); err != nil {
		return err
	}

	// The camera always follows the image shape
	s.CameraConfig.AspectRatio = float64(s.SamplingConfig.Width) / float64(s.SamplingConfig.Height)
	camera, err := geometry.NewCamera(s.CameraConfig)
	if err != nil {
		return err
	}
	s.Camera = camera
	return nil
}

// GetPrimitiveCount returns the number of shapes in the scene
func (s *Scene) GetPrimitiveCount() int {
	return s.Shapes.Len()
}
