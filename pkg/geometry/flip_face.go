package geometry

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// FlipFace swaps which side of the wrapped shape counts as the front face.
// Used to point one-sided area lights into a room.
type FlipFace struct {
	Shape Shape
}

// NewFlipFace wraps a shape so its back face becomes the front face
func NewFlipFace(shape Shape) *FlipFace {
	return &FlipFace{Shape: shape}
}

// Hit delegates to the wrapped shape and inverts the front-face flag.
// The shading normal still opposes the incoming ray.
func (f *FlipFace) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	hit, ok := f.Shape.Hit(ray, tMin, tMax)
	if !ok {
		return nil, false
	}
	hit.FrontFace = !hit.FrontFace
	return hit, true
}

// Validate validates the wrapped shape
func (f *FlipFace) Validate() error {
	if v, ok := f.Shape.(Validator); ok {
		return v.Validate()
	}
	return nil
}
