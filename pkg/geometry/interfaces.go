package geometry

import (
	"errors"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// ErrInvalidShape is returned when a primitive's parameters describe no usable surface
var ErrInvalidShape = errors.New("invalid shape")

// Shape interface for objects that can be hit by rays.
// Hit reports the nearest intersection with t strictly inside [tMin, tMax].
type Shape interface {
	Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool)
}

// Validator is implemented by shapes that can check their own parameters
type Validator interface {
	Validate() error
}

// validateMaterial checks a shape's material when it can validate itself
func validateMaterial(mat material.Material) error {
	if v, ok := mat.(material.Validator); ok {
		return v.Validate()
	}
	return nil
}
