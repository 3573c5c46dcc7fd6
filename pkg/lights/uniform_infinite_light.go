package lights

import (
	"github.com/df07/go-pathtracer/pkg/core"
)

// UniformInfiniteLight represents a uniform infinite area light (constant emission in all directions).
// A black UniformInfiniteLight makes emissive surfaces the only light in the scene.
type UniformInfiniteLight struct {
	emission core.Vec3
}

// NewUniformInfiniteLight creates a new uniform infinite light
func NewUniformInfiniteLight(emission core.Vec3) *UniformInfiniteLight {
	return &UniformInfiniteLight{emission: emission}
}

func (uil *UniformInfiniteLight) Type() BackgroundType {
	return BackgroundTypeUniform
}

// Emit returns the same color for every direction
func (uil *UniformInfiniteLight) Emit(ray core.Ray) core.Vec3 {
	return uil.emission
}
