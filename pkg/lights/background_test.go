package lights

import (
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
)

func TestGradientInfiniteLight_Type(t *testing.T) {
	light := NewGradientInfiniteLight(
		core.NewVec3(0, 0, 1), // blue
		core.NewVec3(1, 1, 1), // white
	)

	if light.Type() != BackgroundTypeGradient {
		t.Errorf("Expected BackgroundTypeGradient, got %v", light.Type())
	}
}

func TestGradientInfiniteLight_Emit(t *testing.T) {
	topColor := core.NewVec3(0, 0, 1)    // blue
	bottomColor := core.NewVec3(1, 1, 1) // white

	light := NewGradientInfiniteLight(topColor, bottomColor)

	tests := []struct {
		direction core.Vec3
		expected  core.Vec3
		name      string
	}{
		{core.NewVec3(0, 1, 0), topColor, "Top direction"},
		{core.NewVec3(0, -1, 0), bottomColor, "Bottom direction"},
		{core.NewVec3(0, 0, 1), core.NewVec3(0.5, 0.5, 1), "Middle direction"},
		{core.NewVec3(0, 7, 0), topColor, "Unnormalized direction"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := light.Emit(core.NewRay(core.NewVec3(3, 2, 1), tt.direction))
			if got.Subtract(tt.expected).Length() > 1e-12 {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestSkyGradient_Horizon(t *testing.T) {
	sky := NewSkyGradient()
	horizon := sky.Emit(core.NewRay(core.Vec3{}, core.NewVec3(1, 0, 0)))
	expected := DefaultSkyBottom.Add(DefaultSkyTop).Multiply(0.5)
	if horizon.Subtract(expected).Length() > 1e-12 {
		t.Errorf("Expected %v at the horizon, got %v", expected, horizon)
	}
}

func TestUniformInfiniteLight_Emit(t *testing.T) {
	emission := core.NewVec3(0.7, 0.8, 1.0)
	light := NewUniformInfiniteLight(emission)

	if light.Type() != BackgroundTypeUniform {
		t.Errorf("Expected BackgroundTypeUniform, got %v", light.Type())
	}

	for _, dir := range []core.Vec3{
		core.NewVec3(0, 1, 0),
		core.NewVec3(0, -1, 0),
		core.NewVec3(1, 2, -3),
	} {
		if got := light.Emit(core.NewRay(core.Vec3{}, dir)); !got.Equals(emission) {
			t.Errorf("Direction %v: expected %v, got %v", dir, emission, got)
		}
	}
}
