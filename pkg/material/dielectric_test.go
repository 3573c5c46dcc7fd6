package material

import (
	"errors"
	"math"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
)

func TestDielectric_Validate(t *testing.T) {
	tests := []struct {
		name    string
		ior     float64
		wantErr bool
	}{
		{"glass", 1.5, false},
		{"bubble", 1.0 / 1.33, false},
		{"zero", 0, true},
		{"negative", -1.5, true},
		{"nan", math.NaN(), true},
		{"infinite", math.Inf(1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewDielectric(tt.ior).Validate()
			if tt.wantErr && !errors.Is(err, ErrInvalidMaterial) {
				t.Errorf("Expected ErrInvalidMaterial, got %v", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Unexpected error: %v", err)
			}
		})
	}
}

func TestDielectricBasicBehavior(t *testing.T) {
	glass := NewDielectric(1.5)

	rayDirection := core.NewVec3(1, -1, 0).Normalize() // 45-degree angle
	ray := core.Ray{Origin: core.NewVec3(0, 1, 0), Direction: rayDirection}

	hit := HitRecord{
		Point:     core.NewVec3(0, 0, 0),
		Normal:    core.NewVec3(0, 1, 0),
		T:         1.0,
		FrontFace: true,
		Material:  glass,
	}

	result, scattered := glass.Scatter(ray, hit, core.NewSeededSampler(42, 0))
	if !scattered {
		t.Error("Dielectric should always scatter")
	}

	expectedAttenuation := core.NewVec3(1.0, 1.0, 1.0)
	if result.Attenuation != expectedAttenuation {
		t.Errorf("Expected attenuation %v, got %v", expectedAttenuation, result.Attenuation)
	}

	hasReflection := false
	hasRefraction := false

	sampler := core.NewSeededSampler(7, 0)
	for i := 0; i < 5000 && (!hasReflection || !hasRefraction); i++ {
		result, ok := glass.Scatter(ray, hit, sampler)
		if !ok {
			t.Fatal("Dielectric should never absorb")
		}
		if result.Scattered.Direction.Y > 0 {
			hasReflection = true
		} else {
			hasRefraction = true
		}
	}

	if !hasRefraction {
		t.Error("Expected to see refraction in at least some cases")
	}
	if !hasReflection {
		t.Error("Expected Schlick reflectance to pick reflection at least once")
	}
}

func TestDielectricTotalInternalReflection(t *testing.T) {
	glass := NewDielectric(1.5)

	// Ray inside glass hitting the surface at a steep angle (beyond critical angle ~41.8°)
	direction := core.NewVec3(math.Sin(math.Pi/3), math.Cos(math.Pi/3), 0) // 60 degrees from normal
	ray := core.NewRay(core.NewVec3(0, -1, 0), direction)

	hit := HitRecord{
		Point:     core.NewVec3(0, 0, 0),
		Normal:    core.NewVec3(0, -1, 0), // Oriented against the ray
		FrontFace: false,                  // Exiting the glass
		Material:  glass,
	}

	sampler := core.NewSeededSampler(1, 1)
	for i := 0; i < 100; i++ {
		result, ok := glass.Scatter(ray, hit, sampler)
		if !ok {
			t.Fatal("Dielectric should always scatter")
		}
		// Total internal reflection keeps the ray inside (y < 0)
		if result.Scattered.Direction.Y >= 0 {
			t.Fatalf("Expected total internal reflection, got %v", result.Scattered.Direction)
		}
	}
}

func TestDielectricMatchedIndexIsUndeviated(t *testing.T) {
	// Index 1 on both sides and normal incidence: reflectance is zero, so refraction is always chosen
	air := NewDielectric(1.0)
	direction := core.NewVec3(0, 0, -1)
	ray := core.NewRay(core.NewVec3(0, 0, 1), direction)
	hit := HitRecord{
		Point:     core.NewVec3(0, 0, 0),
		Normal:    core.NewVec3(0, 0, 1),
		FrontFace: true,
	}

	sampler := core.NewSeededSampler(3, 9)
	for i := 0; i < 50; i++ {
		result, ok := air.Scatter(ray, hit, sampler)
		if !ok {
			t.Fatal("Dielectric should always scatter")
		}
		if result.Scattered.Direction.Subtract(direction).Length() > 1e-12 {
			t.Fatalf("Expected undeviated direction %v, got %v", direction, result.Scattered.Direction)
		}
	}
}

func TestReflectance(t *testing.T) {
	tests := []struct {
		name     string
		cosine   float64
		ratio    float64
		expected float64
	}{
		{"normal incidence glass", 1.0, 1.0 / 1.5, 0.04},
		{"grazing incidence", 0.0, 1.0 / 1.5, 1.0},
		{"matched index normal incidence", 1.0, 1.0, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Reflectance(tt.cosine, tt.ratio)
			if math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("Expected %f, got %f", tt.expected, got)
			}
		})
	}
}
