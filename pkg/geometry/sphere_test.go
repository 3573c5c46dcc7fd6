package geometry

import (
	"errors"
	"math"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

func TestSphere_Hit_Miss(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, nil)
	ray := core.NewRay(core.NewVec3(2, 0, 0), core.NewVec3(0, 1, 0))

	hit, isHit := sphere.Hit(ray, 0.001, 1000.0)
	if isHit {
		t.Errorf("Expected miss, but got hit at t=%f", hit.T)
	}
}

func TestSphere_Hit_FrontAndBackFace(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, nil)

	tests := []struct {
		name           string
		rayOrigin      core.Vec3
		rayDirection   core.Vec3
		expectedT      float64
		expectedFront  bool
		expectedNormal core.Vec3
	}{
		{
			name:           "front face hit",
			rayOrigin:      core.NewVec3(0, 0, 2),
			rayDirection:   core.NewVec3(0, 0, -1),
			expectedT:      1.0,
			expectedFront:  true,
			expectedNormal: core.NewVec3(0, 0, 1),
		},
		{
			name:           "back face hit",
			rayOrigin:      core.NewVec3(0, 0, 0),
			rayDirection:   core.NewVec3(0, 0, 1),
			expectedT:      1.0,
			expectedFront:  false,
			expectedNormal: core.NewVec3(0, 0, -1),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := core.NewRay(tt.rayOrigin, tt.rayDirection)
			hit, isHit := sphere.Hit(ray, 0.001, 1000.0)

			if !isHit {
				t.Fatal("Expected hit, but got miss")
			}
			if math.Abs(hit.T-tt.expectedT) > 1e-9 {
				t.Errorf("Expected t=%f, got t=%f", tt.expectedT, hit.T)
			}
			if hit.FrontFace != tt.expectedFront {
				t.Errorf("Expected FrontFace=%t, got %t", tt.expectedFront, hit.FrontFace)
			}
			if hit.Normal.Subtract(tt.expectedNormal).Length() > 1e-9 {
				t.Errorf("Expected normal %v, got %v", tt.expectedNormal, hit.Normal)
			}
		})
	}
}

func TestSphere_Hit_IntervalBounds(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, nil)
	ray := core.NewRay(core.NewVec3(0, 0, 3), core.NewVec3(0, 0, -1))

	tests := []struct {
		name      string
		tMin      float64
		tMax      float64
		expectHit bool
		expectedT float64
	}{
		{"both roots inside", 0.001, 100, true, 2},
		{"near root excluded, far root used", 2.5, 100, true, 4},
		{"both roots excluded by tMax", 0.001, 1.5, false, 0},
		{"both roots excluded by tMin", 4.5, 100, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, ok := sphere.Hit(ray, tt.tMin, tt.tMax)
			if ok != tt.expectHit {
				t.Fatalf("Expected hit=%t, got %t", tt.expectHit, ok)
			}
			if ok && math.Abs(hit.T-tt.expectedT) > 1e-9 {
				t.Errorf("Expected t=%f, got %f", tt.expectedT, hit.T)
			}
		})
	}
}

// TestSphere_Hit_RandomRays checks the hit predicate against closest-approach
// geometry and the normal orientation for many random rays.
func TestSphere_Hit_RandomRays(t *testing.T) {
	center := core.NewVec3(0.5, -0.25, 1)
	radius := 1.3
	sphere := NewSphere(center, radius, nil)
	sampler := core.NewSeededSampler(99, 0)

	const tMin, tMax = 0.001, 50.0

	for i := 0; i < 2000; i++ {
		origin := center.Add(core.SampleOnUnitSphere(sampler.Get2D()).Multiply(1 + 4*sampler.Get1D()))
		direction := core.SampleOnUnitSphere(sampler.Get2D())
		ray := core.NewRay(origin, direction)

		hit, ok := sphere.Hit(ray, tMin, tMax)

		// Closest approach of the infinite line, then check the roots that lie in range
		oc := origin.Subtract(center)
		tc := -oc.Dot(direction)
		d2 := oc.LengthSquared() - tc*tc
		expected := false
		if d2 < radius*radius {
			half := math.Sqrt(radius*radius - d2)
			for _, root := range []float64{tc - half, tc + half} {
				if root > tMin && root < tMax {
					expected = true
				}
			}
		}

		// Skip rays that graze within floating tolerance of the silhouette or interval ends
		if math.Abs(d2-radius*radius) < 1e-9 {
			continue
		}
		if ok != expected {
			t.Fatalf("ray %d: hit=%t, expected %t (origin %v dir %v)", i, ok, expected, origin, direction)
		}
		if !ok {
			continue
		}
		if math.Abs(hit.Normal.Length()-1) > 1e-9 {
			t.Fatalf("ray %d: normal not unit length: %v", i, hit.Normal)
		}
		if hit.Normal.Dot(direction) > 1e-12 {
			t.Fatalf("ray %d: normal %v does not oppose the ray %v", i, hit.Normal, direction)
		}
	}
}

func TestSphere_Hit_UVAndMaterial(t *testing.T) {
	mat := material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, mat)

	tests := []struct {
		name   string
		origin core.Vec3
		dir    core.Vec3
		uv     core.Vec2
	}{
		{"equator +z", core.NewVec3(0, 0, 5), core.NewVec3(0, 0, -1), core.NewVec2(0.25, 0.5)},
		{"equator +x", core.NewVec3(5, 0, 0), core.NewVec3(-1, 0, 0), core.NewVec2(0.5, 0.5)},
		{"north pole", core.NewVec3(0, 5, 0), core.NewVec3(0, -1, 0), core.NewVec2(0.5, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, ok := sphere.Hit(core.NewRay(tt.origin, tt.dir), 0.001, 100)
			if !ok {
				t.Fatal("Expected hit")
			}
			if hit.Material != mat {
				t.Error("Hit record should carry the sphere's material")
			}
			// u is undefined at the poles; only check v there
			if tt.name != "north pole" && math.Abs(hit.UV.X-tt.uv.X) > 1e-9 {
				t.Errorf("Expected u=%f, got %f", tt.uv.X, hit.UV.X)
			}
			if math.Abs(hit.UV.Y-tt.uv.Y) > 1e-9 {
				t.Errorf("Expected v=%f, got %f", tt.uv.Y, hit.UV.Y)
			}
		})
	}
}

func TestSphere_NegativeRadiusFlipsOutwardNormal(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), -1.0, nil)
	hit, ok := sphere.Hit(core.NewRay(core.NewVec3(0, 0, 2), core.NewVec3(0, 0, -1)), 0.001, 100)
	if !ok {
		t.Fatal("Expected hit")
	}
	// The outward normal points inwards, so an outside ray hits the "back" face
	if hit.FrontFace {
		t.Error("Negative radius sphere should report a back-face hit from outside")
	}
	if hit.Normal.Dot(core.NewVec3(0, 0, -1)) > 0 {
		t.Errorf("Shading normal must still oppose the ray, got %v", hit.Normal)
	}
}

func TestSphere_Validate(t *testing.T) {
	if err := NewSphere(core.NewVec3(0, 0, 0), 1, nil).Validate(); err != nil {
		t.Errorf("Unexpected error: %v", err)
	}
	if err := NewSphere(core.NewVec3(0, 0, 0), -0.45, nil).Validate(); err != nil {
		t.Errorf("Negative radius is allowed, got %v", err)
	}
	if err := NewSphere(core.NewVec3(0, 0, 0), 0, nil).Validate(); err == nil {
		t.Error("Expected error for zero radius")
	}
	if err := NewSphere(core.NewVec3(math.NaN(), 0, 0), 1, nil).Validate(); err == nil {
		t.Error("Expected error for NaN center")
	}
}

func TestMovingSphere_Center(t *testing.T) {
	s := NewMovingSphere(core.NewVec3(0, 0, 0), core.NewVec3(0, 2, 0), 0, 1, 0.5, nil)

	tests := []struct {
		time     float64
		expected core.Vec3
	}{
		{0, core.NewVec3(0, 0, 0)},
		{0.5, core.NewVec3(0, 1, 0)},
		{1, core.NewVec3(0, 2, 0)},
	}
	for _, tt := range tests {
		if got := s.Center(tt.time); got.Subtract(tt.expected).Length() > 1e-12 {
			t.Errorf("time %f: expected %v, got %v", tt.time, tt.expected, got)
		}
	}
}

func TestMovingSphere_HitUsesRayTime(t *testing.T) {
	s := NewMovingSphere(core.NewVec3(0, 0, 0), core.NewVec3(0, 2, 0), 0, 1, 0.5, nil)
	direction := core.NewVec3(0, 0, -1)

	// Horizontal ray at y=2 misses the sphere at t=0 and hits it at t=1
	early := core.NewRayAtTime(core.NewVec3(0, 2, 5), direction, 0)
	late := core.NewRayAtTime(core.NewVec3(0, 2, 5), direction, 1)

	if _, ok := s.Hit(early, 0.001, 100); ok {
		t.Error("Ray at time 0 should miss the sphere")
	}
	hit, ok := s.Hit(late, 0.001, 100)
	if !ok {
		t.Fatal("Ray at time 1 should hit the sphere")
	}
	if math.Abs(hit.T-4.5) > 1e-9 {
		t.Errorf("Expected t=4.5, got %f", hit.T)
	}
}

func TestShapes_NonFiniteRayMisses(t *testing.T) {
	nanDir := core.NewVec3(math.NaN(), math.NaN(), math.NaN())
	tests := []struct {
		name  string
		shape Shape
		ray   core.Ray
	}{
		{"sphere nan direction", NewSphere(core.NewVec3(0, 0, -2), 1, nil), core.NewRay(core.Vec3{}, nanDir)},
		{"sphere nan origin", NewSphere(core.NewVec3(0, 0, -2), 1, nil),
			core.NewRay(core.NewVec3(math.NaN(), 0, 0), core.NewVec3(0, 0, -1))},
		{"moving sphere nan direction", NewMovingSphere(core.NewVec3(0, 0, -2), core.NewVec3(0, 1, -2), 0, 1, 1, nil),
			core.NewRayAtTime(core.Vec3{}, nanDir, 0.5)},
		{"moving sphere nan time", NewMovingSphere(core.NewVec3(0, 0, -2), core.NewVec3(0, 1, -2), 0, 1, 1, nil),
			core.NewRayAtTime(core.Vec3{}, core.NewVec3(0, 0, -1), math.NaN())},
		{"rect nan direction", NewXYRect(-1, 1, -1, 1, -2, nil), core.NewRay(core.Vec3{}, nanDir)},
		{"rect nan in-plane component", NewXYRect(-1, 1, -1, 1, -2, nil),
			core.NewRay(core.Vec3{}, core.NewVec3(math.NaN(), 0, -1))},
		{"rect nan origin", NewXZRect(-1, 1, -1, 1, 2, nil),
			core.NewRay(core.NewVec3(0, 0, math.NaN()), core.NewVec3(0, 1, 0))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if hit, ok := tt.shape.Hit(tt.ray, 0.001, math.Inf(1)); ok {
				t.Errorf("Expected a miss, got a hit at t=%v", hit.T)
			}
		})
	}
}

func TestShapes_ValidateMaterial(t *testing.T) {
	badGlass := material.NewDielectric(-1.5)
	tests := []struct {
		name    string
		shape   Validator
		wantErr bool
	}{
		{"sphere with glass", NewSphere(core.Vec3{}, 1, material.NewDielectric(1.5)), false},
		{"sphere with bad glass", NewSphere(core.Vec3{}, 1, badGlass), true},
		{"moving sphere with bad glass", NewMovingSphere(core.Vec3{}, core.NewVec3(0, 1, 0), 0, 1, 1, badGlass), true},
		{"rect with bad glass", NewXYRect(0, 1, 0, 1, 0, badGlass), true},
		{"flipped rect with bad glass", NewFlipFace(NewXYRect(0, 1, 0, 1, 0, badGlass)), true},
		{"rect with metal", NewXYRect(0, 1, 0, 1, 0, material.NewMetal(core.NewVec3(1, 1, 1), 0)), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.shape.Validate()
			if tt.wantErr && !errors.Is(err, material.ErrInvalidMaterial) {
				t.Errorf("Expected ErrInvalidMaterial, got %v", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Unexpected error: %v", err)
			}
		})
	}
}

func TestMovingSphere_Validate(t *testing.T) {
	if err := NewMovingSphere(core.Vec3{}, core.NewVec3(0, 1, 0), 0, 1, 0.2, nil).Validate(); err != nil {
		t.Errorf("Unexpected error: %v", err)
	}
	if err := NewMovingSphere(core.Vec3{}, core.NewVec3(0, 1, 0), 1, 1, 0.2, nil).Validate(); err == nil {
		t.Error("Expected error for an empty time interval")
	}
}
