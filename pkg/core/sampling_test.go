package core

import (
	"math"
	"testing"
)

func TestSampleOnUnitSphere_UnitLength(t *testing.T) {
	sampler := NewSeededSampler(42, 0)
	for i := 0; i < 1000; i++ {
		v := SampleOnUnitSphere(sampler.Get2D())
		if math.Abs(v.Length()-1) > 1e-9 {
			t.Fatalf("Sample %d not on unit sphere: length %f", i, v.Length())
		}
	}
}

func TestSamplePointInUnitSphere_Inside(t *testing.T) {
	sampler := NewSeededSampler(7, 3)
	for i := 0; i < 1000; i++ {
		p := SamplePointInUnitSphere(sampler.Get3D())
		if p.Length() > 1+1e-12 {
			t.Fatalf("Sample %d outside unit sphere: %v", i, p)
		}
	}
}

func TestSamplePointInUnitDisk(t *testing.T) {
	tests := []struct {
		name   string
		sample Vec2
	}{
		{"center", NewVec2(0.5, 0.5)},
		{"corner", NewVec2(0, 0)},
		{"edge", NewVec2(1, 0.5)},
		{"off axis", NewVec2(0.8, 0.1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := SamplePointInUnitDisk(tt.sample)
			if p.Z != 0 {
				t.Errorf("Disk sample should lie in z=0, got %v", p)
			}
			if p.Length() > 1+1e-12 {
				t.Errorf("Disk sample outside unit disk: %v", p)
			}
		})
	}
}

func TestSeededSampler_Deterministic(t *testing.T) {
	a := NewSeededSampler(99, 12)
	b := NewSeededSampler(99, 12)
	c := NewSeededSampler(99, 13)

	differs := false
	for i := 0; i < 16; i++ {
		va, vb, vc := a.Get1D(), b.Get1D(), c.Get1D()
		if va != vb {
			t.Fatalf("Same seed and stream diverged at %d: %f vs %f", i, va, vb)
		}
		if va != vc {
			differs = true
		}
	}
	if !differs {
		t.Error("Different streams should produce different sequences")
	}
}

func TestRandomInRange(t *testing.T) {
	if got := RandomInRange(0.25, 2, 6); got != 3 {
		t.Errorf("Expected 3, got %f", got)
	}
}
