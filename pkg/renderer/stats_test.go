package renderer

import (
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
)

func TestCalculateAverageLuminance(t *testing.T) {
	// Sums over 2 samples:
	// Top-left: Red (1, 0, 0) -> Lum = 0.2126
	// Top-right: Green (0, 1, 0) -> Lum = 0.7152
	// Bottom-left: Blue (0, 0, 1) -> Lum = 0.0722
	// Bottom-right: Black (0, 0, 0) -> Lum = 0.0
	buf := NewPixelBuffer(2, 2, 2)
	buf.Set(0, 0, core.NewVec3(2, 0, 0))
	buf.Set(1, 0, core.NewVec3(0, 2, 0))
	buf.Set(0, 1, core.NewVec3(0, 0, 2))

	avgLum := CalculateAverageLuminance(buf)
	expected := 0.25
	tolerance := 0.0001

	if avgLum < expected-tolerance || avgLum > expected+tolerance {
		t.Errorf("Expected average luminosity %f, got %f", expected, avgLum)
	}
}

func TestCalculateAverageLuminance_Empty(t *testing.T) {
	if lum := CalculateAverageLuminance(nil); lum != 0 {
		t.Errorf("Expected 0 for nil buffer, got %f", lum)
	}
	if lum := CalculateAverageLuminance(NewPixelBuffer(0, 0, 1)); lum != 0 {
		t.Errorf("Expected 0 for empty buffer, got %f", lum)
	}
}

func TestPixelBuffer_Layout(t *testing.T) {
	buf := NewPixelBuffer(3, 2, 4)
	buf.Set(2, 1, core.NewVec3(4, 8, 12))

	if buf.Index(2, 1) != 5 {
		t.Errorf("Expected row-major index 5, got %d", buf.Index(2, 1))
	}
	if got := buf.Pixels[5]; got != core.NewVec3(4, 8, 12) {
		t.Errorf("Expected stored sum, got %v", got)
	}
	if got := buf.Color(2, 1); got != core.NewVec3(1, 2, 3) {
		t.Errorf("Expected averaged color (1,2,3), got %v", got)
	}
}
