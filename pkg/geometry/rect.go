package geometry

import (
	"fmt"
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// RectPlane names the axis-aligned plane a rectangle lies in
type RectPlane int

const (
	PlaneXY RectPlane = iota // fixed z, outward normal +Z
	PlaneXZ                  // fixed y, outward normal +Y
	PlaneYZ                  // fixed x, outward normal +X
)

func (p RectPlane) String() string {
	switch p {
	case PlaneXY:
		return "xy"
	case PlaneXZ:
		return "xz"
	case PlaneYZ:
		return "yz"
	}
	return fmt.Sprintf("RectPlane(%d)", int(p))
}

// axes returns the two in-plane axis indices and the fixed axis index
func (p RectPlane) axes() (a, b, fixed int) {
	switch p {
	case PlaneXZ:
		return 0, 2, 1
	case PlaneYZ:
		return 1, 2, 0
	default:
		return 0, 1, 2
	}
}

// AxisRect is a rectangle [A0,A1]x[B0,B1] on the plane where the fixed axis equals K.
// The front face is the side the outward normal points to.
type AxisRect struct {
	Plane    RectPlane
	A0, A1   float64
	B0, B1   float64
	K        float64
	Material material.Material
}

// NewXYRect creates a rectangle spanning x0..x1, y0..y1 at z = k
func NewXYRect(x0, x1, y0, y1, k float64, mat material.Material) *AxisRect {
	return &AxisRect{Plane: PlaneXY, A0: x0, A1: x1, B0: y0, B1: y1, K: k, Material: mat}
}

// NewXZRect creates a rectangle spanning x0..x1, z0..z1 at y = k
func NewXZRect(x0, x1, z0, z1, k float64, mat material.Material) *AxisRect {
	return &AxisRect{Plane: PlaneXZ, A0: x0, A1: x1, B0: z0, B1: z1, K: k, Material: mat}
}

// NewYZRect creates a rectangle spanning y0..y1, z0..z1 at x = k
func NewYZRect(y0, y1, z0, z1, k float64, mat material.Material) *AxisRect {
	return &AxisRect{Plane: PlaneYZ, A0: y0, A1: y1, B0: z0, B1: z1, K: k, Material: mat}
}

// Validate requires both in-plane ranges to be non-empty and finite
func (r *AxisRect) Validate() error {
	for _, v := range []float64{r.A0, r.A1, r.B0, r.B1, r.K} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s rect has non-finite bound", ErrInvalidShape, r.Plane)
		}
	}
	if !(r.A0 < r.A1) || !(r.B0 < r.B1) {
		return fmt.Errorf("%w: %s rect bounds [%v,%v]x[%v,%v] are empty",
			ErrInvalidShape, r.Plane, r.A0, r.A1, r.B0, r.B1)
	}
	return validateMaterial(r.Material)
}

// OutwardNormal is the unit axis perpendicular to the rectangle
func (r *AxisRect) OutwardNormal() core.Vec3 {
	switch r.Plane {
	case PlaneXZ:
		return core.NewVec3(0, 1, 0)
	case PlaneYZ:
		return core.NewVec3(1, 0, 0)
	default:
		return core.NewVec3(0, 0, 1)
	}
}

// Hit intersects the ray with the rectangle's plane and checks the bounds
func (r *AxisRect) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	a, b, fixed := r.Plane.axes()

	denominator := ray.Direction.Axis(fixed)
	// Ray parallel to the plane never crosses it
	if math.Abs(denominator) < 1e-12 {
		return nil, false
	}

	t := (r.K - ray.Origin.Axis(fixed)) / denominator
	if !(t > tMin && t < tMax) {
		return nil, false
	}

	hitPoint := ray.At(t)
	pa := hitPoint.Axis(a)
	pb := hitPoint.Axis(b)
	if !(pa >= r.A0 && pa <= r.A1 && pb >= r.B0 && pb <= r.B1) {
		return nil, false
	}

	hitRecord := &material.HitRecord{
		T:        t,
		Point:    hitPoint,
		UV:       core.NewVec2((pa-r.A0)/(r.A1-r.A0), (pb-r.B0)/(r.B1-r.B0)),
		Material: r.Material,
	}
	hitRecord.SetFaceNormal(ray, r.OutwardNormal())

	return hitRecord, true
}
