package geometry

import (
	"fmt"
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// MovingSphere is a sphere whose center moves linearly from Center0 at Time0
// to Center1 at Time1. Outside the interval the motion is extrapolated.
type MovingSphere struct {
	Center0  core.Vec3
	Center1  core.Vec3
	Time0    float64
	Time1    float64
	Radius   float64
	Material material.Material
}

// NewMovingSphere creates a sphere that moves during the shutter interval
func NewMovingSphere(center0, center1 core.Vec3, time0, time1, radius float64, mat material.Material) *MovingSphere {
	return &MovingSphere{
		Center0:  center0,
		Center1:  center1,
		Time0:    time0,
		Time1:    time1,
		Radius:   radius,
		Material: mat,
	}
}

// Validate rejects an empty time interval or an unusable radius
func (s *MovingSphere) Validate() error {
	if !(s.Time1 > s.Time0) {
		return fmt.Errorf("%w: moving sphere time interval [%v, %v]", ErrInvalidShape, s.Time0, s.Time1)
	}
	if s.Radius == 0 || math.IsNaN(s.Radius) || math.IsInf(s.Radius, 0) {
		return fmt.Errorf("%w: moving sphere radius %v", ErrInvalidShape, s.Radius)
	}
	if !s.Center0.IsFinite() || !s.Center1.IsFinite() {
		return fmt.Errorf("%w: moving sphere centers %v, %v", ErrInvalidShape, s.Center0, s.Center1)
	}
	return validateMaterial(s.Material)
}

// Center returns the sphere's center at the given time
func (s *MovingSphere) Center(time float64) core.Vec3 {
	return s.Center0.Lerp(s.Center1, (time-s.Time0)/(s.Time1-s.Time0))
}

// Hit tests the ray against the sphere positioned at the ray's time
func (s *MovingSphere) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	return hitSphere(ray, tMin, tMax, s.Center(ray.Time), s.Radius, s.Material)
}
