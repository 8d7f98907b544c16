package geometry

import (
	"fmt"
	"math"

	"github.com/df07/go-glossy-pathtracer/pkg/core"
)

// Sphere represents a sphere shape
type Sphere struct {
	center core.Vec3
	radius float64
}

// NewSphere creates a new sphere. A non-positive radius is a programming error and panics.
func NewSphere(center core.Vec3, radius float64) *Sphere {
	if !(radius > 0) {
		panic(fmt.Sprintf("geometry: invalid sphere radius %g", radius))
	}
	return &Sphere{center: center, radius: radius}
}

// Center returns the sphere center
func (s *Sphere) Center() core.Vec3 {
	return s.center
}

// Radius returns the sphere radius
func (s *Sphere) Radius() float64 {
	return s.radius
}

// Intersect tests if a ray intersects with the sphere
func (s *Sphere) Intersect(ray core.Ray) (float64, bool) {
	// With a unit direction the quadratic reduces to t² + 2tb + c = 0
	oc := ray.Origin.Subtract(s.center)
	b := ray.Direction.Dot(oc)
	c := oc.LengthSquared() - s.radius*s.radius

	discriminant := b*b - c
	if discriminant < 0 {
		return 0, false
	}

	sqrtD := math.Sqrt(discriminant)

	// Try the closer intersection point first, never anything behind the origin
	if t1 := -b - sqrtD; t1 > core.Epsilon {
		return t1, true
	}
	if t2 := -b + sqrtD; t2 > core.Epsilon {
		return t2, true
	}
	return 0, false
}

// NormalAt returns the unit vector from the center through point
func (s *Sphere) NormalAt(point core.Vec3) core.Unit3 {
	outward := point.Subtract(s.center)
	if core.DebugChecks() && !onSurface(outward.LengthSquared(), s.radius*s.radius) {
		panic(fmt.Sprintf("geometry: point %v is not on sphere (center %v, radius %g)", point, s.center, s.radius))
	}
	return outward.Normalize()
}

// onSurface tolerates the rounding of a hit point computed as origin + t*dir
func onSurface(distSquared, radiusSquared float64) bool {
	return math.Abs(distSquared-radiusSquared) <= 1e-6*max(radiusSquared, 1)
}
