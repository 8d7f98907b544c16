package scene

import (
	"github.com/df07/go-glossy-pathtracer/pkg/core"
	"github.com/df07/go-glossy-pathtracer/pkg/geometry"
	"github.com/df07/go-glossy-pathtracer/pkg/material"
)

// Primitive pairs a shape with the material on its surface
type Primitive struct {
	Shape    geometry.Shape
	Material material.Material
}

// NewPrimitive creates a new primitive
func NewPrimitive(shape geometry.Shape, mat material.Material) Primitive {
	return Primitive{Shape: shape, Material: mat}
}

// IntersectionInfo describes the closest hit of a ray against the scene
type IntersectionInfo struct {
	Primitive *Primitive // Primitive that was hit
	T         float64    // Distance along the ray
	Point     core.Vec3  // World-space hit point
	Normal    core.Unit3 // Unit normal facing against the ray direction
	Inside    bool       // Whether the ray started inside the surface
}

// Scene is an ordered collection of primitives.
// It is read-only during rendering and shared by all workers.
type Scene struct {
	primitives []Primitive
}

// New creates a scene from primitives
func New(primitives ...Primitive) *Scene {
	return &Scene{primitives: primitives}
}

// Add appends a primitive. Not safe to call while rendering.
func (s *Scene) Add(primitive Primitive) {
	s.primitives = append(s.primitives, primitive)
}

// AddSphere is a shorthand for adding a sphere primitive
func (s *Scene) AddSphere(center core.Vec3, radius float64, mat material.Material) {
	s.Add(NewPrimitive(geometry.NewSphere(center, radius), mat))
}

// Primitives returns the primitives in insertion order
func (s *Scene) Primitives() []Primitive {
	return s.primitives
}

// Len returns the number of primitives
func (s *Scene) Len() int {
	return len(s.primitives)
}

// Intersect finds the closest primitive hit by the ray.
// Linear scan over all primitives.
func (s *Scene) Intersect(ray core.Ray) (IntersectionInfo, bool) {
	var closest *Primitive
	closestSoFar := 0.0

	for i := range s.primitives {
		dist, isHit := s.primitives[i].Shape.Intersect(ray)
		if isHit && (closest == nil || dist < closestSoFar) {
			closest = &s.primitives[i]
			closestSoFar = dist
		}
	}

	if closest == nil {
		return IntersectionInfo{}, false
	}

	point := ray.At(closestSoFar)
	normal := closest.Shape.NormalAt(point)

	// A normal facing along the ray means we hit the surface from inside.
	// Tangent hits (dot == 0) count as outside.
	inside := normal.Dot(ray.Direction.Vec()) > 0
	if inside {
		normal = normal.Negate()
	}

	return IntersectionInfo{
		Primitive: closest,
		T:         closestSoFar,
		Point:     point,
		Normal:    normal,
		Inside:    inside,
	}, true
}
