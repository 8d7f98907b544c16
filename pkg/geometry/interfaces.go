package geometry

import (
	"github.com/df07/go-glossy-pathtracer/pkg/core"
)

// Shape interface for objects that can be hit by rays.
// The scene and integrator only depend on this, so new primitive kinds
// plug in without touching either.
type Shape interface {
	// Intersect returns the distance to the nearest hit in front of the ray
	// origin (beyond core.Epsilon), or false on a miss.
	Intersect(ray core.Ray) (float64, bool)

	// NormalAt returns the outward geometric normal at a point on the surface.
	NormalAt(point core.Vec3) core.Unit3
}
