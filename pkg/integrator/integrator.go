package integrator

import (
	"github.com/df07/go-glossy-pathtracer/pkg/core"
	"github.com/df07/go-glossy-pathtracer/pkg/scene"
)

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// Radiance estimates the light arriving along a camera ray.
	// The sampler belongs to the calling worker and is not shared.
	Radiance(ray core.Ray, scene *scene.Scene, sampler core.Sampler) core.Vec3
}
