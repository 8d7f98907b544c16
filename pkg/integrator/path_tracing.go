package integrator

import (
	"math"

	"github.com/df07/go-glossy-pathtracer/pkg/core"
	"github.com/df07/go-glossy-pathtracer/pkg/material"
	"github.com/df07/go-glossy-pathtracer/pkg/scene"
)

// PathTracingIntegrator implements unidirectional path tracing with a
// single scattering branch chosen per bounce
type PathTracingIntegrator struct {
	MaxDepth int
}

// NewPathTracingIntegrator creates a new path tracing integrator
func NewPathTracingIntegrator(maxDepth int) *PathTracingIntegrator {
	return &PathTracingIntegrator{MaxDepth: maxDepth}
}

// Radiance traces a camera ray starting at depth 0
func (pt *PathTracingIntegrator) Radiance(ray core.Ray, s *scene.Scene, sampler core.Sampler) core.Vec3 {
	return pt.Trace(ray, s, sampler, 0)
}

// Trace returns the radiance arriving along ray after depth bounces.
// The background is black; only emitters contribute light.
func (pt *PathTracingIntegrator) Trace(ray core.Ray, s *scene.Scene, sampler core.Sampler, depth int) core.Vec3 {
	if depth >= pt.MaxDepth {
		return core.Vec3{}
	}

	hit, isHit := s.Intersect(ray)
	if !isHit {
		return core.Vec3{}
	}

	mat := hit.Primitive.Material
	colorEmitted := mat.Emittance

	var colorScattered core.Vec3
	switch mat.SelectLobe(sampler.Get1D()) {
	case material.LobeSpecular:
		colorScattered = pt.calculateSpecularColor(ray, hit, s, sampler, depth)
	case material.LobeDiffuse:
		colorScattered = pt.calculateDiffuseColor(hit, s, sampler, depth)
	}

	return colorEmitted.Add(colorScattered)
}

// calculateSpecularColor samples the glossy cone around the mirror direction.
// Directions that fall below the surface carry no light.
func (pt *PathTracingIntegrator) calculateSpecularColor(ray core.Ray, hit scene.IntersectionInfo, s *scene.Scene, sampler core.Sampler, depth int) core.Vec3 {
	mat := hit.Primitive.Material

	mirror := material.Reflect(ray.Direction, hit.Normal)
	alpha := mat.ConeHalfAngle()
	direction := core.SampleUniformCone(mirror, alpha, sampler.Get2D())

	cosTheta := direction.Dot(hit.Normal.Vec())
	if cosTheta < 0 {
		return core.Vec3{}
	}

	incoming := pt.Trace(core.NewRay(hit.Point, direction), s, sampler, depth+1)
	weight := material.GlossyWeight(math.Cos(alpha))

	return incoming.Multiply(weight * cosTheta)
}

// calculateDiffuseColor samples a cosine-weighted direction; the cosine and
// the pdf cancel, leaving albedo times incoming light
func (pt *PathTracingIntegrator) calculateDiffuseColor(hit scene.IntersectionInfo, s *scene.Scene, sampler core.Sampler, depth int) core.Vec3 {
	direction := core.SampleCosineHemisphere(hit.Normal, sampler.Get2D())

	incoming := pt.Trace(core.NewRay(hit.Point, direction), s, sampler, depth+1)
	return hit.Primitive.Material.Albedo.MultiplyVec(incoming)
}
