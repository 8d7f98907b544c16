package material

import (
	"math"

	"github.com/df07/go-glossy-pathtracer/pkg/core"
)

// Material describes how a surface emits and scatters light.
// The same struct covers lights, diffuse surfaces and glossy reflectors;
// which behavior applies is decided by its fields, per bounce.
type Material struct {
	Emittance   core.Vec3 // Radiance emitted regardless of incoming light
	Albedo      core.Vec3 // Diffuse reflectance color, components in [0, 1]
	Reflectance float64   // Probability of a specular-glossy bounce, in [0, 1]
	Gloss       float64   // 1 = perfect mirror, lower values widen the lobe
}

// Lobe identifies the scattering branch chosen for one bounce
type Lobe int

const (
	LobeAbsorb Lobe = iota
	LobeDiffuse
	LobeSpecular
)

func (l Lobe) String() string {
	switch l {
	case LobeDiffuse:
		return "diffuse"
	case LobeSpecular:
		return "specular"
	default:
		return "absorb"
	}
}

// NewLight creates a pure emitter that reflects nothing
func NewLight(emittance core.Vec3) Material {
	return Material{Emittance: emittance}
}

// NewDiffuse creates a lambertian surface
func NewDiffuse(albedo core.Vec3) Material {
	return Material{Albedo: albedo}
}

// NewReflective creates a glossy reflector that falls back to diffuse
// scattering with the given albedo
func NewReflective(albedo core.Vec3, reflectance, gloss float64) Material {
	return Material{
		Albedo:      albedo,
		Reflectance: clamp01(reflectance),
		Gloss:       clamp01(gloss),
	}
}

// SelectLobe picks the scattering branch for a uniform random value u in [0, 1).
// One branch is taken per bounce; the mixture is never blended.
func (m Material) SelectLobe(u float64) Lobe {
	if m.Reflectance > 0 && u < m.Reflectance {
		return LobeSpecular
	}
	if m.Albedo.LengthSquared() > core.Epsilon {
		return LobeDiffuse
	}
	return LobeAbsorb
}

// ConeHalfAngle returns the half-angle of the glossy lobe around the mirror direction
func (m Material) ConeHalfAngle() float64 {
	return (1 - m.Gloss) * math.Pi / 2
}

// IsEmissive reports whether the material emits light
func (m Material) IsEmissive() bool {
	return !m.Emittance.IsZero()
}

// Reflect calculates the mirror reflection of direction d about normal n
func Reflect(d, n core.Unit3) core.Unit3 {
	// r = d - 2*dot(d,n)*n
	nv := n.Vec()
	return core.TrustUnit(d.Vec().Subtract(nv.Multiply(2 * d.Dot(nv))))
}

// GlossyWeight returns the estimator weight for a direction sampled
// uniformly inside a cone whose half-angle has cosine cosAlpha
func GlossyWeight(cosAlpha float64) float64 {
	if cosAlpha < core.Epsilon {
		return 1
	}
	denom := 1 - cosAlpha*cosAlpha
	if denom < core.Epsilon {
		// Mirror limit: 2(1-c)/(1-c²) = 2/(1+c) -> 1
		return 1
	}
	return 2 * (1 - cosAlpha) / denom
}

func clamp01(x float64) float64 {
	return max(0, min(1, x))
}
