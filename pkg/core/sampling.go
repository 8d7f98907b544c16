package core

import (
	"math"
	"math/rand"
)

// Sampler provides random sampling for rendering algorithms
// Can be swapped out for deterministic testing or different sampling patterns
type Sampler interface {
	Get1D() float64
	Get2D() Vec2
}

// RandomSampler wraps a standard Go random generator.
// Not safe for concurrent use; each worker owns one.
type RandomSampler struct {
	random *rand.Rand
}

// NewRandomSampler creates a sampler from a Go random generator
func NewRandomSampler(random *rand.Rand) *RandomSampler {
	return &RandomSampler{random: random}
}

// Get1D returns a random float64 in [0, 1)
func (r *RandomSampler) Get1D() float64 {
	return r.random.Float64()
}

// Get2D returns two random float64 values in [0, 1)
func (r *RandomSampler) Get2D() Vec2 {
	return NewVec2(r.random.Float64(), r.random.Float64())
}

// Basis is an orthonormal frame whose Z axis is a chosen direction
type Basis struct {
	X, Y, Z Vec3
}

// NewBasisFromNormal builds a frame with Z = normal
func NewBasisFromNormal(normal Unit3) Basis {
	z := normal.Vec()

	// Any vector not collinear with the normal seeds the tangent
	var other Vec3
	if math.Abs(z.X) > 0.1 {
		other = NewVec3(0, 1, 0)
	} else {
		other = NewVec3(1, 0, 0)
	}

	x := other.Cross(z).Normalize().Vec()
	y := z.Cross(x)

	return Basis{X: x, Y: y, Z: z}
}

// ToWorld maps local frame coordinates to world space
func (b Basis) ToWorld(x, y, z float64) Vec3 {
	return b.X.Multiply(x).Add(b.Y.Multiply(y)).Add(b.Z.Multiply(z))
}

// SampleCosineHemisphere generates a cosine-weighted random direction in the hemisphere around normal.
// sample.X is the squared disk radius, sample.Y selects the azimuth.
func SampleCosineHemisphere(normal Unit3, sample Vec2) Unit3 {
	basis := NewBasisFromNormal(normal)

	radiusSquared := sample.X
	phi := 2.0 * math.Pi * sample.Y

	// Malley's method: uniform disk point projected up onto the hemisphere
	radius := math.Sqrt(radiusSquared)
	x := radius * math.Cos(phi)
	y := radius * math.Sin(phi)
	z := math.Sqrt(1.0 - radiusSquared)

	// Renormalize to absorb floating point error from the basis
	return basis.ToWorld(x, y, z).Normalize()
}

// SampleUniformCone samples a direction uniformly by solid angle inside the
// cone of half-angle alpha around axis. alpha = 0 returns axis itself,
// alpha = π covers the whole sphere.
func SampleUniformCone(axis Unit3, alpha float64, sample Vec2) Unit3 {
	basis := NewBasisFromNormal(axis)

	u := sample.X
	phi := 2.0 * math.Pi * sample.Y

	z := 1.0 + u*(math.Cos(alpha)-1.0)
	radius := math.Sqrt(max(0, 1.0-z*z))
	x := radius * math.Cos(phi)
	y := radius * math.Sin(phi)

	return TrustUnit(basis.ToWorld(x, y, z))
}
