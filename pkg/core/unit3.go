package core

import (
	"fmt"
	"math"
)

// Epsilon is the tolerance used for intersection distances and float comparisons
const Epsilon = 1e-9

// NearlyEqual reports whether a and b agree to within Epsilon relative to their magnitude
func NearlyEqual(a, b float64) bool {
	scale := max(math.Abs(a), math.Abs(b), 1.0)
	return math.Abs(a-b) < Epsilon*scale
}

// Unit3 is a Vec3 with magnitude 1.
// The zero value is not a valid unit; build one with Vec3.Normalize or TrustUnit.
type Unit3 struct {
	v Vec3
}

// TrustUnit wraps a vector already known to be unit length (a reflection,
// a sampled direction). Builds tagged raydebug verify the claim.
func TrustUnit(v Vec3) Unit3 {
	if debugChecks && !nearlyUnit(v) {
		panic(fmt.Sprintf("core: TrustUnit called with non-unit vector %v (|v|²=%g)", v, v.LengthSquared()))
	}
	return Unit3{v: v}
}

// nearlyUnit uses a looser bound than NearlyEqual; directions built from
// trig and square roots drift by a few ulps per operation.
func nearlyUnit(v Vec3) bool {
	return math.Abs(v.LengthSquared()-1) < 1e-6
}

// Vec returns the underlying vector
func (u Unit3) Vec() Vec3 {
	return u.v
}

// X returns the x component
func (u Unit3) X() float64 { return u.v.X }

// Y returns the y component
func (u Unit3) Y() float64 { return u.v.Y }

// Z returns the z component
func (u Unit3) Z() float64 { return u.v.Z }

// Dot returns the dot product with an arbitrary vector
func (u Unit3) Dot(other Vec3) float64 {
	return u.v.Dot(other)
}

// Negate returns the opposite direction
func (u Unit3) Negate() Unit3 {
	return Unit3{v: u.v.Negate()}
}

// Multiply scales the direction, leaving the unit domain
func (u Unit3) Multiply(scalar float64) Vec3 {
	return u.v.Multiply(scalar)
}

// String formats the direction for debugging output
func (u Unit3) String() string {
	return fmt.Sprintf("Unit3(%g, %g, %g)", u.v.X, u.v.Y, u.v.Z)
}
