package core

// Ray represents a ray with an origin and a unit direction
type Ray struct {
	Origin    Vec3
	Direction Unit3
}

// NewRay creates a new ray
func NewRay(origin Vec3, direction Unit3) Ray {
	return Ray{Origin: origin, Direction: direction}
}

// At returns the point at parameter t along the ray
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Direction.Multiply(t))
}
