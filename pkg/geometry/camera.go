package geometry

import (
	"math"

	"github.com/df07/go-glossy-pathtracer/pkg/core"
)

// CameraConfig contains all camera configuration parameters
type CameraConfig struct {
	Center core.Vec3 // Eye position
	LookAt core.Vec3 // Point the camera looks at
	Up     core.Vec3 // World up direction
	VFov   float64   // Vertical field of view in degrees
}

// Camera generates rays for rendering.
// Immutable after construction and safe to share between workers.
type Camera struct {
	center core.Vec3

	// Orthonormal basis: u points left, v up, n forward
	u, v, n core.Vec3

	invWidth  float64
	invHeight float64
	aspect    float64
	planeDist float64
}

// NewCamera creates a pinhole camera for an image of the given size.
// An up vector parallel to the view direction has no valid basis and panics.
func NewCamera(config CameraConfig, width, height int) *Camera {
	n := config.LookAt.Subtract(config.Center).Normalize().Vec()
	u := config.Up.Cross(n).Normalize().Vec()
	v := n.Cross(u)

	halfFov := config.VFov * math.Pi / 180.0 / 2.0

	return &Camera{
		center:    config.Center,
		u:         u,
		v:         v,
		n:         n,
		invWidth:  1.0 / float64(width),
		invHeight: 1.0 / float64(height),
		aspect:    float64(width) / float64(height),
		planeDist: 1.0 / math.Tan(halfFov),
	}
}

// GetRay generates a ray through continuous pixel coordinates (x, y).
// (0, 0) is the top-left corner of the image, (width, height) the bottom-right.
func (c *Camera) GetRay(x, y float64) core.Ray {
	ndcX := 2.0*x*c.invWidth - 1.0
	ndcY := 2.0*y*c.invHeight - 1.0

	direction := c.u.Multiply(-ndcX * c.aspect).
		Add(c.v.Multiply(-ndcY)).
		Add(c.n.Multiply(c.planeDist))

	return core.NewRay(c.center, direction.Normalize())
}

// Forward returns the unit view direction
func (c *Camera) Forward() core.Vec3 {
	return c.n
}
