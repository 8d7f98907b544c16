package scene

import (
	"github.com/df07/go-glossy-pathtracer/pkg/core"
	"github.com/df07/go-glossy-pathtracer/pkg/geometry"
	"github.com/df07/go-glossy-pathtracer/pkg/material"
)

// NewSpecBallsScene creates five glossy balls arranged in a cross, lit by a
// single bright sphere above and behind the camera
func NewSpecBallsScene() (*Scene, geometry.CameraConfig) {
	cameraConfig := geometry.CameraConfig{
		Center: core.NewVec3(0, 0, 0),
		LookAt: core.NewVec3(0, 0, -1),
		Up:     core.NewVec3(0, 1, 0),
		VFov:   55.0,
	}

	s := New()

	// Center ball and its four neighbours, each with its own reflectance
	s.AddSphere(core.NewVec3(0, 0, -6), 1.0,
		material.NewReflective(core.NewVec3(1, 0, 0), 0.83, 0.95))
	s.AddSphere(core.NewVec3(0, 2.05, -6), 0.75,
		material.NewReflective(core.NewVec3(0, 1, 0), 0.5, 0.95))
	s.AddSphere(core.NewVec3(2.05, 0, -6), 0.75,
		material.NewReflective(core.NewVec3(1, 1, 0), 0.7, 0.95))
	s.AddSphere(core.NewVec3(0, -2.05, -6), 0.75,
		material.NewReflective(core.NewVec3(0, 0, 1), 0.6, 0.95))
	s.AddSphere(core.NewVec3(-2.05, 0, -6), 0.75,
		material.NewReflective(core.NewVec3(0, 1, 1), 0.4, 0.95))

	s.AddSphere(core.NewVec3(3, 3, 1.1), 1.0,
		material.NewLight(core.NewVec3(1, 1, 1).Multiply(80)))

	return s, cameraConfig
}

// NewSingleLightScene creates one white emitter straight ahead of the camera
func NewSingleLightScene() (*Scene, geometry.CameraConfig) {
	cameraConfig := geometry.CameraConfig{
		Center: core.NewVec3(0, 0, 0),
		LookAt: core.NewVec3(0, 0, -1),
		Up:     core.NewVec3(0, 1, 0),
		VFov:   40.0,
	}

	s := New()
	s.AddSphere(core.NewVec3(0, 0, -5), 1.0, material.NewLight(core.NewVec3(1, 1, 1)))

	return s, cameraConfig
}

// NewDarkDiffuseScene creates diffuse geometry with nothing emitting light
func NewDarkDiffuseScene() (*Scene, geometry.CameraConfig) {
	cameraConfig := geometry.CameraConfig{
		Center: core.NewVec3(0, 1, 2),
		LookAt: core.NewVec3(0, 0, -4),
		Up:     core.NewVec3(0, 1, 0),
		VFov:   50.0,
	}

	s := New()
	s.AddSphere(core.NewVec3(0, 0, -4), 1.0, material.NewDiffuse(core.NewVec3(0.8, 0.8, 0.8)))
	s.AddSphere(core.NewVec3(0, -1001, -4), 1000, material.NewDiffuse(core.NewVec3(0.5, 0.5, 0.5)))

	return s, cameraConfig
}
