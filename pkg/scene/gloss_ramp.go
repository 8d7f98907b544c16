package scene

import (
	"math"

	"github.com/df07/go-glossy-pathtracer/pkg/core"
	"github.com/df07/go-glossy-pathtracer/pkg/geometry"
	"github.com/df07/go-glossy-pathtracer/pkg/material"
)

// oklchToRGB converts OKLCH color values to RGB
// L: lightness (0-1), C: chroma (0-0.4+), H: hue (0-360 degrees)
func oklchToRGB(l, c, h float64) core.Vec3 {
	hRad := h * math.Pi / 180.0

	// OKLCH -> OKLAB
	a := c * math.Cos(hRad)
	b := c * math.Sin(hRad)

	// OKLAB -> LMS
	l_ := l + 0.3963377774*a + 0.2158037573*b
	m_ := l - 0.1055613458*a - 0.0638541728*b
	s_ := l - 0.0894841775*a - 1.2914855480*b

	l_ = l_ * l_ * l_
	m_ = m_ * m_ * m_
	s_ = s_ * s_ * s_

	// LMS -> linear RGB
	r := +4.0767416621*l_ - 3.3077115913*m_ + 0.2309699292*s_
	g := -1.2684380046*l_ + 2.6097574011*m_ - 0.3413193965*s_
	blue := -0.0041960863*l_ - 0.7034186147*m_ + 1.7076147010*s_

	return core.NewVec3(r, g, blue).Clamp(0, 1)
}

// NewGlossRampScene creates a row of reflective spheres whose gloss goes
// from 0 (widest lobe) on the left to 1 (mirror) on the right
func NewGlossRampScene() (*Scene, geometry.CameraConfig) {
	cameraConfig := geometry.CameraConfig{
		Center: core.NewVec3(0, 1.5, 2),
		LookAt: core.NewVec3(0, 0, -7),
		Up:     core.NewVec3(0, 1, 0),
		VFov:   45.0,
	}

	s := New()

	const numSpheres = 5
	for i := 0; i < numSpheres; i++ {
		t := float64(i) / float64(numSpheres-1)
		albedo := oklchToRGB(0.7, 0.15, 360*t)
		center := core.NewVec3(-4+2*float64(i), 0, -7)
		s.AddSphere(center, 0.8, material.NewReflective(albedo, 0.9, t))
	}

	// Floor as a very large sphere
	s.AddSphere(core.NewVec3(0, -1000.8, -7), 1000, material.NewDiffuse(core.NewVec3(0.6, 0.6, 0.6)))

	s.AddSphere(core.NewVec3(0, 6, -3), 1.5, material.NewLight(core.NewVec3(30, 29, 27)))

	return s, cameraConfig
}
