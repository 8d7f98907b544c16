package renderer

import (
	"image"

	"github.com/df07/go-glossy-pathtracer/pkg/core"
	"github.com/df07/go-glossy-pathtracer/pkg/geometry"
	"github.com/df07/go-glossy-pathtracer/pkg/integrator"
	"github.com/df07/go-glossy-pathtracer/pkg/scene"
)

// TileRenderer handles the actual rendering of individual tiles using an integrator.
// It holds only read-only state and is shared by all workers.
type TileRenderer struct {
	scene           *scene.Scene
	camera          *geometry.Camera
	integrator      integrator.Integrator
	samplesPerPixel int
}

// NewTileRenderer creates a new tile renderer with the given scene, camera and integrator
func NewTileRenderer(s *scene.Scene, camera *geometry.Camera, integratorInst integrator.Integrator, samplesPerPixel int) *TileRenderer {
	return &TileRenderer{
		scene:           s,
		camera:          camera,
		integrator:      integratorInst,
		samplesPerPixel: samplesPerPixel,
	}
}

// RenderTileBounds renders pixels within the specified bounds into buf
// and returns the number of samples taken
func (tr *TileRenderer) RenderTileBounds(bounds image.Rectangle, buf *PixelBuffer, sampler core.Sampler) int {
	samples := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			buf.Set(x, y, tr.samplePixel(x, y, sampler))
			samples += tr.samplesPerPixel
		}
	}
	return samples
}

// samplePixel averages independent jittered samples for pixel (x, y)
func (tr *TileRenderer) samplePixel(x, y int, sampler core.Sampler) core.Vec3 {
	colorAccum := core.Vec3{}

	for s := 0; s < tr.samplesPerPixel; s++ {
		jitter := sampler.Get2D()
		ray := tr.camera.GetRay(float64(x)+jitter.X, float64(y)+jitter.Y)
		colorAccum = colorAccum.Add(tr.integrator.Radiance(ray, tr.scene, sampler))
	}

	return colorAccum.Multiply(1.0 / float64(tr.samplesPerPixel))
}
