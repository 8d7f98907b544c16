package renderer

import (
	"fmt"

	"github.com/df07/go-glossy-pathtracer/pkg/core"
	"github.com/df07/go-glossy-pathtracer/pkg/geometry"
	"github.com/df07/go-glossy-pathtracer/pkg/integrator"
	"github.com/df07/go-glossy-pathtracer/pkg/scene"
)

// DefaultLogger implements core.Logger by writing to stdout
type DefaultLogger struct{}

func (dl *DefaultLogger) Printf(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// NewDefaultLogger creates a new default logger
func NewDefaultLogger() core.Logger {
	return &DefaultLogger{}
}

// nopLogger discards everything
type nopLogger struct{}

func (nopLogger) Printf(format string, args ...interface{}) {}

// Raytracer renders a scene with a fixed set of options
type Raytracer struct {
	scene   *scene.Scene
	options RenderOptions
	logger  core.Logger
}

// NewRaytracer creates a new raytracer. A nil logger discards output.
func NewRaytracer(s *scene.Scene, options RenderOptions, logger core.Logger) *Raytracer {
	if logger == nil {
		logger = nopLogger{}
	}
	return &Raytracer{
		scene:   s,
		options: options,
		logger:  logger,
	}
}

// Render is a convenience wrapper that renders without logging or stats
func Render(s *scene.Scene, options RenderOptions) (*PixelBuffer, error) {
	buf, _, err := NewRaytracer(s, options, nil).Render()
	return buf, err
}

// Render validates the options, splits the image into tiles and renders
// every tile exactly once on the worker pool. It returns after all tiles
// have completed.
func (rt *Raytracer) Render() (*PixelBuffer, RenderStats, error) {
	opts := rt.options
	if err := opts.Validate(); err != nil {
		return nil, RenderStats{}, err
	}

	camera := geometry.NewCamera(opts.Camera, opts.Width, opts.Height)
	tileRenderer := NewTileRenderer(rt.scene, camera, integrator.NewPathTracingIntegrator(opts.MaxDepth), opts.SamplesPerPixel)
	tiles := NewTileGrid(opts.Width, opts.Height, opts.tileSize())

	workerPool, err := NewWorkerPool(tileRenderer, opts.workers(), len(tiles), opts.Seed)
	if err != nil {
		return nil, RenderStats{}, fmt.Errorf("failed to create worker pool: %w", err)
	}

	rt.logger.Printf("Rendering %d tiles on %d workers (%d primitives)\n",
		len(tiles), workerPool.GetNumWorkers(), rt.scene.Len())

	buf := NewPixelBuffer(opts.Width, opts.Height)

	workerPool.Start()
	for _, tile := range tiles {
		workerPool.SubmitTask(TileTask{Tile: tile, Buffer: buf})
	}

	stats := RenderStats{
		TotalPixels: opts.Width * opts.Height,
		Tiles:       len(tiles),
		Workers:     workerPool.GetNumWorkers(),
	}
	for range tiles {
		result, ok := workerPool.GetResult()
		if !ok {
			return nil, RenderStats{}, fmt.Errorf("worker pool closed unexpectedly")
		}
		stats.TotalSamples += result.Samples
	}
	workerPool.Stop()

	stats.addLuminance(buf)
	rt.logger.Printf("Rendered %d samples, mean luminance %.4f (stddev %.4f)\n",
		stats.TotalSamples, stats.MeanLuminance, stats.StdDevLuminance)

	return buf, stats, nil
}
