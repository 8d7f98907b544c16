package renderer

import (
	"runtime"

	errorsmod "cosmossdk.io/errors"

	"github.com/df07/go-glossy-pathtracer/pkg/core"
	"github.com/df07/go-glossy-pathtracer/pkg/geometry"
)

// DefaultTileSize is the tile edge length used when RenderOptions.TileSize is zero
const DefaultTileSize = 16

// RenderOptions contains everything needed to render one image
type RenderOptions struct {
	Width           int                   // Image width in pixels
	Height          int                   // Image height in pixels
	SamplesPerPixel int                   // Independent samples averaged per pixel
	MaxDepth        int                   // Bounce limit; 0 renders black
	Threads         int                   // Worker count (0 = use CPU count)
	Camera          geometry.CameraConfig // Camera placement
	Seed            int64                 // 0 seeds from entropy, otherwise renders are reproducible
	TileSize        int                   // Tile edge length (0 = DefaultTileSize)
}

// DefaultRenderOptions returns sensible default values
func DefaultRenderOptions() RenderOptions {
	return RenderOptions{
		Width:           400,
		Height:          300,
		SamplesPerPixel: 64,
		MaxDepth:        5,
		Threads:         0,
		TileSize:        DefaultTileSize,
	}
}

// Validate reports the first configuration error, if any
func (o RenderOptions) Validate() error {
	if o.Width <= 0 || o.Height <= 0 {
		return errorsmod.Wrapf(core.ErrInvalidDimensions, "%dx%d", o.Width, o.Height)
	}
	if o.SamplesPerPixel <= 0 {
		return errorsmod.Wrapf(core.ErrInvalidSamples, "%d samples per pixel", o.SamplesPerPixel)
	}
	if o.MaxDepth < 0 {
		return errorsmod.Wrapf(core.ErrInvalidDepth, "max depth %d", o.MaxDepth)
	}
	if o.Threads < 0 {
		return errorsmod.Wrapf(core.ErrInvalidThreads, "%d threads", o.Threads)
	}
	if o.TileSize < 0 {
		return errorsmod.Wrapf(core.ErrInvalidTileSize, "tile size %d", o.TileSize)
	}
	if !(o.Camera.VFov > 0 && o.Camera.VFov < 180) {
		return errorsmod.Wrapf(core.ErrInvalidCamera, "vertical fov %g must be in (0, 180)", o.Camera.VFov)
	}

	forward := o.Camera.LookAt.Subtract(o.Camera.Center)
	if forward.Length() < core.Epsilon {
		return errorsmod.Wrap(core.ErrInvalidCamera, "camera looks at its own position")
	}
	if o.Camera.Up.Cross(forward).Length() < core.Epsilon {
		return errorsmod.Wrap(core.ErrInvalidCamera, "up vector is parallel to the view direction")
	}
	return nil
}

// workers resolves the effective worker count
func (o RenderOptions) workers() int {
	if o.Threads == 0 {
		return runtime.NumCPU()
	}
	return o.Threads
}

// tileSize resolves the effective tile size
func (o RenderOptions) tileSize() int {
	if o.TileSize == 0 {
		return DefaultTileSize
	}
	return o.TileSize
}
