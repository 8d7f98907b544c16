package renderer

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"

	"github.com/df07/go-glossy-pathtracer/pkg/core"
)

// PixelBuffer holds linear radiance per pixel, row-major, row 0 at the top
type PixelBuffer struct {
	Width  int
	Height int
	Pixels []core.Vec3
}

// NewPixelBuffer creates a black buffer of the given size
func NewPixelBuffer(width, height int) *PixelBuffer {
	return &PixelBuffer{
		Width:  width,
		Height: height,
		Pixels: make([]core.Vec3, width*height),
	}
}

// At returns the color of pixel (x, y)
func (b *PixelBuffer) At(x, y int) core.Vec3 {
	return b.Pixels[y*b.Width+x]
}

// Set stores the color of pixel (x, y).
// Concurrent writers must own disjoint pixels.
func (b *PixelBuffer) Set(x, y int, c core.Vec3) {
	b.Pixels[y*b.Width+x] = c
}

// ToImage converts the buffer to 8-bit RGBA. A gamma of 0 or 1 leaves
// values linear. Channels are clamped to [0, 1] and truncated after ×255.
func (b *PixelBuffer) ToImage(gamma float64) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, b.Width, b.Height))
	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			img.SetRGBA(x, y, vec3ToColor(b.At(x, y), gamma))
		}
	}
	return img
}

// WritePNG encodes the buffer as a PNG image
func (b *PixelBuffer) WritePNG(w io.Writer, gamma float64) error {
	if err := png.Encode(w, b.ToImage(gamma)); err != nil {
		return fmt.Errorf("failed to encode PNG: %w", err)
	}
	return nil
}

// vec3ToColor converts a Vec3 color to RGBA with clamping and optional gamma correction
func vec3ToColor(colorVec core.Vec3, gamma float64) color.RGBA {
	colorVec = colorVec.Clamp(0.0, 1.0)
	if gamma > 0 && gamma != 1 {
		colorVec = colorVec.GammaCorrect(gamma)
	}

	return color.RGBA{
		R: uint8(255 * colorVec.X),
		G: uint8(255 * colorVec.Y),
		B: uint8(255 * colorVec.Z),
		A: 255,
	}
}
