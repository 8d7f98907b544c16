package renderer

import (
	"gonum.org/v1/gonum/stat"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels     int     // Total number of pixels rendered
	TotalSamples    int     // Total number of samples taken
	Tiles           int     // Number of tiles the image was split into
	Workers         int     // Number of workers used
	MeanLuminance   float64 // Mean pixel luminance of the linear image
	StdDevLuminance float64 // Standard deviation of pixel luminance
}

// AverageSamples returns the average samples per pixel
func (s RenderStats) AverageSamples() float64 {
	if s.TotalPixels == 0 {
		return 0
	}
	return float64(s.TotalSamples) / float64(s.TotalPixels)
}

// addLuminance fills the luminance summary from a finished buffer
func (s *RenderStats) addLuminance(buf *PixelBuffer) {
	s.MeanLuminance, s.StdDevLuminance = LuminanceStats(buf)
}

// LuminanceStats returns the mean and standard deviation of pixel luminance
func LuminanceStats(buf *PixelBuffer) (mean, stdDev float64) {
	if len(buf.Pixels) == 0 {
		return 0, 0
	}

	luminance := make([]float64, len(buf.Pixels))
	for i, c := range buf.Pixels {
		luminance[i] = c.Luminance()
	}

	if len(luminance) == 1 {
		return luminance[0], 0
	}
	return stat.MeanStdDev(luminance, nil)
}
