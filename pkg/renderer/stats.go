package renderer

import "time"

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels      int           // Pixels in the image
	CompletedPixels  int           // Pixels actually rendered; less than TotalPixels after a failure
	TotalSamples     int           // Camera rays traced
	SamplesPerPixel  int           // Samples summed per pixel
	NumWorkers       int           // Workers used
	Duration         time.Duration // Wall time of the render
	AverageLuminance float64       // Mean luminance of the averaged linear colors
}

// CalculateAverageLuminance returns the mean Rec. 709 luminance of the
// buffer's averaged linear colors
func CalculateAverageLuminance(buf *PixelBuffer) float64 {
	if buf == nil || len(buf.Pixels) == 0 || buf.SamplesPerPixel <= 0 {
		return 0
	}

	total := 0.0
	for _, sum := range buf.Pixels {
		c := sum.Multiply(1.0 / float64(buf.SamplesPerPixel))
		total += luminance(c.X, c.Y, c.Z)
	}
	return total / float64(len(buf.Pixels))
}

func luminance(r, g, b float64) float64 {
	return 0.2126*r + 0.7152*g + 0.0722*b
}
