package imageio

import (
	"fmt"

	"github.com/disintegration/imaging"

	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/renderer"
)

// Load decodes a PNG or JPEG back into a frame with channels in [0,1].
// Values are the stored gamma-corrected colors, not linear radiance.
func Load(path string) (*renderer.Frame, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load image %s: %w", path, err)
	}

	bounds := img.Bounds()
	frame := renderer.NewFrame(bounds.Dx(), bounds.Dy())
	for y := 0; y < frame.Height; y++ {
		for x := 0; x < frame.Width; x++ {
			// RGBA returns 16-bit channels
			r, g, b, _ := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
			frame.Set(x, y, core.NewVec3(float64(r)/65535.0, float64(g)/65535.0, float64(b)/65535.0))
		}
	}
	return frame, nil
}
