package renderer

import (
	"image"
	"image/color"
	"math"

	"github.com/df07/go-sphere-tracer/pkg/core"
)

// Frame holds gamma-corrected pixel colors, nominally in [0,1], stored top row first
type Frame struct {
	Width  int
	Height int
	Pixels []core.Vec3
}

// NewFrame allocates a black frame
func NewFrame(width, height int) *Frame {
	return &Frame{
		Width:  width,
		Height: height,
		Pixels: make([]core.Vec3, width*height),
	}
}

// At returns the color at column x of row y, where row 0 is the top of the image
func (f *Frame) At(x, y int) core.Vec3 {
	return f.Pixels[y*f.Width+x]
}

// Set stores the color at column x of row y
func (f *Frame) Set(x, y int, c core.Vec3) {
	f.Pixels[y*f.Width+x] = c
}

// Row returns the pixels of row y, top row first
func (f *Frame) Row(y int) []core.Vec3 {
	return f.Pixels[y*f.Width : (y+1)*f.Width]
}

// Quantize maps a channel in [0,1] to 8 bits as int(255.99*c), clamped to [0,255].
// NaN maps to 0.
func Quantize(c float64) uint8 {
	if math.IsNaN(c) {
		return 0
	}
	v := 255.99 * c
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v)
}

// ToColor converts a frame color to opaque 8-bit RGBA
func ToColor(c core.Vec3) color.RGBA {
	return color.RGBA{
		R: Quantize(c.X),
		G: Quantize(c.Y),
		B: Quantize(c.Z),
		A: 255,
	}
}

// RGBA converts the frame to an 8-bit image with alpha always 255
func (f *Frame) RGBA() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, f.Width, f.Height))
	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			img.SetRGBA(x, y, ToColor(f.At(x, y)))
		}
	}
	return img
}
