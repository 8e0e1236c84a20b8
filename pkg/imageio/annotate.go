package imageio

import (
	"image"

	"github.com/fogleman/gg"
)

const captionPadding = 4

// Annotate draws caption in a translucent strip along the bottom of img
// and returns the result. The source image is not modified.
func Annotate(img image.Image, caption string) image.Image {
	if caption == "" {
		return img
	}

	dc := gg.NewContextForImage(img)
	width := float64(dc.Width())
	height := float64(dc.Height())

	_, textHeight := dc.MeasureString(caption)
	strip := textHeight + 2*captionPadding

	dc.SetRGBA(0, 0, 0, 0.6)
	dc.DrawRectangle(0, height-strip, width, strip)
	dc.Fill()

	dc.SetRGB(1, 1, 1)
	dc.DrawStringAnchored(caption, captionPadding, height-strip/2, 0, 0.5)

	return dc.Image()
}
