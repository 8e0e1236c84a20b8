package imageio

import (
	"image"
	"path/filepath"
	"strings"

	"github.com/nfnt/resize"
)

// Thumbnail scales img down to fit inside a maxSide x maxSide box,
// preserving aspect ratio. Images already small enough are returned as is.
func Thumbnail(img image.Image, maxSide int) image.Image {
	if maxSide <= 0 {
		return img
	}
	return resize.Thumbnail(uint(maxSide), uint(maxSide), img, resize.Bilinear)
}

// ThumbnailPath derives "name_thumb.ext" from "name.ext"
func ThumbnailPath(path string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + "_thumb" + ext
}
