package imageio

import (
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/df07/go-sphere-tracer/pkg/renderer"
)

// jpegQuality is used for .jpg/.jpeg output
const jpegQuality = 95

// WriteImage encodes img in the given raster format
func WriteImage(w io.Writer, img image.Image, format imaging.Format) error {
	if err := imaging.Encode(w, img, format, imaging.JPEGQuality(jpegQuality)); err != nil {
		return fmt.Errorf("encode %s: %w", format, err)
	}
	return nil
}

// Save writes the frame to path, choosing the format from the extension.
// ".ppm" writes plain PPM; other extensions go through the raster encoders.
func Save(path string, frame *renderer.Frame) error {
	if strings.EqualFold(filepath.Ext(path), ".ppm") {
		return saveWith(path, func(w io.Writer) error { return WritePPM(w, frame) })
	}
	return SaveImage(path, frame.RGBA())
}

// SaveImage writes an already converted image, choosing the format from the extension
func SaveImage(path string, img image.Image) error {
	format, err := imaging.FormatFromFilename(path)
	if err != nil {
		return fmt.Errorf("output %s: %w", path, err)
	}
	return saveWith(path, func(w io.Writer) error { return WriteImage(w, img, format) })
}

func saveWith(path string, write func(io.Writer) error) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	if err := write(file); err != nil {
		file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}

// ContentType returns the MIME type matching the extension of path
func ContentType(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".gif":
		return "image/gif"
	case ".bmp":
		return "image/bmp"
	case ".tif", ".tiff":
		return "image/tiff"
	case ".ppm":
		return "image/x-portable-pixmap"
	}
	return "application/octet-stream"
}
