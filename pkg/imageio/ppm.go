// Package imageio writes rendered frames to disk in PPM and the common raster formats.
package imageio

import (
	"bufio"
	"fmt"
	"io"

	"github.com/df07/go-sphere-tracer/pkg/renderer"
)

// WritePPM writes the frame as plain-text PPM (P3): a header of magic,
// width, height and max value on separate lines, then one "R G B" line
// per pixel, top row first.
func WritePPM(w io.Writer, frame *renderer.Frame) error {
	bw := bufio.NewWriter(w)

	if _, err := fmt.Fprintf(bw, "P3\n%d\n%d\n255\n", frame.Width, frame.Height); err != nil {
		return fmt.Errorf("write ppm header: %w", err)
	}

	for _, c := range frame.Pixels {
		rgba := renderer.ToColor(c)
		if _, err := fmt.Fprintf(bw, "%d %d %d\n", rgba.R, rgba.G, rgba.B); err != nil {
			return fmt.Errorf("write ppm pixel: %w", err)
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write ppm: %w", err)
	}
	return nil
}
