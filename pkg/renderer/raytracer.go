package renderer

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/geometry"
	"github.com/df07/go-sphere-tracer/pkg/integrator"
)

// SamplingConfig contains rendering configuration
type SamplingConfig struct {
	Width           int   // Image width in pixels
	Height          int   // Image height in pixels
	SamplesPerPixel int   // Number of rays per pixel
	NumWorkers      int   // Number of parallel workers (0 = use CPU count)
	Seed            int64 // Master seed; each row derives its own stream from it
}

// DefaultSamplingConfig returns sensible default values
func DefaultSamplingConfig() SamplingConfig {
	return SamplingConfig{
		Width:           400,
		Height:          225,
		SamplesPerPixel: 100,
		NumWorkers:      0,
		Seed:            42,
	}
}

// Validate reports configurations that cannot produce an image
func (c SamplingConfig) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("image size must be positive, got %dx%d", c.Width, c.Height)
	}
	if c.SamplesPerPixel <= 0 {
		return fmt.Errorf("samples per pixel must be positive, got %d", c.SamplesPerPixel)
	}
	return nil
}

// ProgressFunc is called from the collecting goroutine after each completed row
type ProgressFunc func(rowsDone, totalRows int)

// Raytracer handles the rendering process
type Raytracer struct {
	world      geometry.Hittable
	camera     *Camera
	integrator integrator.Integrator
	config     SamplingConfig
	logger     core.Logger
	progress   ProgressFunc
	rowsDone   atomic.Int64
}

// NewRaytracer creates a new raytracer. The world and camera must not be
// modified while a render is in progress.
func NewRaytracer(world geometry.Hittable, camera *Camera, integ integrator.Integrator, config SamplingConfig) *Raytracer {
	return &Raytracer{
		world:      world,
		camera:     camera,
		integrator: integ,
		config:     config,
		logger:     core.NopLogger{},
	}
}

// SetLogger sets the logger used for render messages
func (rt *Raytracer) SetLogger(logger core.Logger) {
	rt.logger = logger
}

// SetProgressFunc registers a callback for row completion
func (rt *Raytracer) SetProgressFunc(fn ProgressFunc) {
	rt.progress = fn
}

// SetSamplingConfig updates the sampling configuration
func (rt *Raytracer) SetSamplingConfig(config SamplingConfig) {
	rt.config = config
}

// RowsCompleted returns the number of rows finished by the current or last render
func (rt *Raytracer) RowsCompleted() int {
	return int(rt.rowsDone.Load())
}

// Render traces every pixel and returns the gamma-corrected frame.
// Cancellation is honoured between rows; a cancelled render returns ctx.Err().
func (rt *Raytracer) Render(ctx context.Context) (*Frame, RenderStats, error) {
	if err := rt.config.Validate(); err != nil {
		return nil, RenderStats{}, err
	}

	width, height := rt.config.Width, rt.config.Height
	frame := NewFrame(width, height)
	rt.rowsDone.Store(0)

	rowRenderer := NewRowRenderer(rt.world, rt.camera, rt.integrator, width, height, rt.config.SamplesPerPixel)
	pool := NewWorkerPool(rowRenderer, rt.config.Seed, rt.config.NumWorkers, height)
	pool.onRowDone = func() { rt.rowsDone.Add(1) }

	rt.logger.Printf("Rendering %dx%d, %d spp on %d workers\n",
		width, height, rt.config.SamplesPerPixel, pool.GetNumWorkers())

	startTime := time.Now()
	pool.Start(ctx)

	// Image-plane row j lands in frame row height-1-j so the top row comes first
	for j := 0; j < height; j++ {
		pool.SubmitTask(RowTask{Row: j, Pixels: frame.Row(height - 1 - j)})
	}
	go pool.Stop()

	stats := RenderStats{Workers: pool.GetNumWorkers()}
	var renderErr error
	for {
		result, ok := pool.GetResult()
		if !ok {
			break
		}
		if result.Error != nil {
			if renderErr == nil {
				renderErr = result.Error
			}
			continue
		}

		stats.Rows++
		stats.TotalSamples += result.Samples
		if rt.progress != nil {
			rt.progress(stats.Rows, height)
		}
	}
	stats.Duration = time.Since(startTime)

	if renderErr != nil {
		return nil, stats, renderErr
	}

	stats.TotalPixels = width * height
	for _, c := range frame.Pixels {
		if c.IsNaN() {
			stats.NaNPixels++
		}
	}
	if stats.NaNPixels > 0 {
		rt.logger.Printf("Warning: %d pixels contain NaN\n", stats.NaNPixels)
	}

	rt.logger.Printf("Render completed in %v (%.0f samples/s)\n", stats.Duration, stats.SamplesPerSecond())
	return frame, stats, nil
}
