package main

import (
	"context"
	"fmt"
	"image"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/df07/go-sphere-tracer/pkg/config"
	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/imageio"
	"github.com/df07/go-sphere-tracer/pkg/renderer"
	"github.com/df07/go-sphere-tracer/pkg/scene"
	"github.com/df07/go-sphere-tracer/pkg/storage"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// writerLogger adapts an io.Writer to core.Logger
type writerLogger struct {
	w io.Writer
}

func (l writerLogger) Printf(format string, args ...interface{}) {
	fmt.Fprintf(l.w, format, args...)
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	cfg, err := config.Load(args, stdout)
	if err != nil {
		return err
	}

	if cfg.Help {
		printHelp(stdout)
		return nil
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	var logger core.Logger = writerLogger{stdout}
	if cfg.Quiet {
		logger = core.NopLogger{}
	}

	selectedScene, err := createScene(cfg)
	if err != nil {
		return err
	}
	logger.Printf("Scene %s\n", selectedScene.Describe())

	raytracer := selectedScene.NewRaytracer()
	raytracer.SetLogger(logger)
	raytracer.SetProgressFunc(progressLogger(logger))

	frame, stats, err := raytracer.Render(ctx)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}

	if err := saveOutputs(cfg, frame, stats, logger); err != nil {
		return err
	}

	if cfg.S3.Enabled() {
		if err := upload(ctx, cfg, logger); err != nil {
			return err
		}
	}
	return nil
}

func printHelp(w io.Writer) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Available scenes:")
	for _, info := range scene.BuiltInScenes() {
		fmt.Fprintf(w, "  %-14s %s\n", info.ID, info.Description)
	}
	fmt.Fprintln(w, "  <file>.json    Scene description file")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Settings may also come from TRACER_* and S3_* environment variables or a .env file.")
}

// createScene builds the selected scene and applies configuration overrides
func createScene(cfg config.Config) (*scene.Scene, error) {
	s, err := scene.Create(cfg.Scene, cfg.Seed, cfg.CameraOverrides())
	if err != nil {
		return nil, err
	}
	if err := cfg.Apply(s); err != nil {
		return nil, fmt.Errorf("scene %s: %w", s.Name, err)
	}
	return s, nil
}

// progressLogger reports every tenth of the image
func progressLogger(logger core.Logger) renderer.ProgressFunc {
	lastDecile := 0
	return func(done, total int) {
		decile := done * 10 / total
		if decile > lastDecile {
			lastDecile = decile
			logger.Printf("Progress: %d%% (%d/%d rows)\n", decile*10, done, total)
		}
	}
}

func caption(frame *renderer.Frame, stats renderer.RenderStats) string {
	return fmt.Sprintf("%dx%d  %d spp  %v",
		frame.Width, frame.Height, stats.TotalSamples/max(stats.TotalPixels, 1), stats.Duration.Round(time.Millisecond))
}

func saveOutputs(cfg config.Config, frame *renderer.Frame, stats renderer.RenderStats, logger core.Logger) error {
	isPPM := strings.EqualFold(filepath.Ext(cfg.Output), ".ppm")

	var img image.Image = frame.RGBA()
	if cfg.Annotate {
		img = imageio.Annotate(img, caption(frame, stats))
	}

	if isPPM {
		if cfg.Annotate {
			logger.Printf("Annotation skipped for PPM output\n")
		}
		if err := imageio.Save(cfg.Output, frame); err != nil {
			return err
		}
	} else if err := imageio.SaveImage(cfg.Output, img); err != nil {
		return err
	}
	logger.Printf("Render saved as %s\n", cfg.Output)

	if cfg.Thumbnail > 0 {
		thumbPath := imageio.ThumbnailPath(cfg.Output)
		if isPPM {
			thumbPath = strings.TrimSuffix(thumbPath, filepath.Ext(thumbPath)) + ".png"
		}
		if err := imageio.SaveImage(thumbPath, imageio.Thumbnail(img, cfg.Thumbnail)); err != nil {
			return err
		}
		logger.Printf("Thumbnail saved as %s\n", thumbPath)
	}
	return nil
}

func upload(ctx context.Context, cfg config.Config, logger core.Logger) error {
	uploader, err := storage.NewUploader(cfg.S3, logger)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(cfg.Output)
	if err != nil {
		return fmt.Errorf("read render for upload: %w", err)
	}

	_, err = uploader.Upload(ctx, filepath.Base(cfg.Output), data, imageio.ContentType(cfg.Output))
	return err
}
