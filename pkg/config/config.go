// Package config collects render settings from defaults, a .env file, the
// process environment and command-line flags, in increasing priority.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/df07/go-sphere-tracer/pkg/integrator"
	"github.com/df07/go-sphere-tracer/pkg/renderer"
	"github.com/df07/go-sphere-tracer/pkg/scene"
	"github.com/df07/go-sphere-tracer/pkg/storage"
)

// DefaultEnvFile is read when TRACER_ENV_FILE is unset
const DefaultEnvFile = ".env"

// Config holds every knob of a render run. Zero numeric values keep the
// value chosen by the scene, except MaxDepth and Aperture where 0 is a real
// setting and -1 keeps the scene's value.
type Config struct {
	Scene       string
	Width       int
	Height      int
	Samples     int
	MaxDepth    int
	NearZero    float64
	DepthPolicy string
	Seed        int64
	Workers     int

	VFov          float64
	Aperture      float64
	FocusDistance float64

	Output    string
	Thumbnail int // Longest side of the thumbnail; 0 disables it
	Annotate  bool
	Quiet     bool
	Help      bool

	S3 storage.S3Config
}

// Default returns the configuration used when nothing is set
func Default() Config {
	return Config{
		Scene:    "default",
		MaxDepth: -1,
		Aperture: -1,
		Output:   "output/render.png",
	}
}

// Load builds a configuration from the .env file, the environment and args.
// Values in the process environment win over the .env file.
func Load(args []string, output io.Writer) (Config, error) {
	envFile := DefaultEnvFile
	if path, ok := os.LookupEnv("TRACER_ENV_FILE"); ok {
		envFile = path
	}

	fileEnv, err := godotenv.Read(envFile)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("read %s: %w", envFile, err)
	}

	lookup := func(key string) (string, bool) {
		if value, ok := os.LookupEnv(key); ok {
			return value, true
		}
		value, ok := fileEnv[key]
		return value, ok
	}

	cfg := Default()
	if err := cfg.applyEnv(lookup); err != nil {
		return Config{}, err
	}
	if err := cfg.parseFlags(args, output); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	stringVars := map[string]*string{
		"TRACER_SCENE":        &c.Scene,
		"TRACER_DEPTH_POLICY": &c.DepthPolicy,
		"TRACER_OUTPUT":       &c.Output,
		"S3_ENDPOINT":         &c.S3.Endpoint,
		"S3_REGION":           &c.S3.Region,
		"S3_BUCKET":           &c.S3.Bucket,
		"S3_ACCESS_KEY":       &c.S3.AccessKey,
		"S3_SECRET_KEY":       &c.S3.SecretKey,
		"S3_PREFIX":           &c.S3.Prefix,
		"S3_ACL":              &c.S3.ACL,
	}
	for key, dst := range stringVars {
		if value, ok := lookup(key); ok {
			*dst = value
		}
	}

	intVars := map[string]*int{
		"TRACER_WIDTH":     &c.Width,
		"TRACER_HEIGHT":    &c.Height,
		"TRACER_SAMPLES":   &c.Samples,
		"TRACER_MAX_DEPTH": &c.MaxDepth,
		"TRACER_WORKERS":   &c.Workers,
		"TRACER_THUMBNAIL": &c.Thumbnail,
	}
	for key, dst := range intVars {
		if value, ok := lookup(key); ok {
			n, err := strconv.Atoi(value)
			if err != nil {
				return fmt.Errorf("%s: %w", key, err)
			}
			*dst = n
		}
	}

	floatVars := map[string]*float64{
		"TRACER_NEAR_ZERO":      &c.NearZero,
		"TRACER_VFOV":           &c.VFov,
		"TRACER_APERTURE":       &c.Aperture,
		"TRACER_FOCUS_DISTANCE": &c.FocusDistance,
	}
	for key, dst := range floatVars {
		if value, ok := lookup(key); ok {
			f, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return fmt.Errorf("%s: %w", key, err)
			}
			*dst = f
		}
	}

	if value, ok := lookup("TRACER_SEED"); ok {
		seed, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmt.Errorf("TRACER_SEED: %w", err)
		}
		c.Seed = seed
	}
	if value, ok := lookup("TRACER_ANNOTATE"); ok {
		annotate, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("TRACER_ANNOTATE: %w", err)
		}
		c.Annotate = annotate
	}
	return nil
}

func (c *Config) parseFlags(args []string, output io.Writer) error {
	flags := flag.NewFlagSet("sphere-tracer", flag.ContinueOnError)
	flags.SetOutput(output)

	flags.StringVar(&c.Scene, "scene", c.Scene, "Scene: 'default', 'random', 'single-sphere', 'empty' or a .json file")
	flags.IntVar(&c.Width, "width", c.Width, "Image width in pixels (0 = scene default)")
	flags.IntVar(&c.Height, "height", c.Height, "Image height in pixels (0 = scene default)")
	flags.IntVar(&c.Samples, "samples", c.Samples, "Samples per pixel (0 = scene default)")
	flags.IntVar(&c.MaxDepth, "depth", c.MaxDepth, "Maximum bounces per path (-1 = scene default)")
	flags.Float64Var(&c.NearZero, "near-zero", c.NearZero, "Minimum hit distance (0 = scene default)")
	flags.StringVar(&c.DepthPolicy, "depth-policy", c.DepthPolicy, "Color at the bounce limit: 'accumulated' or 'black'")
	flags.Int64Var(&c.Seed, "seed", c.Seed, "Random seed (0 = scene default)")
	flags.IntVar(&c.Workers, "workers", c.Workers, "Parallel workers (0 = number of CPUs)")
	flags.Float64Var(&c.VFov, "vfov", c.VFov, "Vertical field of view in degrees (0 = scene default)")
	flags.Float64Var(&c.Aperture, "aperture", c.Aperture, "Lens aperture, 0 for a pinhole (-1 = scene default)")
	flags.Float64Var(&c.FocusDistance, "focus", c.FocusDistance, "Focus distance (0 = scene default)")
	flags.StringVar(&c.Output, "output", c.Output, "Output file; the extension picks the format (.png, .jpg, .ppm, ...)")
	flags.IntVar(&c.Thumbnail, "thumbnail", c.Thumbnail, "Also write a thumbnail with this longest side (0 = off)")
	flags.BoolVar(&c.Annotate, "annotate", c.Annotate, "Draw a caption with render statistics onto the image")
	flags.BoolVar(&c.Quiet, "quiet", c.Quiet, "Suppress progress output")
	flags.BoolVar(&c.Help, "help", c.Help, "Show help information")
	flags.StringVar(&c.S3.Bucket, "s3-bucket", c.S3.Bucket, "Upload the render to this S3 bucket")
	flags.StringVar(&c.S3.Prefix, "s3-prefix", c.S3.Prefix, "Key prefix for uploads")

	if err := flags.Parse(args); err != nil {
		return err
	}
	if c.Help {
		fmt.Fprintln(output, "Options:")
		flags.PrintDefaults()
	}
	return nil
}

// Validate reports settings that can never produce an image
func (c Config) Validate() error {
	var errs []error
	if c.Width < 0 || c.Height < 0 {
		errs = append(errs, fmt.Errorf("image size must be positive, got %dx%d", c.Width, c.Height))
	}
	if c.Samples < 0 {
		errs = append(errs, fmt.Errorf("samples must be positive, got %d", c.Samples))
	}
	if c.MaxDepth < -1 {
		errs = append(errs, fmt.Errorf("depth must be >= 0, got %d", c.MaxDepth))
	}
	if c.Aperture < 0 && c.Aperture != -1 {
		errs = append(errs, fmt.Errorf("aperture must be >= 0, got %g", c.Aperture))
	}
	if c.NearZero < 0 {
		errs = append(errs, fmt.Errorf("near-zero must be >= 0, got %g", c.NearZero))
	}
	if c.Workers < 0 {
		errs = append(errs, fmt.Errorf("workers must be >= 0, got %d", c.Workers))
	}
	if c.Thumbnail < 0 {
		errs = append(errs, fmt.Errorf("thumbnail size must be >= 0, got %d", c.Thumbnail))
	}
	if c.Output == "" {
		errs = append(errs, errors.New("output path is required"))
	}
	if _, err := integrator.ParseDepthPolicy(c.DepthPolicy); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// CameraOverrides returns the camera fields set by this configuration
func (c Config) CameraOverrides() renderer.CameraConfig {
	return renderer.CameraConfig{
		VFov:          c.VFov,
		Aperture:      max(c.Aperture, 0),
		FocusDistance: c.FocusDistance,
	}
}

// Apply writes the explicitly set sampling and integrator values into s
func (c Config) Apply(s *scene.Scene) error {
	if c.Width > 0 {
		s.Sampling.Width = c.Width
	}
	if c.Height > 0 {
		s.Sampling.Height = c.Height
	}
	if c.Samples > 0 {
		s.Sampling.SamplesPerPixel = c.Samples
	}
	if c.Seed != 0 {
		s.Sampling.Seed = c.Seed
	}
	s.Sampling.NumWorkers = c.Workers

	if c.MaxDepth >= 0 {
		s.Integrator.MaxDepth = c.MaxDepth
	}
	if c.NearZero > 0 {
		s.Integrator.NearZero = c.NearZero
	}
	if c.DepthPolicy != "" {
		policy, err := integrator.ParseDepthPolicy(c.DepthPolicy)
		if err != nil {
			return err
		}
		s.Integrator.DepthPolicy = policy
	}

	s.CameraConfig = renderer.MergeCameraConfig(s.CameraConfig, c.CameraOverrides())
	if c.Aperture >= 0 {
		s.CameraConfig.Aperture = c.Aperture
	}
	return s.Sampling.Validate()
}
