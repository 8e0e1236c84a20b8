package config

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/df07/go-sphere-tracer/pkg/integrator"
	"github.com/df07/go-sphere-tracer/pkg/scene"
)

// isolateEnv points the loader at a .env file inside a temp dir
func isolateEnv(t *testing.T, contents string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".env")
	if contents != "" {
		if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
			t.Fatal(err)
		}
	}
	t.Setenv("TRACER_ENV_FILE", path)
}

func TestLoad_Defaults(t *testing.T) {
	isolateEnv(t, "")

	cfg, err := Load(nil, io.Discard)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg != Default() {
		t.Errorf("Expected defaults, got %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Defaults should validate: %v", err)
	}
}

func TestLoad_Priority(t *testing.T) {
	isolateEnv(t, "TRACER_WIDTH=320\nTRACER_HEIGHT=240\nTRACER_SAMPLES=16\nS3_BUCKET=from-file\nTRACER_ANNOTATE=true\n")
	t.Setenv("TRACER_HEIGHT", "180")
	t.Setenv("TRACER_NEAR_ZERO", "0.01")

	cfg, err := Load([]string{"-samples", "64", "-scene", "random"}, io.Discard)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Width != 320 {
		t.Errorf("Width from .env = %d, want 320", cfg.Width)
	}
	if cfg.Height != 180 {
		t.Errorf("Process env should beat .env: height = %d, want 180", cfg.Height)
	}
	if cfg.Samples != 64 {
		t.Errorf("Flag should beat .env: samples = %d, want 64", cfg.Samples)
	}
	if cfg.NearZero != 0.01 || cfg.Scene != "random" || !cfg.Annotate {
		t.Errorf("Unexpected config %+v", cfg)
	}
	if !cfg.S3.Enabled() || cfg.S3.Bucket != "from-file" {
		t.Errorf("S3 bucket from .env not applied: %+v", cfg.S3)
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		env  string
		args []string
	}{
		{"bad int", "TRACER_WIDTH=wide\n", nil},
		{"bad float", "TRACER_APERTURE=open\n", nil},
		{"bad bool", "TRACER_ANNOTATE=maybe\n", nil},
		{"bad seed", "TRACER_SEED=1.5\n", nil},
		{"unknown flag", "", []string{"-bogus"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolateEnv(t, tt.env)
			if _, err := Load(tt.args, io.Discard); err == nil {
				t.Error("Expected error, got nil")
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr string
	}{
		{"valid", func(c *Config) {}, ""},
		{"negative width", func(c *Config) { c.Width = -1 }, "image size"},
		{"negative samples", func(c *Config) { c.Samples = -3 }, "samples"},
		{"depth below scene default marker", func(c *Config) { c.MaxDepth = -2 }, "depth"},
		{"negative near zero", func(c *Config) { c.NearZero = -0.1 }, "near-zero"},
		{"pinhole aperture", func(c *Config) { c.Aperture = 0 }, ""},
		{"negative aperture", func(c *Config) { c.Aperture = -0.5 }, "aperture"},
		{"unknown policy", func(c *Config) { c.DepthPolicy = "grey" }, "depth policy"},
		{"no output", func(c *Config) { c.Output = "" }, "output"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %v, want error mentioning %q", err, tt.wantErr)
			}
		})
	}
}

func TestApply(t *testing.T) {
	s := scene.NewDefaultScene()
	original := *s

	cfg := Default()
	cfg.Width = 64
	cfg.Samples = 3
	cfg.MaxDepth = 0
	cfg.DepthPolicy = "black"
	cfg.VFov = 25
	cfg.Workers = 2

	if err := cfg.Apply(s); err != nil {
		t.Fatalf("Apply() error: %v", err)
	}

	if s.Sampling.Width != 64 || s.Sampling.SamplesPerPixel != 3 || s.Sampling.NumWorkers != 2 {
		t.Errorf("Sampling overrides not applied: %+v", s.Sampling)
	}
	if s.Sampling.Height != original.Sampling.Height {
		t.Errorf("Unset height should keep scene value %d, got %d", original.Sampling.Height, s.Sampling.Height)
	}
	if s.Integrator.MaxDepth != 0 || s.Integrator.DepthPolicy != integrator.Black {
		t.Errorf("Integrator overrides not applied: %+v", s.Integrator)
	}
	if s.CameraConfig.VFov != 25 || s.CameraConfig.LookFrom != original.CameraConfig.LookFrom {
		t.Errorf("Camera override not merged: %+v", s.CameraConfig)
	}
}

func TestApply_KeepsSceneDepth(t *testing.T) {
	s := scene.NewDefaultScene()
	want := s.Integrator.MaxDepth

	if err := Default().Apply(s); err != nil {
		t.Fatalf("Apply() error: %v", err)
	}
	if s.Integrator.MaxDepth != want {
		t.Errorf("Default config changed depth to %d, want %d", s.Integrator.MaxDepth, want)
	}
}

func TestApply_Aperture(t *testing.T) {
	tests := []struct {
		name     string
		aperture float64
		expected float64
	}{
		{"unset keeps the scene lens", -1, 0.1},
		{"zero gives a pinhole", 0, 0},
		{"explicit value", 0.4, 0.4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := scene.NewRandomScene(1)
			cfg := Default()
			cfg.Aperture = tt.aperture

			if err := cfg.Apply(s); err != nil {
				t.Fatalf("Apply() error: %v", err)
			}
			if s.CameraConfig.Aperture != tt.expected {
				t.Errorf("Aperture = %g, want %g", s.CameraConfig.Aperture, tt.expected)
			}
		})
	}
}
