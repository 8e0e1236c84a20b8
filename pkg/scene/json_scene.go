package scene

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/geometry"
	"github.com/df07/go-sphere-tracer/pkg/integrator"
	"github.com/df07/go-sphere-tracer/pkg/material"
	"github.com/df07/go-sphere-tracer/pkg/renderer"
)

// MaterialCfg describes a named material in a scene file
type MaterialCfg struct {
	Type            string    `json:"type"` // lambertian, metal or dielectric
	Albedo          core.Vec3 `json:"albedo"`
	Fuzz            float64   `json:"fuzz,omitempty"`
	RefractiveIndex float64   `json:"refractiveIndex,omitempty"`
}

// SphereCfg places a sphere that references a material by name
type SphereCfg struct {
	Center   core.Vec3 `json:"center"`
	Radius   float64   `json:"radius"`
	Material string    `json:"material"`
}

// SamplingCfg holds the render settings of a scene file. Zero values keep the
// defaults, except MaxDepth where only an absent value does.
type SamplingCfg struct {
	Width           int     `json:"width,omitempty"`
	Height          int     `json:"height,omitempty"`
	SamplesPerPixel int     `json:"samplesPerPixel,omitempty"`
	MaxDepth        *int    `json:"maxDepth,omitempty"`
	NearZero        float64 `json:"nearZero,omitempty"`
	DepthPolicy     string  `json:"depthPolicy,omitempty"`
	Seed            int64   `json:"seed,omitempty"`
}

// FileCfg is the top-level layout of a JSON scene file
type FileCfg struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description,omitempty"`
	Group       string                 `json:"group,omitempty"`
	Camera      renderer.CameraConfig  `json:"camera"`
	Sampling    SamplingCfg            `json:"sampling"`
	Background  *integrator.Background `json:"background,omitempty"`
	Materials   map[string]MaterialCfg `json:"materials"`
	Spheres     []SphereCfg            `json:"spheres"`
}

// Build validates the material description and constructs it
func (mc MaterialCfg) Build() (*material.Material, error) {
	kind, err := material.ParseKind(mc.Type)
	if err != nil {
		return nil, err
	}
	switch kind {
	case material.KindMetal:
		return material.NewMetal(mc.Albedo, mc.Fuzz), nil
	case material.KindDielectric:
		if mc.RefractiveIndex <= 0 {
			return nil, fmt.Errorf("refractive index must be > 0, got %g", mc.RefractiveIndex)
		}
		return material.NewDielectric(mc.RefractiveIndex), nil
	default:
		return material.NewLambertian(mc.Albedo), nil
	}
}

// Load reads a scene from a JSON file
func Load(path string) (*Scene, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open scene: %w", err)
	}
	defer f.Close()

	s, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("scene %s: %w", path, err)
	}
	if s.Name == "" {
		s.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return s, nil
}

// Parse decodes and validates a JSON scene
func Parse(r io.Reader) (*Scene, error) {
	var cfg FileCfg
	if err := json.NewDecoder(r).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decode scene: %w", err)
	}
	return cfg.Build()
}

// Build turns a decoded scene file into a scene. Spheres naming the same
// material share one *material.Material.
func (cfg FileCfg) Build() (*Scene, error) {
	sampling, integ := defaultSampling()
	s := &Scene{
		Name:         cfg.Name,
		CameraConfig: cfg.Camera,
		Sampling:     sampling,
		Integrator:   integ,
	}

	if s.CameraConfig.Up == (core.Vec3{}) {
		s.CameraConfig.Up = core.NewVec3(0, 1, 0)
	}
	if s.CameraConfig.VFov == 0 {
		s.CameraConfig.VFov = 90
	}
	if s.CameraConfig.LookFrom == s.CameraConfig.LookAt {
		return nil, fmt.Errorf("camera lookFrom and lookAt must differ")
	}

	if err := cfg.Sampling.apply(s); err != nil {
		return nil, err
	}
	if cfg.Background != nil {
		s.Integrator.Background = *cfg.Background
	}

	materials := make(map[string]*material.Material, len(cfg.Materials))
	for name, mc := range cfg.Materials {
		mat, err := mc.Build()
		if err != nil {
			return nil, fmt.Errorf("material %q: %w", name, err)
		}
		materials[name] = mat
	}

	s.World = make(geometry.List, 0, len(cfg.Spheres))
	for i, sc := range cfg.Spheres {
		mat, ok := materials[sc.Material]
		if !ok {
			return nil, fmt.Errorf("sphere %d: unknown material %q", i, sc.Material)
		}
		if sc.Radius == 0 {
			return nil, fmt.Errorf("sphere %d: radius must be non-zero", i)
		}
		s.AddSphere(sc.Center, sc.Radius, mat)
	}

	return s, nil
}

func (sc SamplingCfg) apply(s *Scene) error {
	if sc.Width < 0 || sc.Height < 0 || sc.SamplesPerPixel < 0 {
		return fmt.Errorf("sampling dimensions must be positive, got %dx%d at %d spp",
			sc.Width, sc.Height, sc.SamplesPerPixel)
	}
	if sc.MaxDepth != nil && *sc.MaxDepth < 0 {
		return fmt.Errorf("maxDepth must be >= 0, got %d", *sc.MaxDepth)
	}

	if sc.Width > 0 {
		s.Sampling.Width = sc.Width
	}
	if sc.Height > 0 {
		s.Sampling.Height = sc.Height
	}
	if sc.SamplesPerPixel > 0 {
		s.Sampling.SamplesPerPixel = sc.SamplesPerPixel
	}
	if sc.Seed != 0 {
		s.Sampling.Seed = sc.Seed
	}
	if sc.MaxDepth != nil {
		s.Integrator.MaxDepth = *sc.MaxDepth
	}
	if sc.NearZero > 0 {
		s.Integrator.NearZero = sc.NearZero
	}

	policy, err := integrator.ParseDepthPolicy(sc.DepthPolicy)
	if err != nil {
		return err
	}
	s.Integrator.DepthPolicy = policy
	return nil
}
