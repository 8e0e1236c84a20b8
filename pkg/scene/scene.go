package scene

import (
	"errors"
	"fmt"
	"strings"

	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/geometry"
	"github.com/df07/go-sphere-tracer/pkg/integrator"
	"github.com/df07/go-sphere-tracer/pkg/material"
	"github.com/df07/go-sphere-tracer/pkg/renderer"
)

// ErrUnknownScene is returned by Create for names that are neither built in nor a scene file
var ErrUnknownScene = errors.New("unknown scene")

// Scene contains all the elements needed for rendering
type Scene struct {
	Name         string
	CameraConfig renderer.CameraConfig
	World        geometry.List // Objects in the scene
	Sampling     renderer.SamplingConfig
	Integrator   integrator.Config
}

// NewCamera builds the camera for the scene, deriving the aspect ratio from
// the image size when the camera config leaves it unset
func (s *Scene) NewCamera() *renderer.Camera {
	config := s.CameraConfig
	if config.AspectRatio == 0 && s.Sampling.Height > 0 {
		config.AspectRatio = float64(s.Sampling.Width) / float64(s.Sampling.Height)
	}
	return renderer.NewCamera(config)
}

// NewRaytracer wires the scene into a path-tracing raytracer
func (s *Scene) NewRaytracer() *renderer.Raytracer {
	return renderer.NewRaytracer(s.World, s.NewCamera(), integrator.NewPathTracer(s.Integrator), s.Sampling)
}

// GetPrimitiveCount returns the total number of primitive objects in the scene
func (s *Scene) GetPrimitiveCount() int {
	return len(s.World)
}

// Describe returns a one-line summary of the scene contents
func (s *Scene) Describe() string {
	counts := s.World.CountByMaterial()
	center, radius := s.World.Bounds()
	return fmt.Sprintf("%s: %d spheres (%d diffuse, %d metal, %d glass), bounds center %.2f,%.2f,%.2f radius %.2f",
		s.Name, len(s.World),
		counts[material.KindLambertian], counts[material.KindMetal], counts[material.KindDielectric],
		center.X, center.Y, center.Z, radius)
}

// AddSphere appends a sphere to the world
func (s *Scene) AddSphere(center core.Vec3, radius float64, mat *material.Material) {
	s.World = append(s.World, geometry.NewSpherePrimitive(center, radius, mat))
}

// defaultSampling is shared by the built-in scenes
func defaultSampling() (renderer.SamplingConfig, integrator.Config) {
	return renderer.DefaultSamplingConfig(), integrator.DefaultConfig()
}

// Create resolves a built-in scene name or a path to a JSON scene file.
// Camera overrides are merged over the scene's own camera.
func Create(name string, seed int64, cameraOverrides ...renderer.CameraConfig) (*Scene, error) {
	var s *Scene
	switch {
	case name == "default" || name == "":
		s = NewDefaultScene()
	case name == "random" || name == "final":
		s = NewRandomScene(seed)
	case name == "empty":
		s = NewEmptyScene()
	case name == "single-sphere":
		s = NewSingleSphereScene()
	case strings.HasSuffix(strings.ToLower(name), ".json"):
		loaded, err := Load(name)
		if err != nil {
			return nil, err
		}
		s = loaded
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownScene, name)
	}

	if len(cameraOverrides) > 0 {
		s.CameraConfig = renderer.MergeCameraConfig(s.CameraConfig, cameraOverrides[0])
	}
	return s, nil
}
