package scene

import (
	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/material"
	"github.com/df07/go-sphere-tracer/pkg/renderer"
)

// NewDefaultScene creates three spheres resting on a large ground sphere
func NewDefaultScene() *Scene {
	sampling, integ := defaultSampling()

	s := &Scene{
		Name: "default",
		CameraConfig: renderer.CameraConfig{
			LookFrom:      core.NewVec3(-2, 2, 1),
			LookAt:        core.NewVec3(0, 0, -1),
			Up:            core.NewVec3(0, 1, 0),
			VFov:          40.0,
			Aperture:      0.0,
			FocusDistance: 0.0, // Auto-calculate focus distance
		},
		Sampling:   sampling,
		Integrator: integ,
	}

	lambertianBlue := material.NewLambertian(core.NewVec3(0.1, 0.2, 0.5))
	lambertianGround := material.NewLambertian(core.NewVec3(0.8, 0.8, 0.0))
	metalGold := material.NewMetal(core.NewVec3(0.8, 0.6, 0.2), 0.3)
	glass := material.NewDielectric(1.5)

	s.AddSphere(core.NewVec3(0, 0, -1), 0.5, lambertianBlue)
	s.AddSphere(core.NewVec3(0, -100.5, -1), 100, lambertianGround)
	s.AddSphere(core.NewVec3(1, 0, -1), 0.5, metalGold)
	s.AddSphere(core.NewVec3(-1, 0, -1), 0.5, glass)
	// Negative radius flips the normals, turning the glass ball into a hollow bubble
	s.AddSphere(core.NewVec3(-1, 0, -1), -0.45, glass)

	return s
}

// NewEmptyScene has no objects; every pixel shows the sky gradient
func NewEmptyScene() *Scene {
	sampling, integ := defaultSampling()
	return &Scene{
		Name: "empty",
		CameraConfig: renderer.CameraConfig{
			LookFrom: core.NewVec3(0, 0, 0),
			LookAt:   core.NewVec3(0, 0, -1),
			Up:       core.NewVec3(0, 1, 0),
			VFov:     90.0,
		},
		Sampling:   sampling,
		Integrator: integ,
	}
}

// NewSingleSphereScene places one diffuse sphere in front of the camera
func NewSingleSphereScene() *Scene {
	s := NewEmptyScene()
	s.Name = "single-sphere"
	s.AddSphere(core.NewVec3(0, 0, -1), 0.5, material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5)))
	return s
}
