package scene

import (
	"math/rand"

	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/material"
	"github.com/df07/go-sphere-tracer/pkg/renderer"
)

const (
	gridHalfExtent  = 11  // Grid cells run from -11 to 10 on both axes
	smallRadius     = 0.2 // Radius of the scattered spheres
	cellJitter      = 0.9 // Maximum offset of a sphere inside its cell
	diffuseFraction = 0.8
	metalFraction   = 0.15
	smallMetalFuzz  = 0.5
	glassIndex      = 1.5
	exclusionRadius = 0.9 // Keeps small spheres clear of the metal feature sphere
)

// NewRandomScene creates the classic cover scene: a grid of small randomly
// placed spheres around three large feature spheres. The same seed always
// produces the same layout.
func NewRandomScene(seed int64) *Scene {
	sampling, integ := defaultSampling()
	sampling.Width = 1200
	sampling.Height = 800
	sampling.SamplesPerPixel = 10

	s := &Scene{
		Name: "random",
		CameraConfig: renderer.CameraConfig{
			LookFrom:      core.NewVec3(13, 2, 3),
			LookAt:        core.NewVec3(0, 0, 0),
			Up:            core.NewVec3(0, 1, 0),
			VFov:          20.0,
			Aperture:      0.1,
			FocusDistance: 10.0,
		},
		Sampling:   sampling,
		Integrator: integ,
	}

	random := rand.New(rand.NewSource(seed))
	exclusionCenter := core.NewVec3(4, smallRadius, 0)

	for a := -gridHalfExtent; a < gridHalfExtent; a++ {
		for b := -gridHalfExtent; b < gridHalfExtent; b++ {
			chooseMaterial := random.Float64()
			center := core.NewVec3(
				float64(a)+cellJitter*random.Float64(),
				smallRadius,
				float64(b)+cellJitter*random.Float64(),
			)
			if center.Subtract(exclusionCenter).Length() <= exclusionRadius {
				continue
			}

			var mat *material.Material
			switch {
			case chooseMaterial < diffuseFraction:
				mat = material.NewLambertian(core.NewVec3(
					random.Float64()*random.Float64(),
					random.Float64()*random.Float64(),
					random.Float64()*random.Float64(),
				))
			case chooseMaterial < diffuseFraction+metalFraction:
				mat = material.NewMetal(core.NewVec3(
					0.5*(1+random.Float64()),
					0.5*(1+random.Float64()),
					0.5*(1+random.Float64()),
				), smallMetalFuzz)
			default:
				mat = material.NewDielectric(glassIndex)
			}
			s.AddSphere(center, smallRadius, mat)
		}
	}

	s.AddSphere(core.NewVec3(0, -1000, 0), 1000, material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5)))
	s.AddSphere(core.NewVec3(0, 1, 0), 1, material.NewDielectric(glassIndex))
	s.AddSphere(core.NewVec3(-4, 1, 0), 1, material.NewLambertian(core.NewVec3(0.4, 0.2, 0.1)))
	s.AddSphere(core.NewVec3(4, 1, 0), 1, material.NewMetal(core.NewVec3(0.7, 0.6, 0.5), 0.0))

	return s
}
