package integrator

import (
	"math"

	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/geometry"
)

// PathTracer implements unidirectional path tracing with no light sampling:
// paths pick up color only when they escape to the background.
type PathTracer struct {
	config Config
}

// NewPathTracer creates a new path tracing integrator
func NewPathTracer(config Config) *PathTracer {
	return &PathTracer{config: config}
}

// Config returns the integrator configuration
func (pt *PathTracer) Config() Config {
	return pt.config
}

// Trace follows a path through the scene. Bounces are iterated rather than
// recursed, so stack usage does not grow with MaxDepth.
func (pt *PathTracer) Trace(ray core.Ray, world geometry.Hittable, sampler core.Sampler) core.Vec3 {
	attenuation := core.NewVec3(1, 1, 1)

	for depth := 0; ; depth++ {
		// NearZero skips re-hits of the surface the ray just left
		hit, isHit := world.Hit(ray, pt.config.NearZero, math.Inf(1))
		if !isHit {
			return attenuation.MultiplyVec(pt.config.Background.At(ray))
		}

		if depth >= pt.config.MaxDepth {
			if pt.config.DepthPolicy == Black {
				return core.Vec3{}
			}
			return attenuation
		}

		scattered, didScatter := hit.Material.Scatter(ray, hit, sampler)
		if !didScatter {
			return core.Vec3{}
		}

		attenuation = attenuation.MultiplyVec(hit.Material.Albedo())
		ray = scattered
	}
}
