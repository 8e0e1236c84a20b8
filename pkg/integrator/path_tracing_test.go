package integrator

import (
	"math"
	"math/rand"
	"testing"

	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/geometry"
	"github.com/df07/go-sphere-tracer/pkg/material"
)

// countingWorld records how many intersection queries a path makes
type countingWorld struct {
	inner geometry.Hittable
	calls int
	tMins []float64
}

func (c *countingWorld) Hit(ray core.Ray, tMin, tMax float64) (material.HitRecord, bool) {
	c.calls++
	c.tMins = append(c.tMins, tMin)
	return c.inner.Hit(ray, tMin, tMax)
}

func newSampler() core.Sampler {
	return core.NewRandomSampler(rand.New(rand.NewSource(42)))
}

func TestBackground_Gradient(t *testing.T) {
	bg := DefaultBackground()

	tests := []struct {
		name      string
		direction core.Vec3
		expected  core.Vec3
	}{
		{"straight up is sky blue", core.NewVec3(0, 5, 0), core.NewVec3(0.5, 0.7, 1.0)},
		{"straight down is white", core.NewVec3(0, -1, 0), core.NewVec3(1, 1, 1)},
		{"horizon is halfway", core.NewVec3(0, 0, -1), core.NewVec3(0.75, 0.85, 1.0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := bg.At(core.NewRay(core.Vec3{}, tt.direction))
			if got.Subtract(tt.expected).Length() > 1e-12 {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestPathTracer_MissReturnsBackground(t *testing.T) {
	pt := NewPathTracer(DefaultConfig())
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0.3, 0.4, -1))

	got := pt.Trace(ray, geometry.List{}, newSampler())
	expected := DefaultBackground().At(ray)
	if got != expected {
		t.Errorf("Expected background %v, got %v", expected, got)
	}
}

func TestPathTracer_DepthPolicy(t *testing.T) {
	albedo := core.NewVec3(0.5, 0.5, 0.5)
	world := geometry.List{geometry.NewSpherePrimitive(core.NewVec3(0, 0, -2), 1, material.NewLambertian(albedo))}
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))

	tests := []struct {
		name     string
		policy   DepthPolicy
		expected core.Vec3
	}{
		{"accumulated keeps the initial throughput", KeepAccumulated, core.NewVec3(1, 1, 1)},
		{"black contributes nothing", Black, core.Vec3{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultConfig()
			config.MaxDepth = 0
			config.DepthPolicy = tt.policy

			got := NewPathTracer(config).Trace(ray, world, newSampler())
			if got != tt.expected {
				t.Errorf("Expected %v at depth limit, got %v", tt.expected, got)
			}
		})
	}
}

func TestPathTracer_AttenuatesByAlbedoPerBounce(t *testing.T) {
	// A mirror facing the camera bounces the ray straight back out to the sky
	albedo := core.NewVec3(0.8, 0.6, 0.4)
	world := geometry.List{geometry.NewSpherePrimitive(core.NewVec3(0, 0, -2), 1, material.NewMetal(albedo, 0))}
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))

	got := NewPathTracer(DefaultConfig()).Trace(ray, world, newSampler())

	reflected := core.NewRay(core.NewVec3(0, 0, -1), core.NewVec3(0, 0, 1))
	expected := albedo.MultiplyVec(DefaultBackground().At(reflected))
	if got.Subtract(expected).Length() > 1e-12 {
		t.Errorf("Expected %v, got %v", expected, got)
	}
}

func TestPathTracer_AbsorbedPathIsBlack(t *testing.T) {
	// Seen from inside, the mirror direction points against the outward normal,
	// so the metal absorbs the ray on its first bounce.
	shell := geometry.List{geometry.NewSpherePrimitive(core.NewVec3(0, 0, 0), 10, material.NewMetal(core.NewVec3(0.9, 0.9, 0.9), 0))}
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))

	config := DefaultConfig()
	config.DepthPolicy = Black
	config.MaxDepth = 5

	got := NewPathTracer(config).Trace(ray, shell, newSampler())
	if got != (core.Vec3{}) {
		t.Errorf("Expected black for an absorbed path, got %v", got)
	}
}

func TestPathTracer_BoundedIterations(t *testing.T) {
	// A negative radius turns the normals inward, so diffuse bounces stay inside
	// the shell and the path only stops at MaxDepth
	shell := geometry.List{geometry.NewSpherePrimitive(core.NewVec3(0, 0, 0), -10, material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5)))}
	world := &countingWorld{inner: shell}

	config := DefaultConfig()
	config.MaxDepth = 1000

	got := NewPathTracer(config).Trace(core.NewRay(core.Vec3{}, core.NewVec3(0, 1, 0)), world, newSampler())

	if world.calls != config.MaxDepth+1 {
		t.Errorf("Expected %d intersection queries, got %d", config.MaxDepth+1, world.calls)
	}
	if got.Length() > 1e-100 {
		t.Errorf("Expected vanishing throughput after 1000 bounces at albedo 0.5, got %v", got)
	}
	for _, tMin := range world.tMins {
		if tMin != config.NearZero {
			t.Fatalf("Expected every query to use NearZero %f, got %f", config.NearZero, tMin)
		}
	}
}

func TestPathTracer_GlassPreservesEnergy(t *testing.T) {
	// Dielectric albedo is white: whatever path is taken, the result is a background color
	world := geometry.List{geometry.NewSpherePrimitive(core.NewVec3(0, 0, -3), 1, material.NewDielectric(1.5))}
	pt := NewPathTracer(DefaultConfig())
	sampler := newSampler()

	for i := 0; i < 200; i++ {
		c := pt.Trace(core.NewRay(core.Vec3{}, core.NewVec3(0.1, 0.05, -1)), world, sampler)
		if c.X < 0.5-1e-9 || c.X > 1+1e-9 || math.Abs(c.Z-1) > 1e-9 {
			t.Fatalf("Expected a background gradient color, got %v", c)
		}
	}
}
