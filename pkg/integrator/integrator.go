package integrator

import (
	"fmt"

	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/geometry"
)

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// Trace computes the color carried back along a camera ray
	Trace(ray core.Ray, world geometry.Hittable, sampler core.Sampler) core.Vec3
}

// DepthPolicy selects what a path returns when it is still hitting geometry at the bounce limit
type DepthPolicy uint8

const (
	// KeepAccumulated returns the attenuation gathered so far
	KeepAccumulated DepthPolicy = iota
	// Black returns no light
	Black
)

func (p DepthPolicy) String() string {
	switch p {
	case KeepAccumulated:
		return "accumulated"
	case Black:
		return "black"
	default:
		return fmt.Sprintf("DepthPolicy(%d)", uint8(p))
	}
}

// ParseDepthPolicy converts a policy name back into a DepthPolicy
func ParseDepthPolicy(name string) (DepthPolicy, error) {
	switch name {
	case "accumulated", "":
		return KeepAccumulated, nil
	case "black":
		return Black, nil
	}
	return 0, fmt.Errorf("unknown depth policy %q", name)
}

// Background is the vertical sky gradient seen by rays that escape the scene
type Background struct {
	Top    core.Vec3 `json:"top"`
	Bottom core.Vec3 `json:"bottom"`
}

// DefaultBackground returns the white-to-sky-blue gradient
func DefaultBackground() Background {
	return Background{
		Top:    core.NewVec3(0.5, 0.7, 1.0),
		Bottom: core.NewVec3(1.0, 1.0, 1.0),
	}
}

// At returns the gradient color for a ray direction
func (b Background) At(r core.Ray) core.Vec3 {
	unitDirection := r.Direction.Unit()

	// Map y from [-1,1] to [0,1]
	t := 0.5 * (unitDirection.Y + 1.0)

	// Linear interpolation: (1-t)*bottom + t*top
	return b.Bottom.Multiply(1.0 - t).Add(b.Top.Multiply(t))
}

// Config contains integrator configuration
type Config struct {
	MaxDepth    int         // Maximum number of scatter events per path
	NearZero    float64     // Minimum ray parameter accepted as a hit
	DepthPolicy DepthPolicy // Result for paths cut off at MaxDepth
	Background  Background  // Color of escaping rays
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{
		MaxDepth:    50,
		NearZero:    0.001,
		DepthPolicy: KeepAccumulated,
		Background:  DefaultBackground(),
	}
}
