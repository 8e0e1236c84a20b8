package material

import (
	"github.com/df07/go-sphere-tracer/pkg/core"
)

// HitRecord contains information about a ray-object intersection
type HitRecord struct {
	T        float64   // Parameter t along the ray
	Point    core.Vec3 // Point of intersection
	Normal   core.Vec3 // Unit surface normal, pointing away from the shape's centre
	Material *Material // Material of the hit object
}

