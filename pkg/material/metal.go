package material

import (
	"github.com/df07/go-sphere-tracer/pkg/core"
)

func scatterMetal(rayIn core.Ray, hit HitRecord, fuzziness float64, sampler core.Sampler) (core.Ray, bool) {
	reflected := Reflect(rayIn.Direction.Unit(), hit.Normal)

	// Add fuzziness by perturbing the reflection direction
	if fuzziness > 0 {
		reflected = reflected.Add(core.RandomInUnitSphere(sampler).Multiply(fuzziness))
	}

	scattered := core.NewRay(hit.Point, reflected)

	// A fuzzed ray that points into the surface is absorbed
	return scattered, reflected.Dot(hit.Normal) > 0
}

// Reflect calculates the reflection of a vector v off a surface with normal n
func Reflect(v, n core.Vec3) core.Vec3 {
	// r = v - 2*dot(v,n)*n
	return v.Subtract(n.Multiply(2 * v.Dot(n)))
}
