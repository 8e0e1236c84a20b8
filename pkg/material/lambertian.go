package material

import (
	"github.com/df07/go-sphere-tracer/pkg/core"
)

// scatterLambertian aims at a random point in the unit sphere tangent to the
// surface, which approximates a cosine-weighted hemisphere.
func scatterLambertian(hit HitRecord, sampler core.Sampler) core.Ray {
	target := hit.Point.Add(hit.Normal).Add(core.RandomInUnitSphere(sampler))
	return core.NewRay(hit.Point, target.Subtract(hit.Point))
}
