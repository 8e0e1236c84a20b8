package material

import (
	"math"

	"github.com/df07/go-sphere-tracer/pkg/core"
)

func scatterDielectric(rayIn core.Ray, hit HitRecord, refractiveIndex float64, sampler core.Sampler) core.Ray {
	direction := rayIn.Direction
	dirDotNormal := direction.Dot(hit.Normal)

	var outwardNormal core.Vec3
	var eta, cosine float64
	if dirDotNormal > 0 {
		// Exiting the material
		outwardNormal = hit.Normal.Negate()
		eta = refractiveIndex
		cosine = refractiveIndex * dirDotNormal / direction.Length()
	} else {
		// Entering the material
		outwardNormal = hit.Normal
		eta = 1.0 / refractiveIndex
		cosine = -dirDotNormal / direction.Length()
	}

	refracted, ok := Refract(direction, outwardNormal, eta)
	if !ok {
		// Total internal reflection
		return core.NewRay(hit.Point, Reflect(direction.Unit(), hit.Normal))
	}

	if sampler.Get1D() < Schlick(cosine, refractiveIndex) {
		return core.NewRay(hit.Point, Reflect(direction.Unit(), hit.Normal))
	}
	return core.NewRay(hit.Point, refracted)
}

// Refract bends v through a surface with normal n using Snell's law, where eta is
// the ratio of refractive indices (incident over transmitted). It returns false
// when the discriminant is not positive, i.e. on total internal reflection.
func Refract(v, n core.Vec3, eta float64) (core.Vec3, bool) {
	uv := v.Unit()
	dt := uv.Dot(n)
	discriminant := 1.0 - eta*eta*(1.0-dt*dt)
	if discriminant <= 0 {
		return core.Vec3{}, false
	}
	return uv.Subtract(n.Multiply(dt)).Multiply(eta).Subtract(n.Multiply(math.Sqrt(discriminant))), true
}

// Schlick approximates the Fresnel reflectance for a given cosine of incidence
func Schlick(cosine, refractiveIndex float64) float64 {
	r0 := (1 - refractiveIndex) / (1 + refractiveIndex)
	r0 = r0 * r0
	return r0 + (1-r0)*math.Pow(1-cosine, 5)
}
