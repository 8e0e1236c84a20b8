package material

import (
	"fmt"

	"github.com/df07/go-sphere-tracer/pkg/core"
)

// Kind identifies one of the supported scattering models
type Kind uint8

const (
	KindLambertian Kind = iota
	KindMetal
	KindDielectric
)

func (k Kind) String() string {
	switch k {
	case KindLambertian:
		return "lambertian"
	case KindMetal:
		return "metal"
	case KindDielectric:
		return "dielectric"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// ParseKind converts a material kind name back into a Kind
func ParseKind(name string) (Kind, error) {
	switch name {
	case "lambertian", "diffuse":
		return KindLambertian, nil
	case "metal":
		return KindMetal, nil
	case "dielectric", "glass":
		return KindDielectric, nil
	}
	return 0, fmt.Errorf("unknown material kind %q", name)
}

// Material describes how a single bounce changes a ray.
// It is a closed variant over Kind; values are immutable and may be shared by many shapes.
type Material struct {
	kind            Kind
	albedo          core.Vec3
	fuzziness       float64
	refractiveIndex float64
}

// NewLambertian creates an ideal diffuse material
func NewLambertian(albedo core.Vec3) *Material {
	return &Material{kind: KindLambertian, albedo: albedo}
}

// NewMetal creates a metallic material; fuzziness is clamped to [0, 1]
func NewMetal(albedo core.Vec3, fuzziness float64) *Material {
	return &Material{kind: KindMetal, albedo: albedo, fuzziness: max(0, min(1, fuzziness))}
}

// NewDielectric creates a clear refractive material such as glass (1.5) or water (1.33)
func NewDielectric(refractiveIndex float64) *Material {
	return &Material{kind: KindDielectric, albedo: core.NewVec3(1, 1, 1), refractiveIndex: refractiveIndex}
}

// Kind returns the scattering model
func (m *Material) Kind() Kind { return m.kind }

// Fuzziness returns the metal roughness (0 for non-metals)
func (m *Material) Fuzziness() float64 { return m.fuzziness }

// RefractiveIndex returns the index of refraction (0 for non-dielectrics)
func (m *Material) RefractiveIndex() float64 { return m.refractiveIndex }

// Albedo returns the color attenuation applied at each bounce
func (m *Material) Albedo() core.Vec3 {
	return m.albedo
}

// Scatter returns the outgoing ray for one bounce. The second result is false
// when the material absorbs the ray.
func (m *Material) Scatter(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (core.Ray, bool) {
	switch m.kind {
	case KindLambertian:
		return scatterLambertian(hit, sampler), true
	case KindMetal:
		return scatterMetal(rayIn, hit, m.fuzziness, sampler)
	case KindDielectric:
		return scatterDielectric(rayIn, hit, m.refractiveIndex, sampler), true
	}
	return core.Ray{}, false
}

func (m *Material) String() string {
	switch m.kind {
	case KindMetal:
		return fmt.Sprintf("metal(albedo=%v, fuzz=%g)", m.albedo, m.fuzziness)
	case KindDielectric:
		return fmt.Sprintf("dielectric(n=%g)", m.refractiveIndex)
	default:
		return fmt.Sprintf("%s(albedo=%v)", m.kind, m.albedo)
	}
}
