package geometry

import (
	"fmt"
	"math"

	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/material"
)

// ShapeKind identifies the concrete shape stored in a Primitive
type ShapeKind uint8

const (
	KindSphere ShapeKind = iota
)

func (k ShapeKind) String() string {
	switch k {
	case KindSphere:
		return "sphere"
	default:
		return fmt.Sprintf("ShapeKind(%d)", uint8(k))
	}
}

// Primitive is a closed variant over the supported shapes. Scenes store
// primitives by value so the intersection loop walks contiguous memory.
type Primitive struct {
	Kind   ShapeKind
	Sphere Sphere
}

// NewSpherePrimitive wraps a sphere as a scene primitive
func NewSpherePrimitive(center core.Vec3, radius float64, mat *material.Material) Primitive {
	return Primitive{Kind: KindSphere, Sphere: NewSphere(center, radius, mat)}
}

// Hit dispatches to the concrete shape
func (p *Primitive) Hit(ray core.Ray, tMin, tMax float64) (material.HitRecord, bool) {
	switch p.Kind {
	case KindSphere:
		return p.Sphere.Hit(ray, tMin, tMax)
	}
	return material.HitRecord{}, false
}

// Material returns the material attached to the primitive
func (p *Primitive) Material() *material.Material {
	switch p.Kind {
	case KindSphere:
		return p.Sphere.Material
	}
	return nil
}

// bounds returns the enclosing axis-aligned box of the primitive
func (p *Primitive) bounds() (lo, hi core.Vec3) {
	switch p.Kind {
	case KindSphere:
		r := math.Abs(p.Sphere.Radius)
		extent := core.NewVec3(r, r, r)
		return p.Sphere.Center.Subtract(extent), p.Sphere.Center.Add(extent)
	}
	return core.Vec3{}, core.Vec3{}
}
