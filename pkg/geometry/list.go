package geometry

import (
	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/material"
)

// List is an ordered collection of primitives tested by linear scan.
// Order only affects performance; the nearest hit always wins.
type List []Primitive

// Hit returns the closest intersection across all members
func (l List) Hit(ray core.Ray, tMin, tMax float64) (material.HitRecord, bool) {
	var closestHit material.HitRecord
	closestSoFar := tMax
	hitAnything := false

	for i := range l {
		if hit, isHit := l[i].Hit(ray, tMin, closestSoFar); isHit {
			hitAnything = true
			closestSoFar = hit.T
			closestHit = hit
		}
	}

	return closestHit, hitAnything
}

// Bounds returns the centre and radius of a sphere enclosing every primitive.
// An empty list reports a zero radius at the origin.
func (l List) Bounds() (center core.Vec3, radius float64) {
	if len(l) == 0 {
		return core.Vec3{}, 0
	}

	lo, hi := l[0].bounds()
	for i := 1; i < len(l); i++ {
		pLo, pHi := l[i].bounds()
		lo = core.NewVec3(min(lo.X, pLo.X), min(lo.Y, pLo.Y), min(lo.Z, pLo.Z))
		hi = core.NewVec3(max(hi.X, pHi.X), max(hi.Y, pHi.Y), max(hi.Z, pHi.Z))
	}

	center = lo.Add(hi).Multiply(0.5)
	return center, hi.Subtract(center).Length()
}

// CountByMaterial tallies primitives per material kind
func (l List) CountByMaterial() map[material.Kind]int {
	counts := make(map[material.Kind]int)
	for i := range l {
		if mat := l[i].Material(); mat != nil {
			counts[mat.Kind()]++
		}
	}
	return counts
}
