package material

import (
	"math/rand"

	"github.com/df07/go-sphere-tracer/pkg/core"
)

// fixedSampler replays a fixed sequence of values, cycling when exhausted
type fixedSampler struct {
	values []float64
	next   int
}

func (f *fixedSampler) Get1D() float64 {
	v := f.values[f.next%len(f.values)]
	f.next++
	return v
}

func (f *fixedSampler) Get2D() (float64, float64) {
	return f.Get1D(), f.Get1D()
}

func (f *fixedSampler) Get3D() core.Vec3 {
	return core.NewVec3(f.Get1D(), f.Get1D(), f.Get1D())
}

func newTestSampler(seed int64) core.Sampler {
	return core.NewRandomSampler(rand.New(rand.NewSource(seed)))
}

func vecNear(a, b core.Vec3, tolerance float64) bool {
	return a.Subtract(b).Length() <= tolerance
}
