package renderer

import (
	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/geometry"
	"github.com/df07/go-sphere-tracer/pkg/integrator"
)

// RowRenderer traces single rows of the image. It only reads shared scene
// data, so one instance serves every worker.
type RowRenderer struct {
	world      geometry.Hittable
	camera     *Camera
	integrator integrator.Integrator
	width      int
	height     int
	samples    int
}

// NewRowRenderer creates a row renderer for a width x height image
func NewRowRenderer(world geometry.Hittable, camera *Camera, integ integrator.Integrator, width, height, samples int) *RowRenderer {
	return &RowRenderer{
		world:      world,
		camera:     camera,
		integrator: integ,
		width:      width,
		height:     height,
		samples:    samples,
	}
}

// RenderRow renders image-plane row j (j = 0 is the bottom row) into dst,
// which must hold width pixels. Colors are averaged and gamma corrected.
func (rr *RowRenderer) RenderRow(j int, dst []core.Vec3, sampler core.Sampler) {
	for i := 0; i < rr.width; i++ {
		var ps PixelStats
		for s := 0; s < rr.samples; s++ {
			// Jitter inside the pixel footprint
			du, dv := sampler.Get2D()
			u := (float64(i) + du) / float64(rr.width)
			v := (float64(j) + dv) / float64(rr.height)

			ray := rr.camera.GetRay(u, v, sampler)
			ps.AddSample(rr.integrator.Trace(ray, rr.world, sampler))
		}

		// Gamma 2
		dst[i] = ps.GetColor().Sqrt()
	}
}
