package server

import (
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/df07/go-sphere-tracer/pkg/geometry"
	"github.com/df07/go-sphere-tracer/pkg/material"
	"github.com/df07/go-sphere-tracer/pkg/scene"
)

// inspectNearZero matches the integrator's self-intersection offset
const inspectNearZero = 0.001

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	MaterialType string                 `json:"materialType"`
	GeometryType string                 `json:"geometryType"`
	Point        [3]float64             `json:"point"`
	Normal       [3]float64             `json:"normal"`
	Distance     float64                `json:"distance"`
	Index        int                    `json:"index"` // Position of the sphere in the scene list
	Properties   map[string]interface{} `json:"properties"`
}

func colorHex(c [3]float64) string {
	clamp := func(v float64) int { return int(math.Max(0, math.Min(1, v)) * 255) }
	return fmt.Sprintf("#%02x%02x%02x", clamp(c[0]), clamp(c[1]), clamp(c[2]))
}

// extractMaterialInfo describes a material for the inspector
func extractMaterialInfo(mat *material.Material) (string, map[string]interface{}) {
	properties := make(map[string]interface{})
	albedo := mat.Albedo()
	rgb := [3]float64{albedo.X, albedo.Y, albedo.Z}

	switch mat.Kind() {
	case material.KindLambertian:
		properties["albedo"] = rgb
		properties["color"] = colorHex(rgb)
	case material.KindMetal:
		properties["albedo"] = rgb
		properties["color"] = colorHex(rgb)
		properties["fuzziness"] = mat.Fuzziness()
	case material.KindDielectric:
		properties["refractiveIndex"] = mat.RefractiveIndex()
		properties["color"] = "#ffffff" // Clear glass
	}
	return mat.Kind().String(), properties
}

// extractGeometryInfo describes a primitive for the inspector
func extractGeometryInfo(p *geometry.Primitive) (string, map[string]interface{}) {
	properties := make(map[string]interface{})
	switch p.Kind {
	case geometry.KindSphere:
		c := p.Sphere.Center
		properties["center"] = [3]float64{c.X, c.Y, c.Z}
		properties["radius"] = p.Sphere.Radius
		properties["hollow"] = p.Sphere.Radius < 0
	}
	return p.Kind.String(), properties
}

// InspectResult identifies the primitive seen through a pixel
type InspectResult struct {
	Hit       bool
	HitRecord material.HitRecord
	Index     int
}

// inspectPixel casts a ray through the center of pixel (x, y), with y = 0 at
// the top row, and returns the first object hit
func inspectPixel(sceneObj *scene.Scene, pixelX, pixelY int) InspectResult {
	width, height := sceneObj.Sampling.Width, sceneObj.Sampling.Height
	u := (float64(pixelX) + 0.5) / float64(width)
	v := (float64(height-1-pixelY) + 0.5) / float64(height)

	// A pinhole ray through the lens center; the sampler is only used for apertures
	cameraConfig := sceneObj.CameraConfig
	cameraConfig.Aperture = 0
	pinhole := *sceneObj
	pinhole.CameraConfig = cameraConfig
	ray := pinhole.NewCamera().GetRay(u, v, nil)

	result := InspectResult{Index: -1}
	closest := math.Inf(1)
	for i := range sceneObj.World {
		if hit, isHit := sceneObj.World[i].Hit(ray, inspectNearZero, closest); isHit {
			closest = hit.T
			result = InspectResult{Hit: true, HitRecord: hit, Index: i}
		}
	}
	return result
}

// handleInspect reports the object and material under a pixel
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseRenderRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid scene parameters: "+err.Error())
		return
	}

	pixelX, err := strconv.Atoi(r.URL.Query().Get("x"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid x coordinate")
		return
	}
	pixelY, err := strconv.Atoi(r.URL.Query().Get("y"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid y coordinate")
		return
	}

	sceneObj, err := s.createScene(req, nil)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if pixelX < 0 || pixelX >= sceneObj.Sampling.Width || pixelY < 0 || pixelY >= sceneObj.Sampling.Height {
		writeError(w, http.StatusBadRequest, "Pixel coordinates out of bounds")
		return
	}

	result := inspectPixel(sceneObj, pixelX, pixelY)
	if !result.Hit {
		writeJSON(w, http.StatusOK, InspectResponse{Hit: false, Index: -1})
		return
	}

	primitive := &sceneObj.World[result.Index]
	materialType, materialProps := extractMaterialInfo(result.HitRecord.Material)
	geometryType, geometryProps := extractGeometryInfo(primitive)

	hit := result.HitRecord
	writeJSON(w, http.StatusOK, InspectResponse{
		Hit:          true,
		MaterialType: materialType,
		GeometryType: geometryType,
		Point:        [3]float64{hit.Point.X, hit.Point.Y, hit.Point.Z},
		Normal:       [3]float64{hit.Normal.X, hit.Normal.Y, hit.Normal.Z},
		Distance:     hit.T,
		Index:        result.Index,
		Properties: map[string]interface{}{
			"material": materialProps,
			"geometry": geometryProps,
		},
	})
}
