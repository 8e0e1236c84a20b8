package material

import (
	"testing"

	"github.com/df07/go-sphere-tracer/pkg/core"
)

func TestMaterial_Albedo(t *testing.T) {
	tests := []struct {
		name     string
		material *Material
		expected core.Vec3
	}{
		{"lambertian", NewLambertian(core.NewVec3(0.4, 0.2, 0.1)), core.NewVec3(0.4, 0.2, 0.1)},
		{"metal", NewMetal(core.NewVec3(0.7, 0.6, 0.5), 0), core.NewVec3(0.7, 0.6, 0.5)},
		{"dielectric is colorless", NewDielectric(1.5), core.NewVec3(1, 1, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.material.Albedo(); got != tt.expected {
				t.Errorf("Expected albedo %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		name      string
		expected  Kind
		expectErr bool
	}{
		{"lambertian", KindLambertian, false},
		{"diffuse", KindLambertian, false},
		{"metal", KindMetal, false},
		{"dielectric", KindDielectric, false},
		{"glass", KindDielectric, false},
		{"emissive", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, err := ParseKind(tt.name)
			if tt.expectErr {
				if err == nil {
					t.Errorf("Expected error for %q", tt.name)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if kind != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, kind)
			}
			if back, _ := ParseKind(kind.String()); back != kind {
				t.Errorf("Kind %v does not round-trip through its name", kind)
			}
		})
	}
}

func TestMaterial_SharedAcrossHits(t *testing.T) {
	shared := NewLambertian(core.NewVec3(0.5, 0.5, 0.5))
	sampler := newTestSampler(1)

	first := HitRecord{Point: core.NewVec3(0, 0, 0), Normal: core.NewVec3(0, 1, 0), Material: shared}
	second := HitRecord{Point: core.NewVec3(5, 0, 0), Normal: core.NewVec3(1, 0, 0), Material: shared}

	rayIn := core.NewRay(core.NewVec3(0, 5, 0), core.NewVec3(0, -1, 0))
	for _, hit := range []HitRecord{first, second} {
		scattered, ok := hit.Material.Scatter(rayIn, hit, sampler)
		if !ok {
			t.Fatal("Lambertian should always scatter")
		}
		if scattered.Origin != hit.Point {
			t.Errorf("Expected origin %v, got %v", hit.Point, scattered.Origin)
		}
	}

	if shared.Albedo() != core.NewVec3(0.5, 0.5, 0.5) {
		t.Errorf("Shared material was mutated: %v", shared.Albedo())
	}
}
