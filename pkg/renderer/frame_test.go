package renderer

import (
	"math"
	"testing"
	"time"

	"github.com/df07/go-sphere-tracer/pkg/core"
)

func TestQuantize(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected uint8
	}{
		{"zero", 0, 0},
		{"negative", -0.5, 0},
		{"one", 1, 255},
		{"above one", 1.7, 255},
		{"half", 0.5, 127},
		{"just below one", 0.999, 255},
		{"NaN", math.NaN(), 0},
		{"positive infinity", math.Inf(1), 255},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Quantize(tt.input); got != tt.expected {
				t.Errorf("Quantize(%v) = %d, expected %d", tt.input, got, tt.expected)
			}
		})
	}
}

func TestFrame_RowsAreTopFirst(t *testing.T) {
	frame := NewFrame(3, 2)
	frame.Set(1, 0, core.NewVec3(1, 0, 0))
	frame.Set(2, 1, core.NewVec3(0, 0, 1))

	if got := frame.Row(0)[1]; got != core.NewVec3(1, 0, 0) {
		t.Errorf("Row(0)[1] = %v, expected red", got)
	}

	img := frame.RGBA()
	if img.Bounds().Dx() != 3 || img.Bounds().Dy() != 2 {
		t.Fatalf("Unexpected image bounds %v", img.Bounds())
	}
	if c := img.RGBAAt(1, 0); c.R != 255 || c.G != 0 || c.A != 255 {
		t.Errorf("Expected red at (1,0), got %v", c)
	}
	if c := img.RGBAAt(2, 1); c.B != 255 || c.A != 255 {
		t.Errorf("Expected blue at (2,1), got %v", c)
	}
	if c := img.RGBAAt(0, 0); c.R != 0 || c.A != 255 {
		t.Errorf("Expected opaque black at (0,0), got %v", c)
	}
}

func TestPixelStats_Average(t *testing.T) {
	var ps PixelStats
	if ps.GetColor() != (core.Vec3{}) {
		t.Errorf("Empty pixel should be black")
	}

	ps.AddSample(core.NewVec3(1, 0, 0))
	ps.AddSample(core.NewVec3(0, 1, 0))

	if got := ps.GetColor(); got != core.NewVec3(0.5, 0.5, 0) {
		t.Errorf("Expected average (0.5,0.5,0), got %v", got)
	}
}

func TestRenderStats_SamplesPerSecond(t *testing.T) {
	stats := RenderStats{TotalSamples: 1000, Duration: 2 * time.Second}
	if got := stats.SamplesPerSecond(); got != 500 {
		t.Errorf("Expected 500 samples/s, got %f", got)
	}

	if got := (RenderStats{TotalSamples: 10}).SamplesPerSecond(); got != 0 {
		t.Errorf("Zero duration should report 0, got %f", got)
	}
}
