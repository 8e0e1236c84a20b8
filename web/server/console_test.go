package server

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/df07/go-sphere-tracer/pkg/scene"
)

func TestWebLogger_Forwarding(t *testing.T) {
	tests := []struct {
		name    string
		format  string
		args    []interface{}
		message string
		level   string
	}{
		{"plain", "Rendering 4x4\n", nil, "Rendering 4x4\n", "info"},
		{"formatted", "Scene %s: %d spheres\n", []interface{}{"random", 488}, "Scene random: 488 spheres\n", "info"},
		{"warning", "Warning: %d pixels contain NaN\n", []interface{}{3}, "Warning: 3 pixels contain NaN\n", "warning"},
		{"error", "Error: upload failed\n", nil, "Error: upload failed\n", "error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			consoleChan := make(chan ConsoleMessage, 1)
			logger := NewWebLogger("render-test", consoleChan)
			logger.Printf(tt.format, tt.args...)

			msg := <-consoleChan
			if msg.Message != tt.message {
				t.Errorf("Message = %q, want %q", msg.Message, tt.message)
			}
			if msg.Level != tt.level {
				t.Errorf("Level = %q, want %q", msg.Level, tt.level)
			}
			if msg.RenderID != "render-test" {
				t.Errorf("RenderID = %q, want render-test", msg.RenderID)
			}
			if time.Since(msg.Timestamp) > time.Second {
				t.Errorf("Timestamp too old: %v", msg.Timestamp)
			}
		})
	}
}

func TestWebLogger_FullConsoleDropsMessages(t *testing.T) {
	consoleChan := make(chan ConsoleMessage, 1)
	logger := NewWebLogger("render-full", consoleChan)

	// Only the first fits; the rest must not block
	for i := 0; i < 4; i++ {
		logger.Printf("Message %d\n", i)
	}

	if got := logger.Dropped(); got != 3 {
		t.Errorf("Dropped() = %d, want 3", got)
	}
	if msg := <-consoleChan; msg.Message != "Message 0\n" {
		t.Errorf("Expected first message to be kept, got %q", msg.Message)
	}
}

func TestWebLogger_NilChannel(t *testing.T) {
	logger := NewWebLogger("render-nil", nil)
	logger.Printf("Nothing to forward to\n")
	if logger.Dropped() != 0 {
		t.Errorf("Nil channel should not count drops, got %d", logger.Dropped())
	}
}

func TestWebLogger_ReceivesRendererOutput(t *testing.T) {
	s := scene.NewSingleSphereScene()
	s.Sampling.Width = 8
	s.Sampling.Height = 4
	s.Sampling.SamplesPerPixel = 1
	s.Sampling.NumWorkers = 2

	consoleChan := make(chan ConsoleMessage, 10)
	raytracer := s.NewRaytracer()
	raytracer.SetLogger(NewWebLogger("render-live", consoleChan))

	if _, _, err := raytracer.Render(context.Background()); err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	close(consoleChan)

	var lines []string
	for msg := range consoleChan {
		lines = append(lines, msg.Message)
	}
	if len(lines) < 2 {
		t.Fatalf("Expected start and completion messages, got %q", lines)
	}
	if !strings.HasPrefix(lines[0], "Rendering 8x4") {
		t.Errorf("First message = %q, want the render start line", lines[0])
	}
	if !strings.HasPrefix(lines[len(lines)-1], "Render completed") {
		t.Errorf("Last message = %q, want the completion line", lines[len(lines)-1])
	}
}
