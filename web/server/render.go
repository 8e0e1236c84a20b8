package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/disintegration/imaging"

	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/imageio"
	"github.com/df07/go-sphere-tracer/pkg/renderer"
	"github.com/df07/go-sphere-tracer/pkg/scene"
)

// ProgressUpdate reports completed rows during a streamed render
type ProgressUpdate struct {
	RowsDone  int   `json:"rowsDone"`
	TotalRows int   `json:"totalRows"`
	ElapsedMs int64 `json:"elapsedMs"`
}

// CompleteUpdate carries the finished image of a streamed render
type CompleteUpdate struct {
	ImageData string `json:"imageData"` // Base64 encoded PNG
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	Stats     Stats  `json:"stats"`
}

// SSEEvent represents a unified SSE event for thread-safe writing
type SSEEvent struct {
	Type string `json:"type"` // "console", "progress", "error", "complete"
	Data string `json:"data"` // JSON-encoded data
}

// RenderingPipeline contains the configured scene and raytracer
type RenderingPipeline struct {
	Scene     *scene.Scene
	Raytracer *renderer.Raytracer
}

// setupRenderingPipeline creates and configures the scene and raytracer
func (s *Server) setupRenderingPipeline(req *RenderRequest, logger core.Logger) (*RenderingPipeline, error) {
	sceneObj, err := s.createScene(req, logger)
	if err != nil {
		return nil, err
	}
	if err := sceneObj.Sampling.Validate(); err != nil {
		return nil, err
	}

	raytracer := sceneObj.NewRaytracer()
	if logger != nil {
		raytracer.SetLogger(logger)
	}
	return &RenderingPipeline{Scene: sceneObj, Raytracer: raytracer}, nil
}

// handleRender renders the whole image and responds with a PNG
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseRenderRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	pipeline, err := s.setupRenderingPipeline(req, nil)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	frame, stats, err := pipeline.Raytracer.Render(r.Context())
	if err != nil {
		if errors.Is(err, context.Canceled) {
			log.Printf("Render of %s cancelled by client", req.Scene)
			return
		}
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("Rendering failed: %v", err))
		return
	}

	var buf bytes.Buffer
	if err := imageio.WriteImage(&buf, frame.RGBA(), imaging.PNG); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	log.Printf("Rendered %s %dx%d in %v", req.Scene, frame.Width, frame.Height, stats.Duration)
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("X-Render-Samples", fmt.Sprint(stats.TotalSamples))
	w.Header().Set("X-Render-Duration-Ms", fmt.Sprint(stats.Duration.Milliseconds()))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// handleRenderStream renders with row progress, console output and the final image streamed via SSE
func (s *Server) handleRenderStream(w http.ResponseWriter, r *http.Request) {
	s.setSSEHeaders(w)

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	// Single writer goroutine; done closes once every queued event is written
	sseEventChan := make(chan SSEEvent, 100)
	done := make(chan struct{})
	go func() {
		defer close(done)
		s.writeSSEEvents(w, ctx, sseEventChan)
	}()
	defer func() {
		close(sseEventChan)
		<-done
	}()

	req, err := s.parseRenderRequest(r)
	if err != nil {
		s.handleError(ctx, sseEventChan, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	consoleChan, webLogger := s.setupConsoleLogging()
	consoleDone := make(chan struct{})
	go func() {
		defer close(consoleDone)
		s.streamConsoleMessages(ctx, consoleChan, sseEventChan)
	}()
	defer func() {
		close(consoleChan)
		<-consoleDone
	}()

	pipeline, err := s.setupRenderingPipeline(req, webLogger)
	if err != nil {
		s.handleError(ctx, sseEventChan, err.Error())
		return
	}

	startTime := time.Now()
	pipeline.Raytracer.SetProgressFunc(func(rowsDone, totalRows int) {
		s.sendEvent(ctx, sseEventChan, "progress", ProgressUpdate{
			RowsDone:  rowsDone,
			TotalRows: totalRows,
			ElapsedMs: time.Since(startTime).Milliseconds(),
		})
	})

	frame, stats, err := pipeline.Raytracer.Render(ctx)
	if dropped := webLogger.Dropped(); dropped > 0 {
		log.Printf("Console for %s dropped %d messages", req.Scene, dropped)
	}
	if err != nil {
		s.handleError(ctx, sseEventChan, fmt.Sprintf("Rendering failed: %v", err))
		return
	}

	imageData, err := s.imageToBase64PNG(frame)
	if err != nil {
		s.handleError(ctx, sseEventChan, fmt.Sprintf("Failed to encode image: %v", err))
		return
	}

	s.sendEvent(ctx, sseEventChan, "complete", CompleteUpdate{
		ImageData: imageData,
		Width:     frame.Width,
		Height:    frame.Height,
		Stats:     newStats(stats),
	})
}

// setSSEHeaders sets the required headers for Server-Sent Events
func (s *Server) setSSEHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
}

// setupConsoleLogging creates console channel and web logger for a render
func (s *Server) setupConsoleLogging() (chan ConsoleMessage, *WebLogger) {
	consoleChan := make(chan ConsoleMessage, 50)
	renderID := fmt.Sprintf("render-%d", time.Now().UnixNano())
	webLogger := NewWebLogger(renderID, consoleChan)
	return consoleChan, webLogger
}

// writeSSEEvents writes queued events until the channel closes or the client leaves
func (s *Server) writeSSEEvents(w http.ResponseWriter, ctx context.Context, sseEventChan chan SSEEvent) {
	flusher, _ := w.(http.Flusher)
	for event := range sseEventChan {
		// Keep draining after a disconnect so senders never block
		if ctx.Err() != nil {
			continue
		}

		if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Type, event.Data); err != nil {
			continue
		}
		if flusher != nil {
			flusher.Flush()
		}
	}
}

// streamConsoleMessages forwards logger output as console events
func (s *Server) streamConsoleMessages(ctx context.Context, consoleChan chan ConsoleMessage, sseEventChan chan SSEEvent) {
	for consoleMsg := range consoleChan {
		data, err := json.Marshal(consoleMsg)
		if err != nil {
			log.Printf("Error marshaling console message: %v", err)
			continue
		}

		select {
		case sseEventChan <- SSEEvent{Type: "console", Data: string(data)}:
		case <-ctx.Done():
		}
	}
}

// sendEvent marshals payload and queues it for the writer
func (s *Server) sendEvent(ctx context.Context, sseEventChan chan SSEEvent, eventType string, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Error marshaling %s event: %v", eventType, err)
		return
	}

	select {
	case sseEventChan <- SSEEvent{Type: eventType, Data: string(data)}:
	case <-ctx.Done():
	}
}

// imageToBase64PNG converts a frame to base64-encoded PNG
func (s *Server) imageToBase64PNG(frame *renderer.Frame) (string, error) {
	var buf bytes.Buffer
	if err := imageio.WriteImage(&buf, frame.RGBA(), imaging.PNG); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// handleError logs and streams an error event
func (s *Server) handleError(ctx context.Context, sseEventChan chan SSEEvent, message string) {
	log.Printf("Render error: %s", message)
	select {
	case sseEventChan <- SSEEvent{Type: "error", Data: message}:
	case <-ctx.Done():
	}
}
