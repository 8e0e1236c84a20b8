package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/integrator"
	"github.com/df07/go-sphere-tracer/pkg/renderer"
	"github.com/df07/go-sphere-tracer/pkg/scene"
)

// Request limits shared by the render and inspect endpoints
const (
	minImageSize  = 16
	maxImageSize  = 2000
	maxSamples    = 10000
	maxDepthLimit = 1000
)

// Server handles web requests for the sphere tracer
type Server struct {
	port      int
	scenesDir string
}

// NewServer creates a new web server. Scene files are discovered in scenesDir.
func NewServer(port int, scenesDir string) *Server {
	return &Server{port: port, scenesDir: scenesDir}
}

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene       string  `json:"scene"`       // Scene name or scene file path
	Width       int     `json:"width"`       // Image width
	Height      int     `json:"height"`      // Image height
	Samples     int     `json:"samples"`     // Samples per pixel
	MaxDepth    int     `json:"maxDepth"`    // Maximum bounces
	Seed        int64   `json:"seed"`        // Sampler seed
	DepthPolicy string  `json:"depthPolicy"` // "accumulated" or "black"
	VFov        float64 `json:"vfov"`        // Optional field of view override
	Aperture    float64 `json:"aperture"`    // Aperture override; -1 keeps the scene value
}

// Stats represents render statistics
type Stats struct {
	TotalPixels      int     `json:"totalPixels"`
	TotalSamples     int     `json:"totalSamples"`
	Workers          int     `json:"workers"`
	NaNPixels        int     `json:"nanPixels"`
	ElapsedMs        int64   `json:"elapsedMs"`
	SamplesPerSecond float64 `json:"samplesPerSecond"`
}

func newStats(rs renderer.RenderStats) Stats {
	return Stats{
		TotalPixels:      rs.TotalPixels,
		TotalSamples:     rs.TotalSamples,
		Workers:          rs.Workers,
		NaNPixels:        rs.NaNPixels,
		ElapsedMs:        rs.Duration.Milliseconds(),
		SamplesPerSecond: rs.SamplesPerSecond(),
	}
}

// Handler returns the API routes
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/", http.FileServer(http.Dir("static/")))
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/scenes", s.handleScenes)
	mux.HandleFunc("/api/scene-config", s.handleSceneConfig)
	mux.HandleFunc("/api/render", s.handleRender)
	mux.HandleFunc("/api/render-stream", s.handleRenderStream)
	mux.HandleFunc("/api/inspect", s.handleInspect)
	return mux
}

// Start starts the web server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	log.Printf("Starting web server on http://localhost%s", addr)
	return http.ListenAndServe(addr, s.Handler())
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleScenes lists the built-in scenes and discovered scene files
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	response, err := scene.ListAllScenes(s.scenesDir)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, response)
}

// parseRenderRequest parses request parameters; missing values fall back to the scene's own
func (s *Server) parseRenderRequest(r *http.Request) (*RenderRequest, error) {
	query := r.URL.Query()
	req := &RenderRequest{Scene: query.Get("scene")}
	if req.Scene == "" {
		req.Scene = "default"
	}

	var err error
	if req.Width, err = parseIntParam(query, "width", 0, minImageSize, maxImageSize); err != nil {
		return nil, err
	}
	if req.Height, err = parseIntParam(query, "height", 0, minImageSize, maxImageSize); err != nil {
		return nil, err
	}
	if req.Samples, err = parseIntParam(query, "samples", 0, 1, maxSamples); err != nil {
		return nil, err
	}
	if req.MaxDepth, err = parseIntParam(query, "depth", -1, 0, maxDepthLimit); err != nil {
		return nil, err
	}
	if req.VFov, err = parseFloatParam(query, "vfov", 0, 1, 179); err != nil {
		return nil, err
	}
	if req.Aperture, err = parseFloatParam(query, "aperture", -1, 0, 10); err != nil {
		return nil, err
	}
	if value := query.Get("seed"); value != "" {
		if req.Seed, err = strconv.ParseInt(value, 10, 64); err != nil {
			return nil, fmt.Errorf("invalid seed: %s", value)
		}
	}
	req.DepthPolicy = query.Get("depthPolicy")
	if _, err := integrator.ParseDepthPolicy(req.DepthPolicy); err != nil {
		return nil, err
	}

	// Performance warning
	if req.Width*req.Height > 800*600 && req.Samples > 100 {
		log.Printf("Render warning: Large image with high samples may render slowly")
	}

	return req, nil
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// parseFloatParam parses a float parameter from URL query with validation
func parseFloatParam(values url.Values, key string, defaultValue, min, max float64) (float64, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %g and %g, got: %g", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// createScene builds the requested scene with the request's overrides applied
func (s *Server) createScene(req *RenderRequest, logger core.Logger) (*scene.Scene, error) {
	if strings.HasSuffix(strings.ToLower(req.Scene), ".json") &&
		filepath.Dir(filepath.Clean(req.Scene)) != filepath.Clean(s.scenesDir) {
		return nil, fmt.Errorf("scene file %s is outside the scenes directory", req.Scene)
	}

	overrides := renderer.CameraConfig{VFov: req.VFov}
	sceneObj, err := scene.Create(req.Scene, req.Seed, overrides)
	if err != nil {
		return nil, err
	}
	if req.Aperture >= 0 {
		sceneObj.CameraConfig.Aperture = req.Aperture
	}

	if req.Width > 0 {
		sceneObj.Sampling.Width = req.Width
	}
	if req.Height > 0 {
		sceneObj.Sampling.Height = req.Height
	}
	if req.Samples > 0 {
		sceneObj.Sampling.SamplesPerPixel = req.Samples
	}
	if req.Seed != 0 {
		sceneObj.Sampling.Seed = req.Seed
	}
	if req.MaxDepth >= 0 {
		sceneObj.Integrator.MaxDepth = req.MaxDepth
	}
	if req.DepthPolicy != "" {
		policy, err := integrator.ParseDepthPolicy(req.DepthPolicy)
		if err != nil {
			return nil, err
		}
		sceneObj.Integrator.DepthPolicy = policy
	}

	if logger != nil {
		logger.Printf("Scene %s\n", sceneObj.Describe())
	}
	return sceneObj, nil
}

// handleSceneConfig returns the default configuration for a scene
func (s *Server) handleSceneConfig(w http.ResponseWriter, r *http.Request) {
	sceneName := r.URL.Query().Get("scene")
	if sceneName == "" {
		sceneName = "default"
	}

	sceneObj, err := s.createScene(&RenderRequest{Scene: sceneName, MaxDepth: -1, Aperture: -1}, nil)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	sampling := sceneObj.Sampling
	response := map[string]interface{}{
		"scene":  sceneName,
		"camera": sceneObj.CameraConfig,
		"defaults": map[string]interface{}{
			"width":       sampling.Width,
			"height":      sampling.Height,
			"samples":     sampling.SamplesPerPixel,
			"seed":        sampling.Seed,
			"maxDepth":    sceneObj.Integrator.MaxDepth,
			"nearZero":    sceneObj.Integrator.NearZero,
			"depthPolicy": sceneObj.Integrator.DepthPolicy.String(),
		},
		"limits": map[string]interface{}{
			"width":    map[string]int{"min": minImageSize, "max": maxImageSize},
			"height":   map[string]int{"min": minImageSize, "max": maxImageSize},
			"samples":  map[string]int{"min": 1, "max": maxSamples},
			"maxDepth": map[string]int{"min": 0, "max": maxDepthLimit},
		},
	}

	writeJSON(w, http.StatusOK, response)
}
