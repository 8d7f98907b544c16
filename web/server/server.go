package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/mux"

	"github.com/df07/go-glossy-pathtracer/pkg/core"
	"github.com/df07/go-glossy-pathtracer/pkg/loaders"
	"github.com/df07/go-glossy-pathtracer/pkg/renderer"
	"github.com/df07/go-glossy-pathtracer/pkg/scene"
)

// consoleHistory is how many log messages the console endpoint keeps
const consoleHistory = 200

// consoleBuffer bounds messages waiting to be drained across concurrent renders
const consoleBuffer = 256

// Server handles web requests for the path tracer
type Server struct {
	port     int
	sceneDir string

	console *Console

	mu      sync.Mutex
	renders int
}

// NewServer creates a new web server that resolves YAML scenes in sceneDir
func NewServer(port int, sceneDir string) *Server {
	return &Server{
		port:     port,
		sceneDir: sceneDir,
		console:  NewConsole(consoleBuffer, consoleHistory),
	}
}

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene    string  `json:"scene"`    // Scene name (e.g., "spec-balls")
	Width    int     `json:"width"`    // Image width
	Height   int     `json:"height"`   // Image height
	Samples  int     `json:"spp"`      // Samples per pixel
	MaxDepth int     `json:"maxDepth"` // Bounce limit
	Seed     int64   `json:"seed"`     // 0 = nondeterministic
	Gamma    float64 `json:"gamma"`    // Encoding gamma (1 = linear)
}

// Stats represents render statistics returned alongside an image
type Stats struct {
	TotalPixels     int     `json:"totalPixels"`
	TotalSamples    int     `json:"totalSamples"`
	Tiles           int     `json:"tiles"`
	Workers         int     `json:"workers"`
	MeanLuminance   float64 `json:"meanLuminance"`
	StdDevLuminance float64 `json:"stdDevLuminance"`
	ElapsedMs       int64   `json:"elapsedMs"`
}

// Router builds the HTTP routes
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/health", s.handleHealth).Methods("GET")
	api.HandleFunc("/scenes", s.handleScenes).Methods("GET")
	api.HandleFunc("/render/{scene}", s.handleRender).Methods("GET")
	api.HandleFunc("/console", s.handleConsole).Methods("GET")

	r.Use(corsMiddleware)
	return r
}

// Start starts the web server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	log.Printf("Starting web server on http://localhost%s", addr)
	return http.ListenAndServe(addr, s.Router())
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		next.ServeHTTP(w, r)
	})
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleScenes lists built-in scenes and YAML scenes in the scene directory
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	scenes, err := scene.ListAllScenes(s.sceneDir)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, scenes)
}

// handleRender renders a scene and responds with a PNG.
// Statistics are returned in the X-Render-Stats header as JSON.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	req, err := parseRenderRequest(mux.Vars(r)["scene"], r.URL.Query())
	if err != nil {
		http.Error(w, fmt.Sprintf("Invalid request: %v", err), http.StatusBadRequest)
		return
	}

	sceneObj, camera, err := loaders.ResolveScene(req.Scene, s.sceneDir)
	if err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}

	opts := renderer.DefaultRenderOptions()
	opts.Width = req.Width
	opts.Height = req.Height
	opts.SamplesPerPixel = req.Samples
	opts.MaxDepth = req.MaxDepth
	opts.Seed = req.Seed
	opts.Camera = camera

	logger := s.console.Logger(s.nextRenderID())
	logger.Printf("Rendering %s at %dx%d %dspp with max depth %d\n",
		req.Scene, opts.Width, opts.Height, opts.SamplesPerPixel, opts.MaxDepth)

	startTime := time.Now()
	buf, renderStats, err := renderer.NewRaytracer(sceneObj, opts, logger).Render()
	if err != nil {
		logger.Errorf("Render of %s failed: %v\n", req.Scene, err)
	}
	s.console.Drain()
	if err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}

	var body bytes.Buffer
	if err := buf.WritePNG(&body, req.Gamma); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	stats, err := json.Marshal(Stats{
		TotalPixels:     renderStats.TotalPixels,
		TotalSamples:    renderStats.TotalSamples,
		Tiles:           renderStats.Tiles,
		Workers:         renderStats.Workers,
		MeanLuminance:   renderStats.MeanLuminance,
		StdDevLuminance: renderStats.StdDevLuminance,
		ElapsedMs:       time.Since(startTime).Milliseconds(),
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("X-Render-Stats", string(stats))
	w.WriteHeader(http.StatusOK)
	w.Write(body.Bytes())
}

// handleConsole returns recent log messages from all renders
func (s *Server) handleConsole(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.console.Messages())
}

func (s *Server) nextRenderID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.renders++
	return fmt.Sprintf("render-%d", s.renders)
}

// parseRenderRequest parses request parameters
func parseRenderRequest(sceneName string, query url.Values) (*RenderRequest, error) {
	req := &RenderRequest{Scene: sceneName}

	// Scene files are only reachable by name from the scene directory
	if loaders.IsSceneFile(sceneName) {
		return nil, fmt.Errorf("scene must be a name, not a path: %s", sceneName)
	}

	var err error
	if req.Width, err = parseIntParam(query, "width", 400, 1, 2000); err != nil {
		return nil, err
	}
	if req.Height, err = parseIntParam(query, "height", 300, 1, 2000); err != nil {
		return nil, err
	}
	if req.Samples, err = parseIntParam(query, "spp", 16, 1, 10000); err != nil {
		return nil, err
	}
	if req.MaxDepth, err = parseIntParam(query, "maxDepth", 5, 0, 64); err != nil {
		return nil, err
	}
	if req.Gamma, err = parseFloatParam(query, "gamma", 1, 0, 5); err != nil {
		return nil, err
	}
	if value := query.Get("seed"); value != "" {
		if req.Seed, err = strconv.ParseInt(value, 10, 64); err != nil {
			return nil, fmt.Errorf("invalid seed: %s", value)
		}
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

// statusFor maps registered render errors to HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, core.ErrUnknownScene):
		return http.StatusNotFound
	case errors.Is(err, core.ErrInvalidScene):
		return http.StatusUnprocessableEntity
	case errors.Is(err, core.ErrInvalidDimensions),
		errors.Is(err, core.ErrInvalidSamples),
		errors.Is(err, core.ErrInvalidDepth),
		errors.Is(err, core.ErrInvalidThreads),
		errors.Is(err, core.ErrInvalidTileSize),
		errors.Is(err, core.ErrInvalidCamera):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
