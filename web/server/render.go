package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"net/http"
	"time"

	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/renderer"
	"github.com/df07/go-weekend-raytracer/pkg/scene"
)

// TileUpdate represents a single tile update sent via SSE
type TileUpdate struct {
	TileX       int    `json:"tileX"`
	TileY       int    `json:"tileY"`
	ImageData   string `json:"imageData"` // Base64 encoded PNG of just this tile
	PassNumber  int    `json:"passNumber"`
	TileNumber  int    `json:"tileNumber"`  // Current tile number in this pass (1-based)
	TotalTiles  int    `json:"totalTiles"`  // Total number of tiles in the image
	TotalPasses int    `json:"totalPasses"` // Total number of passes planned
}

// PassUpdate carries a finished pass and the full image so far
type PassUpdate struct {
	PassNumber  int    `json:"passNumber"`
	TotalPasses int    `json:"totalPasses"`
	ImageData   string `json:"imageData"` // Base64 encoded PNG
	Stats       Stats  `json:"stats"`
	IsComplete  bool   `json:"isComplete"`
	ElapsedMs   int64  `json:"elapsedMs"`
}

// SSE event types
const (
	EventConsole  = "console"
	EventTile     = "tile"
	EventPass     = "pass"
	EventError    = "error"
	EventComplete = "complete"
)

// RenderingPipeline contains the configured scene and raytracer
type RenderingPipeline struct {
	Scene     *scene.Scene
	Raytracer *renderer.ProgressiveRaytracer
}

// sseWriter writes events from the handler goroutine only
type sseWriter struct {
	w       http.ResponseWriter
	flusher http.Flusher
}

func newSSEWriter(w http.ResponseWriter) (*sseWriter, error) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, fmt.Errorf("streaming not supported")
	}
	return &sseWriter{w: w, flusher: flusher}, nil
}

func (s *sseWriter) send(event, data string) error {
	if _, err := fmt.Fprintf(s.w, "event: %s\ndata: %s\n\n", event, data); err != nil {
		return err
	}
	s.flusher.Flush()
	return nil
}

func (s *sseWriter) sendJSON(event string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.send(event, string(data))
}

// handleRender handles progressive rendering with real-time tile streaming via SSE
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	sse, err := newSSEWriter(w)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	s.setSSEHeaders(w)

	ctx := r.Context()

	// Parse and validate request
	req, err := s.parseRenderRequest(r)
	if err != nil {
		sse.send(EventError, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	consoleChan, webLogger := s.setupConsoleLogging()

	pipeline, err := s.setupRenderingPipeline(req, webLogger)
	if err != nil {
		sse.send(EventError, err.Error())
		return
	}

	// Start rendering and stream events
	startTime := time.Now()
	renderOptions := renderer.RenderOptions{TileUpdates: true}
	passChan, tileChan, errChan := pipeline.Raytracer.RenderProgressive(ctx, renderOptions)

	s.handleRenderingEvents(ctx, sse, consoleChan, passChan, tileChan, errChan, pipeline, startTime)
}

// setSSEHeaders sets the required headers for Server-Sent Events
func (s *Server) setSSEHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
}

// setupConsoleLogging creates console channel and web logger for a render
func (s *Server) setupConsoleLogging() (chan ConsoleMessage, core.Logger) {
	consoleChan := make(chan ConsoleMessage, 50)
	renderID := fmt.Sprintf("render-%d", time.Now().UnixNano())
	webLogger := NewWebLogger(renderID, consoleChan)
	return consoleChan, webLogger
}

// setupRenderingPipeline creates and configures the scene and raytracer.
// A nil logger renders silently.
func (s *Server) setupRenderingPipeline(req *RenderRequest, logger core.Logger) (*RenderingPipeline, error) {
	sceneObj, err := s.createScene(req)
	if err != nil {
		return nil, err
	}

	sampling := sceneObj.SamplingConfig
	config := renderer.ProgressiveConfig{
		TileSize:           DefaultTileSize,
		InitialSamples:     1,
		MaxSamplesPerPixel: sampling.SamplesPerPixel,
		MaxPasses:          min(req.MaxPasses, sampling.SamplesPerPixel),
		NumWorkers:         0, // Auto-detect
		MaxDepth:           sampling.MaxDepth,
		Seed:               req.Seed,
		Integrator:         sceneObj.NewIntegrator(sampling.MaxDepth),
	}

	raytracer := renderer.NewProgressiveRaytracer(sceneObj, sampling.Width, sampling.Height, config, logger)
	return &RenderingPipeline{
		Scene:     sceneObj,
		Raytracer: raytracer,
	}, nil
}

// handleRenderingEvents forwards render progress to the client until every channel is drained
func (s *Server) handleRenderingEvents(ctx context.Context, sse *sseWriter, consoleChan <-chan ConsoleMessage,
	passChan <-chan renderer.PassResult, tileChan <-chan renderer.TileCompletionResult, errChan <-chan error,
	pipeline *RenderingPipeline, startTime time.Time) {

	totalPasses := pipeline.Raytracer.Config().MaxPasses

	for passChan != nil || tileChan != nil || errChan != nil {
		select {
		case passResult, ok := <-passChan:
			if !ok {
				passChan = nil // Channel closed
				continue
			}
			if err := s.handlePassComplete(sse, passResult, totalPasses, startTime); err != nil {
				return
			}

		case tileResult, ok := <-tileChan:
			if !ok {
				tileChan = nil
				continue
			}
			if err := s.handleTileUpdate(sse, tileResult); err != nil {
				return
			}

		case err, ok := <-errChan:
			if !ok {
				errChan = nil
				continue
			}
			if err != nil {
				if ctx.Err() == nil {
					sse.send(EventError, fmt.Sprintf("Rendering failed: %v", err))
				}
				return
			}

		case consoleMsg := <-consoleChan:
			if err := sse.sendJSON(EventConsole, consoleMsg); err != nil {
				return
			}

		case <-ctx.Done():
			// Client disconnected
			return
		}
	}

	// Flush whatever the logger queued before the render goroutine exited
drain:
	for {
		select {
		case consoleMsg := <-consoleChan:
			if err := sse.sendJSON(EventConsole, consoleMsg); err != nil {
				return
			}
		default:
			break drain
		}
	}

	sse.send(EventComplete, "Rendering completed")
}

// handlePassComplete sends the finished pass with its full image
func (s *Server) handlePassComplete(sse *sseWriter, passResult renderer.PassResult, totalPasses int, startTime time.Time) error {
	imageData, err := s.imageToBase64PNG(passResult.Image)
	if err != nil {
		log.Printf("Error encoding pass %d image: %v", passResult.PassNumber, err)
		return nil
	}

	update := PassUpdate{
		PassNumber:  passResult.PassNumber,
		TotalPasses: totalPasses,
		ImageData:   imageData,
		Stats:       newStats(passResult.Stats),
		IsComplete:  passResult.IsLast,
		ElapsedMs:   time.Since(startTime).Milliseconds(),
	}
	return sse.sendJSON(EventPass, update)
}

// handleTileUpdate processes and sends tile update events
func (s *Server) handleTileUpdate(sse *sseWriter, tileResult renderer.TileCompletionResult) error {
	// Convert tile image to base64 PNG
	tileData, err := s.imageToBase64PNG(tileResult.TileImage)
	if err != nil {
		log.Printf("Error encoding tile image (%d, %d): %v", tileResult.TileX, tileResult.TileY, err)
		return nil
	}

	update := TileUpdate{
		TileX:       tileResult.TileX,
		TileY:       tileResult.TileY,
		ImageData:   tileData,
		PassNumber:  tileResult.PassNumber,
		TileNumber:  tileResult.TileNumber,
		TotalTiles:  tileResult.TotalTiles,
		TotalPasses: tileResult.TotalPasses,
	}
	return sse.sendJSON(EventTile, update)
}

// parseRenderRequest parses request parameters
func (s *Server) parseRenderRequest(r *http.Request) (*RenderRequest, error) {
	req := &RenderRequest{}

	if err := s.parseCommonSceneParams(r, req); err != nil {
		return nil, err
	}

	query := r.URL.Query()
	var err error
	if req.MaxSamples, err = parseIntParam(query, "maxSamples", 0, 1, MaxSamples); err != nil {
		return nil, err
	}
	if req.MaxPasses, err = parseIntParam(query, "maxPasses", 7, 1, MaxPasses); err != nil {
		return nil, err
	}
	if req.MaxDepth, err = parseIntParam(query, "maxDepth", 0, 1, MaxDepth); err != nil {
		return nil, err
	}
	seed, err := parseIntParam(query, "seed", 42, 0, math.MaxInt32)
	if err != nil {
		return nil, err
	}
	req.Seed = int64(seed)

	// Performance warning
	if req.Width*req.Height > 800*600 && req.MaxSamples > 100 {
		log.Printf("Render warning: Large image with high samples may render slowly")
	}

	return req, nil
}
