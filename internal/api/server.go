// Package api provides the read-only HTTP surface over stored worlds:
// world listings, world detail, and rendered map images. GET only —
// worlds are generated by the CLI, never through the API.
package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"image/png"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/talgya/terraflow/internal/persistence"
	"github.com/talgya/terraflow/internal/render"
	"github.com/talgya/terraflow/internal/terrain"
)

// Server serves stored worlds over HTTP.
type Server struct {
	DB     *persistence.DB
	Port   int
	Render render.Options
}

// Handler builds the route table. Map rendering is the one expensive
// endpoint, so it gets its own rate limit.
func (s *Server) Handler() http.Handler {
	mapLimiter := NewRateLimiter(30, time.Minute)

	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/worlds", s.handleWorlds)
	mux.HandleFunc("/api/v1/world/", s.handleWorldRoutes(mapLimiter))
	return mux
}

// Start begins serving the HTTP API in a goroutine.
func (s *Server) Start() {
	addr := fmt.Sprintf(":%d", s.Port)
	slog.Info("HTTP API starting", "addr", addr)

	handler := s.Handler()
	go func() {
		if err := http.ListenAndServe(addr, handler); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()
}

func (s *Server) handleWorlds(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	rows, err := s.DB.ListWorlds()
	if err != nil {
		slog.Error("list worlds failed", "error", err)
		http.Error(w, "list failed", http.StatusInternalServerError)
		return
	}
	writeJSON(w, map[string]any{"worlds": rows})
}

// handleWorldRoutes dispatches /api/v1/world/:id and /api/v1/world/:id/map.png.
func (s *Server) handleWorldRoutes(mapLimiter *RateLimiter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		rest := strings.TrimPrefix(r.URL.Path, "/api/v1/world/")
		parts := strings.Split(rest, "/")

		switch {
		case len(parts) == 1 && parts[0] != "":
			s.handleWorldDetail(w, r, parts[0])
		case len(parts) == 2 && parts[1] == "map.png":
			RateLimitMiddleware(mapLimiter, func(w http.ResponseWriter, r *http.Request) {
				s.handleWorldMap(w, r, parts[0])
			})(w, r)
		default:
			http.NotFound(w, r)
		}
	}
}

func (s *Server) handleWorldDetail(w http.ResponseWriter, r *http.Request, id string) {
	wld, err := s.DB.LoadWorld(id)
	if err != nil {
		if errors.Is(err, persistence.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		slog.Error("load world failed", "id", id, "error", err)
		http.Error(w, "load failed", http.StatusInternalServerError)
		return
	}

	biomes := make(map[string]int)
	for b, n := range terrain.BiomeCounts(wld.Biomes) {
		biomes[terrain.BiomeName(b)] = n
	}

	writeJSON(w, map[string]any{
		"id":              wld.ID,
		"seed":            wld.Seed,
		"width":           wld.Width(),
		"height":          wld.Height(),
		"river_threshold": wld.RiverThreshold,
		"basins":          wld.BasinCount(),
		"river_cells":     wld.RiverCells(),
		"biomes":          biomes,
	})
}

func (s *Server) handleWorldMap(w http.ResponseWriter, r *http.Request, id string) {
	wld, err := s.DB.LoadWorld(id)
	if err != nil {
		if errors.Is(err, persistence.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		slog.Error("load world failed", "id", id, "error", err)
		http.Error(w, "load failed", http.StatusInternalServerError)
		return
	}

	img := render.Compose(wld.Biomes, wld.Elevation, wld.Rivers, s.Render)
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		slog.Error("map encode failed", "id", id, "error", err)
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Write(buf.Bytes())
}

func writeJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.Encode(data)
}
