// Package api serves the engine's query/command surface over HTTP.
// GET endpoints are public read-only snapshots; command POSTs require a
// bearer token. A websocket stream pushes snapshots to render clients.
package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/mkello/civitas/internal/citymap"
	"github.com/mkello/civitas/internal/engine"
)

// Server serves the simulation state over HTTP.
type Server struct {
	Sim      *engine.Simulation
	Loop     *engine.Loop
	Port     int
	AdminKey string // Bearer token for POST endpoints. Empty = POST disabled.
	Hub      *Hub
}

// Start begins serving the HTTP API in a goroutine.
func (s *Server) Start() {
	mux := http.NewServeMux()

	// Public endpoints (GET, read-only).
	mux.HandleFunc("/api/v1/status", s.handleStatus)
	mux.HandleFunc("/api/v1/snapshot", s.handleSnapshot)
	mux.HandleFunc("/api/v1/departments", s.handleDepartments)
	mux.HandleFunc("/api/v1/department/", s.handleDepartmentDetail)
	mux.HandleFunc("/api/v1/incidents", s.handleIncidents)
	mux.HandleFunc("/api/v1/incident/", s.handleIncidentDetail)
	mux.HandleFunc("/api/v1/majors", s.handleMajors)
	mux.HandleFunc("/api/v1/major/", s.handleMajorDetail)
	mux.HandleFunc("/api/v1/demographics", s.handleDemographics)
	mux.HandleFunc("/api/v1/report", s.handleReport)
	mux.HandleFunc("/api/v1/events", s.handleEvents)
	mux.HandleFunc("/api/v1/initiatives", s.handleInitiatives)

	// Websocket snapshot stream for render clients.
	if s.Hub != nil {
		mux.HandleFunc("/api/v1/stream", s.Hub.handleStream)
	}

	// Command endpoints (POST, require bearer token).
	mux.HandleFunc("/api/v1/command", s.adminOnly(s.handleCommand))
	mux.HandleFunc("/api/v1/speed", s.adminOnly(s.handleSpeed))

	addr := fmt.Sprintf(":%d", s.Port)
	slog.Info("HTTP API starting", "addr", addr, "admin_auth", s.AdminKey != "")

	go func() {
		if err := http.ListenAndServe(addr, mux); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()
}

// adminOnly gates POST handlers behind the bearer token.
func (s *Server) adminOnly(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		if s.AdminKey == "" {
			http.Error(w, "command endpoints disabled", http.StatusForbidden)
			return
		}
		auth := r.Header.Get("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") || strings.TrimPrefix(auth, "Bearer ") != s.AdminKey {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		next(w, r)
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response", "error", err)
	}
}

// snapshot reads a consistent snapshot under the loop lock.
func (s *Server) snapshot() engine.Snapshot {
	var snap engine.Snapshot
	s.Loop.Do(func() { snap = s.Sim.Snapshot() })
	return snap
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	snap := s.snapshot()
	writeJSON(w, map[string]any{
		"day":           snap.Day,
		"year":          snap.Year,
		"stability":     snap.KPIs[engine.KPIStability],
		"treasury":      snap.Budget.Treasury,
		"action_points": snap.ActionPoints,
		"incidents":     len(snap.Incidents),
		"majors":        len(snap.Majors),
		"game_over":     snap.GameOver,
	})
}

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.snapshot())
}

func (s *Server) handleDepartments(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.snapshot().Departments)
}

func (s *Server) handleDepartmentDetail(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/api/v1/department/")
	for _, d := range s.snapshot().Departments {
		if d.ID == id {
			writeJSON(w, d)
			return
		}
	}
	http.Error(w, "department not found", http.StatusNotFound)
}

func (s *Server) handleIncidents(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.snapshot().Incidents)
}

func (s *Server) handleIncidentDetail(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/api/v1/incident/")
	for _, in := range s.snapshot().Incidents {
		if in.ID == id {
			writeJSON(w, in)
			return
		}
	}
	http.Error(w, "incident not found", http.StatusNotFound)
}

func (s *Server) handleMajors(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.snapshot().Majors)
}

func (s *Server) handleMajorDetail(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/api/v1/major/")
	for _, ev := range s.snapshot().Majors {
		if ev.ID == id {
			writeJSON(w, ev)
			return
		}
	}
	http.Error(w, "major event not found", http.StatusNotFound)
}

func (s *Server) handleDemographics(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.snapshot().Demographics)
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	snap := s.snapshot()
	if snap.LastReport == nil {
		http.Error(w, "no report issued yet", http.StatusNotFound)
		return
	}
	writeJSON(w, snap.LastReport)
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 500 {
			limit = n
		}
	}
	var events []engine.Event
	s.Loop.Do(func() { events = s.Sim.RecentEvents(limit) })
	writeJSON(w, events)
}

func (s *Server) handleInitiatives(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, engine.InitiativeCatalog)
}

// commandRequest is the envelope for POST /api/v1/command.
type commandRequest struct {
	Command    string  `json:"command"`
	Department string  `json:"department,omitempty"`
	Target     float64 `json:"target,omitempty"`
	TileX      int     `json:"tile_x,omitempty"`
	TileY      int     `json:"tile_y,omitempty"`
	Option     string  `json:"option,omitempty"`
	ID         string  `json:"id,omitempty"`
}

// handleCommand dispatches a player command, serialized against ticks.
func (s *Server) handleCommand(w http.ResponseWriter, r *http.Request) {
	var req commandRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request: "+err.Error(), http.StatusBadRequest)
		return
	}

	var result engine.CommandResult
	s.Loop.Do(func() {
		switch req.Command {
		case "place_department":
			result = s.Sim.PlaceDepartment(req.Department, citymap.Coord{X: req.TileX, Y: req.TileY})
		case "set_budget":
			result = s.Sim.SetDepartmentBudget(req.Department, req.Target)
		case "upgrade":
			result = s.Sim.UpgradeDepartment(req.Department)
		case "resolve_rapid":
			result = s.Sim.ResolveRapidDecision(req.Option)
		case "fund_major":
			result = s.Sim.FundMajorEvent(req.ID)
		case "defer_major":
			result = s.Sim.DeferMajorEvent(req.ID)
		case "dispatch":
			result = s.Sim.DispatchEmergency(req.ID)
		case "initiative":
			result = s.Sim.LaunchInitiative(req.ID)
		default:
			result = engine.CommandResult{Reason: "unknown command"}
		}
	})

	writeJSON(w, result)
}

// handleSpeed adjusts the loop speed multiplier (0 pauses).
func (s *Server) handleSpeed(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Speed float64 `json:"speed"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Speed < 0 || req.Speed > 20 {
		http.Error(w, "speed must be between 0 and 20", http.StatusBadRequest)
		return
	}
	s.Loop.Do(func() { s.Loop.Speed = req.Speed })
	writeJSON(w, map[string]float64{"speed": req.Speed})
}
