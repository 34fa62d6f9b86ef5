package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mkello/civitas/internal/citymap"
	"github.com/mkello/civitas/internal/config"
	"github.com/mkello/civitas/internal/engine"
	"github.com/mkello/civitas/internal/entropy"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	m := citymap.Generate(citymap.GenConfig{Size: 36, Seed: 7, SeaLevel: 0.30})
	sim := engine.NewSimulation(config.Default(), nil, m, entropy.NewScripted(0.99))
	return &Server{
		Sim:      sim,
		Loop:     engine.NewLoop(sim),
		AdminKey: "test-key",
	}
}

func TestHandleStatus(t *testing.T) {
	s := newTestServer(t)

	rec := httptest.NewRecorder()
	s.handleStatus(rec, httptest.NewRequest(http.MethodGet, "/api/v1/status", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["day"].(float64) != 0 {
		t.Fatalf("day = %v, want 0", body["day"])
	}
	if body["action_points"].(float64) != 3 {
		t.Fatalf("action points = %v, want 3", body["action_points"])
	}
}

func TestHandleSnapshotIsDeepCopy(t *testing.T) {
	s := newTestServer(t)

	rec := httptest.NewRecorder()
	s.handleSnapshot(rec, httptest.NewRequest(http.MethodGet, "/api/v1/snapshot", nil))

	var snap engine.Snapshot
	if err := json.Unmarshal(rec.Body.Bytes(), &snap); err != nil {
		t.Fatalf("decode snapshot: %v", err)
	}
	if len(snap.Departments) != 6 {
		t.Fatalf("departments = %d, want 6", len(snap.Departments))
	}
	if len(snap.Demographics) != 5 {
		t.Fatalf("demographics = %d, want 5", len(snap.Demographics))
	}
}

func TestAdminOnlyRejectsGet(t *testing.T) {
	s := newTestServer(t)
	handler := s.adminOnly(s.handleCommand)

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, "/api/v1/command", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", rec.Code)
	}
}

func TestAdminOnlyRejectsBadToken(t *testing.T) {
	s := newTestServer(t)
	handler := s.adminOnly(s.handleCommand)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/command", strings.NewReader("{}"))
	req.Header.Set("Authorization", "Bearer wrong")
	rec := httptest.NewRecorder()
	handler(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestAdminOnlyDisabledWithoutKey(t *testing.T) {
	s := newTestServer(t)
	s.AdminKey = ""
	handler := s.adminOnly(s.handleCommand)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/command", strings.NewReader("{}"))
	req.Header.Set("Authorization", "Bearer anything")
	rec := httptest.NewRecorder()
	handler(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
}

func TestHandleCommandSetBudget(t *testing.T) {
	s := newTestServer(t)

	payload := `{"command":"set_budget","department":"health","target":80}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/command", strings.NewReader(payload))
	rec := httptest.NewRecorder()
	s.handleCommand(rec, req)

	var res engine.CommandResult
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !res.Applied {
		t.Fatalf("command denied: %s", res.Reason)
	}
	if s.Sim.ActionPoints != 2 {
		t.Fatalf("action points = %d, want 2", s.Sim.ActionPoints)
	}
}

func TestHandleCommandDenialIsNotAnError(t *testing.T) {
	s := newTestServer(t)
	s.Sim.ActionPoints = 0

	payload := `{"command":"set_budget","department":"health","target":80}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/command", strings.NewReader(payload))
	rec := httptest.NewRecorder()
	s.handleCommand(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (denials are results, not errors)", rec.Code)
	}
	var res engine.CommandResult
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if res.Applied || res.Reason == "" {
		t.Fatalf("result = %+v, want a reasoned denial", res)
	}
}

func TestHandleCommandUnknown(t *testing.T) {
	s := newTestServer(t)

	payload := `{"command":"declare_victory"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/command", strings.NewReader(payload))
	rec := httptest.NewRecorder()
	s.handleCommand(rec, req)

	var res engine.CommandResult
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if res.Applied || res.Reason != "unknown command" {
		t.Fatalf("result = %+v, want unknown-command denial", res)
	}
}

func TestHandleDepartmentDetail(t *testing.T) {
	s := newTestServer(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/department/health", nil)
	s.handleDepartmentDetail(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/v1/department/transport", nil)
	s.handleDepartmentDetail(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404 for unknown department", rec.Code)
	}
}

func TestHandleReportBeforeFirstReport(t *testing.T) {
	s := newTestServer(t)

	rec := httptest.NewRecorder()
	s.handleReport(rec, httptest.NewRequest(http.MethodGet, "/api/v1/report", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404 before the first report", rec.Code)
	}
}

func TestHandleSpeedValidation(t *testing.T) {
	s := newTestServer(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/speed", strings.NewReader(`{"speed":50}`))
	s.handleSpeed(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400 for out-of-range speed", rec.Code)
	}

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/api/v1/speed", strings.NewReader(`{"speed":2}`))
	s.handleSpeed(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if s.Loop.Speed != 2 {
		t.Fatalf("loop speed = %v, want 2", s.Loop.Speed)
	}
}
