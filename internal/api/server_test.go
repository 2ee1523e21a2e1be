package api_test

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"fieldspectra/internal/api"
	"fieldspectra/internal/synth"
)

func setupServer(t *testing.T) *api.Server {
	t.Helper()
	records, err := synth.Generate(4, 4, 42)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	return api.NewServer(records, 4, 4, 42, "8080")
}

func TestHealthEndpoint(t *testing.T) {
	t.Parallel()
	srv := setupServer(t)

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	if w.Code != 200 {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"status"`) {
		t.Error("expected status field in JSON response")
	}
}

func TestFieldEndpoint(t *testing.T) {
	t.Parallel()
	srv := setupServer(t)

	req := httptest.NewRequest("GET", "/api/field", nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	if w.Code != 200 {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp struct {
		Rows  int   `json:"rows"`
		Cols  int   `json:"cols"`
		Seed  int64 `json:"seed"`
		Stats struct {
			Valid int      `json:"valid"`
			Mean  *float64 `json:"mean"`
		} `json:"stats"`
		Plots []struct {
			PlotID string   `json:"plot_id"`
			NDVI   *float64 `json:"ndvi"`
		} `json:"plots"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if resp.Rows != 4 || resp.Cols != 4 || resp.Seed != 42 {
		t.Errorf("grid meta = %dx%d seed %d, want 4x4 seed 42", resp.Rows, resp.Cols, resp.Seed)
	}
	if len(resp.Plots) != 16 {
		t.Fatalf("len(plots) = %d, want 16", len(resp.Plots))
	}
	if resp.Plots[0].PlotID != "R001C001" {
		t.Errorf("first plot = %q, want R001C001", resp.Plots[0].PlotID)
	}
	if resp.Stats.Valid != 16 || resp.Stats.Mean == nil {
		t.Errorf("stats = %+v, want 16 valid plots with a defined mean", resp.Stats)
	}
}

func TestStatsEndpoint(t *testing.T) {
	t.Parallel()
	srv := setupServer(t)

	req := httptest.NewRequest("GET", "/api/stats", nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	if w.Code != 200 {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var stats struct {
		Valid     int `json:"valid"`
		Undefined int `json:"undefined"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &stats); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if stats.Valid != 16 || stats.Undefined != 0 {
		t.Errorf("stats = %+v, want all 16 plots valid", stats)
	}
}

func TestHeatmapEndpoint(t *testing.T) {
	t.Parallel()
	srv := setupServer(t)

	req := httptest.NewRequest("GET", "/heatmap.png", nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	if w.Code != 200 {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "image/png" {
		t.Errorf("Content-Type = %q, want image/png", ct)
	}
	// PNG signature.
	if body := w.Body.Bytes(); len(body) < 8 || string(body[1:4]) != "PNG" {
		t.Error("response is not a PNG")
	}
}

func TestMetricsEndpoint(t *testing.T) {
	t.Parallel()
	srv := setupServer(t)

	req := httptest.NewRequest("GET", "/metrics", nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	if w.Code != 200 {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}
