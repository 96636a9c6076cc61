package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRoutes_Health(t *testing.T) {
	h := newTestHandler(&mockRecommender{})
	srv := httptest.NewServer(h.Routes([]string{"*"}))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/health")
	if err != nil {
		t.Fatalf("GET /health: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var body struct {
		OK bool `json:"ok"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if !body.OK {
		t.Error("ok = false, want true")
	}
}

func TestRoutes_RequestIDAssigned(t *testing.T) {
	h := newTestHandler(&mockRecommender{})
	srv := httptest.NewServer(h.Routes([]string{"*"}))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/health")
	if err != nil {
		t.Fatalf("GET /health: %v", err)
	}
	resp.Body.Close()

	if resp.Header.Get("X-Request-ID") == "" {
		t.Error("X-Request-ID header missing, want generated id")
	}
}

func TestRoutes_RequestIDEchoed(t *testing.T) {
	h := newTestHandler(&mockRecommender{})
	srv := httptest.NewServer(h.Routes([]string{"*"}))
	defer srv.Close()

	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/health", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("GET /health: %v", err)
	}
	resp.Body.Close()

	if got := resp.Header.Get("X-Request-ID"); got != "abc-123" {
		t.Errorf("X-Request-ID = %q, want caller id echoed", got)
	}
}

func TestRoutes_MetricsExposed(t *testing.T) {
	h := newTestHandler(&mockRecommender{})
	srv := httptest.NewServer(h.Routes([]string{"*"}))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/metrics")
	if err != nil {
		t.Fatalf("GET /metrics: %v", err)
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
}

func TestRoutes_UnknownPath(t *testing.T) {
	h := newTestHandler(&mockRecommender{})
	srv := httptest.NewServer(h.Routes([]string{"*"}))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/nope")
	if err != nil {
		t.Fatalf("GET /nope: %v", err)
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}
