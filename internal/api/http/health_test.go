package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

type stubStore struct {
	pingErr error
	count   int
}

func (s stubStore) Name() string { return "memory" }
func (s stubStore) Ping(context.Context) error { return s.pingErr }
func (s stubStore) Count(context.Context) (int, error) { return s.count, nil }

func TestHealthCheck(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	handler := NewHealthHandler("test-service", "1.0.0", stubStore{count: 3}).
		WithLiveSessions(func() int { return 2 }).
		WithMetrics(func() any {
			return map[string]float64{"generation_calls": 1, "avg_model_latency_ms": 250, "error_rate": 0}
		})
	handler.RegisterRoutes(router)

	req, err := http.NewRequest("GET", "/health", nil)
	if err != nil {
		t.Fatal(err)
	}

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if status := rr.Code; status != http.StatusOK {
		t.Errorf("handler returned wrong status code: got %v want %v",
			status, http.StatusOK)
	}

	var response HealthResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &response); err != nil {
		t.Errorf("failed to unmarshal response: %v", err)
	}

	if response.Status != "healthy" {
		t.Errorf("expected status 'healthy', got %s", response.Status)
	}
	if response.Service != "test-service" {
		t.Errorf("expected service 'test-service', got %s", response.Service)
	}
	if response.Version != "1.0.0" {
		t.Errorf("expected version '1.0.0', got %s", response.Version)
	}
	if response.StoreStatus != "up" || response.Sessions != 3 || response.LiveSessions != 2 {
		t.Errorf("unexpected store fields: %+v", response)
	}
	metrics, ok := response.Metrics.(map[string]any)
	if !ok {
		t.Fatalf("expected metrics object in response, got %T", response.Metrics)
	}
	if metrics["avg_model_latency_ms"] != 250.0 {
		t.Errorf("expected avg_model_latency_ms 250, got %v", metrics["avg_model_latency_ms"])
	}
	if _, ok := metrics["error_rate"]; !ok {
		t.Errorf("expected error_rate in metrics")
	}
}

func TestHealthCheckStoreDown(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	NewHealthHandler("svc", "v", stubStore{pingErr: errors.New("refused")}).RegisterRoutes(router)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest("GET", "/healthz", nil))

	var response HealthResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &response); err != nil {
		t.Fatal(err)
	}
	if response.Status != "degraded" || response.StoreStatus != "down" {
		t.Errorf("expected degraded/down, got %s/%s", response.Status, response.StoreStatus)
	}
}

func TestHealthCheckMethodNotAllowed(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.HandleMethodNotAllowed = true

	handler := NewHealthHandler("test-service", "1.0.0", nil)
	handler.RegisterRoutes(router)

	req, err := http.NewRequest("POST", "/health", nil)
	if err != nil {
		t.Fatal(err)
	}

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if status := rr.Code; status != http.StatusMethodNotAllowed {
		t.Errorf("handler returned wrong status code: got %v want %v",
			status, http.StatusMethodNotAllowed)
	}
}
