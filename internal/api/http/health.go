package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// StoreStatus is the part of the session store the health check reads.
type StoreStatus interface {
	Name() string
	Ping(ctx context.Context) error
	Count(ctx context.Context) (int, error)
}

type HealthResponse struct {
	Status       string    `json:"status"`
	Timestamp    time.Time `json:"timestamp"`
	Service      string    `json:"service"`
	Version      string    `json:"version"`
	Store        string    `json:"store,omitempty"`
	StoreStatus  string    `json:"store_status,omitempty"`
	Sessions     int       `json:"sessions"`
	LiveSessions int       `json:"live_sessions"`
	Metrics      any       `json:"metrics,omitempty"`
}

type HealthHandler struct {
	serviceName string
	version     string
	store       StoreStatus
	live        func() int
	metrics     func() any
}

func NewHealthHandler(serviceName, version string, store StoreStatus) *HealthHandler {
	return &HealthHandler{
		serviceName: serviceName,
		version:     version,
		store:       store,
	}
}

// WithLiveSessions reports the in-process session count.
func (h *HealthHandler) WithLiveSessions(fn func() int) *HealthHandler {
	h.live = fn
	return h
}

// WithMetrics attaches a metrics snapshot to every response.
func (h *HealthHandler) WithMetrics(fn func() any) *HealthHandler {
	h.metrics = fn
	return h
}

func (h *HealthHandler) HealthCheck(c *gin.Context) {
	resp := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Service:   h.serviceName,
		Version:   h.version,
	}

	if h.store != nil {
		pingCtx, cancel := context.WithTimeout(c.Request.Context(), 1*time.Second)
		defer cancel()

		resp.Store = h.store.Name()
		if err := h.store.Ping(pingCtx); err != nil {
			resp.StoreStatus = "down"
			resp.Status = "degraded"
		} else {
			resp.StoreStatus = "up"
			if n, err := h.store.Count(pingCtx); err == nil {
				resp.Sessions = n
			}
		}
	}
	if h.live != nil {
		resp.LiveSessions = h.live()
	}
	if h.metrics != nil {
		resp.Metrics = h.metrics()
	}

	c.JSON(http.StatusOK, resp)
}

func (h *HealthHandler) RegisterRoutes(r gin.IRouter) {
	r.GET("/health", h.HealthCheck)
	r.GET("/healthz", h.HealthCheck)
}
