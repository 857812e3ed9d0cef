package handler

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"rentalhub-storefront-api/internal/cache"
	"rentalhub-storefront-api/pkg/response"
)

// Handler serves health, readiness and status checks.
type Handler struct {
	service             string
	version             string
	inventoryConfigured bool
	cache               cache.Cache
	startTime           time.Time
}

// New creates the health handler. c may be nil when caching is disabled.
func New(service, version string, inventoryConfigured bool, c cache.Cache) *Handler {
	return &Handler{
		service:             service,
		version:             version,
		inventoryConfigured: inventoryConfigured,
		cache:               c,
		startTime:           time.Now(),
	}
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
}

// Health handles GET /api/v1/health
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Version:   h.version,
	}
	response.OK(w, resp)
}

// ReadyResponse represents the readiness check response.
type ReadyResponse struct {
	Ready     bool      `json:"ready"`
	Timestamp time.Time `json:"timestamp"`
	Checks    []Check   `json:"checks"`
}

// Check represents an individual readiness check.
type Check struct {
	Name   string `json:"name"`
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// Ready handles GET /api/v1/ready
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	checks := []Check{
		{Name: "api", Status: "ok"},
		h.inventoryCheck(),
		h.cacheCheck(r.Context()),
	}

	allReady := true
	for _, check := range checks {
		if check.Status == "error" {
			allReady = false
			break
		}
	}

	resp := ReadyResponse{
		Ready:     allReady,
		Timestamp: time.Now().UTC(),
		Checks:    checks,
	}

	status := http.StatusOK
	if !allReady {
		status = http.StatusServiceUnavailable
	}
	response.JSON(w, status, resp)
}

func (h *Handler) inventoryCheck() Check {
	if !h.inventoryConfigured {
		return Check{Name: "inventory", Status: "error", Error: "INVENTORY_API_KEY is not set"}
	}
	return Check{Name: "inventory", Status: "ok"}
}

func (h *Handler) cacheCheck(ctx context.Context) Check {
	if h.cache == nil {
		return Check{Name: "cache", Status: "disabled"}
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := h.cache.Ping(ctx); err != nil {
		return Check{Name: "cache", Status: "error", Error: err.Error()}
	}
	return Check{Name: "cache", Status: "ok"}
}

// StatusChecks represents the checks in status response
type StatusChecks struct {
	Inventory string  `json:"inventory"`
	Cache     string  `json:"cache"`
	MemoryMB  float64 `json:"memory_mb"`
}

// StatusResponse represents the unified status response for uptime monitors
type StatusResponse struct {
	Service       string       `json:"service"`
	Status        string       `json:"status"`
	Timestamp     string       `json:"timestamp"`
	UptimeSeconds int64        `json:"uptime_seconds"`
	PingMS        int64        `json:"ping_ms"`
	Checks        StatusChecks `json:"checks"`
}

// Status handles GET /api/status - unified health check for uptime monitors
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	requestStart := time.Now()

	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)
	memoryMB := float64(memStats.Alloc) / 1024 / 1024

	cacheCheck := h.cacheCheck(r.Context())
	inventoryCheck := h.inventoryCheck()

	status := "ok"
	if cacheCheck.Status == "error" || inventoryCheck.Status == "error" {
		status = "degraded"
	}

	resp := StatusResponse{
		Service:       h.service,
		Status:        status,
		Timestamp:     time.Now().UTC().Format(time.RFC3339),
		UptimeSeconds: int64(time.Since(h.startTime).Seconds()),
		PingMS:        time.Since(requestStart).Milliseconds(),
		Checks: StatusChecks{
			Inventory: inventoryCheck.Status,
			Cache:     cacheCheck.Status,
			MemoryMB:  float64(int(memoryMB*100)) / 100,
		},
	}

	w.Header().Set("Cache-Control", "no-store, no-cache, must-revalidate")
	response.OK(w, resp)
}
