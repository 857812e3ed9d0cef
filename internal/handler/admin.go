package handler

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"rentalhub-storefront-api/internal/cache"
	"rentalhub-storefront-api/internal/model"
	"rentalhub-storefront-api/pkg/response"

	"golang.org/x/time/rate"
)

// AdminHandler handles admin-related HTTP requests.
type AdminHandler struct {
	cache     cache.Cache
	cacheType string
	limiter   *rate.Limiter
	area      model.ServiceArea
	startTime time.Time
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(c cache.Cache, cacheType string, limiter *rate.Limiter, area model.ServiceArea) *AdminHandler {
	return &AdminHandler{
		cache:     c,
		cacheType: cacheType,
		limiter:   limiter,
		area:      area,
		startTime: time.Now(),
	}
}

// GetStats handles GET /api/v1/admin/stats
func (h *AdminHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats := make(map[string]interface{})

	// System info
	stats["uptime_seconds"] = int64(time.Since(h.startTime).Seconds())
	stats["uptime_human"] = time.Since(h.startTime).Round(time.Second).String()
	stats["server_time"] = time.Now().Format(time.RFC3339)

	// Memory stats
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)
	stats["memory"] = map[string]interface{}{
		"alloc_mb":       float64(memStats.Alloc) / 1024 / 1024,
		"total_alloc_mb": float64(memStats.TotalAlloc) / 1024 / 1024,
		"sys_mb":         float64(memStats.Sys) / 1024 / 1024,
		"heap_alloc_mb":  float64(memStats.HeapAlloc) / 1024 / 1024,
		"heap_inuse_mb":  float64(memStats.HeapInuse) / 1024 / 1024,
		"num_gc":         memStats.NumGC,
		"goroutines":     runtime.NumGoroutine(),
	}

	stats["cache"] = h.cacheStats(r.Context())

	if h.limiter != nil {
		stats["inventory_limiter"] = map[string]interface{}{
			"requests_per_second": float64(h.limiter.Limit()),
			"burst":               h.limiter.Burst(),
			"tokens":              h.limiter.Tokens(),
		}
	} else {
		stats["inventory_limiter"] = map[string]interface{}{
			"status": "disabled",
		}
	}

	stats["service_area"] = h.area

	// Runtime info
	stats["runtime"] = map[string]interface{}{
		"go_version": runtime.Version(),
		"os":         runtime.GOOS,
		"arch":       runtime.GOARCH,
		"cpus":       runtime.NumCPU(),
	}

	response.OK(w, stats)
}

func (h *AdminHandler) cacheStats(ctx context.Context) map[string]interface{} {
	if h.cache == nil {
		return map[string]interface{}{"status": "not_configured"}
	}

	out := map[string]interface{}{"type": h.cacheType}
	if err := h.cache.Ping(ctx); err != nil {
		out["status"] = "error"
		out["error"] = err.Error()
	} else {
		out["status"] = "connected"
	}
	if counted, ok := h.cache.(interface{ Len() int }); ok {
		out["entries"] = counted.Len()
	}
	return out
}
