package health

import (
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthResponse health check body
type HealthResponse struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Version   string                 `json:"version"`
	Providers map[string]bool        `json:"providers"`
	Cache     map[string]interface{} `json:"cache,omitempty"`
	Runtime   map[string]interface{} `json:"runtime"`
}

// StatsReporter is implemented by caches that expose counters.
type StatsReporter interface {
	GetStats() map[string]interface{}
}

// Handler serves the health endpoints.
type Handler struct {
	version   string
	providers map[string]bool
	cache     StatsReporter
}

// NewHandler providers maps provider name to whether it is configured. cache may be nil.
func NewHandler(version string, providers map[string]bool, cache StatsReporter) *Handler {
	return &Handler{version: version, providers: providers, cache: cache}
}

// HealthCheck reports configured providers, cache counters and runtime figures.
func (h *Handler) HealthCheck(c *gin.Context) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	resp := HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
		Version:   h.version,
		Providers: h.providers,
		Runtime: map[string]interface{}{
			"goroutines": runtime.NumGoroutine(),
			"memory": map[string]interface{}{
				"alloc":       m.Alloc,
				"total_alloc": m.TotalAlloc,
				"sys":         m.Sys,
				"num_gc":      m.NumGC,
			},
		},
	}
	if h.cache != nil {
		resp.Cache = h.cache.GetStats()
	}
	c.JSON(http.StatusOK, resp)
}

// ReadinessCheck always succeeds: a missing provider degrades results, it never blocks
// serving.
func (h *Handler) ReadinessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}

func (h *Handler) LivenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "alive"})
}
