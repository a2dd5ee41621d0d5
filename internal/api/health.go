package api

import (
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"
)

// HealthHandler provides liveness and readiness endpoints.
//
// Responsibilities:
//   - /healthz: liveness, always 200.
//   - /readyz: readiness, 200 when every registered dependency check passes.
//     With the in-memory cache backend there are no checks and the service is always ready.
type HealthHandler struct {
	checks map[string]func() error
}

// NewHealthHandler builds a HealthHandler from named checks such as
// {"postgres": db.Ping}. Nil checks are ignored.
func NewHealthHandler(checks map[string]func() error) *HealthHandler {
	h := &HealthHandler{checks: map[string]func() error{}}
	for name, fn := range checks {
		if fn != nil {
			h.checks[name] = fn
		}
	}
	return h
}

// Register mounts /healthz and /readyz on r.
func (h *HealthHandler) Register(r *gin.Engine) {
	// @Summary      Liveness probe
	// @Description  Always returns OK if the service is running
	// @Tags         health
	// @Produce      json
	// @Success      200  {object}  map[string]string
	// @Router       /healthz [get]
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// @Summary      Readiness probe
	// @Description  Returns ready if the service dependencies are reachable
	// @Tags         health
	// @Produce      json
	// @Success      200  {object}  map[string]any
	// @Failure      503  {object}  map[string]any
	// @Router       /readyz [get]
	r.GET("/readyz", func(c *gin.Context) {
		status, results := h.run()
		code := http.StatusOK
		if status != "ready" {
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, gin.H{"status": status, "checks": results})
	})
}

func (h *HealthHandler) run() (string, map[string]string) {
	names := make([]string, 0, len(h.checks))
	for n := range h.checks {
		names = append(names, n)
	}
	sort.Strings(names)

	status := "ready"
	results := make(map[string]string, len(names))
	for _, n := range names {
		if err := h.checks[n](); err != nil {
			results[n] = err.Error()
			status = "degraded"
			continue
		}
		results[n] = "ok"
	}
	return status, results
}
