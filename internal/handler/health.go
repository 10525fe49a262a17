package handler // declare the package name; contains HTTP handlers

import (
	"context"  // context bounds the dependency pings
	"net/http" // net/http provides status codes and response helpers
	"time"     // time sets the ping timeout

	"github.com/labstack/echo/v4" // echo is the web framework used for this project
)

// Pinger is satisfied by *sql.DB and by small adapters around other
// backends such as Redis.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// PingFunc adapts a plain function to Pinger.
type PingFunc func(ctx context.Context) error

func (f PingFunc) PingContext(ctx context.Context) error { return f(ctx) }

// HealthHandler reports liveness plus the state of named dependencies.
type HealthHandler struct {
	Deps map[string]Pinger // dependencies keyed by the name shown in the response
}

// Health is used by load balancers and monitoring systems to verify that
// the service is running.  It returns 200 with {"status":"ok"} when every
// dependency answers, otherwise 503 with the failing names.
func (h *HealthHandler) Health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()

	checks := make(map[string]string, len(h.Deps))
	status, code := "ok", http.StatusOK
	for name, p := range h.Deps {
		if p == nil {
			continue // optional dependency not configured
		}
		if err := p.PingContext(ctx); err != nil {
			checks[name] = "down"
			status, code = "degraded", http.StatusServiceUnavailable
			continue
		}
		checks[name] = "up"
	}
	return c.JSON(code, echo.Map{"status": status, "checks": checks})
}
