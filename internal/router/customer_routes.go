package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-tickets/internal/handler"
	"github.com/iliyamo/cinema-tickets/internal/middleware"
)

// RegisterCustomer registers endpoints that act on behalf of the signed-in
// user.  All routes require a valid JWT.  Purchases additionally pass
// through limiter so one user cannot hammer the seat ledger.
func RegisterCustomer(v1 *echo.Group, t *handler.TicketHandler, f *handler.FileHandler, jwtSecret string, limiter echo.MiddlewareFunc) {
	jwt := middleware.JWTAuth(jwtSecret)

	// JWT runs before limiter so buckets are keyed by user, not by IP.
	v1.POST("/tickets", t.Purchase, jwt, limiter)
	v1.GET("/tickets/mine", t.Mine, jwt)
	v1.GET("/tickets/:id/qr", t.QR, jwt)

	v1.POST("/files", f.Upload, jwt)
}
