package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing

	"github.com/iliyamo/cinema-tickets/internal/handler"    // import the handlers that implement the endpoints
	"github.com/iliyamo/cinema-tickets/internal/middleware" // import middleware for JWT authentication
)

// RegisterRoutes registers routes that do not require authentication and
// are not versioned.  Currently it exposes only a health check used by load
// balancers and monitoring systems.
func RegisterRoutes(e *echo.Echo, h *handler.HealthHandler) {
	e.GET("/healthz", h.Health)
}

// V1 returns the one group every versioned route hangs off.  It carries no
// middleware: echo adds a catch-all to a group once it has middleware, and a
// JWT-guarded catch-all would turn unknown public paths into 401.  JWT and
// cache are attached per route instead.
func V1(e *echo.Echo) *echo.Group {
	return e.Group("/v1")
}

// RegisterAuth registers all authentication‑related routes.  Token
// operations live under /v1/auth, while /v1/me requires an access token.
func RegisterAuth(v1 *echo.Group, a *handler.AuthHandler, jwtSecret string) {
	g := v1.Group("/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	// Rotates the refresh token.
	g.POST("/refresh", a.Refresh)
	// Issues a new access token without rotating the refresh token.
	g.POST("/refresh-access", a.RefreshAccess)
	// Logout accepts either a refresh_token body or a bearer token, so it
	// does not sit behind JWTAuth.
	g.POST("/logout", a.Logout)

	v1.GET("/me", a.Me, middleware.JWTAuth(jwtSecret))
}

// RegisterPublic registers unauthenticated browse endpoints.  Catalogue
// reads go through cache, which is a pass-through when Redis is not
// configured.
func RegisterPublic(v1 *echo.Group, p *handler.CatalogHandler, f *handler.FileHandler, cache echo.MiddlewareFunc) {
	v1.GET("/films", p.ListFilms, cache)
	v1.GET("/films/:id", p.GetFilm, cache)
	v1.GET("/sessions", p.ListSessions, cache)
	v1.GET("/sessions/:id", p.GetSession, cache)

	// Buy page and posters are not cached: hall data and files are read fresh.
	v1.GET("/sessions/:id/buy", p.BuyPage)
	v1.GET("/files/:id", f.Get)
}
