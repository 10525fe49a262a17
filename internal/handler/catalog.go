package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/cinema-tickets/internal/model"
	"github.com/iliyamo/cinema-tickets/internal/repository"
)

// FilmReader is satisfied by service.FilmService.
type FilmReader interface {
	FindByID(ctx context.Context, id uint64) (*model.Film, error)
	FindAll(ctx context.Context) ([]model.Film, error)
}

// SessionReader is satisfied by service.FilmSessionService.  Returned
// sessions carry their film when it exists.
type SessionReader interface {
	FindByID(ctx context.Context, id uint64) (*model.FilmSession, error)
	FindAll(ctx context.Context) ([]model.FilmSession, error)
}

// HallReader is satisfied by service.HallService.
type HallReader interface {
	FindByID(ctx context.Context, id uint64) (*model.Hall, error)
}

// CatalogHandler serves the public, read-only part of the API.
type CatalogHandler struct {
	Films    FilmReader
	Sessions SessionReader
	Halls    HallReader
}

func NewCatalogHandler(films FilmReader, sessions SessionReader, halls HallReader) *CatalogHandler {
	if films == nil || sessions == nil || halls == nil {
		panic("nil dependency passed to NewCatalogHandler")
	}
	return &CatalogHandler{Films: films, Sessions: sessions, Halls: halls}
}

// ListFilms handles GET /v1/films.
func (h *CatalogHandler) ListFilms(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	films, err := h.Films.FindAll(ctx)
	if err != nil {
		zap.L().Error("list films failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": films})
}

// GetFilm handles GET /v1/films/:id.
func (h *CatalogHandler) GetFilm(c echo.Context) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid film id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	film, err := h.Films.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrFilmNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "film not found"})
		}
		zap.L().Error("get film failed", zap.Uint64("film_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, film)
}

// ListSessions handles GET /v1/sessions.
func (h *CatalogHandler) ListSessions(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	sessions, err := h.Sessions.FindAll(ctx)
	if err != nil {
		zap.L().Error("list sessions failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": sessions})
}

// GetSession handles GET /v1/sessions/:id.
func (h *CatalogHandler) GetSession(c echo.Context) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid session id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	s, err := h.Sessions.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "session not found"})
		}
		zap.L().Error("get session failed", zap.Uint64("session_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, s)
}

// BuyPage handles GET /v1/sessions/:id/buy and returns what a client
// needs to pick a seat: the session, its film and its hall dimensions.
func (h *CatalogHandler) BuyPage(c echo.Context) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid session id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	s, err := h.Sessions.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "session not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	hall, err := h.Halls.FindByID(ctx, s.HallID)
	if err != nil {
		if errors.Is(err, repository.ErrHallNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "hall not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"session": s,
		"film":    s.Film,
		"hall":    hall,
	})
}
