package handler

import (
	"context"  // context bounds DB calls and event publishing
	"errors"   // errors.Is comparisons against repository sentinels
	"fmt"      // fmt builds the QR payload
	"net/http" // HTTP status codes
	"time"     // timeouts and event timestamps

	"github.com/labstack/echo/v4" // Echo web framework
	"go.uber.org/zap"             // structured logging

	"github.com/iliyamo/cinema-tickets/internal/model"      // ticket and session models
	"github.com/iliyamo/cinema-tickets/internal/queue"      // ticket.reserved event payload
	"github.com/iliyamo/cinema-tickets/internal/repository" // repository sentinels
	"github.com/iliyamo/cinema-tickets/internal/utils"      // QR code rendering
)

// qrSize is the edge length in pixels of ticket QR codes.
const qrSize = 256

// TicketBooker is satisfied by service.TicketService.
type TicketBooker interface {
	ReserveTicket(ctx context.Context, sessionID uint64, row, place int, userID uint64) (bool, error)
	FindSeat(ctx context.Context, sessionID uint64, row, place int) (*model.Ticket, error)
	TicketForUser(ctx context.Context, ticketID, userID uint64) (*model.Ticket, error)
	ReservationsWithDetailsForUser(ctx context.Context, userID uint64) ([]model.ReservationWithDetails, error)
}

// EventPublisher is satisfied by queue.Publisher.
type EventPublisher interface {
	PublishTicketReserved(ctx context.Context, ev queue.TicketReservedEvent) error
}

// TicketHandler groups the customer ticket endpoints.  All methods assume
// JWTAuth already ran and return 401 when the user ID is missing.
type TicketHandler struct {
	Tickets  TicketBooker
	Sessions SessionReader
	Halls    HallReader
	Events   EventPublisher // optional; nil disables ticket.reserved events
}

func NewTicketHandler(tickets TicketBooker, sessions SessionReader, halls HallReader, events EventPublisher) *TicketHandler {
	if tickets == nil || sessions == nil || halls == nil {
		panic("nil dependency passed to NewTicketHandler")
	}
	return &TicketHandler{Tickets: tickets, Sessions: sessions, Halls: halls, Events: events}
}

type purchaseReq struct {
	SessionID uint64 `json:"session_id" validate:"required"`
	Row       int    `json:"row" validate:"required"`
	Place     int    `json:"place" validate:"required"`
}

// Purchase handles POST /v1/tickets.  The seat must lie inside the
// session's hall.  A seat that is already taken yields 409 and leaves the
// existing ticket untouched.
func (h *TicketHandler) Purchase(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req purchaseReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	session, err := h.Sessions.FindByID(ctx, req.SessionID)
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "session not found"})
		}
		zap.L().Error("load session failed", zap.Uint64("session_id", req.SessionID), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	hall, err := h.Halls.FindByID(ctx, session.HallID)
	if err != nil {
		if errors.Is(err, repository.ErrHallNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "hall not found"})
		}
		zap.L().Error("load hall failed", zap.Uint64("hall_id", session.HallID), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if !hall.Contains(req.Row, req.Place) {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error":       "seat outside hall",
			"row_count":   hall.RowCount,
			"place_count": hall.PlaceCount,
		})
	}

	ok, err := h.Tickets.ReserveTicket(ctx, session.ID, req.Row, req.Place, userID)
	if err != nil {
		zap.L().Error("reserve ticket failed",
			zap.Uint64("session_id", session.ID), zap.Int("row", req.Row), zap.Int("place", req.Place), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "reserve failed"})
	}
	if !ok {
		return c.JSON(http.StatusConflict, echo.Map{"error": "seat is already taken"})
	}

	ticket := model.Ticket{SessionID: session.ID, RowNumber: req.Row, PlaceNumber: req.Place, UserID: userID}
	if t, err := h.Tickets.FindSeat(ctx, session.ID, req.Row, req.Place); err == nil {
		ticket = *t
	} else {
		zap.L().Warn("reserved ticket not readable", zap.Uint64("session_id", session.ID), zap.Error(err))
	}

	// Re-read so the confirmation reflects the committed session and film.
	if fresh, err := h.Sessions.FindByID(ctx, session.ID); err == nil {
		session = fresh
	}

	h.publish(ticket, session, hall)

	return c.JSON(http.StatusCreated, echo.Map{
		"ticket":  ticket,
		"session": session,
		"film":    session.Film,
		"hall":    hall,
	})
}

// publish sends ticket.reserved in the background.  Failures are logged
// and never affect the purchase.
func (h *TicketHandler) publish(t model.Ticket, s *model.FilmSession, hall *model.Hall) {
	if h.Events == nil {
		return
	}
	ev := queue.TicketReservedEvent{
		TicketID:   t.ID,
		UserID:     t.UserID,
		SessionID:  s.ID,
		Row:        t.RowNumber,
		Place:      t.PlaceNumber,
		HallName:   hall.Name,
		StartsAt:   s.StartTime.Format(time.RFC3339),
		Price:      s.Price,
		ReservedAt: time.Now().UTC().Format(time.RFC3339),
	}
	if s.Film != nil {
		ev.FilmName = s.Film.Name
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := h.Events.PublishTicketReserved(ctx, ev); err != nil {
			zap.L().Warn("publish ticket.reserved failed", zap.Uint64("session_id", ev.SessionID), zap.Error(err))
		}
	}()
}

// Mine handles GET /v1/tickets/mine: the caller's reservations with
// session and film, latest screening first.
func (h *TicketHandler) Mine(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	items, err := h.Tickets.ReservationsWithDetailsForUser(ctx, userID)
	if err != nil {
		zap.L().Error("list reservations failed", zap.Uint64("user_id", userID), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if items == nil {
		items = []model.ReservationWithDetails{}
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// QR handles GET /v1/tickets/:id/qr and renders a PNG for a ticket the
// caller owns.  Other users' tickets are reported as not found.
func (h *TicketHandler) QR(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid ticket id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	t, err := h.Tickets.TicketForUser(ctx, id, userID)
	if err != nil {
		if errors.Is(err, repository.ErrTicketNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "ticket not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	png, err := utils.GenerateQRCode(qrPayload(t), qrSize)
	if err != nil {
		zap.L().Error("render qr failed", zap.Uint64("ticket_id", t.ID), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "render failed"})
	}
	return c.Blob(http.StatusOK, "image/png", png)
}

func qrPayload(t *model.Ticket) string {
	return fmt.Sprintf("ticket:%d;session:%d;row:%d;place:%d;user:%d", t.ID, t.SessionID, t.RowNumber, t.PlaceNumber, t.UserID)
}
