package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/cinema-tickets/internal/model"
	"github.com/iliyamo/cinema-tickets/internal/repository"
)

func newTicketHandler(tickets *mockTickets, pub EventPublisher) *TicketHandler {
	return NewTicketHandler(tickets, sessionsWithFilm(), fakeHalls{1: hallOne}, pub)
}

func TestPurchase_Success(t *testing.T) {
	var gotSession, gotUser uint64
	var gotRow, gotPlace int
	tickets := &mockTickets{
		reserveFn: func(ctx context.Context, sessionID uint64, row, place int, userID uint64) (bool, error) {
			gotSession, gotRow, gotPlace, gotUser = sessionID, row, place, userID
			return true, nil
		},
		seatFn: func(ctx context.Context, sessionID uint64, row, place int) (*model.Ticket, error) {
			return &model.Ticket{ID: 77, SessionID: sessionID, RowNumber: row, PlaceNumber: place, UserID: 42}, nil
		},
	}
	pub := newRecordingPublisher(nil)
	h := newTicketHandler(tickets, pub)

	c, rec := newContext(http.MethodPost, "/v1/tickets", `{"session_id":1,"row":5,"place":7}`, 42)
	require.NoError(t, h.Purchase(c))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, uint64(1), gotSession)
	assert.Equal(t, 5, gotRow)
	assert.Equal(t, 7, gotPlace)
	assert.Equal(t, uint64(42), gotUser)

	var body struct {
		Ticket model.Ticket `json:"ticket"`
		Film   model.Film   `json:"film"`
		Hall   model.Hall   `json:"hall"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, uint64(77), body.Ticket.ID)
	assert.Equal(t, "Inception", body.Film.Name)
	assert.Equal(t, "Hall 1", body.Hall.Name)

	require.True(t, pub.wait(time.Second), "ticket.reserved not published")
	pub.mu.Lock()
	ev := pub.events[0]
	pub.mu.Unlock()
	assert.Equal(t, uint64(77), ev.TicketID)
	assert.Equal(t, uint64(42), ev.UserID)
	assert.Equal(t, "Inception", ev.FilmName)
	assert.Equal(t, "Hall 1", ev.HallName)
	assert.Equal(t, 500, ev.Price)
	assert.Equal(t, evening.Format(time.RFC3339), ev.StartsAt)
}

func TestPurchase_PublishFailureDoesNotChangeResult(t *testing.T) {
	tickets := &mockTickets{
		reserveFn: func(ctx context.Context, sessionID uint64, row, place int, userID uint64) (bool, error) {
			return true, nil
		},
	}
	pub := newRecordingPublisher(errors.New("broker down"))
	h := newTicketHandler(tickets, pub)

	c, rec := newContext(http.MethodPost, "/v1/tickets", `{"session_id":1,"row":1,"place":1}`, 42)
	require.NoError(t, h.Purchase(c))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.True(t, pub.wait(time.Second))
}

func TestPurchase_SeatTaken(t *testing.T) {
	tickets := &mockTickets{
		reserveFn: func(ctx context.Context, sessionID uint64, row, place int, userID uint64) (bool, error) {
			return false, nil
		},
	}
	pub := newRecordingPublisher(nil)
	h := newTicketHandler(tickets, pub)

	c, rec := newContext(http.MethodPost, "/v1/tickets", `{"session_id":1,"row":5,"place":7}`, 99)
	require.NoError(t, h.Purchase(c))

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "already taken")
	assert.False(t, pub.wait(50*time.Millisecond), "no event for a lost seat")
}

func TestPurchase_Rejections(t *testing.T) {
	reserveCalled := false
	tickets := &mockTickets{
		reserveFn: func(ctx context.Context, sessionID uint64, row, place int, userID uint64) (bool, error) {
			reserveCalled = true
			return true, nil
		},
	}
	h := newTicketHandler(tickets, nil)

	cases := []struct {
		name string
		body string
		user uint64
		code int
	}{
		{"no user", `{"session_id":1,"row":1,"place":1}`, 0, http.StatusUnauthorized},
		{"bad json", `{"session_id":`, 42, http.StatusBadRequest},
		{"missing place", `{"session_id":1,"row":1}`, 42, http.StatusBadRequest},
		{"unknown session", `{"session_id":404,"row":1,"place":1}`, 42, http.StatusNotFound},
		{"unknown hall", `{"session_id":2,"row":1,"place":1}`, 42, http.StatusNotFound},
		{"row past hall", `{"session_id":1,"row":11,"place":1}`, 42, http.StatusBadRequest},
		{"place past hall", `{"session_id":1,"row":1,"place":13}`, 42, http.StatusBadRequest},
		{"negative row", `{"session_id":1,"row":-1,"place":1}`, 42, http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, rec := newContext(http.MethodPost, "/v1/tickets", tc.body, tc.user)
			err := h.Purchase(c)
			var he *echo.HTTPError
			if errors.As(err, &he) {
				assert.Equal(t, tc.code, he.Code)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.code, rec.Code)
		})
	}
	assert.False(t, reserveCalled)
}

func TestPurchase_ReserveFault(t *testing.T) {
	tickets := &mockTickets{
		reserveFn: func(ctx context.Context, sessionID uint64, row, place int, userID uint64) (bool, error) {
			return false, errors.New("lost connection")
		},
	}
	c, rec := newContext(http.MethodPost, "/v1/tickets", `{"session_id":1,"row":1,"place":1}`, 42)
	require.NoError(t, newTicketHandler(tickets, nil).Purchase(c))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "lost connection")
}

func TestMine(t *testing.T) {
	tickets := &mockTickets{
		detailsFn: func(ctx context.Context, userID uint64) ([]model.ReservationWithDetails, error) {
			if userID == 42 {
				return []model.ReservationWithDetails{{
					Ticket:  model.Ticket{ID: 1, SessionID: 1, RowNumber: 5, PlaceNumber: 7, UserID: 42},
					Session: model.FilmSession{ID: 1, StartTime: evening},
					Film:    inception,
				}}, nil
			}
			return nil, nil
		},
	}
	h := newTicketHandler(tickets, nil)

	c, rec := newContext(http.MethodGet, "/v1/tickets/mine", "", 42)
	require.NoError(t, h.Mine(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Items []model.ReservationWithDetails `json:"items"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Items, 1)
	assert.Equal(t, "Inception", body.Items[0].Film.Name)
	assert.Equal(t, "Sci-Fi", body.Items[0].Film.Genre.Name)

	c, rec = newContext(http.MethodGet, "/v1/tickets/mine", "", 99)
	require.NoError(t, h.Mine(c))
	assert.JSONEq(t, `{"items":[]}`, rec.Body.String())
}

func TestQR(t *testing.T) {
	tickets := &mockTickets{
		forUserFn: func(ctx context.Context, ticketID, userID uint64) (*model.Ticket, error) {
			if ticketID == 10 && userID == 42 {
				return &model.Ticket{ID: 10, SessionID: 1, RowNumber: 5, PlaceNumber: 7, UserID: 42}, nil
			}
			return nil, repository.ErrTicketNotFound
		},
	}
	h := newTicketHandler(tickets, nil)

	c, rec := newContext(http.MethodGet, "/v1/tickets/10/qr", "", 42)
	c.SetParamNames("id")
	c.SetParamValues("10")
	require.NoError(t, h.QR(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get(echo.HeaderContentType))
	assert.Equal(t, []byte("\x89PNG"), rec.Body.Bytes()[:4])

	c, rec = newContext(http.MethodGet, "/v1/tickets/10/qr", "", 99)
	c.SetParamNames("id")
	c.SetParamValues("10")
	require.NoError(t, h.QR(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	c, rec = newContext(http.MethodGet, "/v1/tickets/x/qr", "", 42)
	c.SetParamNames("id")
	c.SetParamValues("x")
	require.NoError(t, h.QR(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
