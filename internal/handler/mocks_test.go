package handler

import (
	"context"
	"net/http/httptest"
	"strings"
	"sync"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-tickets/internal/middleware"
	"github.com/iliyamo/cinema-tickets/internal/model"
	"github.com/iliyamo/cinema-tickets/internal/queue"
	"github.com/iliyamo/cinema-tickets/internal/repository"
)

// newContext builds an echo context with the validator installed.  A
// non-zero userID is stored the way JWTAuth stores it.
func newContext(method, target, body string, userID uint64) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewRequestValidator()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if userID != 0 {
		c.Set(middleware.UserIDKey, userID)
	}
	return c, rec
}

// --- Mock TicketBooker ---

type mockTickets struct {
	reserveFn func(ctx context.Context, sessionID uint64, row, place int, userID uint64) (bool, error)
	seatFn    func(ctx context.Context, sessionID uint64, row, place int) (*model.Ticket, error)
	forUserFn func(ctx context.Context, ticketID, userID uint64) (*model.Ticket, error)
	detailsFn func(ctx context.Context, userID uint64) ([]model.ReservationWithDetails, error)
}

func (m *mockTickets) ReserveTicket(ctx context.Context, sessionID uint64, row, place int, userID uint64) (bool, error) {
	return m.reserveFn(ctx, sessionID, row, place, userID)
}
func (m *mockTickets) FindSeat(ctx context.Context, sessionID uint64, row, place int) (*model.Ticket, error) {
	if m.seatFn == nil {
		return nil, repository.ErrTicketNotFound
	}
	return m.seatFn(ctx, sessionID, row, place)
}
func (m *mockTickets) TicketForUser(ctx context.Context, ticketID, userID uint64) (*model.Ticket, error) {
	return m.forUserFn(ctx, ticketID, userID)
}
func (m *mockTickets) ReservationsWithDetailsForUser(ctx context.Context, userID uint64) ([]model.ReservationWithDetails, error) {
	return m.detailsFn(ctx, userID)
}

// --- Catalogue fakes ---

type fakeSessions struct {
	byID map[uint64]model.FilmSession
	err  error
}

func (f *fakeSessions) FindByID(ctx context.Context, id uint64) (*model.FilmSession, error) {
	if f.err != nil {
		return nil, f.err
	}
	s, ok := f.byID[id]
	if !ok {
		return nil, repository.ErrSessionNotFound
	}
	return &s, nil
}

func (f *fakeSessions) FindAll(ctx context.Context) ([]model.FilmSession, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := []model.FilmSession{}
	for id := uint64(1); len(out) < len(f.byID); id++ {
		if s, ok := f.byID[id]; ok {
			out = append(out, s)
		}
	}
	return out, nil
}

type fakeFilms struct {
	byID map[uint64]model.Film
	err  error
}

func (f *fakeFilms) FindByID(ctx context.Context, id uint64) (*model.Film, error) {
	if f.err != nil {
		return nil, f.err
	}
	film, ok := f.byID[id]
	if !ok {
		return nil, repository.ErrFilmNotFound
	}
	return &film, nil
}

func (f *fakeFilms) FindAll(ctx context.Context) ([]model.Film, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := []model.Film{}
	for id := uint64(1); len(out) < len(f.byID); id++ {
		if film, ok := f.byID[id]; ok {
			out = append(out, film)
		}
	}
	return out, nil
}

type fakeHalls map[uint64]model.Hall

func (f fakeHalls) FindByID(ctx context.Context, id uint64) (*model.Hall, error) {
	h, ok := f[id]
	if !ok {
		return nil, repository.ErrHallNotFound
	}
	return &h, nil
}

// recordingPublisher captures events and signals each publish on done.
type recordingPublisher struct {
	mu     sync.Mutex
	events []queue.TicketReservedEvent
	err    error
	done   chan struct{}
}

func newRecordingPublisher(err error) *recordingPublisher {
	return &recordingPublisher{err: err, done: make(chan struct{}, 8)}
}

func (p *recordingPublisher) PublishTicketReserved(ctx context.Context, ev queue.TicketReservedEvent) error {
	p.mu.Lock()
	p.events = append(p.events, ev)
	p.mu.Unlock()
	p.done <- struct{}{}
	return p.err
}

func (p *recordingPublisher) wait(d time.Duration) bool {
	select {
	case <-p.done:
		return true
	case <-time.After(d):
		return false
	}
}

// fixtures shared by the ticket and catalogue tests
var (
	inception = model.Film{ID: 3, Name: "Inception", GenreID: 4, Genre: &model.Genre{ID: 4, Name: "Sci-Fi"}}
	evening   = time.Date(2026, 3, 1, 19, 0, 0, 0, time.UTC)
	hallOne   = model.Hall{ID: 1, Name: "Hall 1", RowCount: 10, PlaceCount: 12}
)

func sessionsWithFilm() *fakeSessions {
	film := inception
	return &fakeSessions{byID: map[uint64]model.FilmSession{
		1: {ID: 1, FilmID: 3, HallID: 1, StartTime: evening, EndTime: evening.Add(148 * time.Minute), Price: 500, Film: &film},
		2: {ID: 2, FilmID: 3, HallID: 9, StartTime: evening},
	}}
}
