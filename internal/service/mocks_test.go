package service

import (
	"context"

	"github.com/iliyamo/cinema-tickets/internal/model"
	"github.com/iliyamo/cinema-tickets/internal/repository"
)

// --- Mock TicketStore ---

type mockTicketStore struct {
	findSeatFn   func(ctx context.Context, sessionID uint64, row, place int) (*model.Ticket, error)
	findByIDFn   func(ctx context.Context, id uint64) (*model.Ticket, error)
	reserveFn    func(ctx context.Context, sessionID uint64, row, place int, userID uint64) (bool, error)
	findByUserFn func(ctx context.Context, userID uint64) ([]model.Ticket, error)
}

func (m *mockTicketStore) FindSeat(ctx context.Context, sessionID uint64, row, place int) (*model.Ticket, error) {
	return m.findSeatFn(ctx, sessionID, row, place)
}
func (m *mockTicketStore) FindByID(ctx context.Context, id uint64) (*model.Ticket, error) {
	return m.findByIDFn(ctx, id)
}
func (m *mockTicketStore) Reserve(ctx context.Context, sessionID uint64, row, place int, userID uint64) (bool, error) {
	return m.reserveFn(ctx, sessionID, row, place, userID)
}
func (m *mockTicketStore) FindByUser(ctx context.Context, userID uint64) ([]model.Ticket, error) {
	return m.findByUserFn(ctx, userID)
}

// mockDetailedTicketStore also offers the joined read.
type mockDetailedTicketStore struct {
	mockTicketStore
	detailsFn func(ctx context.Context, userID uint64) ([]model.ReservationWithDetails, error)
}

func (m *mockDetailedTicketStore) FindWithDetailsByUser(ctx context.Context, userID uint64) ([]model.ReservationWithDetails, error) {
	return m.detailsFn(ctx, userID)
}

// --- Mock lookups keyed by id ---

type mapSessions struct {
	byID map[uint64]model.FilmSession
	all  []model.FilmSession
	err  error
}

func (m *mapSessions) FindByID(ctx context.Context, id uint64) (*model.FilmSession, error) {
	if m.err != nil {
		return nil, m.err
	}
	s, ok := m.byID[id]
	if !ok {
		return nil, repository.ErrSessionNotFound
	}
	return &s, nil
}

func (m *mapSessions) FindAll(ctx context.Context) ([]model.FilmSession, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := make([]model.FilmSession, len(m.all))
	copy(out, m.all)
	return out, nil
}

type mapFilms struct {
	byID map[uint64]model.Film
	err  error
}

func (m *mapFilms) FindByID(ctx context.Context, id uint64) (*model.Film, error) {
	if m.err != nil {
		return nil, m.err
	}
	f, ok := m.byID[id]
	if !ok {
		return nil, repository.ErrFilmNotFound
	}
	return &f, nil
}

func (m *mapFilms) FindAll(ctx context.Context) ([]model.Film, error) {
	out := make([]model.Film, 0, len(m.byID))
	for id := uint64(1); len(out) < len(m.byID); id++ {
		if f, ok := m.byID[id]; ok {
			out = append(out, f)
		}
	}
	return out, nil
}

type mapGenres struct {
	byID map[uint64]model.Genre
	err  error
}

func (m *mapGenres) FindByID(ctx context.Context, id uint64) (*model.Genre, error) {
	if m.err != nil {
		return nil, m.err
	}
	g, ok := m.byID[id]
	if !ok {
		return nil, repository.ErrGenreNotFound
	}
	return &g, nil
}
