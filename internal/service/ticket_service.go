// Package service holds the application logic between HTTP handlers and
// the repositories.  Services depend on small interfaces so tests can
// substitute fakes; lookup misses surface as the repository's sentinel
// errors.
package service

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/iliyamo/cinema-tickets/internal/model"
	"github.com/iliyamo/cinema-tickets/internal/repository"
)

// TicketStore is the seat ledger.
type TicketStore interface {
	FindSeat(ctx context.Context, sessionID uint64, row, place int) (*model.Ticket, error)
	FindByID(ctx context.Context, id uint64) (*model.Ticket, error)
	Reserve(ctx context.Context, sessionID uint64, row, place int, userID uint64) (bool, error)
	FindByUser(ctx context.Context, userID uint64) ([]model.Ticket, error)
}

// DetailsReader is implemented by ledgers that can assemble a user's
// history in one round trip.
type DetailsReader interface {
	FindWithDetailsByUser(ctx context.Context, userID uint64) ([]model.ReservationWithDetails, error)
}

// SessionLookup finds a session without enrichment.
type SessionLookup interface {
	FindByID(ctx context.Context, id uint64) (*model.FilmSession, error)
}

// FilmLookup finds a film; FilmService satisfies it with the genre attached.
type FilmLookup interface {
	FindByID(ctx context.Context, id uint64) (*model.Film, error)
}

type TicketService struct {
	tickets  TicketStore
	sessions SessionLookup
	films    FilmLookup
}

func NewTicketService(tickets TicketStore, sessions SessionLookup, films FilmLookup) *TicketService {
	return &TicketService{tickets: tickets, sessions: sessions, films: films}
}

// ReserveTicket reserves a seat for userID.  It reports false when the seat
// is already taken.  Seat bounds are not checked here.
func (s *TicketService) ReserveTicket(ctx context.Context, sessionID uint64, row, place int, userID uint64) (bool, error) {
	return s.tickets.Reserve(ctx, sessionID, row, place, userID)
}

// FindSeat returns the ticket holding a seat or repository.ErrTicketNotFound.
func (s *TicketService) FindSeat(ctx context.Context, sessionID uint64, row, place int) (*model.Ticket, error) {
	return s.tickets.FindSeat(ctx, sessionID, row, place)
}

// TicketsForUser lists a user's tickets in reservation order.
func (s *TicketService) TicketsForUser(ctx context.Context, userID uint64) ([]model.Ticket, error) {
	return s.tickets.FindByUser(ctx, userID)
}

// TicketForUser returns a ticket only when userID holds it.  A ticket owned
// by someone else is reported as repository.ErrTicketNotFound.
func (s *TicketService) TicketForUser(ctx context.Context, ticketID, userID uint64) (*model.Ticket, error) {
	t, err := s.tickets.FindByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if t.UserID != userID {
		return nil, repository.ErrTicketNotFound
	}
	return t, nil
}

// ReservationsWithDetailsForUser returns the user's tickets with session
// and film, latest session first.  A ticket whose session or film no longer
// resolves is left out.
func (s *TicketService) ReservationsWithDetailsForUser(ctx context.Context, userID uint64) ([]model.ReservationWithDetails, error) {
	if dr, ok := s.tickets.(DetailsReader); ok {
		return dr.FindWithDetailsByUser(ctx, userID)
	}

	tickets, err := s.tickets.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]model.ReservationWithDetails, 0, len(tickets))
	for _, t := range tickets {
		session, err := s.sessions.FindByID(ctx, t.SessionID)
		if errors.Is(err, repository.ErrSessionNotFound) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("session %d: %w", t.SessionID, err)
		}
		film, err := s.films.FindByID(ctx, session.FilmID)
		if errors.Is(err, repository.ErrFilmNotFound) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("film %d: %w", session.FilmID, err)
		}
		sess := *session
		sess.Film = nil
		out = append(out, model.ReservationWithDetails{Ticket: t, Session: sess, Film: *film})
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if !a.StartsAt().Equal(b.StartsAt()) {
			return a.StartsAt().After(b.StartsAt())
		}
		return a.Ticket.ID > b.Ticket.ID
	})
	return out, nil
}
