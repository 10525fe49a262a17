package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/iliyamo/cinema-tickets/internal/model"
	"github.com/iliyamo/cinema-tickets/internal/repository"
)

type SessionStore interface {
	FindByID(ctx context.Context, id uint64) (*model.FilmSession, error)
	FindAll(ctx context.Context) ([]model.FilmSession, error)
}

// FilmSessionService serves sessions with their film attached.
type FilmSessionService struct {
	sessions SessionStore
	films    FilmLookup
}

func NewFilmSessionService(sessions SessionStore, films FilmLookup) *FilmSessionService {
	return &FilmSessionService{sessions: sessions, films: films}
}

// FindByID returns the session with Film set when the film exists.  A
// missing session is repository.ErrSessionNotFound.
func (s *FilmSessionService) FindByID(ctx context.Context, id uint64) (*model.FilmSession, error) {
	session, err := s.sessions.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.attachFilm(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// FindAll returns every session, each enriched like FindByID.
func (s *FilmSessionService) FindAll(ctx context.Context) ([]model.FilmSession, error) {
	sessions, err := s.sessions.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range sessions {
		if err := s.attachFilm(ctx, &sessions[i]); err != nil {
			return nil, err
		}
	}
	return sessions, nil
}

func (s *FilmSessionService) attachFilm(ctx context.Context, session *model.FilmSession) error {
	film, err := s.films.FindByID(ctx, session.FilmID)
	switch {
	case err == nil:
		session.Film = film
	case errors.Is(err, repository.ErrFilmNotFound):
		session.Film = nil
	default:
		return fmt.Errorf("film %d: %w", session.FilmID, err)
	}
	return nil
}
