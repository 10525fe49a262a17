package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/iliyamo/cinema-tickets/internal/model"
	"github.com/iliyamo/cinema-tickets/internal/repository"
)

type FilmStore interface {
	FindByID(ctx context.Context, id uint64) (*model.Film, error)
	FindAll(ctx context.Context) ([]model.Film, error)
}

type GenreLookup interface {
	FindByID(ctx context.Context, id uint64) (*model.Genre, error)
}

// FilmService serves films with their genre attached.
type FilmService struct {
	films  FilmStore
	genres GenreLookup
}

func NewFilmService(films FilmStore, genres GenreLookup) *FilmService {
	return &FilmService{films: films, genres: genres}
}

// FindByID returns the film with Genre set when the genre exists.
func (s *FilmService) FindByID(ctx context.Context, id uint64) (*model.Film, error) {
	film, err := s.films.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.attachGenre(ctx, film); err != nil {
		return nil, err
	}
	return film, nil
}

func (s *FilmService) FindAll(ctx context.Context) ([]model.Film, error) {
	films, err := s.films.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range films {
		if err := s.attachGenre(ctx, &films[i]); err != nil {
			return nil, err
		}
	}
	return films, nil
}

func (s *FilmService) attachGenre(ctx context.Context, film *model.Film) error {
	genre, err := s.genres.FindByID(ctx, film.GenreID)
	switch {
	case err == nil:
		film.Genre = genre
	case errors.Is(err, repository.ErrGenreNotFound):
		film.Genre = nil
	default:
		return fmt.Errorf("genre %d: %w", film.GenreID, err)
	}
	return nil
}
