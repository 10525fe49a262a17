package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/iliyamo/cinema-tickets/internal/model"
)

// FilmRepo reads and writes the films table.
type FilmRepo struct {
	db *sql.DB
}

func NewFilmRepo(db *sql.DB) *FilmRepo { return &FilmRepo{db: db} }

const filmColumns = "id, name, description, release_year, genre_id, minimal_age, duration_in_minutes, file_id"

func scanFilm(s rowScanner) (*model.Film, error) {
	var f model.Film
	if err := s.Scan(&f.ID, &f.Name, &f.Description, &f.ReleaseYear, &f.GenreID,
		&f.MinimalAge, &f.DurationInMinutes, &f.FileID); err != nil {
		return nil, err
	}
	return &f, nil
}

// FindByID returns ErrFilmNotFound when no row matches.
func (r *FilmRepo) FindByID(ctx context.Context, id uint64) (*model.Film, error) {
	f, err := scanFilm(r.db.QueryRowContext(ctx, "SELECT "+filmColumns+" FROM films WHERE id = ?", id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrFilmNotFound
		}
		return nil, fmt.Errorf("find film: %w", err)
	}
	return f, nil
}

// FindAll lists films by id.
func (r *FilmRepo) FindAll(ctx context.Context) ([]model.Film, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT "+filmColumns+" FROM films ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("list films: %w", err)
	}
	defer rows.Close()

	out := make([]model.Film, 0)
	for rows.Next() {
		f, err := scanFilm(rows)
		if err != nil {
			return nil, fmt.Errorf("scan film: %w", err)
		}
		out = append(out, *f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list films: %w", err)
	}
	return out, nil
}

// Create inserts a film and sets its ID.
func (r *FilmRepo) Create(ctx context.Context, f *model.Film) error {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO films (name, description, release_year, genre_id, minimal_age, duration_in_minutes, file_id) VALUES (?, ?, ?, ?, ?, ?, ?)",
		f.Name, f.Description, f.ReleaseYear, f.GenreID, f.MinimalAge, f.DurationInMinutes, f.FileID)
	if err != nil {
		return fmt.Errorf("create film: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("create film: %w", err)
	}
	f.ID = uint64(id)
	return nil
}
