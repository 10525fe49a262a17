package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/iliyamo/cinema-tickets/internal/model"
)

// FilmSessionRepo reads film_sessions.  It never attaches films; that is
// the session service's job.
type FilmSessionRepo struct {
	db *sql.DB
}

func NewFilmSessionRepo(db *sql.DB) *FilmSessionRepo { return &FilmSessionRepo{db: db} }

const sessionColumns = "id, film_id, hall_id, start_time, end_time, price"

// FindByID returns ErrSessionNotFound when no row matches.
func (r *FilmSessionRepo) FindByID(ctx context.Context, id uint64) (*model.FilmSession, error) {
	var s model.FilmSession
	err := r.db.QueryRowContext(ctx, "SELECT "+sessionColumns+" FROM film_sessions WHERE id = ?", id).
		Scan(&s.ID, &s.FilmID, &s.HallID, &s.StartTime, &s.EndTime, &s.Price)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("find session: %w", err)
	}
	return &s, nil
}

// FindAll lists sessions by start time.
func (r *FilmSessionRepo) FindAll(ctx context.Context) ([]model.FilmSession, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT "+sessionColumns+" FROM film_sessions ORDER BY start_time, id")
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	out := make([]model.FilmSession, 0)
	for rows.Next() {
		var s model.FilmSession
		if err := rows.Scan(&s.ID, &s.FilmID, &s.HallID, &s.StartTime, &s.EndTime, &s.Price); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	return out, nil
}

// Create inserts a session and sets its ID.
func (r *FilmSessionRepo) Create(ctx context.Context, s *model.FilmSession) error {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO film_sessions (film_id, hall_id, start_time, end_time, price) VALUES (?, ?, ?, ?, ?)",
		s.FilmID, s.HallID, s.StartTime, s.EndTime, s.Price)
	if err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	s.ID = uint64(id)
	return nil
}
