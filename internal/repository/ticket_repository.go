package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/iliyamo/cinema-tickets/internal/model"
)

// TicketRepo is the seat ledger.  A seat belongs to at most one ticket; the
// guarantee comes from the uq_tickets_seat unique key, never from a read
// before the write, so concurrent callers need no coordination here.
type TicketRepo struct {
	db *sql.DB
}

func NewTicketRepo(db *sql.DB) *TicketRepo { return &TicketRepo{db: db} }

const ticketColumns = "id, session_id, `row_number`, place_number, user_id"

// FindSeat returns the ticket occupying a seat, or ErrTicketNotFound.
func (r *TicketRepo) FindSeat(ctx context.Context, sessionID uint64, row, place int) (*model.Ticket, error) {
	q := "SELECT " + ticketColumns + " FROM tickets WHERE session_id = ? AND `row_number` = ? AND place_number = ?"
	t, err := scanTicket(r.db.QueryRowContext(ctx, q, sessionID, row, place))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTicketNotFound
		}
		return nil, fmt.Errorf("find seat: %w", err)
	}
	return t, nil
}

// FindByID returns a ticket by primary key, or ErrTicketNotFound.
func (r *TicketRepo) FindByID(ctx context.Context, id uint64) (*model.Ticket, error) {
	q := "SELECT " + ticketColumns + " FROM tickets WHERE id = ?"
	t, err := scanTicket(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTicketNotFound
		}
		return nil, fmt.Errorf("find ticket: %w", err)
	}
	return t, nil
}

// Reserve creates a ticket for the seat if, and only if, the seat is free.
// It returns true when this call created the ticket and false when another
// ticket already holds the seat.  Any other failure is returned as an error
// together with false.
func (r *TicketRepo) Reserve(ctx context.Context, sessionID uint64, row, place int, userID uint64) (bool, error) {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO tickets (session_id, `row_number`, place_number, user_id) VALUES (?, ?, ?, ?)",
		sessionID, row, place, userID)
	if err != nil {
		if isDuplicateKey(err) {
			return false, nil
		}
		return false, fmt.Errorf("reserve seat: %w", err)
	}
	return true, nil
}

// FindByUser lists a user's tickets in the order they were reserved.
func (r *TicketRepo) FindByUser(ctx context.Context, userID uint64) ([]model.Ticket, error) {
	q := "SELECT " + ticketColumns + " FROM tickets WHERE user_id = ? ORDER BY id"
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, fmt.Errorf("list tickets: %w", err)
	}
	defer rows.Close()

	out := make([]model.Ticket, 0)
	for rows.Next() {
		t, err := scanTicket(rows)
		if err != nil {
			return nil, fmt.Errorf("scan ticket: %w", err)
		}
		out = append(out, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list tickets: %w", err)
	}
	return out, nil
}

const detailsByUserQuery = "SELECT " +
	"t.id, t.session_id, t.`row_number`, t.place_number, t.user_id, " +
	"fs.id, fs.film_id, fs.hall_id, fs.start_time, fs.end_time, fs.price, " +
	"f.id, f.name, f.description, f.release_year, f.genre_id, f.minimal_age, f.duration_in_minutes, f.file_id, " +
	"g.id, g.name " +
	"FROM tickets t " +
	"JOIN film_sessions fs ON t.session_id = fs.id " +
	"JOIN films f ON fs.film_id = f.id " +
	"LEFT JOIN genres g ON f.genre_id = g.id " +
	"WHERE t.user_id = ? " +
	"ORDER BY fs.start_time DESC, t.id DESC"

// FindWithDetailsByUser loads a user's tickets with session, film and genre
// in a single query, most recent session first.  Tickets whose session or
// film row is missing do not appear.
func (r *TicketRepo) FindWithDetailsByUser(ctx context.Context, userID uint64) ([]model.ReservationWithDetails, error) {
	rows, err := r.db.QueryContext(ctx, detailsByUserQuery, userID)
	if err != nil {
		return nil, fmt.Errorf("list reservations: %w", err)
	}
	defer rows.Close()

	out := make([]model.ReservationWithDetails, 0)
	for rows.Next() {
		var (
			d         model.ReservationWithDetails
			genreID   sql.NullInt64
			genreName sql.NullString
		)
		if err := rows.Scan(
			&d.Ticket.ID, &d.Ticket.SessionID, &d.Ticket.RowNumber, &d.Ticket.PlaceNumber, &d.Ticket.UserID,
			&d.Session.ID, &d.Session.FilmID, &d.Session.HallID, &d.Session.StartTime, &d.Session.EndTime, &d.Session.Price,
			&d.Film.ID, &d.Film.Name, &d.Film.Description, &d.Film.ReleaseYear, &d.Film.GenreID,
			&d.Film.MinimalAge, &d.Film.DurationInMinutes, &d.Film.FileID,
			&genreID, &genreName,
		); err != nil {
			return nil, fmt.Errorf("scan reservation: %w", err)
		}
		if genreID.Valid {
			d.Film.Genre = &model.Genre{ID: uint64(genreID.Int64), Name: genreName.String}
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list reservations: %w", err)
	}
	return out, nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanTicket(s rowScanner) (*model.Ticket, error) {
	var t model.Ticket
	if err := s.Scan(&t.ID, &t.SessionID, &t.RowNumber, &t.PlaceNumber, &t.UserID); err != nil {
		return nil, err
	}
	return &t, nil
}
