package repository // repository holds data access logic for domain entities

import (
	"context"      // context is used to manage deadlines and cancellation
	"database/sql" // sql provides DB primitives
	"errors"
	"fmt"

	"github.com/iliyamo/cinema-tickets/internal/model"
)

// HallRepo provides methods to create and retrieve halls.
type HallRepo struct {
	db *sql.DB // db is the underlying database connection
}

// NewHallRepo constructs a HallRepo with the given DB handle.
func NewHallRepo(db *sql.DB) *HallRepo {
	return &HallRepo{db: db}
}

// Create inserts a new hall and sets its ID.  Hall names are unique, a taken
// one yields ErrHallExists.
func (r *HallRepo) Create(ctx context.Context, h *model.Hall) error {
	const qInsert = `INSERT INTO halls (name, row_count, place_count, description) VALUES (?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, qInsert, h.Name, h.RowCount, h.PlaceCount, h.Description)
	if err != nil {
		if isDuplicateKey(err) {
			return ErrHallExists
		}
		return fmt.Errorf("create hall: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("create hall: %w", err)
	}
	h.ID = uint64(id)
	return nil
}

// GetByID retrieves a hall by its ID.  It returns ErrHallNotFound when no
// row is found.
func (r *HallRepo) GetByID(ctx context.Context, id uint64) (*model.Hall, error) {
	const q = `SELECT id, name, row_count, place_count, description FROM halls WHERE id = ?`
	var h model.Hall
	err := r.db.QueryRowContext(ctx, q, id).Scan(&h.ID, &h.Name, &h.RowCount, &h.PlaceCount, &h.Description)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrHallNotFound
		}
		return nil, fmt.Errorf("find hall: %w", err)
	}
	return &h, nil
}

// FindByName returns ErrHallNotFound when no hall has that name.
func (r *HallRepo) FindByName(ctx context.Context, name string) (*model.Hall, error) {
	const q = `SELECT id, name, row_count, place_count, description FROM halls WHERE name = ?`
	var h model.Hall
	err := r.db.QueryRowContext(ctx, q, name).Scan(&h.ID, &h.Name, &h.RowCount, &h.PlaceCount, &h.Description)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrHallNotFound
		}
		return nil, fmt.Errorf("find hall: %w", err)
	}
	return &h, nil
}

// List returns all halls ordered by id.
func (r *HallRepo) List(ctx context.Context) ([]model.Hall, error) {
	const q = `SELECT id, name, row_count, place_count, description FROM halls ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list halls: %w", err)
	}
	defer rows.Close()

	out := make([]model.Hall, 0)
	for rows.Next() {
		var h model.Hall
		if err := rows.Scan(&h.ID, &h.Name, &h.RowCount, &h.PlaceCount, &h.Description); err != nil {
			return nil, fmt.Errorf("scan hall: %w", err)
		}
		out = append(out, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list halls: %w", err)
	}
	return out, nil
}
