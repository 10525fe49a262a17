package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/iliyamo/cinema-tickets/internal/model"
)

// FileRepo stores poster metadata; the bytes live on disk.
type FileRepo struct {
	db *sql.DB
}

func NewFileRepo(db *sql.DB) *FileRepo { return &FileRepo{db: db} }

// Save inserts the file row and sets its ID.
func (r *FileRepo) Save(ctx context.Context, f *model.File) error {
	res, err := r.db.ExecContext(ctx, "INSERT INTO files (name, path) VALUES (?, ?)", f.Name, f.Path)
	if err != nil {
		return fmt.Errorf("save file: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("save file: %w", err)
	}
	f.ID = uint64(id)
	return nil
}

// FindByID returns ErrFileNotFound when no row matches.
func (r *FileRepo) FindByID(ctx context.Context, id uint64) (*model.File, error) {
	var f model.File
	err := r.db.QueryRowContext(ctx, "SELECT id, name, path FROM files WHERE id = ?", id).Scan(&f.ID, &f.Name, &f.Path)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrFileNotFound
		}
		return nil, fmt.Errorf("find file: %w", err)
	}
	return &f, nil
}
