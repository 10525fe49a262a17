package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/iliyamo/cinema-tickets/internal/model"
)

type FileStore interface {
	Save(ctx context.Context, f *model.File) error
	FindByID(ctx context.Context, id uint64) (*model.File, error)
}

// FileService keeps poster bytes under dir and their metadata in the store.
type FileService struct {
	files FileStore
	dir   string
}

func NewFileService(files FileStore, dir string) *FileService {
	return &FileService{files: files, dir: dir}
}

// Save writes content to <dir>/<uuid>_<name>, creating dir if needed, and
// records the file.
func (s *FileService) Save(ctx context.Context, name string, content []byte) (*model.File, error) {
	name = filepath.Base(name)
	stored := uuid.NewString() + "_" + name
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return nil, fmt.Errorf("create %s: %w", s.dir, err)
	}
	path := filepath.Join(s.dir, stored)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return nil, fmt.Errorf("write %s: %w", path, err)
	}
	f := &model.File{Name: stored, Path: path}
	if err := s.files.Save(ctx, f); err != nil {
		_ = os.Remove(path)
		return nil, err
	}
	return f, nil
}

// GetFileByID reads a stored file back.  An unknown id is
// repository.ErrFileNotFound.
func (s *FileService) GetFileByID(ctx context.Context, id uint64) (*model.FileContent, error) {
	f, err := s.files.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	content, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", f.Path, err)
	}
	return &model.FileContent{Name: f.Name, Content: content}, nil
}
