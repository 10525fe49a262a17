package handler

import (
	"context"
	"errors"
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/cinema-tickets/internal/model"
	"github.com/iliyamo/cinema-tickets/internal/repository"
)

// maxUploadBytes caps poster uploads.
const maxUploadBytes = 5 << 20

// FileStorage is satisfied by service.FileService.
type FileStorage interface {
	Save(ctx context.Context, name string, content []byte) (*model.File, error)
	GetFileByID(ctx context.Context, id uint64) (*model.FileContent, error)
}

// FileHandler serves and accepts film posters.
type FileHandler struct {
	Files FileStorage
}

func NewFileHandler(files FileStorage) *FileHandler { return &FileHandler{Files: files} }

// Get handles GET /v1/files/:id and streams the stored bytes.
func (h *FileHandler) Get(c echo.Context) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid file id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	f, err := h.Files.GetFileByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrFileNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "file not found"})
		}
		zap.L().Error("read file failed", zap.Uint64("file_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "read file failed"})
	}
	ct := mime.TypeByExtension(filepath.Ext(f.Name))
	if ct == "" {
		ct = http.DetectContentType(f.Content)
	}
	return c.Blob(http.StatusOK, ct, f.Content)
}

// Upload handles POST /v1/files with a multipart "file" field.
func (h *FileHandler) Upload(c echo.Context) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "file is required"})
	}
	if fh.Size > maxUploadBytes {
		return c.JSON(http.StatusRequestEntityTooLarge, echo.Map{"error": "file too large"})
	}
	src, err := fh.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "cannot read upload"})
	}
	defer src.Close()
	content, err := io.ReadAll(io.LimitReader(src, maxUploadBytes+1))
	if err != nil || len(content) > maxUploadBytes {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "cannot read upload"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	f, err := h.Files.Save(ctx, fh.Filename, content)
	if err != nil {
		zap.L().Error("save file failed", zap.String("name", fh.Filename), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "save file failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"id": f.ID, "name": f.Name})
}
