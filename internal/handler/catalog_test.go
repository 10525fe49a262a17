package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/cinema-tickets/internal/model"
	"github.com/iliyamo/cinema-tickets/internal/repository"
)

func withID(c echo.Context, id string) echo.Context {
	c.SetParamNames("id")
	c.SetParamValues(id)
	return c
}

func newCatalog() *CatalogHandler {
	return NewCatalogHandler(&fakeFilms{byID: map[uint64]model.Film{3: inception}}, sessionsWithFilm(), fakeHalls{1: hallOne})
}

func TestGetFilm(t *testing.T) {
	h := newCatalog()

	c, rec := newContext(http.MethodGet, "/v1/films/3", "", 0)
	require.NoError(t, h.GetFilm(withID(c, "3")))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"Sci-Fi"`)

	c, rec = newContext(http.MethodGet, "/v1/films/4", "", 0)
	require.NoError(t, h.GetFilm(withID(c, "4")))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	c, rec = newContext(http.MethodGet, "/v1/films/0", "", 0)
	require.NoError(t, h.GetFilm(withID(c, "0")))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListSessions(t *testing.T) {
	h := newCatalog()
	c, rec := newContext(http.MethodGet, "/v1/sessions", "", 0)
	require.NoError(t, h.ListSessions(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Items []model.FilmSession `json:"items"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Len(t, body.Items, 2)

	h.Sessions = &fakeSessions{err: errors.New("timeout")}
	c, rec = newContext(http.MethodGet, "/v1/sessions", "", 0)
	require.NoError(t, h.ListSessions(c))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestBuyPage(t *testing.T) {
	h := newCatalog()

	c, rec := newContext(http.MethodGet, "/v1/sessions/1/buy", "", 0)
	require.NoError(t, h.BuyPage(withID(c, "1")))
	assert.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Session model.FilmSession `json:"session"`
		Film    model.Film        `json:"film"`
		Hall    model.Hall        `json:"hall"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 500, body.Session.Price)
	assert.Equal(t, "Inception", body.Film.Name)
	assert.Equal(t, 10, body.Hall.RowCount)
	assert.Equal(t, 12, body.Hall.PlaceCount)

	c, rec = newContext(http.MethodGet, "/v1/sessions/2/buy", "", 0)
	require.NoError(t, h.BuyPage(withID(c, "2")))
	assert.Equal(t, http.StatusNotFound, rec.Code, "hall 9 does not exist")
}

// --- Mock FileStorage ---

type mockFiles struct {
	saveFn func(ctx context.Context, name string, content []byte) (*model.File, error)
	getFn  func(ctx context.Context, id uint64) (*model.FileContent, error)
}

func (m *mockFiles) Save(ctx context.Context, name string, content []byte) (*model.File, error) {
	return m.saveFn(ctx, name, content)
}
func (m *mockFiles) GetFileByID(ctx context.Context, id uint64) (*model.FileContent, error) {
	return m.getFn(ctx, id)
}

func TestFileGet(t *testing.T) {
	h := NewFileHandler(&mockFiles{
		getFn: func(ctx context.Context, id uint64) (*model.FileContent, error) {
			if id == 1 {
				return &model.FileContent{Name: "abc_poster.png", Content: []byte("\x89PNG....")}, nil
			}
			return nil, repository.ErrFileNotFound
		},
	})

	c, rec := newContext(http.MethodGet, "/v1/files/1", "", 0)
	require.NoError(t, h.Get(withID(c, "1")))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get(echo.HeaderContentType))

	c, rec = newContext(http.MethodGet, "/v1/files/2", "", 0)
	require.NoError(t, h.Get(withID(c, "2")))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestJSONName(t *testing.T) {
	assert.Equal(t, "session_id", jsonName("SessionID"))
	assert.Equal(t, "full_name", jsonName("FullName"))
	assert.Equal(t, "row", jsonName("Row"))
}
