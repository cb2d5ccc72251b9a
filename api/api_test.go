package api

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minikanban/backend/models"
	"github.com/minikanban/backend/store"
)

var hexColor = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

func newTestRouter(t *testing.T) *chi.Mux {
	t.Helper()
	st, err := store.New(filepath.Join(t.TempDir(), "kanban.json"))
	require.NoError(t, err)
	return newRouter(st)
}

func doJSON(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeInto(t *testing.T, rec *httptest.ResponseRecorder, target any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), target))
}

func getBoard(t *testing.T, router http.Handler) models.Board {
	t.Helper()
	rec := doJSON(t, router, http.MethodGet, "/api/board", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var b models.Board
	decodeInto(t, rec, &b)
	return b
}

func importRequest(t *testing.T, payload, mode string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile("file", "board.json")
	require.NoError(t, err)
	_, err = fw.Write([]byte(payload))
	require.NoError(t, err)
	if mode != "" {
		require.NoError(t, w.WriteField("mode", mode))
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/board/import", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func TestGetBoardSeedsDefault(t *testing.T) {
	router := newTestRouter(t)

	b := getBoard(t, router)
	require.Len(t, b.Columns, 4)
	assert.Equal(t, "todo", b.Columns[0].ID)
	assert.NotNil(t, b.Projects)
}

func TestCreateCardWithNewProject(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/card", map[string]any{
		"title":   "Fix bug",
		"project": "Backend",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var card models.Card
	decodeInto(t, rec, &card)
	assert.Equal(t, "Backend", card.Project)
	assert.Regexp(t, hexColor, card.Color)
	assert.NotEqual(t, models.DefaultCardColor, card.Color)

	rec = doJSON(t, router, http.MethodGet, "/api/projects", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var projects struct {
		Projects []models.Project `json:"projects"`
	}
	decodeInto(t, rec, &projects)
	require.Len(t, projects.Projects, 1)
	assert.Equal(t, "Backend", projects.Projects[0].Name)
	assert.Equal(t, projects.Projects[0].Color, card.Color, "card color follows the generated project color")
}

func TestCreateCardValidation(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/card", map[string]any{"description": "no title"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	var errResp ErrorResponse
	decodeInto(t, rec, &errResp)
	assert.Equal(t, "title required", errResp.Error)

	rec = doJSON(t, router, http.MethodPost, "/api/card", map[string]any{
		"title":  "x",
		"column": "missing",
	})
	require.Equal(t, http.StatusNotFound, rec.Code)
	decodeInto(t, rec, &errResp)
	assert.Equal(t, "column not found", errResp.Error)
}

func TestUpdateCardClearProjectResetsColor(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/card", map[string]any{
		"title":   "Fix bug",
		"project": "Backend",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var card models.Card
	decodeInto(t, rec, &card)

	rec = doJSON(t, router, http.MethodPut, "/api/card/"+card.ID, map[string]any{"project": ""})
	require.Equal(t, http.StatusOK, rec.Code)
	var updated models.Card
	decodeInto(t, rec, &updated)
	assert.Empty(t, updated.Project)
	assert.Equal(t, "#5b2e8a", updated.Color)
}

func TestUpdateCardMovesBetweenColumns(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/card", map[string]any{"title": "mover"})
	require.Equal(t, http.StatusCreated, rec.Code)
	var card models.Card
	decodeInto(t, rec, &card)

	rec = doJSON(t, router, http.MethodPut, "/api/card/"+card.ID, map[string]any{"column": "done"})
	require.Equal(t, http.StatusOK, rec.Code)

	b := getBoard(t, router)
	for _, col := range b.Columns {
		switch col.ID {
		case "done":
			require.Len(t, col.Cards, 1)
			assert.Equal(t, card.ID, col.Cards[0].ID)
		default:
			assert.Empty(t, col.Cards)
		}
	}
}

func TestDeleteCard(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/card", map[string]any{"title": "doomed"})
	require.Equal(t, http.StatusCreated, rec.Code)
	var card models.Card
	decodeInto(t, rec, &card)

	rec = doJSON(t, router, http.MethodDelete, "/api/card/"+card.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var deleted DeletedResponse
	decodeInto(t, rec, &deleted)
	assert.True(t, deleted.Deleted)

	rec = doJSON(t, router, http.MethodDelete, "/api/card/"+card.ID, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestColumnLifecycle(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/column", map[string]any{"title": "Review"})
	require.Equal(t, http.StatusCreated, rec.Code)
	var col models.Column
	decodeInto(t, rec, &col)
	assert.Equal(t, "review", col.ID)

	rec = doJSON(t, router, http.MethodPost, "/api/card", map[string]any{
		"title":  "in review",
		"column": "review",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	// Deleting with move_to relocates the cards instead of discarding them.
	rec = doJSON(t, router, http.MethodDelete, "/api/column/review", map[string]any{"move_to": "done"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/columns", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var listing struct {
		Columns []columnSummary `json:"columns"`
	}
	decodeInto(t, rec, &listing)
	for _, summary := range listing.Columns {
		assert.NotEqual(t, "review", summary.ID)
	}

	b := getBoard(t, router)
	for _, c := range b.Columns {
		if c.ID == "done" {
			require.Len(t, c.Cards, 1)
			assert.Equal(t, "in review", c.Cards[0].Title)
		}
	}
}

func TestColumnValidation(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/column", map[string]any{})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, router, http.MethodPut, "/api/column/missing", map[string]any{"title": "x"})
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, router, http.MethodDelete, "/api/column/missing", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProjectIndexAddressing(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/project", map[string]any{})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/api/project", map[string]any{"name": "Backend"})
	require.Equal(t, http.StatusCreated, rec.Code)
	var proj models.Project
	decodeInto(t, rec, &proj)
	assert.Regexp(t, hexColor, proj.Color)

	rec = doJSON(t, router, http.MethodPost, "/api/project", map[string]any{"name": "Backend"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	var errResp ErrorResponse
	decodeInto(t, rec, &errResp)
	assert.Equal(t, "project name must be unique", errResp.Error)

	rec = doJSON(t, router, http.MethodPost, "/api/card", map[string]any{
		"title":   "tagged",
		"project": "Backend",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	// Rename via positional index cascades to referencing cards.
	rec = doJSON(t, router, http.MethodPut, "/api/project/0", map[string]any{"name": "Platform"})
	require.Equal(t, http.StatusOK, rec.Code)

	b := getBoard(t, router)
	assert.Equal(t, "Platform", b.Columns[0].Cards[0].Project)

	rec = doJSON(t, router, http.MethodPut, "/api/project/abc", map[string]any{"name": "x"})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, router, http.MethodDelete, "/api/project/5", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, router, http.MethodDelete, "/api/project/0", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	b = getBoard(t, router)
	assert.Empty(t, b.Projects)
	assert.Empty(t, b.Columns[0].Cards[0].Project, "card survives project deletion")
	assert.Equal(t, models.DefaultCardColor, b.Columns[0].Cards[0].Color)
}

func TestImportReplaceDiscardsExisting(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/card", map[string]any{"title": "old"})
	require.Equal(t, http.StatusCreated, rec.Code)

	req := importRequest(t, `{"columns": [], "projects": []}`, "replace")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	require.Equal(t, http.StatusOK, recorder.Code)

	var result ImportResult
	decodeInto(t, recorder, &result)
	assert.Equal(t, ImportResult{Status: "ok", Mode: "replace"}, result)

	b := getBoard(t, router)
	assert.Empty(t, b.Columns)
	assert.Empty(t, b.Projects)
	require.NotNil(t, b.Columns)
	require.NotNil(t, b.Projects)
}

func TestImportMergeCombinesBoards(t *testing.T) {
	router := newTestRouter(t)

	payload := `{
		"columns": [
			{"id": "todo", "title": "Backlog", "cards": [{"id": "m1", "title": "merged"}]},
			{"id": "review", "title": "Review", "cards": []}
		],
		"projects": [{"name": "Imported", "color": "#abcdef"}]
	}`
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, importRequest(t, payload, ""))
	require.Equal(t, http.StatusOK, recorder.Code)

	var result ImportResult
	decodeInto(t, recorder, &result)
	assert.Equal(t, "merge", result.Mode, "merge is the default mode")

	b := getBoard(t, router)
	require.Len(t, b.Columns, 5, "disjoint column appended, overlapping one merged")
	assert.Equal(t, "Backlog", b.Columns[0].Title)
	require.Len(t, b.Columns[0].Cards, 1)
	require.Len(t, b.Projects, 1)
	assert.Equal(t, models.Project{Name: "Imported", Color: "#abcdef"}, b.Projects[0])
}

func TestImportRejectsBadInput(t *testing.T) {
	router := newTestRouter(t)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, importRequest(t, `{not json`, "merge"))
	require.Equal(t, http.StatusBadRequest, recorder.Code)

	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, importRequest(t, `{}`, "sideways"))
	require.Equal(t, http.StatusBadRequest, recorder.Code)

	// Missing file part.
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(t, w.WriteField("mode", "merge"))
	require.NoError(t, w.Close())
	req := httptest.NewRequest(http.MethodPost, "/api/board/import", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	require.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestExportBoardAttachment(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/board/export", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "attachment")

	var b models.Board
	decodeInto(t, rec, &b)
	assert.Len(t, b.Columns, 4)
}
