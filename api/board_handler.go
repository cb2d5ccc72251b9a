package api

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/minikanban/backend/board"
	"github.com/minikanban/backend/errs"
	"github.com/minikanban/backend/store"
)

// Uploads larger than this are rejected while parsing the multipart form.
const maxImportSize = 10 << 20

type boardHandler struct {
	responder Responder
	logger    zerolog.Logger
	store     *store.Store
}

func newBoardHandler(store *store.Store) boardHandler {
	logger := log.With().Str("handlerName", "boardHandler").Logger()

	return boardHandler{
		responder: NewResponder(logger),
		logger:    logger,
		store:     store,
	}
}

// ImportResult acknowledges a successful import.
type ImportResult struct {
	Status string `json:"status" example:"ok"`
	Mode   string `json:"mode" example:"merge"`
}

// getBoard returns the full board document
// @Summary Get board
// @Produce json
// @Success 200 {object} models.Board "Full board"
// @Router /api/board [get]
func (h boardHandler) getBoard() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b, err := h.store.Load()
		if err != nil {
			h.responder.WriteError(w, errs.NewStorageReadError(err))
			return
		}
		h.responder.WriteJSON(w, b)
	}
}

// exportBoard serves the board document as a downloadable file
// @Summary Export board
// @Produce json
// @Success 200 {object} models.Board "Board document attachment"
// @Router /api/board/export [get]
func (h boardHandler) exportBoard() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b, err := h.store.Load()
		if err != nil {
			h.responder.WriteError(w, errs.NewStorageReadError(err))
			return
		}

		data, err := json.MarshalIndent(b, "", "  ")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="kanban-export.json"`)
		if _, err := w.Write(data); err != nil {
			h.logger.Error().Err(err).Msg("error writing export response")
		}
	}
}

// importBoard merges or replaces the board from an uploaded JSON document.
// Malformed-but-parseable payloads are repaired by normalization; only
// unparseable JSON is rejected.
// @Summary Import board
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Board JSON document"
// @Param mode formData string false "merge or replace" default(merge)
// @Success 200 {object} ImportResult "Import acknowledgement"
// @Failure 400 {object} ErrorResponse "Bad Request - missing file or invalid JSON"
// @Router /api/board/import [post]
func (h boardHandler) importBoard() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(maxImportSize); err != nil {
			h.responder.WriteError(w, errs.BadRequest("multipart form required"))
			return
		}

		file, _, err := r.FormFile("file")
		if err != nil {
			h.responder.WriteError(w, errs.BadRequest("file required"))
			return
		}
		defer file.Close()

		mode := r.FormValue("mode")
		if mode == "" {
			mode = "merge"
		}
		if mode != "merge" && mode != "replace" {
			h.responder.WriteError(w, errs.BadRequest("mode must be merge or replace"))
			return
		}

		payload, err := io.ReadAll(file)
		if err != nil {
			h.responder.WriteError(w, errs.BadRequest("failed to read uploaded file"))
			return
		}

		var raw any
		if err := json.Unmarshal(payload, &raw); err != nil {
			h.responder.WriteError(w, errs.NewInvalidJSONError(err))
			return
		}

		result := board.Normalize(raw)
		if mode == "merge" {
			existing, err := h.store.Load()
			if err != nil {
				h.responder.WriteError(w, errs.NewStorageReadError(err))
				return
			}
			result = board.Merge(existing, board.Coerce(raw))
		}

		if err := h.store.Save(result); err != nil {
			h.responder.WriteError(w, wrapStorageError("import board", err))
			return
		}

		h.responder.WriteJSON(w, ImportResult{Status: "ok", Mode: mode})
	}
}
