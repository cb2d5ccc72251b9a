package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/minikanban/backend/board"
	"github.com/minikanban/backend/errs"
	"github.com/minikanban/backend/store"
)

type columnHandler struct {
	responder Responder
	logger    zerolog.Logger
	store     *store.Store
}

func newColumnHandler(store *store.Store) columnHandler {
	logger := log.With().Str("handlerName", "columnHandler").Logger()

	return columnHandler{
		responder: NewResponder(logger),
		logger:    logger,
		store:     store,
	}
}

type columnRequest struct {
	Title    *string `json:"title"`
	Color    *string `json:"color"`
	Hidden   *bool   `json:"hidden"`
	Position *int    `json:"position"`
}

type deleteColumnRequest struct {
	MoveTo string `json:"move_to"`
}

// columnSummary is the card-less column shape returned by the listing.
type columnSummary struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Color string `json:"color"`
}

type columnCollection struct {
	Columns []columnSummary `json:"columns"`
}

// getColumns lists columns without their cards
// @Summary Get columns
// @Produce json
// @Success 200 {object} columnCollection "Column summaries"
// @Router /api/columns [get]
func (h columnHandler) getColumns() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b, err := h.store.Load()
		if err != nil {
			h.responder.WriteError(w, errs.NewStorageReadError(err))
			return
		}

		summaries := make([]columnSummary, 0, len(b.Columns))
		for _, col := range b.Columns {
			summaries = append(summaries, columnSummary{ID: col.ID, Title: col.Title, Color: col.Color})
		}

		h.responder.WriteJSON(w, columnCollection{Columns: summaries})
	}
}

// createColumn adds a column with a slug-derived id
// @Summary Create column
// @Accept json
// @Produce json
// @Param column body columnRequest true "Column data"
// @Success 201 {object} models.Column "Created column"
// @Failure 400 {object} ErrorResponse "Bad Request - title required"
// @Router /api/column [post]
func (h columnHandler) createColumn() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req columnRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode column request body")
			h.responder.WriteError(w, errs.BadRequest("malformed request body"))
			return
		}

		b, err := h.store.Load()
		if err != nil {
			h.responder.WriteError(w, errs.NewStorageReadError(err))
			return
		}

		col, err := board.CreateColumn(&b, board.ColumnInput{
			Title:    req.Title,
			Color:    req.Color,
			Position: req.Position,
		})
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.store.Save(b); err != nil {
			h.responder.WriteError(w, wrapStorageError("create column", err))
			return
		}

		h.responder.WriteCreated(w, col)
	}
}

// updateColumn updates a column's fields and/or reorders it
// @Summary Update column
// @Accept json
// @Produce json
// @Param columnID path string true "Column ID"
// @Param column body columnRequest true "Updated column data"
// @Success 200 {object} models.Column "Updated column"
// @Failure 404 {object} ErrorResponse "Not Found - column not found"
// @Router /api/column/{columnID} [put]
func (h columnHandler) updateColumn() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		columnID := chi.URLParam(r, "columnID")

		var req columnRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode column request body")
			h.responder.WriteError(w, errs.BadRequest("malformed request body"))
			return
		}

		b, err := h.store.Load()
		if err != nil {
			h.responder.WriteError(w, errs.NewStorageReadError(err))
			return
		}

		col, err := board.UpdateColumn(&b, columnID, board.ColumnInput{
			Title:    req.Title,
			Color:    req.Color,
			Hidden:   req.Hidden,
			Position: req.Position,
		})
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.store.Save(b); err != nil {
			h.responder.WriteError(w, wrapStorageError("update column", err))
			return
		}

		h.responder.WriteJSON(w, col)
	}
}

// deleteColumn removes a column, optionally relocating its cards
// @Summary Delete column
// @Accept json
// @Produce json
// @Param columnID path string true "Column ID"
// @Param body body deleteColumnRequest false "Optional move_to target"
// @Success 200 {object} DeletedResponse "Delete acknowledgement"
// @Failure 404 {object} ErrorResponse "Not Found - column not found"
// @Router /api/column/{columnID} [delete]
func (h columnHandler) deleteColumn() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		columnID := chi.URLParam(r, "columnID")

		// DELETE bodies are optional; decode failures just mean no move_to.
		var req deleteColumnRequest
		_ = json.NewDecoder(r.Body).Decode(&req)

		b, err := h.store.Load()
		if err != nil {
			h.responder.WriteError(w, errs.NewStorageReadError(err))
			return
		}

		if err := board.DeleteColumn(&b, columnID, req.MoveTo); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.store.Save(b); err != nil {
			h.responder.WriteError(w, wrapStorageError("delete column", err))
			return
		}

		h.responder.WriteJSON(w, DeletedResponse{Deleted: true})
	}
}
