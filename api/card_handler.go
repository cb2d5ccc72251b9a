package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/minikanban/backend/board"
	"github.com/minikanban/backend/errs"
	"github.com/minikanban/backend/models"
	"github.com/minikanban/backend/store"
)

type cardHandler struct {
	responder Responder
	logger    zerolog.Logger
	store     *store.Store
}

func newCardHandler(store *store.Store) cardHandler {
	logger := log.With().Str("handlerName", "cardHandler").Logger()

	return cardHandler{
		responder: NewResponder(logger),
		logger:    logger,
		store:     store,
	}
}

// createCardRequest is the POST /api/card payload. Column defaults to
// "todo" when absent.
type createCardRequest struct {
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Column      string        `json:"column"`
	Color       string        `json:"color"`
	Project     string        `json:"project"`
	Links       []models.Link `json:"links"`
}

// updateCardRequest is the PUT /api/card/{cardID} payload. Pointer fields
// distinguish "absent" from "set to empty", which drives the project-clear
// and color-reset semantics.
type updateCardRequest struct {
	Title       *string        `json:"title"`
	Description *string        `json:"description"`
	Column      *string        `json:"column"`
	Position    *int           `json:"position"`
	Color       *string        `json:"color"`
	Project     *string        `json:"project"`
	Links       *[]models.Link `json:"links"`
}

// createCard creates a card in a column
// @Summary Create card
// @Accept json
// @Produce json
// @Param card body createCardRequest true "Card data"
// @Success 201 {object} models.Card "Created card"
// @Failure 400 {object} ErrorResponse "Bad Request - title required"
// @Failure 404 {object} ErrorResponse "Not Found - column not found"
// @Router /api/card [post]
func (h cardHandler) createCard() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createCardRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode card request body")
			h.responder.WriteError(w, errs.BadRequest("malformed request body"))
			return
		}

		columnID := req.Column
		if columnID == "" {
			columnID = "todo"
		}

		b, err := h.store.Load()
		if err != nil {
			h.responder.WriteError(w, errs.NewStorageReadError(err))
			return
		}

		card, err := board.CreateCard(&b, columnID, board.CardInput{
			Title:       &req.Title,
			Description: &req.Description,
			Color:       &req.Color,
			Project:     &req.Project,
			Links:       &req.Links,
		})
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.store.Save(b); err != nil {
			h.responder.WriteError(w, wrapStorageError("create card", err))
			return
		}

		h.responder.WriteCreated(w, card)
	}
}

// updateCard updates a card's fields and/or moves it between columns
// @Summary Update card
// @Accept json
// @Produce json
// @Param cardID path string true "Card ID"
// @Param card body updateCardRequest true "Updated card data"
// @Success 200 {object} models.Card "Updated card"
// @Failure 404 {object} ErrorResponse "Not Found - card or target column not found"
// @Router /api/card/{cardID} [put]
func (h cardHandler) updateCard() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cardID := chi.URLParam(r, "cardID")

		var req updateCardRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode card request body")
			h.responder.WriteError(w, errs.BadRequest("malformed request body"))
			return
		}

		b, err := h.store.Load()
		if err != nil {
			h.responder.WriteError(w, errs.NewStorageReadError(err))
			return
		}

		card, err := board.UpdateCard(&b, cardID, board.CardInput{
			Title:       req.Title,
			Description: req.Description,
			Color:       req.Color,
			Project:     req.Project,
			Links:       req.Links,
			Column:      req.Column,
			Position:    req.Position,
		})
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.store.Save(b); err != nil {
			h.responder.WriteError(w, wrapStorageError("update card", err))
			return
		}

		h.responder.WriteJSON(w, card)
	}
}

// deleteCard removes a card
// @Summary Delete card
// @Produce json
// @Param cardID path string true "Card ID"
// @Success 200 {object} DeletedResponse "Delete acknowledgement"
// @Failure 404 {object} ErrorResponse "Not Found - card not found"
// @Router /api/card/{cardID} [delete]
func (h cardHandler) deleteCard() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cardID := chi.URLParam(r, "cardID")

		b, err := h.store.Load()
		if err != nil {
			h.responder.WriteError(w, errs.NewStorageReadError(err))
			return
		}

		if err := board.DeleteCard(&b, cardID); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.store.Save(b); err != nil {
			h.responder.WriteError(w, wrapStorageError("delete card", err))
			return
		}

		h.responder.WriteJSON(w, DeletedResponse{Deleted: true})
	}
}
