package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/minikanban/backend/board"
	"github.com/minikanban/backend/errs"
	"github.com/minikanban/backend/models"
	"github.com/minikanban/backend/store"
)

type projectHandler struct {
	responder Responder
	logger    zerolog.Logger
	store     *store.Store
}

func newProjectHandler(store *store.Store) projectHandler {
	logger := log.With().Str("handlerName", "projectHandler").Logger()

	return projectHandler{
		responder: NewResponder(logger),
		logger:    logger,
		store:     store,
	}
}

type projectRequest struct {
	Name     *string `json:"name"`
	Color    *string `json:"color"`
	Position *int    `json:"position"`
}

type projectCollection struct {
	Projects []models.Project `json:"projects"`
}

// getProjects lists all projects in board order
// @Summary Get projects
// @Produce json
// @Success 200 {object} projectCollection "Projects in board order"
// @Router /api/projects [get]
func (h projectHandler) getProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b, err := h.store.Load()
		if err != nil {
			h.responder.WriteError(w, errs.NewStorageReadError(err))
			return
		}

		h.responder.WriteJSON(w, projectCollection{Projects: b.Projects})
	}
}

// createProject adds a project, auto-assigning a color when none is given
// @Summary Create project
// @Accept json
// @Produce json
// @Param project body projectRequest true "Project data"
// @Success 201 {object} models.Project "Created project"
// @Failure 400 {object} ErrorResponse "Bad Request - name required or not unique"
// @Router /api/project [post]
func (h projectHandler) createProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req projectRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode project request body")
			h.responder.WriteError(w, errs.BadRequest("malformed request body"))
			return
		}

		b, err := h.store.Load()
		if err != nil {
			h.responder.WriteError(w, errs.NewStorageReadError(err))
			return
		}

		proj, err := board.CreateProject(&b, board.ProjectInput{
			Name:     req.Name,
			Color:    req.Color,
			Position: req.Position,
		})
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.store.Save(b); err != nil {
			h.responder.WriteError(w, wrapStorageError("create project", err))
			return
		}

		h.responder.WriteCreated(w, proj)
	}
}

// updateProject renames, recolors and/or reorders the project at an index
// @Summary Update project
// @Accept json
// @Produce json
// @Param projectIndex path int true "Project position in board order"
// @Param project body projectRequest true "Updated project data"
// @Success 200 {object} models.Project "Updated project"
// @Failure 400 {object} ErrorResponse "Bad Request - invalid index or name"
// @Failure 404 {object} ErrorResponse "Not Found - project not found"
// @Router /api/project/{projectIndex} [put]
func (h projectHandler) updateProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		index, err := strconv.Atoi(chi.URLParam(r, "projectIndex"))
		if err != nil {
			h.responder.WriteError(w, errs.BadRequest("invalid project index"))
			return
		}

		var req projectRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode project request body")
			h.responder.WriteError(w, errs.BadRequest("malformed request body"))
			return
		}

		b, err := h.store.Load()
		if err != nil {
			h.responder.WriteError(w, errs.NewStorageReadError(err))
			return
		}

		proj, err := board.UpdateProject(&b, index, board.ProjectInput{
			Name:     req.Name,
			Color:    req.Color,
			Position: req.Position,
		})
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.store.Save(b); err != nil {
			h.responder.WriteError(w, wrapStorageError("update project", err))
			return
		}

		h.responder.WriteJSON(w, proj)
	}
}

// deleteProject removes the project at an index, stripping card references
// @Summary Delete project
// @Produce json
// @Param projectIndex path int true "Project position in board order"
// @Success 200 {object} DeletedResponse "Delete acknowledgement"
// @Failure 404 {object} ErrorResponse "Not Found - project not found"
// @Router /api/project/{projectIndex} [delete]
func (h projectHandler) deleteProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		index, err := strconv.Atoi(chi.URLParam(r, "projectIndex"))
		if err != nil {
			h.responder.WriteError(w, errs.BadRequest("invalid project index"))
			return
		}

		b, err := h.store.Load()
		if err != nil {
			h.responder.WriteError(w, errs.NewStorageReadError(err))
			return
		}

		if err := board.DeleteProject(&b, index); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.store.Save(b); err != nil {
			h.responder.WriteError(w, wrapStorageError("delete project", err))
			return
		}

		h.responder.WriteJSON(w, DeletedResponse{Deleted: true})
	}
}
