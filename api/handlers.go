package api

import (
	"github.com/minikanban/backend/store"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(store *store.Store) *routeHandlers {
	return &routeHandlers{
		boardHandler:   newBoardHandler(store),
		cardHandler:    newCardHandler(store),
		columnHandler:  newColumnHandler(store),
		projectHandler: newProjectHandler(store),
	}
}
