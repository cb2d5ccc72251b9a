package api

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	boardHandler   boardHandler
	cardHandler    cardHandler
	columnHandler  columnHandler
	projectHandler projectHandler
}

// ErrorResponse represents an error response from the API
// @Description Error response structure
type ErrorResponse struct {
	Error string `json:"error" example:"column not found"`
}

// DeletedResponse acknowledges a successful delete.
type DeletedResponse struct {
	Deleted bool `json:"deleted" example:"true"`
}
