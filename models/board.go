package models

// Default colors applied when a payload or persisted document carries none.
const (
	DefaultCardColor   = "#5b2e8a"
	DefaultColumnColor = "#9aa0a6"
)

// Board is the entire persisted kanban state. Columns and Projects are
// always present in serialized form, never null.
type Board struct {
	Columns  []Column  `json:"columns"`
	Projects []Project `json:"projects"`
}

// Column is an ordered lane of cards. The id is derived from the title by
// slugification and is unique within the board.
type Column struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Color  string `json:"color"`
	Hidden bool   `json:"hidden"`
	Cards  []Card `json:"cards"`
}

// Card is a single work item. A card lives in exactly one column at a time.
// Color follows the referenced project's color when a project is set.
type Card struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Links       []Link `json:"links"`
	Project     string `json:"project,omitempty"`
	Color       string `json:"color"`
}

// Link is an external reference attached to a card. URL is required; Text
// falls back to the URL when empty.
type Link struct {
	Text string `json:"text"`
	URL  string `json:"url"`
}

// Project is a named tag with an associated color, referenced by cards
// through their Project field. Names are unique within the board.
type Project struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// DefaultBoard returns the board seeded on first run.
func DefaultBoard() Board {
	return Board{
		Columns: []Column{
			{ID: "todo", Title: "To Do", Color: "#1f77b4", Cards: []Card{}},
			{ID: "inprogress", Title: "In Progress", Color: "#ff8c00", Cards: []Card{}},
			{ID: "blocked", Title: "Blocked", Color: "#d62728", Cards: []Card{}},
			{ID: "done", Title: "Done", Color: "#2ca02c", Cards: []Card{}},
		},
		Projects: []Project{},
	}
}
