package board

import (
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/minikanban/backend/models"
)

// Normalize coerces an arbitrary decoded JSON value into a well-formed
// board. It is total: malformed input is repaired or dropped, never
// rejected, and the result always carries non-nil columns and projects.
// Normalizing an already-normalized board is a no-op.
func Normalize(raw any) models.Board {
	if b, ok := raw.(models.Board); ok {
		return normalizeBoard(b)
	}
	return normalizeBoard(Coerce(raw))
}

// Coerce maps an untyped JSON document onto the board record types without
// applying defaults or generating ids. Wrong-typed collections become empty
// and non-object elements are dropped; everything else is left for
// normalization to repair. Merge relies on the absence of defaulting here
// to tell supplied project colors apart from defaulted ones.
func Coerce(raw any) models.Board {
	doc, ok := raw.(map[string]any)
	if !ok {
		doc = map[string]any{}
	}
	return models.Board{
		Columns:  coerceColumns(doc["columns"]),
		Projects: coerceProjects(doc["projects"]),
	}
}

func coerceColumns(v any) []models.Column {
	items, ok := v.([]any)
	if !ok {
		return []models.Column{}
	}
	columns := make([]models.Column, 0, len(items))
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		columns = append(columns, models.Column{
			ID:     stringValue(m["id"]),
			Title:  stringValue(m["title"]),
			Color:  stringValue(m["color"]),
			Hidden: truthy(m["hidden"]),
			Cards:  coerceCards(m["cards"]),
		})
	}
	return columns
}

func coerceCards(v any) []models.Card {
	items, ok := v.([]any)
	if !ok {
		return []models.Card{}
	}
	cards := make([]models.Card, 0, len(items))
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		cards = append(cards, models.Card{
			ID:          stringValue(m["id"]),
			Title:       stringValue(m["title"]),
			Description: stringValue(m["description"]),
			Links:       coerceLinks(m["links"]),
			Project:     stringValue(m["project"]),
			Color:       stringValue(m["color"]),
		})
	}
	return cards
}

func coerceProjects(v any) []models.Project {
	items, ok := v.([]any)
	if !ok {
		return []models.Project{}
	}
	projects := make([]models.Project, 0, len(items))
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		projects = append(projects, models.Project{
			Name:  stringValue(m["name"]),
			Color: stringValue(m["color"]),
		})
	}
	return projects
}

func coerceLinks(v any) []models.Link {
	items, ok := v.([]any)
	if !ok {
		return []models.Link{}
	}
	links := make([]models.Link, 0, len(items))
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		links = append(links, models.Link{
			Text: stringValue(m["text"]),
			URL:  stringValue(m["url"]),
		})
	}
	return links
}

func normalizeBoard(b models.Board) models.Board {
	columns := make([]models.Column, 0, len(b.Columns))
	for _, col := range b.Columns {
		columns = append(columns, normalizeColumn(col))
	}

	projects := make([]models.Project, 0, len(b.Projects))
	seenNames := make(map[string]bool, len(b.Projects))
	for _, proj := range b.Projects {
		name := strings.TrimSpace(proj.Name)
		if name == "" || seenNames[name] {
			continue
		}
		seenNames[name] = true
		color := proj.Color
		if color == "" {
			color = models.DefaultCardColor
		}
		projects = append(projects, models.Project{Name: name, Color: color})
	}

	return models.Board{Columns: columns, Projects: projects}
}

func normalizeColumn(col models.Column) models.Column {
	id := strings.TrimSpace(col.ID)
	if id == "" {
		id = uuid.NewString()
	}
	title := strings.TrimSpace(col.Title)
	if title == "" {
		title = "Untitled"
	}
	color := col.Color
	if color == "" {
		color = models.DefaultColumnColor
	}

	cards := make([]models.Card, 0, len(col.Cards))
	seenIDs := make(map[string]bool, len(col.Cards))
	for _, card := range col.Cards {
		clean := normalizeCard(card)
		// Colliding ids are regenerated rather than dropped so no card is
		// ever lost to a duplicated id.
		if seenIDs[clean.ID] {
			clean.ID = uuid.NewString()
		}
		seenIDs[clean.ID] = true
		cards = append(cards, clean)
	}

	return models.Column{ID: id, Title: title, Color: color, Hidden: col.Hidden, Cards: cards}
}

func normalizeCard(card models.Card) models.Card {
	id := strings.TrimSpace(card.ID)
	if id == "" {
		id = uuid.NewString()
	}
	title := strings.TrimSpace(card.Title)
	if title == "" {
		title = "Untitled"
	}
	color := card.Color
	if color == "" {
		color = models.DefaultCardColor
	}
	return models.Card{
		ID:          id,
		Title:       title,
		Description: card.Description,
		Links:       CleanLinks(card.Links),
		Project:     strings.TrimSpace(card.Project),
		Color:       color,
	}
}

// CleanLinks drops links without a URL and defaults missing texts to the
// URL itself. The result is never nil.
func CleanLinks(links []models.Link) []models.Link {
	cleaned := make([]models.Link, 0, len(links))
	for _, link := range links {
		url := strings.TrimSpace(link.URL)
		if url == "" {
			continue
		}
		text := strings.TrimSpace(link.Text)
		if text == "" {
			text = url
		}
		cleaned = append(cleaned, models.Link{Text: text, URL: url})
	}
	return cleaned
}

// stringValue renders a scalar JSON value as a string. Objects and arrays
// have no sensible string form and collapse to empty, letting normalization
// fill in a default or generated value.
func stringValue(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(s)
	default:
		return ""
	}
}

// truthy mirrors the loose boolean coercion legacy documents were written
// under: empty strings, zeros, nulls and empty collections are false.
func truthy(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		return t != ""
	case float64:
		return t != 0
	case []any:
		return len(t) > 0
	case map[string]any:
		return len(t) > 0
	default:
		return false
	}
}
