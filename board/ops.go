package board

import (
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/minikanban/backend/errs"
	"github.com/minikanban/backend/models"
)

// CardInput carries the mutable fields of a card create or update request.
// Nil pointers mean the field was absent from the payload, which matters
// for update semantics (clearing a project vs. not touching it).
type CardInput struct {
	Title       *string
	Description *string
	Color       *string
	Project     *string
	Links       *[]models.Link
	Column      *string
	Position    *int
}

type ColumnInput struct {
	Title    *string
	Color    *string
	Hidden   *bool
	Position *int
}

type ProjectInput struct {
	Name     *string
	Color    *string
	Position *int
}

// CreateCard appends a new card to the column with the given id. A supplied
// project name wins over an explicit color: the card takes the project's
// color, creating the project with a fresh one when it does not exist yet.
func CreateCard(b *models.Board, columnID string, in CardInput) (models.Card, error) {
	title := deref(in.Title)
	if title == "" {
		return models.Card{}, errs.BadRequest("title required")
	}
	col := findColumn(b, columnID)
	if col == nil {
		return models.Card{}, errs.NewNotFound("column")
	}

	card := models.Card{
		ID:          uuid.NewString(),
		Title:       title,
		Description: deref(in.Description),
		Links:       CleanLinks(derefLinks(in.Links)),
	}

	var proj *models.Project
	if name := strings.TrimSpace(deref(in.Project)); name != "" {
		proj = EnsureProject(b, name)
		card.Project = name
		if proj.Color != "" {
			card.Color = proj.Color
		}
	}
	if color := deref(in.Color); color != "" && proj == nil {
		card.Color = color
	}
	if card.Color == "" {
		card.Color = models.DefaultCardColor
	}

	col.Cards = append(col.Cards, card)
	return card, nil
}

// UpdateCard updates fields and/or relocates a card. The card is removed
// from its source column and reinserted, never duplicated: an explicit
// target column honors the supplied position (clamped, appending when
// omitted or out of range), while a pure field update reinserts at the
// original index so sibling order is preserved.
func UpdateCard(b *models.Board, cardID string, in CardInput) (models.Card, error) {
	card, originalColumnID, originalIndex, found := removeCard(b, cardID)
	if !found {
		return models.Card{}, errs.NewNotFound("card")
	}

	if in.Title != nil {
		card.Title = *in.Title
	}
	if in.Description != nil {
		card.Description = *in.Description
	}
	if in.Color != nil {
		card.Color = *in.Color
	}
	if in.Project != nil {
		if name := strings.TrimSpace(*in.Project); name != "" {
			proj := EnsureProject(b, name)
			card.Project = name
			if proj.Color != "" {
				card.Color = proj.Color
			}
		} else {
			// Clearing the project resets the color unless an explicit
			// color arrived in the same update.
			card.Project = ""
			if in.Color == nil {
				card.Color = models.DefaultCardColor
			}
		}
	}
	if in.Links != nil {
		card.Links = CleanLinks(*in.Links)
	}

	// A referenced project's current color always wins.
	if card.Project != "" {
		if proj := FindProject(b, card.Project); proj != nil && proj.Color != "" {
			card.Color = proj.Color
		}
	} else if card.Color == "" {
		card.Color = models.DefaultCardColor
	}

	explicitTarget := in.Column != nil && *in.Column != ""
	destinationID := originalColumnID
	if explicitTarget {
		destinationID = *in.Column
	}
	dest := findColumn(b, destinationID)
	if dest == nil {
		if explicitTarget {
			return models.Card{}, errs.NewNotFound("target column")
		}
		return models.Card{}, errs.NewNotFound("column")
	}

	if explicitTarget {
		dest.Cards = insertAt(dest.Cards, in.Position, card)
	} else {
		idx := min(originalIndex, len(dest.Cards))
		dest.Cards = slices.Insert(dest.Cards, idx, card)
	}
	return card, nil
}

// DeleteCard removes a card from whichever column holds it.
func DeleteCard(b *models.Board, cardID string) error {
	if _, _, _, found := removeCard(b, cardID); !found {
		return errs.NewNotFound("card")
	}
	return nil
}

// CreateColumn adds a column with a slug-derived id, suffixing a short
// random fragment when the slug collides with an existing column.
func CreateColumn(b *models.Board, in ColumnInput) (models.Column, error) {
	title := deref(in.Title)
	if title == "" {
		return models.Column{}, errs.BadRequest("title required")
	}
	color := deref(in.Color)
	if color == "" {
		color = models.DefaultColumnColor
	}

	id := Slugify(title)
	if findColumn(b, id) != nil {
		id = id + "-" + uuid.NewString()[:8]
	}

	col := models.Column{ID: id, Title: title, Color: color, Cards: []models.Card{}}
	b.Columns = insertAt(b.Columns, in.Position, col)
	return col, nil
}

// UpdateColumn updates a column's fields and/or reorders it within the
// board.
func UpdateColumn(b *models.Board, columnID string, in ColumnInput) (models.Column, error) {
	idx := columnIndex(b.Columns, columnID)
	if idx < 0 {
		return models.Column{}, errs.NewNotFound("column")
	}
	col := &b.Columns[idx]
	if in.Title != nil {
		col.Title = *in.Title
	}
	if in.Color != nil {
		col.Color = *in.Color
	}
	if in.Hidden != nil {
		col.Hidden = *in.Hidden
	}
	if in.Position != nil {
		moved := *col
		b.Columns = slices.Delete(b.Columns, idx, idx+1)
		pos := min(max(0, *in.Position), len(b.Columns))
		b.Columns = slices.Insert(b.Columns, pos, moved)
		return moved, nil
	}
	return *col, nil
}

// DeleteColumn removes a column. When moveTo names an existing column, the
// deleted column's cards are appended to it in order; otherwise they are
// discarded with the column.
func DeleteColumn(b *models.Board, columnID, moveTo string) error {
	idx := columnIndex(b.Columns, columnID)
	if idx < 0 {
		return errs.NewNotFound("column")
	}
	removed := b.Columns[idx]
	b.Columns = slices.Delete(b.Columns, idx, idx+1)
	if moveTo != "" {
		if target := findColumn(b, moveTo); target != nil {
			target.Cards = append(target.Cards, removed.Cards...)
		}
	}
	return nil
}

// EnsureProject returns the project with the given name, creating it with a
// fresh unique-effort color when it does not exist. Empty names yield nil.
func EnsureProject(b *models.Board, name string) *models.Project {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}
	if proj := FindProject(b, name); proj != nil {
		if proj.Color == "" {
			proj.Color = models.DefaultCardColor
		}
		return proj
	}
	b.Projects = append(b.Projects, models.Project{Name: name, Color: GenerateUniqueColor(b)})
	return &b.Projects[len(b.Projects)-1]
}

// FindProject returns a pointer into the board's project list, or nil.
func FindProject(b *models.Board, name string) *models.Project {
	if name == "" {
		return nil
	}
	for i := range b.Projects {
		if b.Projects[i].Name == name {
			return &b.Projects[i]
		}
	}
	return nil
}

// CreateProject adds a named project, auto-assigning a color when none is
// supplied. Duplicate names are rejected.
func CreateProject(b *models.Board, in ProjectInput) (models.Project, error) {
	name := strings.TrimSpace(deref(in.Name))
	if name == "" {
		return models.Project{}, errs.BadRequest("name required")
	}
	if FindProject(b, name) != nil {
		return models.Project{}, errs.BadRequest("project name must be unique")
	}
	color := deref(in.Color)
	if color == "" {
		color = GenerateUniqueColor(b)
	}
	proj := models.Project{Name: name, Color: color}
	b.Projects = insertAt(b.Projects, in.Position, proj)
	return proj, nil
}

// UpdateProject renames, recolors and/or reorders the project at the given
// index. Renames and color changes cascade to every referencing card.
func UpdateProject(b *models.Board, index int, in ProjectInput) (models.Project, error) {
	if index < 0 || index >= len(b.Projects) {
		return models.Project{}, errs.NewNotFound("project")
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return models.Project{}, errs.BadRequest("name required")
		}
		for i, other := range b.Projects {
			if i != index && other.Name == name {
				return models.Project{}, errs.BadRequest("project name must be unique")
			}
		}
		if old := b.Projects[index].Name; old != name {
			b.Projects[index].Name = name
			UpdateProjectReferences(b, old, name, b.Projects[index].Color)
		}
	}
	if in.Color != nil {
		b.Projects[index].Color = *in.Color
		ApplyProjectColor(b, b.Projects[index].Name, *in.Color)
	}

	proj := b.Projects[index]
	if in.Position != nil {
		b.Projects = slices.Delete(b.Projects, index, index+1)
		pos := min(max(0, *in.Position), len(b.Projects))
		b.Projects = slices.Insert(b.Projects, pos, proj)
	}
	return proj, nil
}

// DeleteProject removes the project at the given index. Referencing cards
// keep existing with the reference stripped and their color reset.
func DeleteProject(b *models.Board, index int) error {
	if index < 0 || index >= len(b.Projects) {
		return errs.NewNotFound("project")
	}
	removed := b.Projects[index]
	b.Projects = slices.Delete(b.Projects, index, index+1)
	UpdateProjectReferences(b, removed.Name, "", "")
	return nil
}

// ApplyProjectColor sets the color of every card referencing the project,
// falling back to the default card color when color is empty.
func ApplyProjectColor(b *models.Board, projectName, color string) {
	if projectName == "" {
		return
	}
	if color == "" {
		color = models.DefaultCardColor
	}
	for i := range b.Columns {
		for j := range b.Columns[i].Cards {
			if b.Columns[i].Cards[j].Project == projectName {
				b.Columns[i].Cards[j].Color = color
			}
		}
	}
}

// UpdateProjectReferences rewrites card references after a project rename
// (newName non-empty) or removal (newName empty, which strips the reference
// and resets the card color).
func UpdateProjectReferences(b *models.Board, oldName, newName, color string) {
	for i := range b.Columns {
		for j := range b.Columns[i].Cards {
			card := &b.Columns[i].Cards[j]
			if card.Project != oldName {
				continue
			}
			if newName != "" {
				card.Project = newName
				if color != "" {
					card.Color = color
				}
			} else {
				card.Project = ""
				card.Color = models.DefaultCardColor
			}
		}
	}
}

func findColumn(b *models.Board, id string) *models.Column {
	for i := range b.Columns {
		if b.Columns[i].ID == id {
			return &b.Columns[i]
		}
	}
	return nil
}

func removeCard(b *models.Board, cardID string) (card models.Card, columnID string, index int, found bool) {
	for i := range b.Columns {
		for j, c := range b.Columns[i].Cards {
			if c.ID == cardID {
				b.Columns[i].Cards = slices.Delete(b.Columns[i].Cards, j, j+1)
				return c, b.Columns[i].ID, j, true
			}
		}
	}
	return models.Card{}, "", 0, false
}

// insertAt applies the shared position contract: a nil or out-of-range
// position appends, anything else inserts clamped at zero.
func insertAt[T any](items []T, position *int, item T) []T {
	if position == nil || *position >= len(items) {
		return append(items, item)
	}
	return slices.Insert(items, max(0, *position), item)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefLinks(links *[]models.Link) []models.Link {
	if links == nil {
		return nil
	}
	return *links
}
