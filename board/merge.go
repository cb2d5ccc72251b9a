package board

import (
	"strings"

	"github.com/google/uuid"

	"github.com/minikanban/backend/models"
)

// Merge combines an imported board into an existing one without discarding
// existing data. Both inputs are normalized independently first, so a
// malformed import payload degrades gracefully instead of failing the whole
// import. Columns are matched by id, projects by name; the result is
// re-normalized before return.
func Merge(existing, incoming models.Board) models.Board {
	// Normalization defaults empty project colors, so capture which colors
	// the incoming payload actually supplied before it runs.
	suppliedColors := make(map[string]string, len(incoming.Projects))
	for _, proj := range incoming.Projects {
		name := strings.TrimSpace(proj.Name)
		if name == "" {
			continue
		}
		if _, ok := suppliedColors[name]; !ok {
			suppliedColors[name] = strings.TrimSpace(proj.Color)
		}
	}

	base := normalizeBoard(existing)
	in := normalizeBoard(incoming)

	for _, col := range in.Columns {
		idx := columnIndex(base.Columns, col.ID)
		if idx < 0 {
			base.Columns = append(base.Columns, col)
			continue
		}
		target := &base.Columns[idx]
		target.Title = col.Title
		target.Color = col.Color
		target.Hidden = col.Hidden
		seen := make(map[string]bool, len(target.Cards))
		for _, card := range target.Cards {
			seen[card.ID] = true
		}
		for _, card := range col.Cards {
			if seen[card.ID] {
				card.ID = uuid.NewString()
			}
			seen[card.ID] = true
			target.Cards = append(target.Cards, card)
		}
	}

	for _, proj := range in.Projects {
		idx := projectIndex(base.Projects, proj.Name)
		if idx >= 0 {
			// The name is never overwritten via merge; the color only when
			// the incoming payload supplied one.
			if suppliedColors[proj.Name] != "" {
				base.Projects[idx].Color = suppliedColors[proj.Name]
			}
			continue
		}
		base.Projects = append(base.Projects, proj)
	}

	return normalizeBoard(base)
}

func columnIndex(columns []models.Column, id string) int {
	for i, col := range columns {
		if col.ID == id {
			return i
		}
	}
	return -1
}

func projectIndex(projects []models.Project, name string) int {
	for i, proj := range projects {
		if proj.Name == name {
			return i
		}
	}
	return -1
}
