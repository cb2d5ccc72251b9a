package board

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/minikanban/backend/models"
)

// How many random draws to spend avoiding a color already taken by another
// project before giving up and returning an unchecked one.
const colorAttempts = 32

// GenerateUniqueColor returns a random hex color that, on a best-effort
// basis, does not collide with any existing project color.
func GenerateUniqueColor(b *models.Board) string {
	existing := make(map[string]bool, len(b.Projects))
	for _, proj := range b.Projects {
		if proj.Color != "" {
			existing[strings.ToLower(proj.Color)] = true
		}
	}
	for range colorAttempts {
		color := randomHexColor()
		if !existing[strings.ToLower(color)] {
			return color
		}
	}
	return randomHexColor()
}

func randomHexColor() string {
	return fmt.Sprintf("#%06x", rand.IntN(0x1000000))
}
