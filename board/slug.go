package board

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
)

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify derives a column id from its title: lowercase, runs of
// non-alphanumerics collapsed to a single hyphen, hyphens trimmed. Titles
// that slug down to nothing fall back to a generated id.
func Slugify(title string) string {
	slug := strings.Trim(slugPattern.ReplaceAllString(strings.ToLower(title), "-"), "-")
	if slug == "" {
		return uuid.NewString()
	}
	return slug
}
