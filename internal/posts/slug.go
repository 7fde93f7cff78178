package posts

import (
	"strings"
	"unicode"
)

// maxSlugRunes caps slug length before trimming.
const maxSlugRunes = 60

// Slug derives a file-name-safe slug from a post title: letters, digits,
// spaces and hyphens are kept, the result is cut to 60 runes, trimmed,
// lowercased and spaces become hyphens.
func Slug(title string) string {
	var kept []rune
	for _, r := range title {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == ' ' || r == '-' {
			kept = append(kept, r)
		}
	}
	if len(kept) > maxSlugRunes {
		kept = kept[:maxSlugRunes]
	}
	s := strings.ToLower(strings.TrimSpace(string(kept)))
	return strings.ReplaceAll(s, " ", "-")
}
