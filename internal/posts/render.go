package posts

import (
	"fmt"
	"strings"
	"time"

	"github.com/thoreinstein/contentdef/pkg/frontmatter"
)

// fileMatter is the on-disk front-matter layout for a post.
type fileMatter struct {
	Title string    `yaml:"title"`
	Date  time.Time `yaml:"date"`
	Link  string    `yaml:"link"`
}

// FileName returns the Markdown file name for the post, or "" when the title
// yields an empty slug.
func (p *PostEntry) FileName() string {
	slug := Slug(p.Title)
	if slug == "" {
		return ""
	}
	return slug + ".md"
}

// Render produces a Markdown document with the post's front-matter, the
// summary as body, and a trailing link to the full story. HTML markup in
// the summary is reduced to its text.
func Render(p *PostEntry, summary string) ([]byte, error) {
	var body strings.Builder
	if s := strings.TrimSpace(plainText(summary)); s != "" {
		body.WriteString(s)
		body.WriteString("\n\n")
	}
	fmt.Fprintf(&body, "[Read full story →](%s)\n", p.Link)

	return frontmatter.Format(fileMatter{
		Title: p.Title,
		Date:  p.Date,
		Link:  p.Link,
	}, body.String())
}
