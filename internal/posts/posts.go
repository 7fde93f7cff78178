// Package posts declares the "posts" content collection: one blog post's
// front-matter with a title, a publication date and an outbound link.
package posts

import (
	"time"

	"github.com/cockroachdb/errors"

	"github.com/thoreinstein/contentdef/internal/collection"
	"github.com/thoreinstein/contentdef/internal/schema"
)

// Name is the collection key posts are registered under.
const Name = "posts"

// Front-matter keys, in validation order.
const (
	FieldTitle = "title"
	FieldDate  = "date"
	FieldLink  = "link"
)

var definition = schema.MustDefine(Name,
	schema.Field{Name: FieldTitle, Constraint: schema.StringConstraint{}},
	schema.Field{Name: FieldDate, Constraint: schema.DateConstraint{}},
	schema.Field{Name: FieldLink, Constraint: schema.URLConstraint{}},
)

// Definition returns the posts collection schema.
func Definition() *schema.Definition {
	return definition
}

// PostEntry is a validated post.
type PostEntry struct {
	Title string    `json:"title" yaml:"title"`
	Date  time.Time `json:"date" yaml:"date"`
	Link  string    `json:"link" yaml:"link"`
}

// Decode converts an entry validated against the posts collection.
func Decode(e *schema.Entry) (*PostEntry, error) {
	if e == nil {
		return nil, errors.New("nil entry")
	}
	if e.Collection() != Name {
		return nil, errors.Wrapf(schema.ErrTypeMismatch, "entry belongs to collection %q, not %q", e.Collection(), Name)
	}
	return &PostEntry{
		Title: e.String(FieldTitle),
		Date:  e.Time(FieldDate),
		Link:  e.String(FieldLink),
	}, nil
}

// Validate checks record against the posts collection held by reg and
// returns the typed post.
func Validate(reg *collection.Registry, record map[string]any) (*PostEntry, error) {
	e, err := reg.Validate(Name, record)
	if err != nil {
		return nil, err
	}
	return Decode(e)
}

// Record converts the post back into a front-matter record. The date is
// formatted as RFC 3339 so it validates to the same instant.
func (p *PostEntry) Record() map[string]any {
	return map[string]any{
		FieldTitle: p.Title,
		FieldDate:  p.Date.Format(time.RFC3339Nano),
		FieldLink:  p.Link,
	}
}
