package schema

import (
	"regexp"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
)

// Kind identifies the semantic type a constraint accepts.
type Kind int

const (
	// KindString accepts non-blank text.
	KindString Kind = iota + 1
	// KindDate accepts calendar date/time values.
	KindDate
	// KindURL accepts absolute URLs.
	KindURL
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindDate:
		return "date"
	case KindURL:
		return "url"
	default:
		return "unknown"
	}
}

// Constraint is the closed set of per-field rules. The only implementations
// are StringConstraint, DateConstraint and URLConstraint.
type Constraint interface {
	// Kind reports the semantic type the constraint accepts.
	Kind() Kind

	// wellFormed reports whether the constraint itself is a valid declaration.
	wellFormed() error
}

// StringConstraint requires a string that is not empty or whitespace-only.
type StringConstraint struct{}

// Kind implements Constraint.
func (StringConstraint) Kind() Kind { return KindString }

func (StringConstraint) wellFormed() error { return nil }

// DefaultDateLayouts are tried in order when a DateConstraint lists none.
var DefaultDateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// DateConstraint requires a time.Time, or a string parseable by one of Layouts.
type DateConstraint struct {
	// Layouts are time.Parse layouts tried in order. Empty means DefaultDateLayouts.
	Layouts []string
}

// Kind implements Constraint.
func (DateConstraint) Kind() Kind { return KindDate }

// referenceTime is formatted through each layout; a layout that formats to
// itself contains no time elements.
var referenceTime = time.Date(2009, time.November, 17, 20, 34, 58, 0, time.UTC)

func (c DateConstraint) wellFormed() error {
	for _, layout := range c.Layouts {
		if strings.TrimSpace(layout) == "" {
			return errors.New("date layout is empty")
		}
		if referenceTime.Format(layout) == layout {
			return errors.Newf("date layout %q contains no time elements", layout)
		}
	}
	return nil
}

func (c DateConstraint) layouts() []string {
	if len(c.Layouts) == 0 {
		return DefaultDateLayouts
	}
	return c.Layouts
}

// schemeRegex matches an RFC 3986 URI scheme.
var schemeRegex = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9+.-]*$`)

// URLConstraint requires a string that parses as an absolute URL.
type URLConstraint struct {
	// Schemes restricts the accepted URL schemes, compared case-insensitively.
	// Empty means any scheme.
	Schemes []string
}

// Kind implements Constraint.
func (URLConstraint) Kind() Kind { return KindURL }

func (c URLConstraint) wellFormed() error {
	for _, scheme := range c.Schemes {
		if !schemeRegex.MatchString(scheme) {
			return errors.Newf("URL scheme %q is not a valid scheme", scheme)
		}
	}
	return nil
}

func (c URLConstraint) allows(scheme string) bool {
	if len(c.Schemes) == 0 {
		return true
	}
	for _, s := range c.Schemes {
		if strings.EqualFold(s, scheme) {
			return true
		}
	}
	return false
}
