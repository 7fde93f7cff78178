// Package validator turns validation failures into reportable issues.
package validator

import (
	"fmt"
	"strings"

	"github.com/thoreinstein/contentdef/internal/collection"
	"github.com/thoreinstein/contentdef/internal/errors"
	"github.com/thoreinstein/contentdef/internal/schema"
)

// Severity represents the impact of a validation issue.
type Severity int

const (
	// SeverityError indicates a blocking validation failure.
	SeverityError Severity = iota
	// SeverityWarning indicates a non-blocking issue.
	SeverityWarning
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return "unknown"
	}
}

// MarshalText encodes the severity by name.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a severity name.
func (s *Severity) UnmarshalText(b []byte) error {
	switch string(b) {
	case "error":
		*s = SeverityError
	case "warning":
		*s = SeverityWarning
	default:
		return errors.Newf("unknown severity %q", b)
	}
	return nil
}

// Issue kinds, one per failure class.
const (
	KindMissingField    = "missing_field"
	KindTypeMismatch    = "type_mismatch"
	KindMalformedURL    = "malformed_url"
	KindUnparseableDate = "unparseable_date"
	KindNotFound        = "not_found"
	KindOther           = "error"
)

// Issue represents a single validation problem.
type Issue struct {
	Severity   Severity `json:"severity"`
	Path       string   `json:"path,omitempty"`
	Collection string   `json:"collection,omitempty"`
	Field      string   `json:"field,omitempty"`
	Kind       string   `json:"kind"`
	Message    string   `json:"message"`
	Value      any      `json:"value,omitempty"`
}

// Error implements the error interface.
func (i Issue) Error() string {
	var sb strings.Builder
	sb.WriteString(i.Severity.String())
	sb.WriteString(": ")
	if i.Path != "" {
		sb.WriteString(i.Path)
		sb.WriteString(": ")
	}
	if i.Field != "" {
		fmt.Fprintf(&sb, "field %q: ", i.Field)
	}
	sb.WriteString(i.Message)
	return sb.String()
}

// Result aggregates the issues found across a set of files.
type Result struct {
	Checked int     `json:"checked"`
	Invalid int     `json:"invalid"`
	Issues  []Issue `json:"issues"`
}

// Record counts one checked file and appends the issues derived from err.
// A nil err records a valid file.
func (r *Result) Record(path, collectionName string, err error) {
	r.Checked++
	if err == nil {
		return
	}
	r.Invalid++
	r.Issues = append(r.Issues, FromError(err, path, collectionName)...)
}

// AddWarning adds a warning that does not count as an invalid file.
func (r *Result) AddWarning(path, message string) {
	r.Issues = append(r.Issues, Issue{
		Severity: SeverityWarning,
		Path:     path,
		Kind:     KindOther,
		Message:  message,
	})
}

// HasErrors returns true if any issue has SeverityError.
func (r *Result) HasErrors() bool {
	return len(r.Errors()) > 0
}

// Errors returns the issues with SeverityError.
func (r *Result) Errors() []Issue {
	return r.filter(SeverityError)
}

// Warnings returns the issues with SeverityWarning.
func (r *Result) Warnings() []Issue {
	return r.filter(SeverityWarning)
}

func (r *Result) filter(s Severity) []Issue {
	if r == nil {
		return nil
	}
	var res []Issue
	for _, i := range r.Issues {
		if i.Severity == s {
			res = append(res, i)
		}
	}
	return res
}

// FromError flattens err into issues. A *schema.ValidationError yields one
// issue per field error in field order; any other error yields one issue.
func FromError(err error, path, collectionName string) []Issue {
	if err == nil {
		return nil
	}

	var verr *schema.ValidationError
	if errors.As(err, &verr) {
		if collectionName == "" {
			collectionName = verr.Collection
		}
		issues := make([]Issue, 0, len(verr.Fields))
		for _, fe := range verr.Fields {
			issues = append(issues, fieldIssue(fe, path, collectionName))
		}
		return issues
	}

	var fe *schema.FieldError
	if errors.As(err, &fe) {
		return []Issue{fieldIssue(fe, path, collectionName)}
	}

	return []Issue{{
		Severity:   SeverityError,
		Path:       path,
		Collection: collectionName,
		Kind:       kindOf(err),
		Message:    err.Error(),
	}}
}

func fieldIssue(fe *schema.FieldError, path, collectionName string) Issue {
	msg := fe.Err.Error()
	if fe.Detail != "" {
		msg += ": " + fe.Detail
	}
	return Issue{
		Severity:   SeverityError,
		Path:       path,
		Collection: collectionName,
		Field:      fe.Field,
		Kind:       kindOf(fe.Err),
		Message:    msg,
		Value:      fe.Value,
	}
}

func kindOf(err error) string {
	switch {
	case errors.Is(err, schema.ErrMissingField):
		return KindMissingField
	case errors.Is(err, schema.ErrTypeMismatch):
		return KindTypeMismatch
	case errors.Is(err, schema.ErrMalformedURL):
		return KindMalformedURL
	case errors.Is(err, schema.ErrUnparseableDate):
		return KindUnparseableDate
	case errors.Is(err, collection.ErrNotFound):
		return KindNotFound
	default:
		return KindOther
	}
}
