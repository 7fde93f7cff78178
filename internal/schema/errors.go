package schema

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
)

// Sentinel errors for schema declaration and record validation.
var (
	// ErrInvalidSchema indicates a collection declaration is malformed.
	ErrInvalidSchema = errors.New("invalid schema")

	// ErrMissingField indicates a required field is absent, nil or blank.
	ErrMissingField = errors.New("missing required field")

	// ErrTypeMismatch indicates a field value has the wrong type.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrMalformedURL indicates a URL field is not a valid absolute URL.
	ErrMalformedURL = errors.New("malformed URL")

	// ErrUnparseableDate indicates a date field could not be parsed.
	ErrUnparseableDate = errors.New("unparseable date")
)

// FieldError describes why a single field failed validation.
type FieldError struct {
	// Field is the name of the offending field.
	Field string
	// Value is the raw value from the record, nil when the field was absent.
	Value any
	// Err is one of the package sentinel errors.
	Err error
	// Detail is an optional human-readable refinement of Err.
	Detail string
}

func (e *FieldError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "field %q: %s", e.Field, e.Err)
	if e.Detail != "" {
		sb.WriteString(": ")
		sb.WriteString(e.Detail)
	}
	if e.Value != nil {
		fmt.Fprintf(&sb, " (got %#v)", e.Value)
	}
	return sb.String()
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// ValidationError aggregates every field failure found in one record.
// Fields are ordered as the collection declares them.
type ValidationError struct {
	Collection string
	Fields     []*FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.Error()
	}
	noun := "fields"
	if len(e.Fields) == 1 {
		noun = "field"
	}
	return fmt.Sprintf("%s: %d invalid %s: %s", e.Collection, len(e.Fields), noun, strings.Join(parts, "; "))
}

// Unwrap exposes each field error so errors.Is matches any of their sentinels.
func (e *ValidationError) Unwrap() []error {
	errs := make([]error, len(e.Fields))
	for i, f := range e.Fields {
		errs[i] = f
	}
	return errs
}

// Field returns the error recorded for the named field, if any.
func (e *ValidationError) Field(name string) (*FieldError, bool) {
	for _, f := range e.Fields {
		if f.Field == name {
			return f, true
		}
	}
	return nil, false
}
