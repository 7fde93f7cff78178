package schema

import (
	"maps"
	"time"
)

// Entry is a record that passed validation. Values are typed per constraint:
// string for StringConstraint and URLConstraint, time.Time for DateConstraint.
type Entry struct {
	collection string
	values     map[string]any
}

// Collection returns the name of the collection the entry was validated against.
func (e *Entry) Collection() string {
	return e.collection
}

// Value returns the typed value of a declared field.
func (e *Entry) Value(field string) (any, bool) {
	v, ok := e.values[field]
	return v, ok
}

// String returns a string-valued field, or "" if absent or not a string.
func (e *Entry) String(field string) string {
	s, _ := e.values[field].(string)
	return s
}

// Time returns a date-valued field, or the zero time if absent or not a date.
func (e *Entry) Time(field string) time.Time {
	t, _ := e.values[field].(time.Time)
	return t
}

// Record returns a copy of the validated values keyed by field name.
func (e *Entry) Record() map[string]any {
	return maps.Clone(e.values)
}
