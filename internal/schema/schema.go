package schema

import (
	"regexp"
	"strings"

	"github.com/cockroachdb/errors"
)

// collectionNameRegex validates collection names: lowercase alphanumeric,
// single hyphens allowed between segments.
var collectionNameRegex = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// fieldNameRegex validates front-matter keys.
var fieldNameRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_-]*$`)

// Field binds a front-matter key to the constraint its value must satisfy.
// Every declared field is required.
type Field struct {
	Name       string
	Constraint Constraint
}

// Definition is the validated, immutable declaration of one collection.
type Definition struct {
	name   string
	fields []Field
}

// Define declares a collection. The fields are checked in the given order
// during validation, which fixes the order of reported errors.
func Define(name string, fields ...Field) (*Definition, error) {
	if !collectionNameRegex.MatchString(name) {
		return nil, errors.Wrapf(ErrInvalidSchema,
			"collection name %q must be lowercase alphanumeric with single hyphens", name)
	}
	if len(fields) == 0 {
		return nil, errors.Wrapf(ErrInvalidSchema, "collection %q declares no fields", name)
	}

	seen := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		if !fieldNameRegex.MatchString(f.Name) {
			return nil, errors.Wrapf(ErrInvalidSchema, "collection %q: invalid field name %q", name, f.Name)
		}
		if _, dup := seen[f.Name]; dup {
			return nil, errors.Wrapf(ErrInvalidSchema, "collection %q: duplicate field %q", name, f.Name)
		}
		seen[f.Name] = struct{}{}

		if f.Constraint == nil {
			return nil, errors.Wrapf(ErrInvalidSchema, "collection %q: field %q has no constraint", name, f.Name)
		}
		if err := f.Constraint.wellFormed(); err != nil {
			return nil, errors.Wrapf(ErrInvalidSchema, "collection %q: field %q: %v", name, f.Name, err)
		}
	}

	return &Definition{
		name:   name,
		fields: cloneFields(fields),
	}, nil
}

// MustDefine is like Define but panics on a malformed declaration.
// It is intended for package-level collection declarations.
func MustDefine(name string, fields ...Field) *Definition {
	d, err := Define(name, fields...)
	if err != nil {
		panic(err)
	}
	return d
}

// Name returns the collection name.
func (d *Definition) Name() string {
	return d.name
}

// Fields returns a copy of the declared fields in declaration order.
func (d *Definition) Fields() []Field {
	return cloneFields(d.fields)
}

// Field looks up a declared field by name.
func (d *Definition) Field(name string) (Field, bool) {
	for _, f := range d.fields {
		if f.Name == name {
			return cloneField(f), true
		}
	}
	return Field{}, false
}

// Validate checks record against every declared field and returns the typed
// entry, or a *ValidationError listing every failing field. Keys in record
// that the collection does not declare are ignored.
func (d *Definition) Validate(record map[string]any) (*Entry, error) {
	values := make(map[string]any, len(d.fields))
	var failures []*FieldError

	for _, f := range d.fields {
		raw, present := record[f.Name]
		v, ferr := check(f, raw, present)
		if ferr != nil {
			failures = append(failures, ferr)
			continue
		}
		values[f.Name] = v
	}

	if len(failures) > 0 {
		return nil, &ValidationError{Collection: d.name, Fields: failures}
	}
	return &Entry{collection: d.name, values: values}, nil
}

// Description is the serializable form of a Definition.
type Description struct {
	Name   string             `json:"name" yaml:"name" toml:"name"`
	Fields []FieldDescription `json:"fields" yaml:"fields" toml:"fields"`
}

// FieldDescription is the serializable form of a Field.
type FieldDescription struct {
	Name     string   `json:"name" yaml:"name" toml:"name"`
	Type     string   `json:"type" yaml:"type" toml:"type"`
	Required bool     `json:"required" yaml:"required" toml:"required"`
	Layouts  []string `json:"layouts,omitempty" yaml:"layouts,omitempty" toml:"layouts,omitempty"`
	Schemes  []string `json:"schemes,omitempty" yaml:"schemes,omitempty" toml:"schemes,omitempty"`
}

// Describe returns a serializable description of the definition.
func (d *Definition) Describe() Description {
	desc := Description{
		Name:   d.name,
		Fields: make([]FieldDescription, len(d.fields)),
	}
	for i, f := range d.fields {
		desc.Fields[i] = f.Describe()
	}
	return desc
}

// Describe returns the serializable form of the field.
func (f Field) Describe() FieldDescription {
	fd := FieldDescription{
		Name:     f.Name,
		Type:     f.Constraint.Kind().String(),
		Required: true,
	}
	switch c := f.Constraint.(type) {
	case DateConstraint:
		fd.Layouts = append([]string(nil), c.layouts()...)
	case URLConstraint:
		fd.Schemes = append([]string(nil), c.Schemes...)
	}
	return fd
}

// String returns a compact one-line summary, e.g. "posts{title:string, date:date}".
func (d *Definition) String() string {
	parts := make([]string, len(d.fields))
	for i, f := range d.fields {
		parts[i] = f.Name + ":" + f.Constraint.Kind().String()
	}
	return d.name + "{" + strings.Join(parts, ", ") + "}"
}

func cloneFields(fields []Field) []Field {
	out := make([]Field, len(fields))
	for i, f := range fields {
		out[i] = cloneField(f)
	}
	return out
}

// cloneField copies slice-valued constraint options so callers cannot mutate
// a definition after it is built.
func cloneField(f Field) Field {
	switch c := f.Constraint.(type) {
	case DateConstraint:
		f.Constraint = DateConstraint{Layouts: append([]string(nil), c.Layouts...)}
	case URLConstraint:
		f.Constraint = URLConstraint{Schemes: append([]string(nil), c.Schemes...)}
	}
	return f
}
