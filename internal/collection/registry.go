// Package collection maps content collection names to their schema
// definitions.
//
// A Registry is built once at startup from explicitly declared definitions
// and is never mutated afterwards, so it can be shared by reference between
// goroutines without locking.
package collection

import (
	"fmt"

	"github.com/cockroachdb/errors"

	"github.com/thoreinstein/contentdef/internal/schema"
)

// Sentinel errors for registry operations.
var (
	// ErrNotFound is returned when a collection name was never declared.
	ErrNotFound = errors.New("collection not found")

	// ErrDuplicateCollection is returned when two definitions share a name.
	ErrDuplicateCollection = errors.New("collection already registered")
)

// NotFoundError reports a lookup of an undeclared collection.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("collection %q is not declared", e.Name)
}

// Unwrap returns ErrNotFound.
func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// Registry is an immutable mapping from collection name to definition.
type Registry struct {
	defs  map[string]*schema.Definition
	names []string
}

// New builds a registry from the given definitions. Registration order is
// preserved by Names.
func New(defs ...*schema.Definition) (*Registry, error) {
	r := &Registry{
		defs:  make(map[string]*schema.Definition, len(defs)),
		names: make([]string, 0, len(defs)),
	}
	for i, d := range defs {
		if d == nil {
			return nil, errors.Newf("definition %d is nil", i)
		}
		if _, exists := r.defs[d.Name()]; exists {
			return nil, errors.Wrapf(ErrDuplicateCollection, "%s", d.Name())
		}
		r.defs[d.Name()] = d
		r.names = append(r.names, d.Name())
	}
	return r, nil
}

// Export returns the definition registered under name.
func (r *Registry) Export(name string) (*schema.Definition, error) {
	d, ok := r.defs[name]
	if !ok {
		return nil, &NotFoundError{Name: name}
	}
	return d, nil
}

// Validate checks record against the named collection. An undeclared name
// fails with a *NotFoundError regardless of the record; otherwise the result
// is that of schema.Definition.Validate.
func (r *Registry) Validate(name string, record map[string]any) (*schema.Entry, error) {
	d, err := r.Export(name)
	if err != nil {
		return nil, err
	}
	return d.Validate(record)
}

// Names returns the registered collection names in registration order.
func (r *Registry) Names() []string {
	return append([]string(nil), r.names...)
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.defs[name]
	return ok
}
