package config

import (
	"strings"

	"github.com/thoreinstein/contentdef/internal/errors"
	"github.com/thoreinstein/contentdef/internal/paths"
)

// Validation errors for configuration fields.
var (
	// ErrVersionTooLow indicates the version field is below the minimum.
	ErrVersionTooLow = errors.New("version must be >= 1")

	// ErrUnknownCollection indicates a configured collection has no schema.
	ErrUnknownCollection = errors.New("unknown collection")

	// ErrNegativeBackups indicates a negative backup retention count.
	ErrNegativeBackups = errors.New("backups must be >= 0")

	// ErrInvalidPath indicates a path value is malformed.
	ErrInvalidPath = paths.ErrInvalidPath
)

// Registry is the part of a collection registry Validate needs.
type Registry interface {
	Has(name string) bool
}

// Validate checks cfg against the declared collections and returns every
// problem found, or nil.
func Validate(cfg *Config, reg Registry) []error {
	if cfg == nil {
		return []error{errors.New("config is nil")}
	}

	var errs []error

	if cfg.Version < 1 {
		errs = append(errs, ErrVersionTooLow)
	}

	if cfg.Backups < 0 {
		errs = append(errs, ErrNegativeBackups)
	}

	if err := validateContentDir(cfg.ContentDir); err != nil {
		errs = append(errs, &PathError{Field: "content_dir", Path: cfg.ContentDir, Err: err})
	}

	for _, name := range cfg.CollectionNames() {
		if reg != nil && !reg.Has(name) {
			errs = append(errs, &CollectionError{Collection: name, Err: ErrUnknownCollection})
			continue
		}
		dir := cfg.Collections[name].Dir
		if err := paths.CheckRelative(dir); err != nil {
			errs = append(errs, &PathError{Field: "collections." + name + ".dir", Path: dir, Err: err})
		}
	}

	return errs
}

// Check runs Validate and folds the result into a single error wrapping
// errors.ErrInvalidConfig.
func Check(cfg *Config, reg Registry) error {
	errs := Validate(cfg, reg)
	if len(errs) == 0 {
		return nil
	}
	msgs := make([]string, len(errs))
	for i, err := range errs {
		msgs[i] = err.Error()
	}
	return errors.Wrap(errors.ErrInvalidConfig, strings.Join(msgs, "; "))
}

// validateContentDir checks that the path is syntactically usable. It does
// not check that the directory exists.
func validateContentDir(path string) error {
	if strings.TrimSpace(path) == "" {
		return ErrInvalidPath
	}
	if strings.ContainsRune(path, '\x00') {
		return ErrInvalidPath
	}
	return nil
}

// CollectionError reports a problem with one configured collection.
type CollectionError struct {
	Collection string
	Err        error
}

func (e *CollectionError) Error() string {
	return e.Err.Error() + ": " + e.Collection
}

func (e *CollectionError) Unwrap() error {
	return e.Err
}

// PathError represents an error for a specific path field.
type PathError struct {
	Field string
	Path  string
	Err   error
}

func (e *PathError) Error() string {
	return e.Field + ": " + e.Err.Error() + ": " + e.Path
}

func (e *PathError) Unwrap() error {
	return e.Err
}
