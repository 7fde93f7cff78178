package doctor

import (
	"fmt"
	"os"

	"github.com/thoreinstein/contentdef/internal/config"
	"github.com/thoreinstein/contentdef/internal/content"
	"github.com/thoreinstein/contentdef/internal/errors"
)

// ConfigCheck validates the loaded configuration against the registry.
type ConfigCheck struct {
	cfg    *config.Config
	source string
	reg    config.Registry
}

var _ Check = (*ConfigCheck)(nil)

// NewConfigCheck creates a config check. source is the file the
// configuration was read from, or empty for built-in defaults.
func NewConfigCheck(cfg *config.Config, source string, reg config.Registry) *ConfigCheck {
	return &ConfigCheck{cfg: cfg, source: source, reg: reg}
}

// Name returns the unique identifier for this check.
func (c *ConfigCheck) Name() string {
	return "config"
}

// Category returns the grouping for this check.
func (c *ConfigCheck) Category() string {
	return "config"
}

// Run validates the configuration.
func (c *ConfigCheck) Run() *CheckResult {
	result := &CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
		Details:  map[string]any{"source": c.sourceLabel()},
	}

	if errs := config.Validate(c.cfg, c.reg); len(errs) > 0 {
		problems := make([]string, 0, len(errs))
		for _, err := range errs {
			problems = append(problems, err.Error())
		}
		result.Status = SeverityError
		result.Message = fmt.Sprintf("%d configuration problem(s) in %s", len(errs), c.sourceLabel())
		result.Details["problems"] = problems
		result.FixHint = "Run: contentdef config show"
		return result
	}

	if c.source == "" {
		result.Status = SeverityInfo
		result.Message = "no config file found, using built-in defaults"
		result.FixHint = "Run: contentdef config init"
		return result
	}

	result.Status = SeverityPass
	result.Message = "loaded " + c.source
	return result
}

func (c *ConfigCheck) sourceLabel() string {
	if c.source == "" {
		return "defaults"
	}
	return c.source
}

// CollectionDirCheck verifies that a collection's directory exists and is
// readable. A missing directory can be created with Fix.
type CollectionDirCheck struct {
	DirFixer
	collection string
	dir        string
}

var (
	_ Check = (*CollectionDirCheck)(nil)
	_ Fixer = (*CollectionDirCheck)(nil)
)

// NewCollectionDirCheck creates a directory check for one collection.
func NewCollectionDirCheck(collection, dir string) *CollectionDirCheck {
	return &CollectionDirCheck{collection: collection, dir: dir}
}

// Name returns the unique identifier for this check.
func (c *CollectionDirCheck) Name() string {
	return c.collection + "-dir"
}

// Category returns the grouping for this check.
func (c *CollectionDirCheck) Category() string {
	return "collection"
}

// Run inspects the collection directory.
func (c *CollectionDirCheck) Run() *CheckResult {
	c.setMissing()
	result := &CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
		Details:  map[string]any{"collection": c.collection, "dir": c.dir},
	}

	info, err := os.Stat(c.dir)
	switch {
	case errors.Is(err, os.ErrNotExist):
		c.setMissing(c.dir)
		result.Status = SeverityWarning
		result.Message = "directory " + c.dir + " does not exist"
		result.Fixable = true
		result.FixHint = "Run: contentdef doctor --fix"
		return result
	case err != nil:
		result.Status = SeverityError
		result.Message = fmt.Sprintf("cannot stat %s: %v", c.dir, err)
		return result
	case !info.IsDir():
		result.Status = SeverityError
		result.Message = c.dir + " is not a directory"
		result.FixHint = "Move the file aside or point collections." + c.collection + ".dir elsewhere"
		return result
	}

	entries, err := os.ReadDir(c.dir)
	if err != nil {
		result.Status = SeverityError
		result.Message = "directory " + c.dir + " is not readable"
		result.FixHint = "chmod 755 " + c.dir
		return result
	}

	result.Status = SeverityPass
	result.Message = "directory " + c.dir + " exists"
	result.Details["entries"] = len(entries)
	return result
}

// CollectionLoader loads every entry of a collection.
type CollectionLoader interface {
	LoadCollection(name string) ([]content.Item, error)
}

// ContentCheck validates every entry of a collection.
type ContentCheck struct {
	collection string
	loader     CollectionLoader
}

var _ Check = (*ContentCheck)(nil)

// NewContentCheck creates a content check for one collection.
func NewContentCheck(collection string, loader CollectionLoader) *ContentCheck {
	return &ContentCheck{collection: collection, loader: loader}
}

// Name returns the unique identifier for this check.
func (c *ContentCheck) Name() string {
	return c.collection + "-content"
}

// Category returns the grouping for this check.
func (c *ContentCheck) Category() string {
	return "content"
}

// Run loads and validates the collection.
func (c *ContentCheck) Run() *CheckResult {
	result := &CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
		Details:  map[string]any{"collection": c.collection},
	}

	items, err := c.loader.LoadCollection(c.collection)
	if err != nil {
		result.Status = SeverityError
		result.Message = fmt.Sprintf("cannot load collection: %v", err)
		return result
	}

	var invalid []string
	for _, item := range items {
		if !item.Valid() {
			invalid = append(invalid, item.Path)
		}
	}
	result.Details["entries"] = len(items)

	switch {
	case len(invalid) > 0:
		result.Status = SeverityError
		result.Message = fmt.Sprintf("%d of %d entries invalid", len(invalid), len(items))
		result.Details["invalid"] = invalid
		result.FixHint = "Run: contentdef validate"
	case len(items) == 0:
		result.Status = SeverityInfo
		result.Message = "no entries"
	default:
		result.Status = SeverityPass
		result.Message = fmt.Sprintf("%d entries valid", len(items))
	}
	return result
}
