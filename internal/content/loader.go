package content

import (
	"bytes"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/thoreinstein/contentdef/internal/collection"
	"github.com/thoreinstein/contentdef/internal/config"
	"github.com/thoreinstein/contentdef/internal/errors"
	"github.com/thoreinstein/contentdef/internal/logging"
	"github.com/thoreinstein/contentdef/internal/paths"
	"github.com/thoreinstein/contentdef/internal/schema"
	"github.com/thoreinstein/contentdef/pkg/fileutil"
	"github.com/thoreinstein/contentdef/pkg/frontmatter"
)

// Ext is the extension of content files.
const Ext = ".md"

// Item is the outcome of loading one content file.
type Item struct {
	Path       string
	Collection string
	// Entry is set when the file validated.
	Entry *schema.Entry
	// Err is a *ParseError or the registry's validation error.
	Err error
}

// Valid reports whether the file produced an entry.
func (i Item) Valid() bool {
	return i.Err == nil && i.Entry != nil
}

// ParseError reports a file that could not be read or whose front-matter
// could not be decoded.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return e.Path + ": " + e.Err.Error()
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Loader walks collection directories. It holds no mutable state.
type Loader struct {
	reg    *collection.Registry
	cfg    *config.Config
	root   string
	logger *slog.Logger
}

// NewLoader creates a Loader resolving content_dir against root. A nil
// logger discards output.
func NewLoader(reg *collection.Registry, cfg *config.Config, root string, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = logging.NewDiscard()
	}
	if root == "" {
		root = "."
	}
	return &Loader{reg: reg, cfg: cfg, root: root, logger: logger}
}

// Dir returns the directory holding the named collection.
func (l *Loader) Dir(name string) (string, error) {
	cc, ok := l.cfg.Collections[name]
	if !ok {
		return "", &collection.NotFoundError{Name: name}
	}
	return paths.CollectionDir(l.root, l.cfg.ContentDir, cc.Dir), nil
}

// LoadAll loads every configured collection in name order.
func (l *Loader) LoadAll() ([]Item, error) {
	var items []Item
	for _, name := range l.cfg.CollectionNames() {
		got, err := l.LoadCollection(name)
		if err != nil {
			return items, err
		}
		items = append(items, got...)
	}
	return items, nil
}

// LoadCollection loads every file of one collection. A collection that is
// configured but has no directory on disk yields no items.
func (l *Loader) LoadCollection(name string) ([]Item, error) {
	if _, err := l.reg.Export(name); err != nil {
		return nil, err
	}
	dir, err := l.Dir(name)
	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(dir); errors.Is(err, fs.ErrNotExist) {
		l.logger.Warn("collection directory missing", "collection", name, "dir", dir)
		return nil, nil
	}

	l.logger.Debug("loading collection", "collection", name, "dir", dir)

	files, err := Files(dir)
	if err != nil {
		return nil, err
	}
	items := make([]Item, 0, len(files))
	for _, path := range files {
		items = append(items, l.LoadFile(name, path))
	}

	l.logger.Info("collection loaded", "collection", name, "files", len(items))
	return items, nil
}

// LoadFile reads, parses and validates a single file as a member of the
// named collection.
func (l *Loader) LoadFile(name, path string) Item {
	item := Item{Path: path, Collection: name}

	data, err := fileutil.ReadFileWithLimit(path)
	if err != nil {
		item.Err = &ParseError{Path: path, Err: err}
		return item
	}

	record := map[string]any{}
	if _, err := frontmatter.MustParse(bytes.NewReader(data), &record); err != nil {
		item.Err = &ParseError{Path: path, Err: err}
		return item
	}

	item.Entry, item.Err = l.reg.Validate(name, record)
	if item.Err != nil {
		l.logger.Debug("entry invalid", "path", path, "error", item.Err)
	}
	return item
}

// CollectionFor returns the configured collection whose directory contains
// path.
func (l *Loader) CollectionFor(path string) (string, bool) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", false
	}
	for _, name := range l.cfg.CollectionNames() {
		dir, err := l.Dir(name)
		if err != nil {
			continue
		}
		absDir, err := filepath.Abs(dir)
		if err != nil {
			continue
		}
		rel, err := filepath.Rel(absDir, abs)
		if err == nil && filepath.IsLocal(rel) {
			return name, true
		}
	}
	return "", false
}

// Files returns the content files under dir in lexical order. Dot-files
// and dot-directories below dir are skipped.
func Files(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != dir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if isContentFile(d.Name()) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "walking %s", dir)
	}
	return files, nil
}

func isContentFile(name string) bool {
	return filepath.Ext(name) == Ext && !strings.HasPrefix(name, ".")
}
