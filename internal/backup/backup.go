package backup

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/thoreinstein/contentdef/internal/errors"
	"github.com/thoreinstein/contentdef/internal/paths"
	"github.com/thoreinstein/contentdef/pkg/fileutil"
)

// idLayout names backup directories. Backups taken within the same second
// get a numeric suffix.
const idLayout = "20060102T150405"

// Manager creates, lists, restores and prunes backups.
type Manager struct {
	rootDir        string
	retentionCount int
	toolVersion    string
	now            func() time.Time
}

// Option configures a Manager.
type Option func(*Manager)

// WithBackupDir sets the root backup directory.
func WithBackupDir(dir string) Option {
	return func(m *Manager) {
		m.rootDir = dir
	}
}

// WithRetentionCount sets how many backups Backup keeps per collection.
// Zero or less disables automatic pruning.
func WithRetentionCount(n int) Option {
	return func(m *Manager) {
		m.retentionCount = n
	}
}

// WithToolVersion records the running contentdef version in manifests.
func WithToolVersion(v string) Option {
	return func(m *Manager) {
		m.toolVersion = v
	}
}

// NewManager creates a Manager rooted at paths.BackupDir.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		rootDir:        paths.BackupDir(),
		retentionCount: DefaultRetentionCount,
		toolVersion:    "dev",
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Backup copies the given files into a new backup of collection. Paths
// that do not exist are skipped; if none exist nothing is written and
// ErrNoBackupsFound is returned.
func (m *Manager) Backup(collection, reason string, files ...string) (*Manifest, error) {
	if err := checkName("collection", collection); err != nil {
		return nil, err
	}

	var sources []string
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			return nil, errors.Wrapf(err, "resolving %s", f)
		}
		info, err := os.Stat(abs)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, errors.Wrapf(err, "stat %s", f)
		}
		if info.IsDir() {
			return nil, errors.Newf("%s is a directory", f)
		}
		sources = append(sources, abs)
	}
	if len(sources) == 0 {
		return nil, errors.Wrap(ErrNoBackupsFound, "no existing files to back up")
	}

	created := m.now().UTC()
	id, dir, err := m.createBackupDir(collection, created)
	if err != nil {
		return nil, err
	}

	manifest := &Manifest{
		Version:     ManifestVersion,
		CreatedAt:   created,
		Collection:  collection,
		Reason:      reason,
		ToolVersion: m.toolVersion,
		ID:          id,
	}
	for i, src := range sources {
		rel := filepath.Join("files", strconv.Itoa(i), filepath.Base(src))
		dst := filepath.Join(dir, rel)
		if err := paths.EnsureDir(filepath.Dir(dst), 0); err != nil {
			os.RemoveAll(dir)
			return nil, errors.Wrap(err, "creating backup directory")
		}
		hash, mode, err := copyFile(src, dst)
		if err != nil {
			os.RemoveAll(dir)
			return nil, errors.Wrapf(err, "backing up %s", src)
		}
		manifest.Files = append(manifest.Files, File{
			OriginalPath: src,
			RelPath:      rel,
			SHA256Hash:   hash,
			Mode:         mode,
		})
	}

	if err := fileutil.AtomicWriteJSON(filepath.Join(dir, manifestName), manifest); err != nil {
		os.RemoveAll(dir)
		return nil, errors.Wrap(err, "writing manifest")
	}

	if m.retentionCount > 0 {
		if err := m.Prune(collection, m.retentionCount); err != nil {
			return manifest, errors.Wrap(err, "pruning old backups")
		}
	}
	return manifest, nil
}

// createBackupDir makes a fresh directory for a backup taken at t.
func (m *Manager) createBackupDir(collection string, t time.Time) (string, string, error) {
	parent := m.collectionDir(collection)
	if err := paths.EnsureDir(parent, 0); err != nil {
		return "", "", errors.Wrap(err, "creating backup directory")
	}

	base := t.Format(idLayout)
	for n := 1; ; n++ {
		id := base
		if n > 1 {
			id = base + "-" + strconv.Itoa(n)
		}
		dir := filepath.Join(parent, id)
		err := os.Mkdir(dir, paths.DefaultDirPerm)
		if err == nil {
			return id, dir, nil
		}
		if !errors.Is(err, fs.ErrExist) {
			return "", "", errors.Wrap(err, "creating backup directory")
		}
	}
}

// Restore copies every file of a backup back to its original location.
// All hashes are verified before anything is written. It returns the
// restored paths.
func (m *Manager) Restore(collection, id string) ([]string, error) {
	manifest, err := m.Get(collection, id)
	if err != nil {
		return nil, err
	}
	dir := m.backupPath(collection, manifest.ID)

	contents := make([][]byte, len(manifest.Files))
	for i, f := range manifest.Files {
		data, err := os.ReadFile(filepath.Join(dir, f.RelPath))
		if err != nil {
			return nil, errors.Wrapf(err, "reading backup file %s", f.RelPath)
		}
		if hashBytes(data) != f.SHA256Hash {
			return nil, errors.Wrapf(ErrBackupCorrupted, "file %s hash mismatch", f.RelPath)
		}
		contents[i] = data
	}

	restored := make([]string, 0, len(manifest.Files))
	for i, f := range manifest.Files {
		if err := paths.EnsureDir(filepath.Dir(f.OriginalPath), 0); err != nil {
			return restored, errors.Wrapf(err, "creating directory for %s", f.OriginalPath)
		}
		if err := fileutil.AtomicWriteFile(f.OriginalPath, contents[i], f.Mode.Perm()); err != nil {
			return restored, errors.Wrapf(err, "restoring %s", f.OriginalPath)
		}
		restored = append(restored, f.OriginalPath)
	}
	return restored, nil
}

// List returns the backups of a collection, newest first.
func (m *Manager) List(collection string) ([]Manifest, error) {
	if err := checkName("collection", collection); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(m.collectionDir(collection))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNoBackupsFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "reading backup directory")
	}

	manifests := make([]Manifest, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		manifest, err := m.Get(collection, entry.Name())
		if err != nil {
			// Interrupted backups have no manifest.
			continue
		}
		manifests = append(manifests, *manifest)
	}
	if len(manifests) == 0 {
		return nil, ErrNoBackupsFound
	}

	slices.SortFunc(manifests, func(a, b Manifest) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(b.ID, a.ID)
	})
	return manifests, nil
}

// Prune removes all but the newest keep backups of a collection.
func (m *Manager) Prune(collection string, keep int) error {
	if keep < 0 {
		return errors.New("keep must be non-negative")
	}

	manifests, err := m.List(collection)
	if errors.Is(err, ErrNoBackupsFound) {
		return nil
	}
	if err != nil {
		return err
	}

	for i := keep; i < len(manifests); i++ {
		if err := os.RemoveAll(m.backupPath(collection, manifests[i].ID)); err != nil {
			return errors.Wrapf(err, "removing backup %s", manifests[i].ID)
		}
	}
	return nil
}

// Get returns the manifest of one backup.
func (m *Manager) Get(collection, id string) (*Manifest, error) {
	if err := checkName("collection", collection); err != nil {
		return nil, err
	}
	if err := checkName("backup ID", id); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(filepath.Join(m.backupPath(collection, id), manifestName))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, errors.Wrapf(ErrNoBackupsFound, "backup %s not found", id)
	}
	if err != nil {
		return nil, errors.Wrap(err, "reading manifest")
	}

	var manifest Manifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, errors.Wrap(err, "parsing manifest")
	}
	manifest.ID = id
	return &manifest, nil
}

func (m *Manager) collectionDir(collection string) string {
	return filepath.Join(m.rootDir, collection)
}

func (m *Manager) backupPath(collection, id string) string {
	return filepath.Join(m.collectionDir(collection), id)
}

// checkName rejects values that would escape the backup tree when used as
// a single path element.
func checkName(what, v string) error {
	if v == "" {
		return errors.Newf("%s is required", what)
	}
	if strings.ContainsAny(v, `/\`) || !filepath.IsLocal(v) {
		return errors.Wrapf(paths.ErrInvalidPath, "%s %q", what, v)
	}
	return nil
}

func hashBytes(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// copyFile copies src to dst and returns the SHA256 hash and mode of src.
func copyFile(src, dst string) (hash string, mode fs.FileMode, err error) {
	srcFile, err := os.Open(src)
	if err != nil {
		return "", 0, errors.Wrap(err, "opening source file")
	}
	defer srcFile.Close()

	srcInfo, err := srcFile.Stat()
	if err != nil {
		return "", 0, errors.Wrap(err, "stat source file")
	}
	mode = srcInfo.Mode()

	dstFile, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return "", 0, errors.Wrap(err, "creating destination file")
	}

	h := sha256.New()
	if _, err := io.Copy(io.MultiWriter(dstFile, h), srcFile); err != nil {
		dstFile.Close()
		return "", 0, errors.Wrap(err, "copying file")
	}
	if err := dstFile.Close(); err != nil {
		return "", 0, errors.Wrap(err, "closing destination file")
	}

	return hex.EncodeToString(h.Sum(nil)), mode, nil
}
