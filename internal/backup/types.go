package backup

import (
	"io/fs"
	"time"

	"github.com/thoreinstein/contentdef/internal/errors"
)

// ManifestVersion is the manifest format version.
const ManifestVersion = 1

// DefaultRetentionCount is the number of backups kept per collection when
// no retention is configured.
const DefaultRetentionCount = 5

// manifestName is the manifest file inside each backup directory.
const manifestName = "manifest.json"

// Sentinel errors for backup operations.
var (
	// ErrNoBackupsFound indicates no backups exist for the collection, or
	// the requested ID does not exist.
	ErrNoBackupsFound = errors.New("no backups found")

	// ErrBackupCorrupted indicates a backed up file no longer matches the
	// hash recorded in its manifest.
	ErrBackupCorrupted = errors.New("backup corrupted")
)

// Manifest describes one backup. It is stored as manifest.json in the
// backup directory.
type Manifest struct {
	Version    int       `json:"version"`
	CreatedAt  time.Time `json:"created_at"`
	Collection string    `json:"collection"`
	// Reason is the operation that triggered the backup.
	Reason string `json:"reason,omitempty"`
	Files  []File `json:"files"`
	// ToolVersion is the contentdef version that wrote the backup.
	ToolVersion string `json:"tool_version"`

	// ID is the directory name of the backup. It is populated when loading
	// from disk and not stored in JSON.
	ID string `json:"-"`
}

// File describes a single backed up file.
type File struct {
	// OriginalPath is the absolute path the file was copied from.
	OriginalPath string `json:"original_path"`

	// RelPath is the location of the copy inside the backup directory.
	RelPath string `json:"rel_path"`

	SHA256Hash string      `json:"sha256_hash"`
	Mode       fs.FileMode `json:"mode"`
}
