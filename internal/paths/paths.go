package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/cockroachdb/errors"
)

// AppName names the per-user config directory.
const AppName = "contentdef"

// ConfigFileName is the config file name inside ConfigDir.
const ConfigFileName = "config.yaml"

// ProjectConfigName is the config file looked up in the working directory.
const ProjectConfigName = "contentdef.yaml"

// Sentinel errors for path resolution.
var (
	// ErrHomeDirNotFound indicates the user's home directory could not be determined.
	ErrHomeDirNotFound = errors.New("home directory not found")

	// ErrInvalidPath indicates the provided path is malformed or escapes its root.
	ErrInvalidPath = errors.New("invalid path")
)

// DefaultDirPerm is used for directories created for content and config.
const DefaultDirPerm = 0o755

// EnsureDir creates the directory and any parents. A zero perm means
// DefaultDirPerm. It is a no-op when the directory exists.
func EnsureDir(path string, perm os.FileMode) error {
	if perm == 0 {
		perm = DefaultDirPerm
	}
	return os.MkdirAll(path, perm)
}

// ResolveHome returns the user's home directory.
func ResolveHome() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(ErrHomeDirNotFound, err.Error())
	}
	return home, nil
}

// ExpandHome replaces a leading "~/" in p with the home directory.
func ExpandHome(p string) (string, error) {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p, nil
	}
	home, err := ResolveHome()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~")), nil
}

// ConfigHome returns the XDG config home directory.
func ConfigHome() string {
	return xdg.ConfigHome
}

// ConfigDir returns <ConfigHome>/contentdef.
func ConfigDir() string {
	return filepath.Join(ConfigHome(), AppName)
}

// ConfigFile returns the per-user config file path.
func ConfigFile() string {
	return filepath.Join(ConfigDir(), ConfigFileName)
}

// StateHome returns the XDG state home directory.
func StateHome() string {
	return xdg.StateHome
}

// BackupDir returns <StateHome>/contentdef/backups, where overwritten
// content files are kept.
func BackupDir() string {
	return filepath.Join(StateHome(), AppName, "backups")
}

// CheckRelative reports ErrInvalidPath unless p is a non-empty relative
// path that stays inside the directory it is joined to.
func CheckRelative(p string) error {
	if strings.TrimSpace(p) == "" {
		return errors.Wrap(ErrInvalidPath, "empty")
	}
	if filepath.IsAbs(p) {
		return errors.Wrapf(ErrInvalidPath, "%q is absolute", p)
	}
	if !filepath.IsLocal(p) {
		return errors.Wrapf(ErrInvalidPath, "%q leaves its parent directory", p)
	}
	return nil
}

// CollectionDir joins root, the content directory and a collection's
// directory. An absolute contentDir is used as given.
func CollectionDir(root, contentDir, dir string) string {
	if filepath.IsAbs(contentDir) {
		return filepath.Join(contentDir, dir)
	}
	return filepath.Join(root, contentDir, dir)
}
