package doctor

import (
	"encoding/json"

	"github.com/thoreinstein/contentdef/internal/errors"
	"github.com/thoreinstein/contentdef/internal/paths"
)

// Fixer is an optional interface that checks can implement to support
// auto-remediation with "doctor --fix".
type Fixer interface {
	// CanFix reports whether the last Run found something fixable.
	CanFix() bool

	// Fix attempts to remediate the issues found by Run.
	Fix() []FixResult
}

// FixResult describes the outcome of an attempted fix operation.
type FixResult struct {
	// Path is the file or directory that was targeted for fixing.
	Path string `json:"path"`

	// Fixed indicates whether the fix was successfully applied.
	Fixed bool `json:"fixed"`

	// Description explains what was fixed or why it couldn't be fixed.
	Description string `json:"description"`

	// Error contains the error if the fix failed.
	Error error `json:"-"`
}

// MarshalJSON includes the error text, which encoding/json would
// otherwise render as an empty object.
func (r FixResult) MarshalJSON() ([]byte, error) {
	type plain FixResult
	out := struct {
		plain
		Error string `json:"error,omitempty"`
	}{plain: plain(r)}
	if r.Error != nil {
		out.Error = r.Error.Error()
	}
	return json.Marshal(out)
}

// DirFixer creates directories that a check found missing.
type DirFixer struct {
	missing []string
}

var _ Fixer = (*DirFixer)(nil)

// CanFix returns true if any directory is waiting to be created.
func (f *DirFixer) CanFix() bool {
	return len(f.missing) > 0
}

// Fix creates every missing directory with paths.DefaultDirPerm.
func (f *DirFixer) Fix() []FixResult {
	results := make([]FixResult, 0, len(f.missing))
	for _, dir := range f.missing {
		result := FixResult{Path: dir}
		if err := paths.EnsureDir(dir, paths.DefaultDirPerm); err != nil {
			result.Description = "failed to create directory"
			result.Error = errors.Wrapf(err, "creating %s", dir)
		} else {
			result.Fixed = true
			result.Description = "created directory"
		}
		results = append(results, result)
	}
	f.missing = nil
	return results
}

func (f *DirFixer) setMissing(dirs ...string) {
	f.missing = dirs
}
