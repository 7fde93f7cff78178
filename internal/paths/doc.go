// Package paths resolves the file system locations contentdef reads from
// and writes to.
//
// The per-user config lives under the XDG config home (via
// github.com/adrg/xdg):
//
//	Linux:   ~/.config/contentdef/config.yaml
//	macOS:   ~/Library/Application Support/contentdef/config.yaml
//	Windows: %LOCALAPPDATA%\contentdef\config.yaml
//
// A contentdef.yaml in the working directory takes precedence.
//
// Collection directories are resolved with [CollectionDir]; configured
// directories are checked with [CheckRelative] so that a collection cannot
// point outside the content tree.
package paths
