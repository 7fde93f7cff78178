// Package config loads and validates contentdef's configuration file.
//
// # Configuration File
//
// The file is YAML. contentdef.yaml in the working directory is preferred;
// otherwise the per-user file under the XDG config home is used (see
// package paths). Without either, [Default] applies.
//
//	version: 1
//	content_dir: content     # "~/" is expanded
//	collections:
//	  posts:
//	    dir: posts           # relative to content_dir
//
// Every key can be overridden from the environment with the CONTENTDEF_
// prefix, for example CONTENTDEF_CONTENT_DIR=site/content.
//
// # Validation
//
// [Validate] returns every problem found. Collection keys must name a
// collection with a declared schema, and collection directories must be
// relative paths that stay inside content_dir:
//
//	if err := config.Check(cfg, registry); err != nil {
//		return err // wraps errors.ErrInvalidConfig
//	}
package config
