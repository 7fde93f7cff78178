// Package backup keeps copies of content files before contentdef
// overwrites them.
//
// Each backup is a directory named by its ID under the collection it
// belongs to:
//
//	$XDG_STATE_HOME/contentdef/backups/
//	└── {collection}/
//	    └── {id}/
//	        ├── manifest.json
//	        └── {copied files...}
//
// The manifest records every file's original absolute path, mode and
// SHA256 hash. [Manager.Restore] verifies the hashes before copying files
// back, so a damaged backup is never restored over good content.
//
// # Retention
//
// A Manager created with [WithRetentionCount] prunes the oldest backups of
// a collection after each successful [Manager.Backup]:
//
//	mgr := backup.NewManager(backup.WithRetentionCount(5))
//	manifest, err := mgr.Backup("posts", "post new --force", "content/posts/hello.md")
package backup
