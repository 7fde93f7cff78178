// Package content discovers entries on disk and validates them against the
// collection registry.
//
// Each configured collection maps to a directory under content_dir. Every
// Markdown file below it is read (bounded by fileutil.MaxFileSize), its
// YAML front-matter decoded into an untyped record, and the record handed
// to [collection.Registry.Validate]. Files are processed one at a time in
// lexical order so results are deterministic.
//
// A file that cannot be read or parsed yields an [Item] whose Err is a
// [*ParseError]; a file whose front-matter violates the schema yields an
// Item whose Err is a *schema.ValidationError. Neither stops the walk.
package content
