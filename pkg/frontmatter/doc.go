// Package frontmatter parses and formats YAML front-matter in Markdown files.
//
// Front-matter is delimited by lines containing only "---" at the start of
// the document and at the end of the metadata block. The content between
// delimiters is YAML; everything after the closing delimiter is the body.
//
// # Basic Usage
//
//	var record map[string]any
//	body, err := frontmatter.MustParse(f, &record)
//	if err != nil {
//		return err
//	}
//
// # Error Handling
//
//   - [ErrMissingFrontmatter]: MustParse found no opening delimiter
//   - [ErrUnclosedFrontmatter]: an opening delimiter has no closing one
//   - [ErrInvalidYAML]: the metadata block is not valid YAML
//
// Both Unix (LF) and Windows (CRLF) line endings are handled.
package frontmatter
