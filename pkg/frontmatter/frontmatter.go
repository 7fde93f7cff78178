package frontmatter

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

// Sentinel errors for front-matter parsing.
var (
	// ErrMissingFrontmatter is returned by MustParse when no frontmatter is found.
	ErrMissingFrontmatter = errors.New("missing frontmatter")

	// ErrUnclosedFrontmatter is returned when the closing delimiter is absent.
	ErrUnclosedFrontmatter = errors.New("missing closing frontmatter delimiter")

	// ErrInvalidYAML is returned when the frontmatter is not valid YAML.
	ErrInvalidYAML = errors.New("invalid YAML in frontmatter")
)

const delimiter = "---"

// Parse extracts YAML frontmatter into matter and returns the body.
// If no frontmatter is present, matter is untouched and the full content is
// returned as body.
func Parse[T any](r io.Reader, matter *T) (body []byte, err error) {
	return parse(r, matter, false)
}

// MustParse is like Parse but returns ErrMissingFrontmatter if the content
// does not start with a frontmatter block.
func MustParse[T any](r io.Reader, matter *T) (body []byte, err error) {
	return parse(r, matter, true)
}

func parse[T any](r io.Reader, matter *T, required bool) ([]byte, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "reading content")
	}

	fm, body, err := split(content)
	if errors.Is(err, ErrMissingFrontmatter) && !required {
		return content, nil
	}
	if err != nil {
		return nil, err
	}

	if err := yaml.Unmarshal(fm, matter); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidYAML, err)
	}
	return body, nil
}

// split separates the metadata block from the body. Lines keep their
// original endings.
func split(content []byte) (matter, body []byte, err error) {
	lines := bytes.SplitAfter(content, []byte("\n"))
	if !isDelimiter(lines[0]) {
		return nil, nil, ErrMissingFrontmatter
	}
	for i := 1; i < len(lines); i++ {
		if isDelimiter(lines[i]) {
			return bytes.Join(lines[1:i], nil), bytes.Join(lines[i+1:], nil), nil
		}
	}
	return nil, nil, ErrUnclosedFrontmatter
}

func isDelimiter(line []byte) bool {
	return strings.TrimRight(string(line), "\r\n") == delimiter
}

// ParseHeader decodes only the metadata block and stops reading at its
// closing delimiter. Content without a metadata block leaves matter untouched.
func ParseHeader(r io.Reader, matter any) error {
	scanner := bufio.NewScanner(r)
	if !scanner.Scan() {
		return errors.Wrap(scanner.Err(), "reading header")
	}
	if !isDelimiter(scanner.Bytes()) {
		return nil
	}

	var buf bytes.Buffer
	for scanner.Scan() {
		if isDelimiter(scanner.Bytes()) {
			if err := yaml.Unmarshal(buf.Bytes(), matter); err != nil {
				return fmt.Errorf("%w: %v", ErrInvalidYAML, err)
			}
			return nil
		}
		buf.Write(scanner.Bytes())
		buf.WriteByte('\n')
	}
	if err := scanner.Err(); err != nil {
		return errors.Wrap(err, "reading header")
	}
	return ErrUnclosedFrontmatter
}

// Format serializes matter to YAML wrapped in "---" delimiters, followed by
// a blank line and the body.
func Format(matter any, body string) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(delimiter + "\n")

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(matter); err != nil {
		return nil, errors.Wrap(err, "encoding frontmatter")
	}
	if err := enc.Close(); err != nil {
		return nil, errors.Wrap(err, "encoding frontmatter")
	}

	buf.WriteString(delimiter + "\n")
	if body != "" {
		buf.WriteString("\n")
		buf.WriteString(body)
		if !strings.HasSuffix(body, "\n") {
			buf.WriteString("\n")
		}
	}

	return buf.Bytes(), nil
}
