// Package prompt provides line-based CLI prompts for when no terminal UI
// is available.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/thoreinstein/contentdef/internal/errors"
)

// Sentinel errors for selection.
var (
	ErrNoChoices          = errors.New("nothing to select from")
	ErrInvalidSelection   = errors.New("invalid selection")
	ErrSelectionCancelled = errors.New("selection cancelled")
)

// Selector asks the user to pick one entry from a numbered list.
type Selector struct {
	reader io.Reader
	writer io.Writer
}

// NewSelector creates a Selector reading answers from r and writing the
// prompt to w.
func NewSelector(r io.Reader, w io.Writer) *Selector {
	return &Selector{reader: r, writer: w}
}

// Select prints header and the numbered labels and returns the zero-based
// index of the chosen label.
//
// Returns:
//   - ErrNoChoices if labels is empty
//   - 0 without prompting if only one label exists
//   - 0 when the answer is empty
//   - ErrInvalidSelection if the answer is not a number in range
//   - ErrSelectionCancelled if input ends before an answer (e.g., Ctrl+D)
func (s *Selector) Select(header string, labels []string) (int, error) {
	if len(labels) == 0 {
		return 0, ErrNoChoices
	}
	if len(labels) == 1 {
		return 0, nil
	}

	fmt.Fprintln(s.writer, header)
	for i, label := range labels {
		fmt.Fprintf(s.writer, "  [%d] %s\n", i+1, label)
	}
	fmt.Fprint(s.writer, "Select [1]: ")

	input, err := bufio.NewReader(s.reader).ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return 0, errors.Wrap(err, "reading selection")
		}
		if input == "" {
			return 0, ErrSelectionCancelled
		}
	}

	input = strings.TrimSpace(input)
	if input == "" {
		return 0, nil
	}

	selection, err := strconv.Atoi(input)
	if err != nil {
		return 0, errors.Wrapf(ErrInvalidSelection, "%q is not a number", input)
	}
	if selection < 1 || selection > len(labels) {
		return 0, errors.Wrapf(ErrInvalidSelection, "%d is out of range [1-%d]", selection, len(labels))
	}
	return selection - 1, nil
}
