// Package editor launches the user's text editor on a freshly written post.
package editor

import (
	"context"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/thoreinstein/contentdef/internal/errors"
)

// EnvEditor overrides $EDITOR and $VISUAL for contentdef only.
const EnvEditor = "CONTENTDEF_EDITOR"

// Streams are the standard streams handed to the editor process.
type Streams struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// Open runs the preferred editor on path and waits for it to exit.
// Editor commands may carry arguments, e.g. "code --wait".
func Open(ctx context.Context, path string, s Streams) error {
	argv := command()
	argv = append(argv, path)

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Stdin = s.In
	cmd.Stdout = s.Out
	cmd.Stderr = s.Err

	if err := cmd.Run(); err != nil {
		return errors.Wrapf(err, "running editor %s", argv[0])
	}
	return nil
}

// command returns the editor argv. Fallback chain:
// $CONTENTDEF_EDITOR, $EDITOR, $VISUAL, nano, vi.
func command() []string {
	for _, env := range []string{EnvEditor, "EDITOR", "VISUAL"} {
		if fields := strings.Fields(os.Getenv(env)); len(fields) > 0 {
			return fields
		}
	}

	if _, err := exec.LookPath("nano"); err == nil {
		return []string{"nano"}
	}
	return []string{"vi"}
}
