package logging

import (
	"io"
	"os"

	"golang.org/x/term"

	"github.com/thoreinstein/contentdef/internal/errors"
)

// ColorMode selects when ANSI colour is written.
type ColorMode string

const (
	// ColorAuto colours terminals unless the environment says otherwise.
	ColorAuto ColorMode = "auto"
	// ColorAlways colours every writer.
	ColorAlways ColorMode = "always"
	// ColorNever disables colour.
	ColorNever ColorMode = "never"
)

// ParseColorMode parses a --color value. The empty string is ColorAuto.
func ParseColorMode(s string) (ColorMode, error) {
	switch m := ColorMode(s); m {
	case "":
		return ColorAuto, nil
	case ColorAuto, ColorAlways, ColorNever:
		return m, nil
	default:
		return "", errors.Newf("invalid color mode %q (valid: auto, always, never)", s)
	}
}

// Enabled reports whether output to w should be coloured under m.
func (m ColorMode) Enabled(w io.Writer) bool {
	switch m {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	default:
		return SupportsColor(w)
	}
}

// IsTTY returns true if the given writer is a terminal.
// It supports os.File and any wrapper that provides an Fd() method.
func IsTTY(w io.Writer) bool {
	if f, ok := w.(interface{ Fd() uintptr }); ok {
		return term.IsTerminal(int(f.Fd()))
	}
	return false
}

// SupportsColor reports whether w should get ANSI colour in auto mode.
// NO_COLOR (https://no-color.org) and TERM=dumb disable colour;
// a non-empty FORCE_COLOR enables it for non-terminals.
func SupportsColor(w io.Writer) bool {
	return supportsColor(IsTTY(w))
}

func supportsColor(isTTY bool) bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	if os.Getenv("FORCE_COLOR") != "" {
		return true
	}
	return isTTY
}
