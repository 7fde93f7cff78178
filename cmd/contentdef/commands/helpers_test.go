package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/adrg/xdg"
	"github.com/fatih/color"
	"github.com/stretchr/testify/require"
)

// workspace runs the test inside an empty site directory with no user
// configuration and no contentdef environment overrides.
func workspace(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, ".xdg"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(dir, ".state"))
	xdg.Reload()
	t.Cleanup(xdg.Reload)
	for _, k := range []string{EnvDebug, "CONTENTDEF_CONTENT_DIR", "CONTENTDEF_VERSION", "CONTENTDEF_BACKUPS", "FORCE_COLOR"} {
		t.Setenv(k, "")
	}

	noColor := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = noColor })
	return dir
}

// run executes one CLI invocation and returns stdout, stderr and the error.
func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	return runWithInput(t, "", args...)
}

// runWithInput is run with stdin reading from input.
func runWithInput(t *testing.T, input string, args ...string) (string, string, error) {
	t.Helper()
	root := NewRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetIn(strings.NewReader(input))
	root.SetArgs(args)
	err := root.ExecuteContext(t.Context())
	return out.String(), errOut.String(), err
}

func writePost(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join("content", "posts", name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

const validPost = `---
title: Hello
date: 2024-01-01
link: https://example.com/hello
---

Body
`
