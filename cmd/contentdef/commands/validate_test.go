package commands

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/contentdef/internal/errors"
	"github.com/thoreinstein/contentdef/internal/validator"
)

func TestValidate_AllValid(t *testing.T) {
	workspace(t)
	writePost(t, "hello.md", validPost)
	writePost(t, "2024/recap.md", validPost)

	out, _, err := run(t, "validate")
	require.NoError(t, err)
	assert.Contains(t, out, "2 file(s) checked, all valid")
}

func TestValidate_Invalid(t *testing.T) {
	workspace(t)
	writePost(t, "good.md", validPost)
	writePost(t, "bad.md", "---\ntitle: Hi\ndate: 2024-01-01\nlink: not a url\n---\n")
	writePost(t, "worse.md", "---\ndate: never\n---\n")

	out, _, err := run(t, "validate")
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrInvalidContent)
	assert.Equal(t, errors.ExitUser, errors.ExitCode(err))

	assert.Contains(t, out, filepath.Join("content", "posts", "bad.md"))
	assert.Contains(t, out, "link: malformed URL")
	assert.Contains(t, out, "title: missing required field")
	assert.Contains(t, out, "date: unparseable date")
	assert.Contains(t, out, "3 file(s) checked, 2 invalid")
}

func TestValidate_JSON(t *testing.T) {
	workspace(t)
	writePost(t, "bad.md", "---\ntitle: Hi\ndate: 2024-01-01\nlink: not a url\n---\n")

	out, _, err := run(t, "validate", "--json")
	require.Error(t, err)

	var result validator.Result
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, 1, result.Checked)
	require.Len(t, result.Issues, 1)
	assert.Equal(t, "link", result.Issues[0].Field)
	assert.Equal(t, validator.KindMalformedURL, result.Issues[0].Kind)
	assert.Equal(t, "posts", result.Issues[0].Collection)
}

func TestValidate_Paths(t *testing.T) {
	workspace(t)
	good := writePost(t, "good.md", validPost)
	writePost(t, "bad.md", "---\ntitle: \"\"\ndate: 2024-01-01\nlink: https://x.io\n---\n")
	require.NoError(t, os.MkdirAll("drafts", 0o755))
	require.NoError(t, os.WriteFile(filepath.Join("drafts", "x.md"), []byte(validPost), 0o644))

	out, _, err := run(t, "validate", good, "drafts")
	require.NoError(t, err, "only the good file and an out-of-collection file were named")
	assert.Contains(t, out, "not inside any configured collection directory")
	assert.Contains(t, out, "1 file(s) checked, all valid")
	assert.Contains(t, out, "1 warning(s)")

	_, _, err = run(t, "validate", filepath.Join("content", "posts"))
	assert.ErrorIs(t, err, errors.ErrInvalidContent)
}

func TestValidate_DirectorySkipsDotDirs(t *testing.T) {
	workspace(t)
	writePost(t, "good.md", validPost)
	writePost(t, filepath.Join(".drafts", "wip.md"), "---\ntitle: WIP\n---\n")

	out, _, err := run(t, "validate")
	require.NoError(t, err)
	assert.Contains(t, out, "1 file(s) checked, all valid")

	out, _, err = run(t, "validate", filepath.Join("content", "posts"))
	require.NoError(t, err, "a named directory is walked like its collection")
	assert.Contains(t, out, "1 file(s) checked, all valid")
}

func TestValidate_MissingPath(t *testing.T) {
	workspace(t)

	_, _, err := run(t, "validate", "nowhere.md")
	require.Error(t, err)
	assert.Equal(t, errors.ExitUser, errors.ExitCode(err))
}

func TestValidate_ContentDirOverride(t *testing.T) {
	workspace(t)
	path := filepath.Join("site", "posts", "bad.md")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("---\ntitle: Hi\n---\n"), 0o644))
	t.Setenv("CONTENTDEF_CONTENT_DIR", "site")

	_, _, err := run(t, "validate")
	assert.ErrorIs(t, err, errors.ErrInvalidContent)
}
