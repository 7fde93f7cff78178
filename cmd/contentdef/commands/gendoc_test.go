package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/contentdef/pkg/frontmatter"
)

func TestGenDoc_Markdown(t *testing.T) {
	workspace(t)

	out, _, err := run(t, "gen-doc", "--dir", "docs")
	require.NoError(t, err)
	assert.Contains(t, out, "Documentation generated in docs")

	f, err := os.Open(filepath.Join("docs", "contentdef_post_new.md"))
	require.NoError(t, err)
	defer f.Close()

	var matter struct {
		Title       string `yaml:"title"`
		Description string `yaml:"description"`
	}
	require.NoError(t, frontmatter.ParseHeader(f, &matter))
	assert.Equal(t, "contentdef post new", matter.Title)
	assert.Equal(t, "Reference for contentdef post new", matter.Description)

	assert.NoFileExists(t, filepath.Join("docs", "contentdef_gen-doc.md"), "hidden commands are skipped")
}

func TestGenDoc_Man(t *testing.T) {
	workspace(t)

	_, _, err := run(t, "gen-doc", "--dir", "man", "--format", "man")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join("man", "contentdef.1"))
	assert.FileExists(t, filepath.Join("man", "contentdef-validate.1"))
}

func TestGenDoc_Errors(t *testing.T) {
	workspace(t)

	_, _, err := run(t, "gen-doc")
	assert.Error(t, err)

	_, _, err = run(t, "gen-doc", "--dir", "docs", "--format", "html")
	assert.Error(t, err)
}

func TestLinkHandler(t *testing.T) {
	assert.Equal(t, "/docs/reference/contentdef_post/", linkHandler("contentdef_post.md"))
}
