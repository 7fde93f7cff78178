package commands

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/contentdef/internal/content"
	"github.com/thoreinstein/contentdef/internal/errors"
	"github.com/thoreinstein/contentdef/internal/validator"
)

func newValidateCmd(a *app) *cobra.Command {
	var asJSON bool

	c := &cobra.Command{
		Use:   "validate [path...]",
		Short: "Validate content front-matter against collection schemas",
		Long: `Validate every entry of every configured collection, or only the given
files and directories.

Each file's front-matter is checked field by field and every problem is
reported, not just the first. Paths outside all configured collection
directories are reported as warnings and skipped.

Exit codes:
  0 - All entries are valid
  1 - At least one entry is invalid`,
		Example: `  # Validate the whole content tree
  contentdef validate

  # Validate a single post, machine-readable
  contentdef validate content/posts/hello.md --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := a.validate(args)
			if err != nil {
				return err
			}

			format := validator.FormatText
			if asJSON {
				format = validator.FormatJSON
			}
			if err := validator.NewReporter(cmd.OutOrStdout(), format).Report(result); err != nil {
				return errors.NewSystemError(err, "")
			}

			if result.HasErrors() {
				return errors.NewExitError(errors.ErrInvalidContent, errors.ExitUser)
			}
			return nil
		},
	}

	c.Flags().BoolVar(&asJSON, "json", false, "output results as JSON")
	return c
}

// validate loads the requested content and folds it into a Result.
func (a *app) validate(args []string) (*validator.Result, error) {
	l := a.loader()
	result := &validator.Result{}

	if len(args) == 0 {
		items, err := l.LoadAll()
		if err != nil {
			return nil, errors.NewSystemError(err, "")
		}
		record(result, items)
		return result, nil
	}

	for _, arg := range args {
		files, err := contentFiles(arg)
		if err != nil {
			return nil, errors.NewUserError(err, "Check that the path exists")
		}
		for _, f := range files {
			name, ok := l.CollectionFor(f)
			if !ok {
				result.AddWarning(f, "not inside any configured collection directory")
				continue
			}
			record(result, []content.Item{l.LoadFile(name, f)})
		}
	}
	return result, nil
}

func record(result *validator.Result, items []content.Item) {
	for _, it := range items {
		result.Record(it.Path, it.Collection, it.Err)
	}
}

// contentFiles expands path into the content files it names. A file is
// returned as given; a directory is walked like a collection directory.
func contentFiles(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	if !info.IsDir() {
		return []string{path}, nil
	}

	return content.Files(path)
}
