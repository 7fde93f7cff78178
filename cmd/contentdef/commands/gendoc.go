package commands

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"

	"github.com/thoreinstein/contentdef/internal/errors"
	"github.com/thoreinstein/contentdef/internal/paths"
)

func newGenDocCmd() *cobra.Command {
	var (
		dir    string
		format string
	)

	c := &cobra.Command{
		Use:    "gen-doc",
		Short:  "Generate reference documentation for the CLI",
		Hidden: true,
		Args:   cobra.NoArgs,
		Annotations: map[string]string{
			configAnnotation: configSkip,
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			if dir == "" {
				return errors.NewUserError(errors.New("output directory is required"), "Pass --dir")
			}
			if err := paths.EnsureDir(dir, 0); err != nil {
				return errors.NewSystemError(errors.Wrap(err, "creating output directory"), "")
			}

			root := cmd.Root()
			root.DisableAutoGenTag = true

			var err error
			switch format {
			case "markdown":
				err = doc.GenMarkdownTreeCustom(root, dir, filePrepender, linkHandler)
			case "man":
				err = doc.GenManTree(root, &doc.GenManHeader{Title: "CONTENTDEF", Section: "1"}, dir)
			default:
				return errors.NewUserError(errors.Newf("unknown format %q (valid: markdown, man)", format), "")
			}
			if err != nil {
				return errors.NewSystemError(errors.Wrapf(err, "generating %s", format), "")
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Documentation generated in %s\n", dir)
			return nil
		},
	}

	c.Flags().StringVarP(&dir, "dir", "d", "", "output directory")
	c.Flags().StringVarP(&format, "format", "f", "markdown", "output format: markdown, man")
	return c
}

// filePrepender adds front-matter so the reference pages can live in a
// content collection of their own.
func filePrepender(filename string) string {
	base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	title := strings.ReplaceAll(base, "_", " ")

	return fmt.Sprintf(`---
title: %q
description: %q
---
`, title, "Reference for "+title)
}

func linkHandler(name string) string {
	base := strings.TrimSuffix(name, filepath.Ext(name))
	return "/docs/reference/" + strings.ToLower(base) + "/"
}
