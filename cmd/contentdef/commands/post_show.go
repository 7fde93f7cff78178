package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/ktr0731/go-fuzzyfinder"
	"github.com/spf13/cobra"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/contentdef/internal/errors"
	"github.com/thoreinstein/contentdef/internal/prompt"
)

// errPostNotFound is returned for a slug with no valid post behind it.
var errPostNotFound = errors.New("post not found")

func newPostShowCmd(a *app) *cobra.Command {
	var format string

	c := &cobra.Command{
		Use:   "show [slug]",
		Short: "Show a valid post",
		Long: `Show one valid post by slug (its file name without .md).

Without a slug, pick a post interactively: a fuzzy finder in a terminal,
otherwise a numbered list answered on stdin.`,
		Example: `  contentdef post show release-10
  contentdef post show release-10 --format json
  contentdef post show`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			stored, err := a.loadPosts(cmd)
			if err != nil {
				return err
			}

			var sp *storedPost
			if len(args) == 1 {
				sp = findPost(stored, args[0])
				if sp == nil {
					return errors.NewUserError(errors.Wrapf(errPostNotFound, "%q", args[0]), "Run: contentdef post list")
				}
			} else {
				if isInteractive(cmd.InOrStdin()) {
					sp, err = pickPost(stored)
				} else {
					sp, err = promptPost(cmd, stored)
				}
				if err != nil || sp == nil {
					return err
				}
			}

			return writePost(cmd.OutOrStdout(), sp, format)
		},
	}

	c.Flags().StringVarP(&format, "format", "f", formatText, "output format: text, json, yaml")
	return c
}

func findPost(stored []storedPost, slug string) *storedPost {
	for i := range stored {
		if stored[i].Slug == slug {
			return &stored[i]
		}
	}
	return nil
}

func isInteractive(in io.Reader) bool {
	f, ok := in.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

var errNoPosts = errors.New("no valid posts found")

// pickPost runs the fuzzy finder. Aborting returns nil without error.
func pickPost(stored []storedPost) (*storedPost, error) {
	if len(stored) == 0 {
		return nil, errors.NewUserError(errNoPosts, "Run: contentdef validate")
	}

	idx, err := fuzzyfinder.Find(
		stored,
		func(i int) string {
			return postLabel(&stored[i])
		},
		fuzzyfinder.WithPreviewWindow(func(i, _, _ int) string {
			if i == -1 {
				return ""
			}
			return postText(&stored[i])
		}),
	)
	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "interactive selection failed")
	}
	return &stored[idx], nil
}

// promptPost asks for a post on the command's input stream. Closing the
// input returns nil without error.
func promptPost(cmd *cobra.Command, stored []storedPost) (*storedPost, error) {
	labels := make([]string, len(stored))
	for i := range stored {
		labels[i] = postLabel(&stored[i])
	}

	idx, err := prompt.NewSelector(cmd.InOrStdin(), cmd.ErrOrStderr()).Select("Select a post:", labels)
	switch {
	case errors.Is(err, prompt.ErrNoChoices):
		return nil, errors.NewUserError(errNoPosts, "Run: contentdef validate")
	case errors.Is(err, prompt.ErrSelectionCancelled):
		return nil, nil
	case errors.Is(err, prompt.ErrInvalidSelection):
		return nil, errors.NewUserError(err, "")
	case err != nil:
		return nil, errors.NewSystemError(err, "")
	}
	return &stored[idx], nil
}

func postLabel(sp *storedPost) string {
	return sp.Post.Date.Format(time.DateOnly) + "  " + sp.Post.Title
}

func postText(sp *storedPost) string {
	return fmt.Sprintf("Title: %s\nDate:  %s\nLink:  %s\nFile:  %s\n",
		sp.Post.Title,
		sp.Post.Date.Format(time.RFC3339),
		sp.Post.Link,
		sp.Path,
	)
}

func writePost(w io.Writer, sp *storedPost, format string) error {
	switch format {
	case formatText:
		_, err := io.WriteString(w, postText(sp))
		return err
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return errors.Wrap(enc.Encode(sp), "encoding JSON")
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(sp); err != nil {
			return errors.Wrap(err, "encoding YAML")
		}
		return errors.Wrap(enc.Close(), "encoding YAML")
	default:
		return errors.NewUserError(errors.Newf("unknown format %q (valid: text, json, yaml)", format), "")
	}
}
