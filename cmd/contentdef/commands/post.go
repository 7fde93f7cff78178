package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/contentdef/internal/content"
	"github.com/thoreinstein/contentdef/internal/editor"
	"github.com/thoreinstein/contentdef/internal/errors"
	"github.com/thoreinstein/contentdef/internal/logging"
	"github.com/thoreinstein/contentdef/internal/paths"
	"github.com/thoreinstein/contentdef/internal/posts"
	"github.com/thoreinstein/contentdef/internal/schema"
	"github.com/thoreinstein/contentdef/internal/validator"
	"github.com/thoreinstein/contentdef/pkg/fileutil"
	"github.com/thoreinstein/contentdef/pkg/frontmatter"
)

func newPostCmd(a *app) *cobra.Command {
	c := &cobra.Command{
		Use:   "post",
		Short: "Author and inspect posts",
		Long:  `Create new posts that satisfy the posts schema, list them, or show one.`,
	}
	c.AddCommand(newPostNewCmd(a), newPostListCmd(a), newPostShowCmd(a))
	return c
}

type postNewOptions struct {
	title   string
	link    string
	date    string
	summary string
	force   bool
	edit    bool
}

func newPostNewCmd(a *app) *cobra.Command {
	var opts postNewOptions

	c := &cobra.Command{
		Use:   "new",
		Short: "Write a new post",
		Long: `Validate the given fields against the posts schema and write
<content_dir>/<posts dir>/<slug>.md.

The slug is derived from the title. An existing file is left untouched
unless --force is given. With --edit the file is opened in $EDITOR and
validated again afterwards.`,
		Example: `  contentdef post new --title "Release 1.0" --link https://example.com/1.0
  contentdef post new --title "Recap" --link https://example.com/r --date 2024-01-01 --summary "What happened."`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.newPost(cmd, opts)
		},
	}

	f := c.Flags()
	f.StringVarP(&opts.title, "title", "t", "", "post title (required)")
	f.StringVarP(&opts.link, "link", "l", "", "absolute URL of the full story (required)")
	f.StringVarP(&opts.date, "date", "d", "", "publication date (default: now)")
	f.StringVarP(&opts.summary, "summary", "s", "", "summary written as the post body")
	f.BoolVarP(&opts.force, "force", "f", false, "overwrite an existing post")
	f.BoolVarP(&opts.edit, "edit", "e", false, "open the new post in $EDITOR")
	return c
}

func (a *app) newPost(cmd *cobra.Command, opts postNewOptions) error {
	out := cmd.OutOrStdout()
	logger := logging.FromContext(cmd.Context())

	date := opts.date
	if date == "" {
		date = time.Now().UTC().Format(time.RFC3339)
	}
	post, err := posts.Validate(a.registry, map[string]any{
		posts.FieldTitle: opts.title,
		posts.FieldDate:  date,
		posts.FieldLink:  opts.link,
	})
	if err != nil {
		result := &validator.Result{}
		result.Record("", posts.Name, err)
		_ = validator.NewReporter(cmd.ErrOrStderr(), validator.FormatText).Report(result)
		return errors.NewUserError(errors.Wrap(err, "invalid post"), postNewHint(err))
	}

	name := post.FileName()
	if name == "" {
		return errors.NewUserError(errors.Newf("title %q has no characters usable in a file name", post.Title), "")
	}

	dir, err := a.loader().Dir(posts.Name)
	if err != nil {
		return errors.NewConfigError(err)
	}
	if err := paths.EnsureDir(dir, 0); err != nil {
		return errors.NewSystemError(errors.Wrap(err, "creating posts directory"), "")
	}
	path := filepath.Join(dir, name)

	if _, err := os.Stat(path); err == nil {
		if !opts.force {
			fmt.Fprintf(out, "Skipping existing post: %s%s\n", path, existingTitle(path))
			return nil
		}
		if a.cfg.Backups > 0 {
			manifest, err := a.backups().Backup(posts.Name, "post new --force", path)
			if err != nil {
				return errors.NewSystemError(errors.Wrap(err, "backing up existing post"), "Set backups: 0 in the config to skip backups")
			}
			logger.Info("post backed up", "path", path, "backup", manifest.ID)
			fmt.Fprintf(out, "Backed up %s (backup %s)\n", path, manifest.ID)
		}
	}

	data, err := posts.Render(post, opts.summary)
	if err != nil {
		return errors.NewSystemError(err, "")
	}
	if err := fileutil.AtomicWriteFile(path, data, 0o644); err != nil {
		return errors.NewSystemError(err, "")
	}
	logger.Info("post written", "path", path, "title", post.Title)
	fmt.Fprintf(out, "Created %s\n", path)

	if !opts.edit {
		return nil
	}
	if err := editor.Open(cmd.Context(), path, editor.Streams{
		In:  cmd.InOrStdin(),
		Out: out,
		Err: cmd.ErrOrStderr(),
	}); err != nil {
		return errors.NewSystemError(err, "Set $EDITOR or $CONTENTDEF_EDITOR")
	}

	item := a.loader().LoadFile(posts.Name, path)
	if item.Err != nil {
		result := &validator.Result{}
		result.Record(item.Path, item.Collection, item.Err)
		_ = validator.NewReporter(out, validator.FormatText).Report(result)
		return errors.NewExitError(errors.ErrInvalidContent, errors.ExitUser)
	}
	return nil
}

// postNewFlagHints pairs each posts field with advice on its flag, in
// field order.
var postNewFlagHints = []struct {
	field string
	hint  string
}{
	{posts.FieldTitle, "Pass a non-blank --title"},
	{posts.FieldDate, "Pass --date as YYYY-MM-DD or RFC 3339"},
	{posts.FieldLink, "Pass --link as an absolute URL, e.g. https://example.com/story"},
}

// postNewHint points at the flag behind the first failing field.
func postNewHint(err error) string {
	var verr *schema.ValidationError
	if errors.As(err, &verr) {
		for _, h := range postNewFlagHints {
			if _, ok := verr.Field(h.field); ok {
				return h.hint
			}
		}
	}
	return "Run: contentdef schema show posts"
}

// existingTitle reads only the header of an existing post to name it in
// the skip message.
func existingTitle(path string) string {
	f, err := os.Open(path)
	if err != nil {
		return ""
	}
	defer f.Close()

	var matter struct {
		Title string `yaml:"title"`
	}
	if err := frontmatter.ParseHeader(f, &matter); err != nil || matter.Title == "" {
		return ""
	}
	return fmt.Sprintf(" (%q)", matter.Title)
}

// storedPost is a valid post together with where it lives.
type storedPost struct {
	Slug string           `json:"slug" yaml:"slug"`
	Path string           `json:"path" yaml:"path"`
	Post *posts.PostEntry `json:"post" yaml:"post"`
}

// loadPosts returns the valid posts, newest first. Invalid files are
// logged and skipped.
func (a *app) loadPosts(cmd *cobra.Command) ([]storedPost, error) {
	logger := logging.FromContext(cmd.Context())

	items, err := a.loader().LoadCollection(posts.Name)
	if err != nil {
		return nil, errors.NewSystemError(err, "")
	}

	var out []storedPost
	for _, it := range items {
		if !it.Valid() {
			logger.Warn("skipping invalid post", "path", it.Path, "error", it.Err)
			continue
		}
		p, err := posts.Decode(it.Entry)
		if err != nil {
			return nil, errors.NewSystemError(err, "")
		}
		out = append(out, storedPost{Slug: slugOf(it), Path: it.Path, Post: p})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Post.Date.After(out[j].Post.Date)
	})
	return out, nil
}

func slugOf(it content.Item) string {
	base := filepath.Base(it.Path)
	return base[:len(base)-len(filepath.Ext(base))]
}

func newPostListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List valid posts, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			stored, err := a.loadPosts(cmd)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(stored) == 0 {
				fmt.Fprintln(out, "No posts found.")
				return nil
			}
			for _, sp := range stored {
				fmt.Fprintf(out, "%s  %-40s %s\n", sp.Post.Date.Format(time.DateOnly), sp.Slug, sp.Post.Title)
			}
			return nil
		},
	}
}
