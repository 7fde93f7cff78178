package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/contentdef/internal/backup"
	"github.com/thoreinstein/contentdef/internal/errors"
	"github.com/thoreinstein/contentdef/internal/posts"
)

func newBackupCmd(a *app) *cobra.Command {
	var collection string

	c := &cobra.Command{
		Use:   "backup",
		Short: "Manage copies of overwritten content",
		Long: `contentdef keeps a copy of every file it overwrites ("post new --force")
under $XDG_STATE_HOME/contentdef/backups. The number of copies kept per
collection is set by "backups" in the config file.`,
		Annotations: map[string]string{
			configAnnotation: configNoCheck,
		},
	}
	c.PersistentFlags().StringVarP(&collection, "collection", "c", posts.Name, "collection the backups belong to")

	c.AddCommand(
		newBackupListCmd(a, &collection),
		newBackupRestoreCmd(a, &collection),
		newBackupPruneCmd(a, &collection),
	)
	return c
}

// backupInfo is one row of "backup list --json".
type backupInfo struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Reason    string    `json:"reason,omitempty"`
	Files     []string  `json:"files"`
}

func newBackupListCmd(a *app, collection *string) *cobra.Command {
	var asJSON bool

	c := &cobra.Command{
		Use:   "list",
		Short: "List backups, newest first",
		Args:  cobra.NoArgs,
		Annotations: map[string]string{
			configAnnotation: configNoCheck,
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.checkCollection(*collection); err != nil {
				return err
			}
			manifests, err := a.backups().List(*collection)
			if err != nil && !errors.Is(err, backup.ErrNoBackupsFound) {
				return errors.NewSystemError(err, "")
			}

			if asJSON {
				return writeBackupJSON(cmd.OutOrStdout(), manifests)
			}
			return writeBackupTable(cmd.OutOrStdout(), manifests)
		},
	}
	c.Flags().BoolVar(&asJSON, "json", false, "output as JSON")
	return c
}

func writeBackupJSON(w io.Writer, manifests []backup.Manifest) error {
	out := make([]backupInfo, 0, len(manifests))
	for _, m := range manifests {
		info := backupInfo{ID: m.ID, CreatedAt: m.CreatedAt, Reason: m.Reason}
		for _, f := range m.Files {
			info.Files = append(info.Files, f.OriginalPath)
		}
		out = append(out, info)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return errors.Wrap(enc.Encode(out), "encoding JSON")
}

func writeBackupTable(w io.Writer, manifests []backup.Manifest) error {
	if len(manifests) == 0 {
		fmt.Fprintln(w, "No backups found.")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tCREATED\tFILES\tREASON")
	for _, m := range manifests {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", m.ID, m.CreatedAt.Local().Format(time.DateTime), len(m.Files), m.Reason)
	}
	return tw.Flush()
}

func newBackupRestoreCmd(a *app, collection *string) *cobra.Command {
	return &cobra.Command{
		Use:   "restore <id>",
		Short: "Copy the files of a backup back to where they were",
		Long: `Restore every file of one backup to its original path, overwriting the
current content. Backups are verified against their recorded hashes first;
a damaged backup restores nothing.`,
		Example: `  contentdef backup list
  contentdef backup restore 20260102T030405`,
		Args: cobra.ExactArgs(1),
		Annotations: map[string]string{
			configAnnotation: configNoCheck,
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.checkCollection(*collection); err != nil {
				return err
			}
			restored, err := a.backups().Restore(*collection, args[0])
			switch {
			case errors.Is(err, backup.ErrNoBackupsFound):
				return errors.NewUserError(err, "Run: contentdef backup list")
			case err != nil:
				return errors.NewSystemError(err, "")
			}

			for _, p := range restored {
				fmt.Fprintf(cmd.OutOrStdout(), "Restored %s\n", p)
			}
			return nil
		},
	}
}

func newBackupPruneCmd(a *app, collection *string) *cobra.Command {
	var keep int

	c := &cobra.Command{
		Use:   "prune",
		Short: "Delete all but the newest backups",
		Args:  cobra.NoArgs,
		Annotations: map[string]string{
			configAnnotation: configNoCheck,
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.checkCollection(*collection); err != nil {
				return err
			}
			if keep < 0 {
				return errors.NewUserError(errors.New("--keep must be >= 0"), "")
			}
			if err := a.backups().Prune(*collection, keep); err != nil {
				return errors.NewSystemError(err, "")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Kept at most %d backup(s) of %s\n", keep, *collection)
			return nil
		},
	}
	c.Flags().IntVar(&keep, "keep", 0, "number of backups to keep")
	return c
}

// checkCollection turns an unregistered collection name into a user error.
func (a *app) checkCollection(name string) error {
	if _, err := a.registry.Export(name); err != nil {
		return errors.NewUserError(err, "Run: contentdef schema list")
	}
	return nil
}
