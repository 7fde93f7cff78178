// Package commands implements the CLI commands for contentdef.
package commands

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/contentdef/cmd"
	"github.com/thoreinstein/contentdef/internal/backup"
	"github.com/thoreinstein/contentdef/internal/collection"
	"github.com/thoreinstein/contentdef/internal/config"
	"github.com/thoreinstein/contentdef/internal/content"
	"github.com/thoreinstein/contentdef/internal/errors"
	"github.com/thoreinstein/contentdef/internal/logging"
	"github.com/thoreinstein/contentdef/internal/posts"
)

// EnvDebug raises verbosity when no -v flag is given: "1"/"true" for
// Debug, "2"/"trace" for Trace.
const EnvDebug = "CONTENTDEF_DEBUG"

// configAnnotation controls how much configuration a command needs.
const configAnnotation = "contentdef/config"

const (
	// configSkip commands run without loading any configuration.
	configSkip = "skip"
	// configNoCheck commands load configuration but tolerate invalid values.
	configNoCheck = "nocheck"
)

// app is the state shared by every command of one invocation.
type app struct {
	verbosity  int
	quiet      bool
	logFormat  string
	logFile    string
	colorMode  string
	configPath string

	registry *collection.Registry
	cfg      *config.Config
	logger   *slog.Logger
	closers  []io.Closer
}

// newRegistry declares every collection contentdef knows about.
func newRegistry() (*collection.Registry, error) {
	return collection.New(posts.Definition())
}

// NewRootCmd builds the full command tree.
func NewRootCmd() *cobra.Command {
	a := &app{logger: logging.NewDiscard()}

	rootCmd := &cobra.Command{
		Use:   "contentdef",
		Short: "Validate and author schema-checked static site content",
		Long: `contentdef checks the front-matter of static site content against
statically declared collection schemas.

Every post in the "posts" collection must carry a title, a date and an
absolute link. Use "contentdef validate" in CI to reject malformed entries
and "contentdef post new" to author entries that are valid by construction.`,
		Example: `  # Validate every configured collection
  contentdef validate

  # Show the posts schema as TOML
  contentdef schema show posts --format toml

  # Author a new post
  contentdef post new --title "Hello" --link https://example.com/hello

  See Also: contentdef config show`,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.setupLogging(cmd); err != nil {
				return err
			}
			return a.loadConfig(cmd)
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			return a.close()
		},
		Run: func(cmd *cobra.Command, _ []string) {
			_ = cmd.Help()
		},
		Version:       cmd.Version,
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	rootCmd.SetVersionTemplate("contentdef version {{.Version}}\n")

	flags := rootCmd.PersistentFlags()
	flags.CountVarP(&a.verbosity, "verbose", "v", "increase verbosity level (e.g., -v, -vv)")
	flags.BoolVarP(&a.quiet, "quiet", "q", false, "suppress non-error output")
	flags.StringVar(&a.logFormat, "log-format", "text", "log format: text, json")
	flags.StringVar(&a.logFile, "log-file", "", "also write logs to file in JSON format")
	flags.StringVar(&a.colorMode, "color", "auto", "colorize output: auto, always, never")
	flags.StringVar(&a.configPath, "config", "", "config file (default: ./contentdef.yaml, then the XDG config dir)")

	rootCmd.AddCommand(
		newValidateCmd(a),
		newSchemaCmd(a),
		newPostCmd(a),
		newConfigCmd(a),
		newDoctorCmd(a),
		newBackupCmd(a),
		newVersionCmd(),
		newGenDocCmd(),
	)
	return rootCmd
}

// setupLogging installs the logger chosen by the verbosity flags as the
// slog default and in the command context.
func (a *app) setupLogging(cmd *cobra.Command) error {
	if a.quiet && a.verbosity > 0 {
		return errors.NewUserError(errors.New("cannot use --quiet and --verbose together"), "")
	}

	mode, err := logging.ParseColorMode(a.colorMode)
	if err != nil {
		return errors.NewUserError(err, "")
	}
	switch mode {
	case logging.ColorAlways:
		color.NoColor = false
	case logging.ColorNever:
		color.NoColor = true
	}

	var level slog.Level
	if a.quiet {
		level = slog.LevelError
	} else {
		v := a.verbosity
		if v == 0 {
			switch os.Getenv(EnvDebug) {
			case "1", "true":
				v = 2
			case "2", "trace":
				v = 3
			}
		}
		level = logging.LevelFromVerbosity(v)
	}

	lc := logging.Config{
		Level:  level,
		Format: logging.Format(a.logFormat),
		Output: cmd.ErrOrStderr(),
		Color:  mode,
	}
	if a.logFile != "" {
		f, err := os.OpenFile(a.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return errors.NewUserError(errors.Wrap(err, "opening log file"), "Check the --log-file path")
		}
		a.closers = append(a.closers, f)
		lc.File = f
	}

	a.logger = logging.New(lc)
	slog.SetDefault(a.logger)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(logging.NewContext(ctx, a.logger))
	return nil
}

// loadConfig builds the registry and reads as much configuration as the
// command's annotation asks for.
func (a *app) loadConfig(cmd *cobra.Command) error {
	reg, err := newRegistry()
	if err != nil {
		return errors.NewSystemError(err, "")
	}
	a.registry = reg

	mode := cmd.Annotations[configAnnotation]
	if cmd.Name() == "help" || mode == configSkip {
		return nil
	}

	config.Init()
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return errors.NewConfigError(err)
	}
	a.cfg = cfg
	a.logger.Debug("configuration loaded", "file", config.Used(), "content_dir", cfg.ContentDir)

	if mode == configNoCheck {
		return nil
	}
	if err := config.Check(cfg, reg); err != nil {
		return errors.NewConfigError(err)
	}
	return nil
}

func (a *app) loader() *content.Loader {
	return content.NewLoader(a.registry, a.cfg, ".", a.logger)
}

// backups returns a backup manager honouring the configured retention.
func (a *app) backups() *backup.Manager {
	retention := config.DefaultBackups
	if a.cfg != nil {
		retention = a.cfg.Backups
	}
	return backup.NewManager(
		backup.WithRetentionCount(retention),
		backup.WithToolVersion(cmd.Version),
	)
}

func (a *app) close() error {
	var first error
	for _, c := range a.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	a.closers = nil
	return first
}

// Execute runs the root command against os.Args.
func Execute() error {
	return NewRootCmd().Execute()
}
