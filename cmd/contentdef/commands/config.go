package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/contentdef/internal/config"
	"github.com/thoreinstein/contentdef/internal/errors"
	"github.com/thoreinstein/contentdef/internal/paths"
)

func newConfigCmd(a *app) *cobra.Command {
	c := &cobra.Command{
		Use:   "config",
		Short: "Inspect and create contentdef configuration",
		Long: `Configuration is read from ./contentdef.yaml, falling back to the
per-user file in the XDG config directory, then to built-in defaults.
Values can be overridden with CONTENTDEF_* environment variables.`,
	}
	c.AddCommand(newConfigShowCmd(a), newConfigInitCmd())
	return c
}

func newConfigShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as YAML",
		Long: `Print the effective configuration as YAML, followed by any
validation problems. Invalid configuration is still printed.`,
		Args: cobra.NoArgs,
		Annotations: map[string]string{
			configAnnotation: configNoCheck,
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()

			source := config.Used()
			if source == "" {
				source = "defaults"
			}
			fmt.Fprintf(out, "# source: %s\n", source)

			enc := yaml.NewEncoder(out)
			enc.SetIndent(2)
			if err := enc.Encode(a.cfg); err != nil {
				return errors.NewSystemError(errors.Wrap(err, "encoding config"), "")
			}
			if err := enc.Close(); err != nil {
				return errors.NewSystemError(errors.Wrap(err, "encoding config"), "")
			}

			if errs := config.Validate(a.cfg, a.registry); len(errs) > 0 {
				fmt.Fprintln(out)
				for _, e := range errs {
					fmt.Fprintf(out, "# invalid: %s\n", e)
				}
				return errors.NewConfigError(errors.Wrap(errors.ErrInvalidConfig, "see problems above"))
			}
			return nil
		},
	}
}

func newConfigInitCmd() *cobra.Command {
	var global, force bool

	c := &cobra.Command{
		Use:   "init",
		Short: "Write a default configuration file",
		Long: `Write the default configuration to ./contentdef.yaml, or with --global
to the per-user config file. An existing file is kept unless --force.`,
		Args: cobra.NoArgs,
		Annotations: map[string]string{
			configAnnotation: configSkip,
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := paths.ProjectConfigName
			if global {
				path = paths.ConfigFile()
			}

			if _, err := os.Stat(path); err == nil && !force {
				return errors.NewUserError(errors.Newf("%s already exists", path), "Use --force to overwrite it")
			}
			if err := config.Save(config.Default(), path); err != nil {
				return errors.NewSystemError(err, "")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	}

	c.Flags().BoolVar(&global, "global", false, "write the per-user config file instead")
	c.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return c
}
