package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/contentdef/internal/errors"
	"github.com/thoreinstein/contentdef/internal/schema"
)

// Output formats for schema show.
const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
	formatTOML = "toml"
)

func newSchemaCmd(a *app) *cobra.Command {
	c := &cobra.Command{
		Use:   "schema",
		Short: "Inspect collection schemas",
		Long:  `List the declared collections or export one collection's field constraints.`,
		Annotations: map[string]string{
			configAnnotation: configSkip,
		},
	}
	c.AddCommand(newSchemaListCmd(a), newSchemaShowCmd(a))
	return c
}

func newSchemaListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List declared collections",
		Args:  cobra.NoArgs,
		Annotations: map[string]string{
			configAnnotation: configSkip,
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, name := range a.registry.Names() {
				def, err := a.registry.Export(name)
				if err != nil {
					return errors.NewSystemError(err, "")
				}
				fmt.Fprintln(cmd.OutOrStdout(), def.String())
			}
			return nil
		},
	}
}

func newSchemaShowCmd(a *app) *cobra.Command {
	var format string

	c := &cobra.Command{
		Use:   "show <collection> [field]",
		Short: "Export one collection's schema",
		Long: `Export the field constraints of a declared collection, or of one of
its fields.

Formats: text (default), json, yaml, toml.`,
		Example: `  contentdef schema show posts
  contentdef schema show posts link
  contentdef schema show posts --format json`,
		Args: cobra.RangeArgs(1, 2),
		Annotations: map[string]string{
			configAnnotation: configSkip,
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			def, err := a.registry.Export(args[0])
			if err != nil {
				return errors.NewUserError(err, "Run: contentdef schema list")
			}
			desc := def.Describe()
			if len(args) == 2 {
				field, ok := def.Field(args[1])
				if !ok {
					return errors.NewUserError(errors.Newf("collection %q has no field %q", def.Name(), args[1]), "Run: contentdef schema show "+def.Name())
				}
				desc.Fields = []schema.FieldDescription{field.Describe()}
			}
			if err := writeDescription(cmd.OutOrStdout(), desc, format); err != nil {
				return errors.NewUserError(err, "")
			}
			return nil
		},
	}

	c.Flags().StringVarP(&format, "format", "f", formatText, "output format: text, json, yaml, toml")
	return c
}

func writeDescription(w io.Writer, desc schema.Description, format string) error {
	switch format {
	case formatText:
		fmt.Fprintf(w, "Collection: %s\n\n", desc.Name)
		for _, f := range desc.Fields {
			fmt.Fprintf(w, "  %-8s %-6s required\n", f.Name, f.Type)
			if len(f.Layouts) > 0 {
				fmt.Fprintf(w, "           layouts: %s\n", strings.Join(f.Layouts, ", "))
			}
			if len(f.Schemes) > 0 {
				fmt.Fprintf(w, "           schemes: %s\n", strings.Join(f.Schemes, ", "))
			}
		}
		return nil
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return errors.Wrap(enc.Encode(desc), "encoding JSON")
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(desc); err != nil {
			return errors.Wrap(err, "encoding YAML")
		}
		return errors.Wrap(enc.Close(), "encoding YAML")
	case formatTOML:
		return errors.Wrap(toml.NewEncoder(w).Encode(desc), "encoding TOML")
	default:
		return errors.Newf("unknown format %q (valid: text, json, yaml, toml)", format)
	}
}
