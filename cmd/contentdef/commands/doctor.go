package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/contentdef/internal/config"
	"github.com/thoreinstein/contentdef/internal/doctor"
	"github.com/thoreinstein/contentdef/internal/errors"
	"github.com/thoreinstein/contentdef/internal/paths"
)

func newDoctorCmd(a *app) *cobra.Command {
	var (
		asJSON  bool
		showAll bool
		fix     bool
	)

	c := &cobra.Command{
		Use:   "doctor",
		Short: "Diagnose configuration and content problems",
		Long: `Run diagnostic checks on the contentdef configuration, the collection
directories and the content they hold.

Output modes:
  (default)   Show errors and warnings
  --all       Show all checks including passed ones
  --json      Machine-readable JSON output
  -q          No output, exit code only

With --fix, missing collection directories are created and the checks run
again.

Exit codes:
  0 - All checks passed (no errors or warnings)
  1 - Warnings present, no errors
  2 - Errors present`,
		Annotations: map[string]string{
			configAnnotation: configNoCheck,
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			if asJSON && showAll {
				return errors.NewUserError(errors.New("flags --json and --all are mutually exclusive"), "")
			}

			runner := a.doctorRunner()
			report := runner.Run()
			if fix {
				if fixes := runner.Fix(); len(fixes) > 0 {
					report = runner.Run()
					report.Fixes = fixes
				}
			}

			if err := a.writeDoctorReport(cmd.OutOrStdout(), report, asJSON, showAll); err != nil {
				return errors.NewSystemError(err, "")
			}

			switch {
			case report.HasErrors():
				return errors.NewExitError(errors.Wrapf(errors.ErrUnhealthy, "%d error(s)", report.Summary.Errors), errors.ExitSystem)
			case report.HasWarnings():
				return errors.NewExitError(errors.Wrapf(errors.ErrUnhealthy, "%d warning(s)", report.Summary.Warnings), errors.ExitUser)
			}
			return nil
		},
	}

	c.Flags().BoolVar(&asJSON, "json", false, "output results as JSON")
	c.Flags().BoolVar(&showAll, "all", false, "show passed and informational checks too")
	c.Flags().BoolVar(&fix, "fix", false, "create missing collection directories")
	return c
}

// doctorRunner registers the config check and, for every configured
// collection the config check would not already reject, a directory and a
// content check.
func (a *app) doctorRunner() *doctor.Runner {
	runner := doctor.NewRunner(a.logger)
	runner.AddCheck(doctor.NewConfigCheck(a.cfg, config.Used(), a.registry))

	loader := a.loader()
	for _, name := range a.cfg.CollectionNames() {
		if !a.registry.Has(name) || paths.CheckRelative(a.cfg.Collections[name].Dir) != nil {
			continue
		}
		dir, err := loader.Dir(name)
		if err != nil {
			continue
		}
		runner.AddCheck(doctor.NewCollectionDirCheck(name, dir))
		runner.AddCheck(doctor.NewContentCheck(name, loader))
	}
	return runner
}

func (a *app) writeDoctorReport(w io.Writer, report *doctor.Report, asJSON, showAll bool) error {
	if a.quiet {
		return nil
	}

	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return errors.Wrap(enc.Encode(report), "encoding JSON")
	}

	for _, fr := range report.Fixes {
		if fr.Fixed {
			fmt.Fprintf(w, "%s fixed %s: %s\n", color.GreenString("✓"), fr.Path, fr.Description)
		} else {
			fmt.Fprintf(w, "%s could not fix %s: %v\n", color.RedString("✗"), fr.Path, fr.Error)
		}
	}

	hasOutput := false
	for _, result := range report.Results {
		problem := result.Status == doctor.SeverityError || result.Status == doctor.SeverityWarning
		if !showAll && !problem {
			continue
		}

		hasOutput = true
		fmt.Fprintf(w, "%s [%s] %s: %s\n", statusIcon(result.Status), result.Category, result.Name, result.Message)
		if problems, ok := result.Details["problems"].([]string); ok {
			for _, p := range problems {
				fmt.Fprintf(w, "  • %s\n", p)
			}
		}
		if invalid, ok := result.Details["invalid"].([]string); ok {
			for _, p := range invalid {
				fmt.Fprintf(w, "  • %s\n", p)
			}
		}
		if result.FixHint != "" && problem {
			fmt.Fprintf(w, "  hint: %s\n", result.FixHint)
		}
	}

	if hasOutput || len(report.Fixes) > 0 {
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Summary: %d passed, %d info, %d warnings, %d errors\n",
		report.Summary.Passed, report.Summary.Info, report.Summary.Warnings, report.Summary.Errors)
	return nil
}

func statusIcon(s doctor.Severity) string {
	switch s {
	case doctor.SeverityPass:
		return color.GreenString("✓")
	case doctor.SeverityInfo:
		return color.CyanString("ℹ")
	case doctor.SeverityWarning:
		return color.YellowString("⚠")
	case doctor.SeverityError:
		return color.RedString("✗")
	default:
		return "?"
	}
}
