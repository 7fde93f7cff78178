package validator

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/thoreinstein/contentdef/internal/errors"
)

// Format specifies the output format for validation reports.
type Format string

const (
	// FormatText produces human-readable text output.
	FormatText Format = "text"
	// FormatJSON produces machine-readable JSON output.
	FormatJSON Format = "json"
)

// maxValueLen bounds how much of an offending value is echoed.
const maxValueLen = 50

// Reporter formats and writes validation results.
type Reporter struct {
	out    io.Writer
	format Format
}

// NewReporter creates a new Reporter.
func NewReporter(out io.Writer, format Format) *Reporter {
	return &Reporter{
		out:    out,
		format: format,
	}
}

// Report writes the validation result to the output.
func (r *Reporter) Report(result *Result) error {
	if result == nil {
		return nil
	}

	switch r.format {
	case FormatJSON:
		return r.reportJSON(result)
	default:
		return r.reportText(result)
	}
}

func (r *Reporter) reportJSON(result *Result) error {
	out := *result
	if out.Issues == nil {
		out.Issues = []Issue{}
	}
	encoder := json.NewEncoder(r.out)
	encoder.SetIndent("", "  ")
	return errors.Wrap(encoder.Encode(out), "encoding JSON report")
}

// reportText prints issues grouped by file in the order they were found,
// followed by a summary line.
func (r *Reporter) reportText(result *Result) error {
	var current string
	for i, issue := range result.Issues {
		if i == 0 || issue.Path != current {
			current = issue.Path
			r.printHeader(issue)
		}
		r.printIssue(issue)
	}
	if len(result.Issues) > 0 {
		fmt.Fprintln(r.out)
	}

	checked := fmt.Sprintf("%d file(s) checked", result.Checked)
	switch {
	case result.HasErrors():
		fmt.Fprintf(r.out, "%s %s, %s\n", color.RedString("✗"), checked,
			color.RedString("%d invalid", result.Invalid))
	default:
		fmt.Fprintf(r.out, "%s %s, all valid\n", color.GreenString("✓"), checked)
	}
	if w := len(result.Warnings()); w > 0 {
		fmt.Fprintln(r.out, color.YellowString("%d warning(s)", w))
	}
	return nil
}

func (r *Reporter) printHeader(i Issue) {
	name := i.Path
	if name == "" {
		name = "(input)"
	}
	if i.Collection != "" {
		name += color.New(color.FgHiBlack).Sprintf(" [%s]", i.Collection)
	}
	fmt.Fprintln(r.out, color.New(color.Bold).Sprint(name))
}

func (r *Reporter) printIssue(i Issue) {
	c := color.FgRed
	if i.Severity == SeverityWarning {
		c = color.FgYellow
	}
	printer := color.New(c).SprintFunc()

	var sb strings.Builder
	sb.WriteString("  • ")
	if i.Field != "" {
		sb.WriteString(printer(i.Field))
		sb.WriteString(": ")
	} else {
		sb.WriteString(printer(i.Severity.String()))
		sb.WriteString(": ")
	}
	sb.WriteString(i.Message)

	if i.Value != nil {
		val := fmt.Sprintf("%v", i.Value)
		if len(val) > maxValueLen {
			val = val[:maxValueLen-3] + "..."
		}
		sb.WriteString(color.New(color.FgHiBlack).Sprintf(" [%s]", val))
	}

	fmt.Fprintln(r.out, sb.String())
}
