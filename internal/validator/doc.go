// Package validator turns validation failures into issues and reports them.
//
// A [Result] accumulates one record per checked file. Schema failures are
// flattened with [FromError]: a *schema.ValidationError becomes one
// [Issue] per offending field, tagged with a stable Kind such as
// "missing_field" or "malformed_url". Any other error becomes a single
// issue.
//
//	result := &validator.Result{}
//	for _, item := range items {
//		result.Record(item.Path, item.Collection, item.Err)
//	}
//	validator.NewReporter(os.Stdout, validator.FormatText).Report(result)
//
// Text output groups issues by file and uses colour when stdout supports
// it (github.com/fatih/color). JSON output is stable for scripting.
package validator
