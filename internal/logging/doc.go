// Package logging builds the slog loggers used by contentdef.
//
// Console output is either a compact, TTY-aware text format ([Handler]) or
// JSON. A log file, when configured, receives every record as JSON through
// a [MultiHandler]. Attribute values whose key or content looks like a
// credential are masked by the text handler.
//
// Commands obtain their logger from the context:
//
//	ctx = logging.NewContext(ctx, logger)
//	logging.FromContext(ctx).Info("validated", "collection", "posts")
//
// Tests use [ForTest] so output is attached to the running test.
package logging
