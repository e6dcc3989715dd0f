// Package logging builds slog loggers for the CLI and the manifest core.
//
// Two output formats are supported: a console handler that renders
// timestamp, level, component, and key=value attributes on one line, and a
// plain JSON handler for machine consumption. Components obtain scoped
// loggers through NewComponentLogger so every record carries a stable
// "component" attribute.
package logging
