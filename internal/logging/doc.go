// Package logging builds the slog loggers used across lofimix.
//
// Two handler formats are supported: a console handler that renders compact
// timestamped lines with optional color when attached to a terminal, and a
// JSON handler for machine consumption. Context helpers attach the active
// stage, source file, and run identifier so every log line produced during a
// pipeline run carries the same correlation fields.
package logging
