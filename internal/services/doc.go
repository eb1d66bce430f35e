// Package services defines shared utilities consumed by the wemtool operations
// and the CLI.
//
// Key responsibilities:
//   - Context helpers that stamp run IDs and operation names for logging.
//   - Structured error markers plus the Wrap helper that translate failures
//     into consistent CLI exit codes.
//
// Use these helpers when wiring new operations so error reporting and
// observability stay uniform across commands.
package services
