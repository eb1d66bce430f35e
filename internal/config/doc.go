// Package config loads, normalizes, and validates wemtool configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), and reads an optional TOML file. Every field has a default, so
// the tool runs without any configuration file; the file only overrides output
// locations, rename behaviour, analysis prefixes, and logging.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical enum values, and clear validation errors.
package config
