// Package main hosts the wemtool CLI entrypoint and command graph.
//
// The Cobra command tree resolves configuration once, stamps every run with
// an identifier for the structured logs, and hands the real work to the
// internal packages: mapping builds the ID -> name table, rename applies it in
// either direction, analysis and report inventory named media, and dialogue
// handles the localized subtitle exports. Command results go to stdout as
// tables or JSON; logs go to stderr.
package main
