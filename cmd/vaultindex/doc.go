// Package main hosts the vaultindex CLI entrypoint and command graph.
//
// The Cobra-based command tree runs index generation, inspects and edits the
// playlist title cache, scaffolds configuration, and runs preflight checks.
// It centralizes configuration resolution and structured logging setup so
// subcommands can focus on output.
//
// Keep this package lean: add functionality to the internal packages first,
// then surface it through dedicated commands or flags here.
package main
