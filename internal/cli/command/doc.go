// Package command provides CLI command definitions for rediswire-cli.
//
// This package defines all CLI commands using urfave/cli/v2:
//
//   - root.go: Root command, global flags, shared context helpers
//   - exec.go: One-shot command execution
//   - repl.go: Interactive session
//   - bench.go: Load generator
//   - config.go: Saved connections and settings
//
// Commands follow a consistent pattern of parsing flags, driving the
// wire client, and rendering output through the output package.
package command
