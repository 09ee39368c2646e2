// Package main provides the entry point for rediswire-cli.
//
// The CLI tool provides command-line access to RESP servers for:
//
//   - One-shot command execution with table, JSON, or YAML output
//   - Interactive REPL sessions with history and completion
//   - Load testing with latency and throughput reporting
//   - Saved connection and settings management
//
// Usage:
//
//	rediswire-cli [command] [flags]
//	rediswire-cli exec 'SET greeting "hello world"'
//	rediswire-cli --server localhost:6379 repl
package main
