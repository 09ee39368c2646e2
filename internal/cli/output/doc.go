// Package output renders decoded replies for rediswire-cli.
//
// A reply renders as a table by default; JSON and YAML formatters
// produce machine-readable shapes for scripting. Null fields print as
// (nil) in tables and as null in structured formats.
package output
