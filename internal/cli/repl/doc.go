// Package repl provides the interactive mode for rediswire-cli. Lines
// are sent to the connected server verbatim; parse errors and server
// error replies are printed and the loop continues.
package repl
