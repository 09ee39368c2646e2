// Package connection manages the active server connection for
// rediswire-cli. A Manager holds at most one live client at a time;
// connecting while connected closes the previous client first.
package connection
