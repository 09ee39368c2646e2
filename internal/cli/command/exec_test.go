package command

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func TestExec_SingleQuotedArgument(t *testing.T) {
	addr := startServer(t, "")

	out, err := runApp(t, "", "--server", addr, "exec", `SET greeting "hello world"`)
	require.NoError(t, err)
	require.Contains(t, out, "OK")

	out, err = runApp(t, "", "--server", addr, "exec", "GET greeting")
	require.NoError(t, err)
	require.Contains(t, out, "hello world")
}

func TestExec_WordPerArgument(t *testing.T) {
	addr := startServer(t, "")

	// Pre-split arguments bypass the line parser, so a value with
	// spaces survives without quoting.
	_, err := runApp(t, "", "--server", addr, "exec", "SET", "k", "two words")
	require.NoError(t, err)

	out, err := runApp(t, "", "--server", addr, "exec", "GET", "k")
	require.NoError(t, err)
	require.Contains(t, out, "two words")
}

func TestExec_JSONOutput(t *testing.T) {
	addr := startServer(t, "")

	out, err := runApp(t, "", "--server", addr, "--output", "json", "exec", "PING")
	require.NoError(t, err)
	require.Contains(t, out, `"status": "PONG"`)
}

func TestExec_ServerErrorExitsNonzero(t *testing.T) {
	addr := startServer(t, "")

	out, err := runApp(t, "", "--server", addr, "exec", "NOSUCHCMD")
	require.Error(t, err)

	var exitErr cli.ExitCoder
	require.ErrorAs(t, err, &exitErr)
	require.Equal(t, 1, exitErr.ExitCode())
	// The error reply is still rendered.
	require.Contains(t, out, "unknown command")
}

func TestExec_NoCommand(t *testing.T) {
	addr := startServer(t, "")

	_, err := runApp(t, "", "--server", addr, "exec")
	require.Error(t, err)
	require.Contains(t, err.Error(), "no command")
}

func TestExec_ParseErrorReported(t *testing.T) {
	addr := startServer(t, "")

	_, err := runApp(t, "", "--server", addr, "exec", `SET key "unterminated`)
	require.Error(t, err)
}

func TestExec_AuthFlag(t *testing.T) {
	addr := startServer(t, "sesame")

	out, err := runApp(t, "", "--server", addr, "--auth", "sesame", "exec", "PING")
	require.NoError(t, err)
	require.Contains(t, out, "PONG")

	_, err = runApp(t, "", "--server", addr, "--auth", "wrong", "exec", "PING")
	require.Error(t, err)
}

func TestExec_ConnectFailure(t *testing.T) {
	_, err := runApp(t, "", "--server", "127.0.0.1:1", "exec", "PING")
	require.Error(t, err)
	require.Contains(t, err.Error(), "connect to")
}
