package command

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yndnr/rediswire-go/internal/cli/config"
)

func TestConfig_ShowAndPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cli.yaml")

	out, err := runApp(t, path, "config", "show")
	require.NoError(t, err)
	require.Contains(t, out, "default_server: localhost:6379")

	out, err = runApp(t, path, "config", "path")
	require.NoError(t, err)
	require.Contains(t, out, path)
}

func TestConfig_SaveAndUseConnection(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cli.yaml")

	out, err := runApp(t, path,
		"--server", "redis.prod:6379", "--db", "2",
		"config", "save-connection", "prod")
	require.NoError(t, err)
	require.Contains(t, out, `Saved connection "prod"`)

	out, err = runApp(t, path, "config", "use", "prod")
	require.NoError(t, err)
	require.Contains(t, out, `Now using "prod"`)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	require.Equal(t, "prod", cfg.CurrentConnection)
	require.Equal(t, "redis.prod:6379", cfg.Connections["prod"].Server)
	require.Equal(t, 2, cfg.Connections["prod"].DB)

	out, err = runApp(t, path, "config", "connections")
	require.NoError(t, err)
	require.Contains(t, out, "prod (current)")
}

func TestConfig_SaveConnectionSealsAuth(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cli.yaml")

	// Without a passphrase the secret must not be written.
	_, err := runApp(t, path,
		"--server", "redis.prod:6379", "--auth", "hunter2",
		"config", "save-connection", "prod")
	require.Error(t, err)
	require.Contains(t, err.Error(), "passphrase")

	_, err = runApp(t, path,
		"--server", "redis.prod:6379", "--auth", "hunter2",
		"config", "save-connection",
		"--passphrase", "a strong passphrase", "prod")
	require.NoError(t, err)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	conn := cfg.Connections["prod"]
	require.NotEmpty(t, conn.AuthSealed)
	require.NotContains(t, conn.AuthSealed, "hunter2")

	secret, err := conn.OpenAuth("a strong passphrase")
	require.NoError(t, err)
	require.Equal(t, "hunter2", secret)
}

func TestConfig_RemoveConnection(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cli.yaml")

	_, err := runApp(t, path, "--server", "x:6379", "config", "save-connection", "tmp")
	require.NoError(t, err)
	_, err = runApp(t, path, "config", "use", "tmp")
	require.NoError(t, err)

	out, err := runApp(t, path, "config", "remove-connection", "tmp")
	require.NoError(t, err)
	require.Contains(t, out, `Removed "tmp"`)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	require.Empty(t, cfg.Connections)
	require.Empty(t, cfg.CurrentConnection)

	_, err = runApp(t, path, "config", "use", "tmp")
	require.Error(t, err)
}

func TestConfig_SavedConnectionUsedForDial(t *testing.T) {
	addr := startServer(t, "")
	path := filepath.Join(t.TempDir(), "cli.yaml")

	_, err := runApp(t, path, "--server", addr, "config", "save-connection", "local")
	require.NoError(t, err)
	_, err = runApp(t, path, "config", "use", "local")
	require.NoError(t, err)

	// No --server flag: the current saved connection supplies the
	// address.
	out, err := runApp(t, path, "exec", "PING")
	require.NoError(t, err)
	require.Contains(t, out, "PONG")
}
