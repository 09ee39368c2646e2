package command

import (
	"bytes"
	"net"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tidwall/redcon"
)

// startServer runs an in-process RESP server and returns its address.
func startServer(t *testing.T, password string) string {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	var mu sync.Mutex
	data := make(map[string]string)
	go redcon.Serve(ln,
		func(conn redcon.Conn, cmd redcon.Command) {
			name := strings.ToUpper(string(cmd.Args[0]))

			if password != "" && name == "AUTH" {
				if len(cmd.Args) == 2 && string(cmd.Args[1]) == password {
					conn.WriteString("OK")
				} else {
					conn.WriteError("ERR invalid password")
				}
				return
			}

			switch name {
			case "PING":
				conn.WriteString("PONG")
			case "SELECT":
				conn.WriteString("OK")
			case "SET":
				mu.Lock()
				data[string(cmd.Args[1])] = string(cmd.Args[2])
				mu.Unlock()
				conn.WriteString("OK")
			case "GET":
				mu.Lock()
				v, ok := data[string(cmd.Args[1])]
				mu.Unlock()
				if !ok {
					conn.WriteNull()
					return
				}
				conn.WriteBulkString(v)
			default:
				conn.WriteError("ERR unknown command '" + string(cmd.Args[0]) + "'")
			}
		},
		func(conn redcon.Conn) bool { return true },
		func(conn redcon.Conn, err error) {},
	)
	t.Cleanup(func() { ln.Close() })
	return ln.Addr().String()
}

// runApp runs the CLI with the given arguments against an isolated
// config file and returns captured stdout.
func runApp(t *testing.T, configPath string, args ...string) (string, error) {
	t.Helper()

	if configPath == "" {
		configPath = filepath.Join(t.TempDir(), "cli.yaml")
	}

	var out bytes.Buffer
	app := App()
	app.Writer = &out

	full := []string{"rediswire-cli", "--config", configPath}
	full = append(full, args...)
	err := app.Run(full)
	return out.String(), err
}
