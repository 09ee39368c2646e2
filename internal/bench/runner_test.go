package bench

import (
	"bytes"
	"context"
	"net"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/tidwall/redcon"

	"github.com/yndnr/rediswire-go/internal/telemetry/metric"
)

func startServer(t *testing.T) string {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	var mu sync.Mutex
	data := make(map[string]string)
	go redcon.Serve(ln,
		func(conn redcon.Conn, cmd redcon.Command) {
			switch strings.ToUpper(string(cmd.Args[0])) {
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
				conn.WriteError("ERR unknown command")
			}
		},
		func(conn redcon.Conn) bool { return true },
		func(conn redcon.Conn, err error) {},
	)
	t.Cleanup(func() { ln.Close() })
	return ln.Addr().String()
}

func TestRunCompletesAllRequests(t *testing.T) {
	addr := startServer(t)

	report, err := Run(context.Background(), Config{
		Addr:     addr,
		Clients:  2,
		Requests: 200,
		KeySpace: 10,
	})
	require.NoError(t, err)
	require.Equal(t, 200, report.Requests)
	require.Equal(t, 0, report.Errors)
	require.Greater(t, report.Throughput, 0.0)
	require.GreaterOrEqual(t, report.Max, report.Min)
	require.GreaterOrEqual(t, report.P99, report.P50)
}

func TestRunRateLimited(t *testing.T) {
	addr := startServer(t)

	start := time.Now()
	report, err := Run(context.Background(), Config{
		Addr:     addr,
		Clients:  1,
		Requests: 10,
		Rate:     50,
	})
	require.NoError(t, err)
	require.Equal(t, 10, report.Requests)
	// 10 requests at 50 req/s with a burst of 1 client cannot finish
	// instantly.
	require.Greater(t, time.Since(start), 100*time.Millisecond)
}

func TestRunCancellation(t *testing.T) {
	addr := startServer(t)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	// Low rate so cancellation lands mid-run.
	report, err := Run(ctx, Config{
		Addr:     addr,
		Clients:  1,
		Requests: 100000,
		Rate:     10,
	})
	require.NoError(t, err)
	require.Less(t, report.Requests, 100000)
}

func TestRunDialFailure(t *testing.T) {
	_, err := Run(context.Background(), Config{
		Addr:    "127.0.0.1:1",
		Clients: 1,
		Timeout: 200 * time.Millisecond,
	})
	require.Error(t, err)
}

func TestRunMetrics(t *testing.T) {
	addr := startServer(t)
	reg := metric.NewRegistry()

	_, err := Run(context.Background(), Config{
		Addr:     addr,
		Clients:  1,
		Requests: 20,
		Metrics:  reg,
	})
	require.NoError(t, err)

	families, err := reg.Gather().Gather()
	require.NoError(t, err)
	names := map[string]bool{}
	for _, f := range families {
		names[f.GetName()] = true
	}
	require.True(t, names["rediswire_commands_total"])
}

func TestReportWriteText(t *testing.T) {
	r := &Report{
		Requests:   100,
		Errors:     2,
		Elapsed:    time.Second,
		Throughput: 100,
		Min:        time.Millisecond,
		Avg:        2 * time.Millisecond,
		Max:        9 * time.Millisecond,
		P50:        2 * time.Millisecond,
		P95:        8 * time.Millisecond,
		P99:        9 * time.Millisecond,
	}

	var buf bytes.Buffer
	require.NoError(t, r.WriteText(&buf))
	out := buf.String()
	require.Contains(t, out, "requests")
	require.Contains(t, out, "100.0 req/s")
	require.Contains(t, out, "latency p99")
}

func TestBenchKeyStaysInKeySpace(t *testing.T) {
	seen := map[string]bool{}
	for i := int64(0); i < 1000; i++ {
		seen[benchKey("run", i, 8)] = true
	}
	require.LessOrEqual(t, len(seen), 8)
}
