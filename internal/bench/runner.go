package bench

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"text/tabwriter"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/spaolacci/murmur3"
	"golang.org/x/time/rate"

	"github.com/yndnr/rediswire-go/internal/client"
	"github.com/yndnr/rediswire-go/internal/resp"
	"github.com/yndnr/rediswire-go/internal/telemetry/logger"
	"github.com/yndnr/rediswire-go/internal/telemetry/metric"
)

// Config holds load generator settings.
type Config struct {
	Addr string
	Auth string
	DB   int

	// Clients is the number of concurrent workers, each with its own
	// connection.
	Clients int

	// Requests is the total number of requests across all workers.
	Requests int

	// Rate caps requests per second across all workers. Zero means
	// unlimited.
	Rate float64

	// ValueSize is the SET payload size in bytes.
	ValueSize int

	// KeySpace is the number of distinct keys touched.
	KeySpace int

	Timeout time.Duration
	Logger  logger.Logger
	Metrics *metric.Registry
}

func (c *Config) applyDefaults() {
	if c.Clients <= 0 {
		c.Clients = 4
	}
	if c.Requests <= 0 {
		c.Requests = 10000
	}
	if c.ValueSize <= 0 {
		c.ValueSize = 64
	}
	if c.KeySpace <= 0 {
		c.KeySpace = 1000
	}
	if c.Timeout <= 0 {
		c.Timeout = 5 * time.Second
	}
	if c.Logger == nil {
		c.Logger = logger.Default()
	}
}

// Report summarizes a completed run.
type Report struct {
	Requests int
	Errors   int
	Elapsed  time.Duration

	// Throughput is completed requests per second.
	Throughput float64

	Min time.Duration
	Avg time.Duration
	Max time.Duration
	P50 time.Duration
	P95 time.Duration
	P99 time.Duration
}

// WriteText renders the report as an aligned table.
func (r *Report) WriteText(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
	fmt.Fprintf(tw, "requests\t%d\n", r.Requests)
	fmt.Fprintf(tw, "errors\t%d\n", r.Errors)
	fmt.Fprintf(tw, "elapsed\t%s\n", r.Elapsed.Round(time.Millisecond))
	fmt.Fprintf(tw, "throughput\t%.1f req/s\n", r.Throughput)
	fmt.Fprintf(tw, "latency min\t%s\n", r.Min)
	fmt.Fprintf(tw, "latency avg\t%s\n", r.Avg)
	fmt.Fprintf(tw, "latency max\t%s\n", r.Max)
	fmt.Fprintf(tw, "latency p50\t%s\n", r.P50)
	fmt.Fprintf(tw, "latency p95\t%s\n", r.P95)
	fmt.Fprintf(tw, "latency p99\t%s\n", r.P99)
	return tw.Flush()
}

// Run executes the load generator and blocks until all requests have
// completed, ctx is cancelled, or a connection cannot be established.
func Run(ctx context.Context, cfg Config) (*Report, error) {
	cfg.applyDefaults()

	// Distinct key prefix per run so repeated runs do not read each
	// other's values.
	runID := ulid.Make().String()
	payload := strings.Repeat("x", cfg.ValueSize)

	var limiter *rate.Limiter
	if cfg.Rate > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.Rate), cfg.Clients)
	}

	clients := make([]*client.Client, 0, cfg.Clients)
	defer func() {
		for _, c := range clients {
			c.Close()
		}
	}()
	for i := 0; i < cfg.Clients; i++ {
		c, err := client.Dial(client.Config{
			Addr:         cfg.Addr,
			Auth:         cfg.Auth,
			DB:           cfg.DB,
			AwaitTimeout: cfg.Timeout,
			Logger:       cfg.Logger,
			Metrics:      cfg.Metrics,
		})
		if err != nil {
			return nil, fmt.Errorf("dial worker %d: %w", i, err)
		}
		clients = append(clients, c)
	}

	var (
		seq       atomic.Int64
		errCount  atomic.Int64
		wg        sync.WaitGroup
		latencyMu sync.Mutex
		latencies = make([]time.Duration, 0, cfg.Requests)
	)

	start := time.Now()
	for _, c := range clients {
		wg.Add(1)
		go func(c *client.Client) {
			defer wg.Done()
			local := make([]time.Duration, 0, cfg.Requests/cfg.Clients+1)
			defer func() {
				latencyMu.Lock()
				latencies = append(latencies, local...)
				latencyMu.Unlock()
			}()

			for {
				n := seq.Add(1)
				if n > int64(cfg.Requests) {
					return
				}
				if limiter != nil {
					if err := limiter.Wait(ctx); err != nil {
						return
					}
				}
				if ctx.Err() != nil {
					return
				}

				key := benchKey(runID, n, cfg.KeySpace)
				var args []string
				if n%2 == 0 {
					args = []string{"GET", key}
				} else {
					args = []string{"SET", key, payload}
				}

				began := time.Now()
				_, err := c.DoArgs(args)
				local = append(local, time.Since(began))

				if err != nil && !errors.Is(err, resp.ErrServer) {
					errCount.Add(1)
					if client.IsTransportError(err, "") {
						cfg.Logger.Warn("worker stopping on transport error", "error", err)
						return
					}
				} else if err != nil {
					errCount.Add(1)
				}
			}
		}(c)
	}
	wg.Wait()
	elapsed := time.Since(start)

	return summarize(latencies, int(errCount.Load()), elapsed), nil
}

// benchKey spreads sequence numbers over the keyspace. Hashing keeps
// the access pattern uncorrelated with insertion order.
func benchKey(runID string, seq int64, keySpace int) string {
	bucket := murmur3.Sum32([]byte(strconv.FormatInt(seq, 10))) % uint32(keySpace)
	return "bench:" + runID + ":" + strconv.FormatUint(uint64(bucket), 10)
}

func summarize(latencies []time.Duration, errs int, elapsed time.Duration) *Report {
	r := &Report{
		Requests: len(latencies),
		Errors:   errs,
		Elapsed:  elapsed,
	}
	if elapsed > 0 {
		r.Throughput = float64(len(latencies)) / elapsed.Seconds()
	}
	if len(latencies) == 0 {
		return r
	}

	sort.Slice(latencies, func(i, j int) bool { return latencies[i] < latencies[j] })

	var total time.Duration
	for _, d := range latencies {
		total += d
	}
	r.Min = latencies[0]
	r.Max = latencies[len(latencies)-1]
	r.Avg = total / time.Duration(len(latencies))
	r.P50 = percentile(latencies, 50)
	r.P95 = percentile(latencies, 95)
	r.P99 = percentile(latencies, 99)
	return r
}

// percentile expects sorted input.
func percentile(sorted []time.Duration, p int) time.Duration {
	if len(sorted) == 0 {
		return 0
	}
	idx := len(sorted)*p/100 - 1
	if idx < 0 {
		idx = 0
	}
	return sorted[idx]
}
