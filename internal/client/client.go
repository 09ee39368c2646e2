package client

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/yndnr/rediswire-go/internal/resp"
	"github.com/yndnr/rediswire-go/internal/telemetry/logger"
	"github.com/yndnr/rediswire-go/internal/telemetry/metric"
)

// Config holds everything needed to establish a client connection.
type Config struct {
	// Addr is the server address, host:port.
	Addr string

	// Auth is the AUTH secret; empty skips the handshake. User is the
	// ACL username for two-argument AUTH, usually empty.
	Auth string
	User string

	// DB selects a logical database after connecting; zero is the
	// server default and sends no SELECT.
	DB int

	// DialTimeout bounds connection establishment; AwaitTimeout bounds
	// each reply wait. Zero picks the defaults.
	DialTimeout  time.Duration
	AwaitTimeout time.Duration

	// Logger defaults to the process-wide logger. Metrics may be nil.
	Logger  logger.Logger
	Metrics *metric.Registry
}

// DefaultDialTimeout bounds connection establishment.
const DefaultDialTimeout = 5 * time.Second

// Client is the blocking command facade. One Do call runs the full
// tokenize, encode, send-and-await, decode pipeline. Calls are
// serialized internally, so a Client may be shared across goroutines.
type Client struct {
	bridge  *Bridge
	log     logger.Logger
	metrics *metric.Registry

	// Call-scoped outcome of the most recent Do, kept for diagnostics.
	// Overwritten on every call; the returned Reply is authoritative.
	outcomeMu sync.Mutex
	status    string
	rows      int
}

// Dial connects, then runs the AUTH and SELECT handshakes through the
// regular command pipeline.
func Dial(cfg Config) (*Client, error) {
	if cfg.Logger == nil {
		cfg.Logger = logger.Default()
	}
	dialTimeout := cfg.DialTimeout
	if dialTimeout <= 0 {
		dialTimeout = DefaultDialTimeout
	}

	conn, err := DialConn(cfg.Addr, dialTimeout)
	if err != nil {
		if cfg.Metrics != nil {
			cfg.Metrics.ConnectsTotal.WithLabelValues("error").Inc()
		}
		cfg.Logger.Error("dial failed", "server", cfg.Addr, "error", err)
		return nil, err
	}

	c := &Client{
		bridge:  NewBridge(conn, cfg.AwaitTimeout),
		log:     cfg.Logger.With("server", cfg.Addr),
		metrics: cfg.Metrics,
	}

	if err := c.handshake(cfg); err != nil {
		c.Close()
		return nil, err
	}

	if cfg.Metrics != nil {
		cfg.Metrics.ConnectsTotal.WithLabelValues("ok").Inc()
	}
	c.log.Debug("connected", "db", cfg.DB)
	return c, nil
}

func (c *Client) handshake(cfg Config) error {
	if cfg.Auth != "" {
		args := []string{"AUTH", cfg.Auth}
		if cfg.User != "" {
			args = []string{"AUTH", cfg.User, cfg.Auth}
		}
		if _, err := c.DoArgs(args); err != nil {
			return err
		}
	}
	if cfg.DB != 0 {
		if _, err := c.DoArgs([]string{"SELECT", strconv.Itoa(cfg.DB)}); err != nil {
			return err
		}
	}
	return nil
}

// Do tokenizes one command line and executes it. The returned Reply is
// non-nil whenever a status is known, including on failure.
func (c *Client) Do(command string) (*resp.Reply, error) {
	return c.DoContext(context.Background(), command)
}

// DoContext is Do with caller-controlled cancellation of the await.
func (c *Client) DoContext(ctx context.Context, command string) (*resp.Reply, error) {
	tokens, err := resp.Tokenize(command)
	if err != nil {
		c.setOutcome(err.Error(), 0)
		c.observe("(invalid)", metric.OutcomeRejected, 0, 0, 0)
		return &resp.Reply{Status: err.Error()}, err
	}
	return c.doArgs(ctx, tokens)
}

// DoArgs executes pre-tokenized arguments, bypassing the tokenizer.
// The handshake uses it so an AUTH secret is never re-parsed for
// quotes.
func (c *Client) DoArgs(args []string) (*resp.Reply, error) {
	return c.doArgs(context.Background(), args)
}

func (c *Client) doArgs(ctx context.Context, args []string) (*resp.Reply, error) {
	if len(args) == 0 {
		err := resp.ErrEmptyCommand
		c.setOutcome(err.Message, 0)
		c.observe("(invalid)", metric.OutcomeRejected, 0, 0, 0)
		return &resp.Reply{Status: err.Message}, err
	}
	name := strings.ToUpper(args[0])
	start := time.Now()

	// rows resets before any I/O so a failed call never inherits the
	// previous call's count.
	c.setOutcome("", 0)

	frame := resp.EncodeCommand(args)
	buf, err := c.bridge.SendAwait(ctx, frame)
	if err != nil {
		c.setOutcome(err.Error(), 0)
		c.observe(name, metric.OutcomeTransport, time.Since(start), len(frame), 0)
		c.log.Debug("command failed", "command", logger.RedactCommand(args), "error", err)
		return &resp.Reply{Status: err.Error()}, err
	}

	reply, err := resp.DecodeReply(buf)
	c.setOutcome(reply.Status, reply.Rows)
	c.observe(name, decodeOutcome(err), time.Since(start), len(frame), len(buf))
	c.log.Debug("command done",
		"command", logger.RedactCommand(args),
		"status", reply.Status,
		"rows", reply.Rows,
	)
	return reply, err
}

func decodeOutcome(err error) string {
	switch {
	case err == nil:
		return metric.OutcomeOK
	case errors.Is(err, resp.ErrServer):
		return metric.OutcomeServerErr
	default:
		return metric.OutcomeBadReply
	}
}

func (c *Client) observe(name, outcome string, d time.Duration, wrote, read int) {
	if c.metrics != nil {
		c.metrics.ObserveCommand(name, outcome, d, wrote, read)
	}
}

func (c *Client) setOutcome(status string, rows int) {
	c.outcomeMu.Lock()
	c.status = status
	c.rows = rows
	c.outcomeMu.Unlock()
}

// Status returns the human-readable message of the most recent call:
// "OK", a server error text, or empty.
func (c *Client) Status() string {
	c.outcomeMu.Lock()
	defer c.outcomeMu.Unlock()
	return c.status
}

// Rows returns the element count produced by the most recent
// successful reply.
func (c *Client) Rows() int {
	c.outcomeMu.Lock()
	defer c.outcomeMu.Unlock()
	return c.rows
}

// Close tears down the connection. Idempotent.
func (c *Client) Close() error {
	return c.bridge.Close()
}
