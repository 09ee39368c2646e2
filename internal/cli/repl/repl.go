package repl

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/yndnr/rediswire-go/internal/cli/connection"
	"github.com/yndnr/rediswire-go/internal/cli/output"
	"github.com/yndnr/rediswire-go/internal/client"
	"github.com/yndnr/rediswire-go/internal/resp"
	"github.com/yndnr/rediswire-go/internal/telemetry/logger"
)

// REPL is the interactive read-eval-print loop.
type REPL struct {
	input     io.Reader
	output    io.Writer
	mgr       *connection.Manager
	formatter output.Formatter
	format    output.Format
	completer *Completer
	history   *History
	log       logger.Logger
}

// Option configures a REPL.
type Option func(*REPL)

// WithInput sets the input stream. Defaults to stdin.
func WithInput(r io.Reader) Option {
	return func(rp *REPL) { rp.input = r }
}

// WithOutput sets the output stream. Defaults to stdout.
func WithOutput(w io.Writer) Option {
	return func(rp *REPL) { rp.output = w }
}

// WithFormat sets the initial output format.
func WithFormat(f output.Format) Option {
	return func(rp *REPL) { rp.format = f }
}

// WithHistoryFile overrides the history file location.
func WithHistoryFile(path string) Option {
	return func(rp *REPL) { rp.history.file = path }
}

// WithLogger sets the logger.
func WithLogger(log logger.Logger) Option {
	return func(rp *REPL) { rp.log = log }
}

// New creates a REPL driving connections through mgr.
func New(mgr *connection.Manager, opts ...Option) (*REPL, error) {
	r := &REPL{
		input:     os.Stdin,
		output:    os.Stdout,
		mgr:       mgr,
		format:    output.FormatTable,
		completer: NewCompleter(),
		history:   NewHistory(),
		log:       logger.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}

	f, err := output.NewFormatter(r.format)
	if err != nil {
		return nil, err
	}
	r.formatter = f
	return r, nil
}

// Run starts the loop and blocks until the input is exhausted or the
// user quits. History is loaded on entry and saved on exit.
func (r *REPL) Run() error {
	if err := r.history.Load(); err != nil {
		r.log.Warn("failed to load history", "error", err)
	}
	defer func() {
		if err := r.history.Save(); err != nil {
			r.log.Warn("failed to save history", "error", err)
		}
	}()

	reader := bufio.NewReader(r.input)

	for {
		fmt.Fprint(r.output, r.prompt())

		line, err := reader.ReadString('\n')
		if err == io.EOF {
			fmt.Fprintln(r.output)
			return nil
		}
		if err != nil {
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		r.history.Add(line)

		quit, err := r.execute(line)
		if quit {
			return nil
		}
		if err != nil {
			fmt.Fprintf(r.output, "Error: %v\n", err)
			// Transport failures tear down the connection; anything
			// else (parse errors, server errors) is recoverable.
			if client.IsTransportError(err, "") {
				r.mgr.Disconnect()
			}
		}
	}
}

func (r *REPL) prompt() string {
	if conn := r.mgr.Current(); conn != nil {
		if conn.DB != 0 {
			return fmt.Sprintf("%s[%d]> ", conn.Server, conn.DB)
		}
		return conn.Server + "> "
	}
	return "rediswire> "
}

// execute runs one input line. The bool result reports whether the
// loop should exit.
func (r *REPL) execute(line string) (bool, error) {
	switch fields := strings.Fields(line); strings.ToLower(fields[0]) {
	case "exit", "quit":
		return true, nil
	case "help":
		r.printHelp()
		return false, nil
	case "output":
		if len(fields) != 2 {
			return false, fmt.Errorf("usage: output <table|json|yaml>")
		}
		f, err := output.NewFormatter(output.Format(fields[1]))
		if err != nil {
			return false, err
		}
		r.format = output.Format(fields[1])
		r.formatter = f
		return false, nil
	}

	conn := r.mgr.Current()
	if conn == nil {
		return false, client.ErrNotConnected
	}

	reply, err := conn.Client.Do(line)
	if err != nil && !errors.Is(err, resp.ErrServer) {
		return false, err
	}
	// Server error replies still carry a renderable status.
	return false, r.formatter.Format(r.output, reply)
}

func (r *REPL) printHelp() {
	fmt.Fprintln(r.output, "Commands are sent to the server as typed. Built-ins:")
	fmt.Fprintln(r.output, "  output <table|json|yaml>  switch output format")
	fmt.Fprintln(r.output, "  help                      show this help")
	fmt.Fprintln(r.output, "  exit, quit                leave the session")
}
