package client

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"net"
	"strconv"
	"sync"
	"time"
)

// Reply framing limits. A server that exceeds these is treated as
// misbehaving rather than buffered without bound.
const (
	// MaxReplyElements limits the number of elements in an array reply.
	MaxReplyElements = 1024 * 1024

	// MaxBulkLen limits the size of a single bulk string (512MB, the
	// server-side ceiling for values).
	MaxBulkLen = 512 * 1024 * 1024

	// MaxLineLen limits a single reply line.
	MaxLineLen = 64 * 1024
)

var errFrameLimit = errors.New("client: reply frame exceeds limit")

// Conn is a message-oriented connection: Send transmits one frame, and
// each complete inbound reply buffer is delivered through the OnMessage
// callback. A read failure is delivered through OnError, after which no
// further messages arrive.
type Conn interface {
	Send(frame []byte) error
	OnMessage(fn func(buf []byte))
	OnError(fn func(err error))
	Close() error
}

// netConn adapts a stream net.Conn into the message-oriented Conn: a
// read loop frames exactly one complete reply per delivered message, so
// decoding never starts on a partial buffer.
type netConn struct {
	c net.Conn
	r *bufio.Reader

	mu        sync.Mutex
	onMessage func([]byte)
	onError   func(error)
	closed    bool
}

// DialConn connects to addr and starts the read loop. Callbacks must be
// registered before the first Send; nothing can arrive earlier because
// the server only speaks when spoken to.
func DialConn(addr string, timeout time.Duration) (Conn, error) {
	c, err := net.DialTimeout("tcp", addr, timeout)
	if err != nil {
		return nil, ErrTransport.WithCause(err)
	}
	return newNetConn(c), nil
}

func newNetConn(c net.Conn) *netConn {
	nc := &netConn{
		c: c,
		r: bufio.NewReader(c),
	}
	go nc.readLoop()
	return nc
}

func (nc *netConn) Send(frame []byte) error {
	_, err := nc.c.Write(frame)
	return err
}

func (nc *netConn) OnMessage(fn func([]byte)) {
	nc.mu.Lock()
	defer nc.mu.Unlock()
	nc.onMessage = fn
}

func (nc *netConn) OnError(fn func(error)) {
	nc.mu.Lock()
	defer nc.mu.Unlock()
	nc.onError = fn
}

func (nc *netConn) Close() error {
	nc.mu.Lock()
	if nc.closed {
		nc.mu.Unlock()
		return nil
	}
	nc.closed = true
	nc.mu.Unlock()
	return nc.c.Close()
}

func (nc *netConn) readLoop() {
	for {
		buf, err := readReply(nc.r)
		if err != nil {
			nc.mu.Lock()
			fn := nc.onError
			closed := nc.closed
			nc.mu.Unlock()
			if fn != nil && !closed {
				fn(err)
			}
			return
		}
		nc.mu.Lock()
		fn := nc.onMessage
		nc.mu.Unlock()
		if fn != nil {
			fn(buf)
		}
	}
}

// readReply consumes exactly one complete reply, markers and CRLFs
// included, and returns its raw bytes.
func readReply(r *bufio.Reader) ([]byte, error) {
	line, err := readLine(r)
	if err != nil {
		return nil, err
	}

	switch line[0] {
	case '+', '-', ':':
		return line, nil

	case '$':
		n, err := parseHeaderInt(line)
		if err != nil {
			return nil, err
		}
		if n < 0 {
			return line, nil
		}
		if n > MaxBulkLen {
			return nil, errFrameLimit
		}
		data := make([]byte, n+2)
		if _, err := io.ReadFull(r, data); err != nil {
			return nil, err
		}
		if !bytes.HasSuffix(data, []byte("\r\n")) {
			return nil, fmt.Errorf("client: bulk reply missing terminator")
		}
		return append(line, data...), nil

	case '*':
		n, err := parseHeaderInt(line)
		if err != nil {
			return nil, err
		}
		if n > MaxReplyElements {
			return nil, errFrameLimit
		}
		buf := line
		for i := 0; i < n; i++ {
			el, err := readReply(r)
			if err != nil {
				return nil, err
			}
			buf = append(buf, el...)
		}
		return buf, nil

	default:
		// The decoder owns rejection of unknown markers; the read loop
		// just frames the line.
		return line, nil
	}
}

// readLine reads one CRLF-terminated line, terminator included.
func readLine(r *bufio.Reader) ([]byte, error) {
	var buf []byte
	for {
		frag, err := r.ReadSlice('\n')
		if err == nil {
			buf = append(buf, frag...)
			break
		}
		if errors.Is(err, bufio.ErrBufferFull) {
			buf = append(buf, frag...)
			if len(buf) > MaxLineLen {
				return nil, errFrameLimit
			}
			continue
		}
		return nil, err
	}
	if len(buf) > MaxLineLen {
		return nil, errFrameLimit
	}
	if len(buf) < 2 || !bytes.HasSuffix(buf, []byte("\r\n")) {
		return nil, fmt.Errorf("client: reply line missing CRLF")
	}
	return buf, nil
}

func parseHeaderInt(line []byte) (int, error) {
	n, err := strconv.Atoi(string(bytes.TrimSuffix(line[1:], []byte("\r\n"))))
	if err != nil {
		return 0, fmt.Errorf("client: bad reply header %q", line)
	}
	return n, nil
}
