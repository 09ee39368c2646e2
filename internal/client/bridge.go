package client

import (
	"context"
	"sync"
	"time"
)

// DefaultAwaitTimeout bounds the wait for a reply when the caller does
// not configure one. Waiting forever on an unresponsive peer is a
// correctness hazard, not a feature.
const DefaultAwaitTimeout = 30 * time.Second

type awaitResult struct {
	buf []byte
	err error
}

// Bridge turns the connection's callback-driven delivery into a
// blocking send-and-await-one-reply operation.
//
// At most one request is outstanding at a time. The waiting caller's
// one-shot hook is registered before its frame is sent, so a reply
// cannot race past the registration. A buffer that lands with no
// waiter therefore predates any live call; it is parked and discarded
// at the next call's start, never handed to a request whose frame it
// cannot belong to. Concurrent callers are serialized, so a shared
// connection stays correct without the caller arranging its own
// locking.
type Bridge struct {
	callMu  sync.Mutex // serializes SendAwait callers
	conn    Conn
	timeout time.Duration

	slotMu  sync.Mutex
	pending []byte           // reply that arrived with no waiter
	waiter  chan awaitResult // one-shot hook of the current waiter
	downErr error            // sticky transport failure, nil while healthy
}

// NewBridge wires a bridge onto conn. The timeout applies to each
// await; zero selects DefaultAwaitTimeout.
func NewBridge(conn Conn, timeout time.Duration) *Bridge {
	if timeout <= 0 {
		timeout = DefaultAwaitTimeout
	}
	b := &Bridge{conn: conn, timeout: timeout}
	conn.OnMessage(b.deliver)
	conn.OnError(b.fail)
	return b
}

// deliver hands an inbound reply to the waiting caller, or parks it in
// the pending slot when the reply won the race against registration.
func (b *Bridge) deliver(buf []byte) {
	b.slotMu.Lock()
	defer b.slotMu.Unlock()
	if b.waiter != nil {
		w := b.waiter
		b.waiter = nil // one-shot: a later reply cannot reuse this hook
		w <- awaitResult{buf: buf}
		return
	}
	b.pending = buf
}

// fail marks the connection dead and releases any outstanding waiter
// immediately instead of letting it block until timeout.
func (b *Bridge) fail(err error) {
	b.slotMu.Lock()
	defer b.slotMu.Unlock()
	b.downErr = err
	if b.waiter != nil {
		w := b.waiter
		b.waiter = nil
		w <- awaitResult{err: ErrTransport.WithCause(err)}
	}
}

// SendAwait transmits one encoded frame and blocks until exactly one
// complete reply buffer has arrived, the transport fails, the timeout
// elapses, or ctx is done.
//
// On timeout or cancellation the connection is closed: a reply for the
// abandoned request may still be in flight, and consuming it later
// would hand a stale buffer to an unrelated call.
func (b *Bridge) SendAwait(ctx context.Context, frame []byte) ([]byte, error) {
	b.callMu.Lock()
	defer b.callMu.Unlock()

	b.slotMu.Lock()
	conn := b.conn
	if conn == nil || b.downErr != nil {
		b.slotMu.Unlock()
		return nil, ErrNotConnected
	}
	if b.pending != nil {
		// A buffer parked with no waiter predates this call. Resolving
		// with it would pair this request with someone else's reply,
		// before the frame was even sent. Drop it.
		b.pending = nil
	}
	hook := make(chan awaitResult, 1)
	b.waiter = hook
	b.slotMu.Unlock()

	if err := conn.Send(frame); err != nil {
		b.clearWaiter(hook)
		return nil, ErrTransport.WithCause(err)
	}

	timer := time.NewTimer(b.timeout)
	defer timer.Stop()

	select {
	case res := <-hook:
		return res.buf, res.err
	case <-timer.C:
		b.abandon(hook)
		return nil, ErrTimeout
	case <-ctx.Done():
		b.abandon(hook)
		return nil, ErrTimeout.WithCause(ctx.Err())
	}
}

// Close tears the bridge down; SendAwait afterwards fails with
// ErrNotConnected before any I/O. Idempotent.
func (b *Bridge) Close() error {
	b.slotMu.Lock()
	conn := b.conn
	b.conn = nil
	if b.waiter != nil {
		w := b.waiter
		b.waiter = nil
		w <- awaitResult{err: ErrNotConnected}
	}
	b.slotMu.Unlock()
	if conn == nil {
		return nil
	}
	return conn.Close()
}

// clearWaiter removes the one-shot hook after a failed send.
func (b *Bridge) clearWaiter(hook chan awaitResult) {
	b.slotMu.Lock()
	if b.waiter == hook {
		b.waiter = nil
	}
	b.slotMu.Unlock()
}

// abandon gives up on an outstanding request. The connection cannot be
// reused: its next inbound buffer belongs to the request just
// abandoned.
func (b *Bridge) abandon(hook chan awaitResult) {
	b.slotMu.Lock()
	if b.waiter == hook {
		b.waiter = nil
	}
	conn := b.conn
	b.conn = nil
	b.slotMu.Unlock()
	if conn != nil {
		conn.Close()
	}
}
