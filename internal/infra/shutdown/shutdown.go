// Package shutdown provides signal-driven interruption of CLI work.
package shutdown

import (
	"os"
	"os/signal"
	"sync"
	"syscall"
)

// Handler turns a termination signal into registered stop calls.
type Handler struct {
	mu    sync.Mutex
	stops []func()

	sigCh   chan os.Signal
	quit    chan struct{}
	done    chan struct{}
	release sync.Once
}

// NewHandler creates a handler and starts listening for SIGINT and
// SIGTERM. Release must be called to detach the signal listener.
func NewHandler() *Handler {
	h := &Handler{
		sigCh: make(chan os.Signal, 1),
		quit:  make(chan struct{}),
		done:  make(chan struct{}),
	}
	signal.Notify(h.sigCh, syscall.SIGINT, syscall.SIGTERM)
	return h
}

// OnSignal registers a stop function. Stops run in reverse order of
// registration.
func (h *Handler) OnSignal(stop func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.stops = append(h.stops, stop)
}

// Watch blocks until a termination signal arrives, then runs the stop
// functions and returns. Release unblocks it without running them.
func (h *Handler) Watch() {
	select {
	case <-h.sigCh:
		h.run()
	case <-h.quit:
	}
}

func (h *Handler) run() {
	h.mu.Lock()
	stops := make([]func(), len(h.stops))
	copy(stops, h.stops)
	h.mu.Unlock()

	for i := len(stops) - 1; i >= 0; i-- {
		stops[i]()
	}
	close(h.done)
}

// Release detaches the signal listener and unblocks Watch. Work that
// finishes on its own calls Release so a later signal reaches the
// default handler again. Idempotent.
func (h *Handler) Release() {
	h.release.Do(func() {
		signal.Stop(h.sigCh)
		close(h.quit)
	})
}

// Done returns a channel that closes once the stop functions have run.
// It never closes when the handler is released without a signal.
func (h *Handler) Done() <-chan struct{} {
	return h.done
}
