// Package signal provides graceful shutdown handling for spectree commands.
//
// Import rules:
//   - CAN import: std lib only
//   - MUST NOT import: internal packages (to avoid circular dependencies)
package signal

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
)

// Handler turns SIGINT and SIGTERM into context cancellation so long-lived
// commands like watch mode unwind cleanly instead of dying mid-write.
type Handler struct {
	ctx         context.Context //nolint:containedctx // intentional: handler manages context lifecycle
	cancel      context.CancelFunc
	interrupted chan struct{}
	stopped     chan struct{} // signals listen() to exit cleanly
	sigOnce     sync.Once
	stopOnce    sync.Once
	sigChan     chan os.Signal
}

// NewHandler creates a signal handler that listens for SIGINT and SIGTERM.
// When a signal arrives, the handler cancels the derived context and closes
// the Interrupted channel.
//
// Usage:
//
//	h := signal.NewHandler(ctx)
//	defer h.Stop()
//	ctx = h.Context()
func NewHandler(parent context.Context) *Handler {
	ctx, cancel := context.WithCancel(parent)
	h := &Handler{
		ctx:         ctx,
		cancel:      cancel,
		interrupted: make(chan struct{}),
		stopped:     make(chan struct{}),
		// Buffer of 1 so signal.Notify never drops a signal while the
		// handler is busy. See: https://pkg.go.dev/os/signal#Notify
		sigChan: make(chan os.Signal, 1),
	}

	signal.Notify(h.sigChan, syscall.SIGINT, syscall.SIGTERM)
	go h.listen()

	return h
}

// Context returns the cancellable context. Use it for all operations that
// should stop on Ctrl+C.
func (h *Handler) Context() context.Context {
	return h.ctx
}

// Interrupted returns a channel that closes when an interrupt signal was
// received, letting callers distinguish a user interrupt from a normal exit.
func (h *Handler) Interrupted() <-chan struct{} {
	return h.interrupted
}

// WasInterrupted reports whether an interrupt signal was received.
func (h *Handler) WasInterrupted() bool {
	select {
	case <-h.interrupted:
		return true
	default:
		return false
	}
}

// Stop stops listening for signals and cancels the context.
// Always call it when the command finishes to release the goroutine.
func (h *Handler) Stop() {
	h.stopOnce.Do(func() {
		signal.Stop(h.sigChan)
		close(h.stopped) // let listen() exit before sigChan goes quiet
		h.cancel()
	})
}

// handleSignal processes the first received signal; later ones are no-ops.
func (h *Handler) handleSignal() {
	h.sigOnce.Do(func() {
		h.cancel()
		close(h.interrupted)
	})
}

// listen drains the signal channel until the handler stops. Only the first
// signal has any effect; draining keeps delivery from ever blocking the
// runtime's signal forwarding.
func (h *Handler) listen() {
	for {
		select {
		case <-h.ctx.Done():
			return
		case <-h.stopped:
			return
		case <-h.sigChan:
			h.handleSignal()
		}
	}
}
