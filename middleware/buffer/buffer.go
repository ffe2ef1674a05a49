// Package buffer decouples callers from a service by queueing requests
// through a dedicated worker goroutine that owns the inner service.
//
// The queue is strictly bounded and the bound is enforced through
// readiness: PollReady reserves a queue slot or reports Pending, so a full
// buffer pushes back on callers instead of growing. Because only the worker
// ever touches the inner service, a Buffer is freely cloneable even when
// the inner service is not.
package buffer

import (
	"log/slog"

	"github.com/c360/conduit/errors"
	"github.com/c360/conduit/service"
)

// Buffer is a cloneable handle onto a shared queue and worker. Each clone
// tracks its own single slot reservation.
type Buffer[Req, Resp any] struct {
	shared *shared[Req, Resp]
	held   bool
}

// Option is a functional option for configuring a Buffer
type Option func(*options)

type options struct {
	logger *slog.Logger
}

// WithLogger sets the structured logger used by the dispatch worker
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// New creates a Buffer in front of inner with the given queue capacity and
// starts its dispatch worker. The worker runs until Close is called.
func New[Req, Resp any](inner service.Service[Req, Resp], capacity int, opts ...Option) *Buffer[Req, Resp] {
	o := options{logger: slog.Default().With("component", "buffer")}
	for _, opt := range opts {
		opt(&o)
	}

	s := newShared(inner, capacity, o.logger)
	go s.run()

	return &Buffer[Req, Resp]{shared: s}
}

// PollReady reserves one queue slot. It reports Pending when the buffer is
// full and fails permanently once the buffer is closed. Inner readiness is
// deliberately not consulted here; that is the worker's job.
func (b *Buffer[Req, Resp]) PollReady(w service.Waker) (service.Readiness, error) {
	if b.shared.isClosed() {
		return service.Pending, errors.WrapPermanent(
			errors.ErrServiceClosed, "buffer", "PollReady", "slot reservation")
	}
	if b.held {
		return service.Ready, nil
	}
	if !b.shared.slots.PollAcquire(w) {
		return service.Pending, nil
	}
	b.held = true
	return service.Ready, nil
}

// Call consumes the reserved slot and enqueues the request for the worker.
// Canceling the returned future before dispatch frees the slot
// synchronously and the worker skips the entry; after dispatch the
// cancellation propagates to the inner computation.
func (b *Buffer[Req, Resp]) Call(req Req) *service.Future[Resp] {
	if !b.held {
		panic("buffer: Call without a prior Ready from PollReady")
	}
	b.held = false

	return b.shared.enqueue(req)
}

// Close shuts the buffer down: the reservation held by this handle (if
// any) is returned and the worker winds down. Requests still waiting on
// inner readiness or queued behind them fail with a permanent error;
// already-dispatched requests are not interrupted.
func (b *Buffer[Req, Resp]) Close() {
	if b.held {
		b.held = false
		b.shared.slots.Release()
	}
	b.shared.close()
}

// Clone returns an independent handle sharing the queue and worker
func (b *Buffer[Req, Resp]) Clone() service.Service[Req, Resp] {
	return &Buffer[Req, Resp]{shared: b.shared}
}

// Done returns a channel closed when the dispatch worker has exited
func (b *Buffer[Req, Resp]) Done() <-chan struct{} {
	return b.shared.done
}
