// Package limit bounds the number of concurrently in-flight requests across
// every clone of a service.
//
// The limit is enforced through readiness, not queueing: PollReady reports
// Ready only when both a permit has been reserved and the inner service is
// itself ready, so backpressure propagates to callers instead of piling up
// inside the stack. A reserved permit travels with the request and is
// returned exactly once, on completion or cancellation - never leaked by an
// abandoned computation.
package limit

import (
	"sync"

	"github.com/c360/conduit/errors"
	"github.com/c360/conduit/pkg/semaphore"
	"github.com/c360/conduit/service"
)

// InFlight enforces a maximum number of in-flight requests. Clones share
// one semaphore; each clone tracks its own single reservation.
//
// An InFlight instance is not reentrant: one readiness-then-call sequence
// at a time per clone.
type InFlight[Req, Resp any] struct {
	inner service.Service[Req, Resp]
	sem   *semaphore.Semaphore
	held  bool
}

// New wraps inner with a shared in-flight limit of max requests
func New[Req, Resp any](inner service.Service[Req, Resp], max int) *InFlight[Req, Resp] {
	return &InFlight[Req, Resp]{
		inner: inner,
		sem:   semaphore.New(max),
	}
}

// PollReady reserves a permit and then checks the inner service. Ready is
// reported only when both succeed. Re-polling while a permit is held keeps
// that same permit; a permanent inner failure returns the permit before
// surfacing the error.
func (l *InFlight[Req, Resp]) PollReady(w service.Waker) (service.Readiness, error) {
	if !l.held {
		if !l.sem.PollAcquire(w) {
			return service.Pending, nil
		}
		l.held = true
	}

	r, err := l.inner.PollReady(w)
	if err != nil {
		l.held = false
		l.sem.Release()
		return service.Pending, errors.Wrap(err, "limit", "PollReady", "inner readiness")
	}
	return r, nil
}

// Call consumes the reserved permit and dispatches to the inner service.
// The permit is transferred to the returned future and released exactly
// once: synchronously on cancellation, or when the computation resolves.
// Calling without a prior Ready is a contract violation.
func (l *InFlight[Req, Resp]) Call(req Req) *service.Future[Resp] {
	if !l.held {
		panic("limit: Call without a prior Ready from PollReady")
	}
	l.held = false

	fut := l.inner.Call(req)

	var once sync.Once
	release := func() {
		once.Do(l.sem.Release)
	}

	fut.OnCancel(release)
	go func() {
		<-fut.Done()
		release()
	}()

	return fut
}

// Close releases an unconsumed reservation. Callers that saw Ready but
// decided not to call must Close (or call) so the permit is not leaked.
func (l *InFlight[Req, Resp]) Close() {
	if l.held {
		l.held = false
		l.sem.Release()
	}
}

// Clone returns an independent call-site handle sharing the same limit
func (l *InFlight[Req, Resp]) Clone() service.Service[Req, Resp] {
	return &InFlight[Req, Resp]{
		inner: service.Clone(l.inner),
		sem:   l.sem,
	}
}

// InFlightCap returns the number of permits currently available. Intended
// for tests and debug probes.
func (l *InFlight[Req, Resp]) InFlightCap() int {
	return l.sem.Available()
}
