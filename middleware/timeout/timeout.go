// Package timeout applies a deadline to every request passing through a
// service. If the inner computation does not resolve within the configured
// duration it is abandoned and the caller receives a distinguished Elapsed
// error, recoverable through errors.As even after further erasure by outer
// middleware.
//
// Timeout imposes no capacity limit of its own, so PollReady delegates to
// the inner service unchanged.
package timeout

import (
	"time"

	"github.com/c360/conduit/service"
)

// Timeout wraps an inner service and races each computation against a
// deadline timer.
//
// Each in-flight request is in exactly one of three states: racing (both
// the inner computation and the timer live), response-won (inner result
// forwarded unchanged), or timeout-won (inner computation canceled, Elapsed
// returned). The race is settled exactly once.
type Timeout[Req, Resp any] struct {
	inner   service.Service[Req, Resp]
	timeout time.Duration
}

// New wraps inner with the given deadline per request
func New[Req, Resp any](inner service.Service[Req, Resp], d time.Duration) *Timeout[Req, Resp] {
	return &Timeout[Req, Resp]{inner: inner, timeout: d}
}

// PollReady delegates directly to the inner service; a timeout never blocks
// acceptance
func (t *Timeout[Req, Resp]) PollReady(w service.Waker) (service.Readiness, error) {
	return t.inner.PollReady(w)
}

// Call starts the inner computation and the deadline timer concurrently.
// Whichever finishes first settles the returned future; the loser is
// stopped. Canceling the returned future stops the timer and cancels the
// inner computation synchronously.
func (t *Timeout[Req, Resp]) Call(req Req) *service.Future[Resp] {
	innerFut := t.inner.Call(req)
	out := service.NewFuture[Resp]()

	timer := time.NewTimer(t.timeout)
	out.OnCancel(func() {
		timer.Stop()
		innerFut.Cancel()
	})

	go func() {
		defer timer.Stop()
		select {
		case <-innerFut.Done():
			out.Complete(innerFut.Result())
		case <-timer.C:
			// Abandon the inner computation before reporting the
			// timeout so its reservations are already released when
			// the caller observes the error.
			innerFut.Cancel()
			var zero Resp
			out.Complete(zero, &Elapsed{After: t.timeout})
		case <-out.Done():
			// Caller canceled; OnCancel handled the cleanup.
		}
	}()

	return out
}

// Clone duplicates the timeout for an independent call site
func (t *Timeout[Req, Resp]) Clone() service.Service[Req, Resp] {
	return New(service.Clone(t.inner), t.timeout)
}
