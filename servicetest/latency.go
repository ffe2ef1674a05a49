package servicetest

import (
	"sync/atomic"
	"time"

	"github.com/c360/conduit/service"
)

// Latency is an always-ready leaf service that resolves each call after a
// fixed delay. Counters expose what the service actually did, so tests can
// assert that an abandoned computation's side effects never became
// observable.
type Latency[Req, Resp any] struct {
	delay   time.Duration
	respond func(Req) (Resp, error)

	started   atomic.Int64
	completed atomic.Int64
	canceled  atomic.Int64
}

// NewLatency creates a Latency service resolving via respond after delay
func NewLatency[Req, Resp any](delay time.Duration, respond func(Req) (Resp, error)) *Latency[Req, Resp] {
	return &Latency[Req, Resp]{delay: delay, respond: respond}
}

// PollReady always reports Ready
func (l *Latency[Req, Resp]) PollReady(service.Waker) (service.Readiness, error) {
	return service.Ready, nil
}

// Call schedules the response after the configured delay. Cancellation
// stops the timer; a response racing with cancellation only counts as
// completed if it actually resolved the future.
func (l *Latency[Req, Resp]) Call(req Req) *service.Future[Resp] {
	l.started.Add(1)
	fut := service.NewFuture[Resp]()

	timer := time.AfterFunc(l.delay, func() {
		if fut.Complete(l.respond(req)) {
			l.completed.Add(1)
		}
	})
	fut.OnCancel(func() {
		timer.Stop()
		l.canceled.Add(1)
	})

	return fut
}

// Started returns how many calls were accepted
func (l *Latency[Req, Resp]) Started() int64 { return l.started.Load() }

// Completed returns how many calls resolved with a result
func (l *Latency[Req, Resp]) Completed() int64 { return l.completed.Load() }

// Canceled returns how many calls were abandoned before resolving
func (l *Latency[Req, Resp]) Canceled() int64 { return l.canceled.Load() }
