// Package metrics instruments a service with prometheus metrics: request
// outcomes, latency, in-flight count, and observed backpressure.
//
// Instrumentation is purely observational. PollReady delegates to the inner
// service unchanged, so adding metrics never alters the backpressure
// behavior of a stack.
package metrics

import (
	"time"

	"github.com/c360/conduit/metric"
	"github.com/c360/conduit/service"
)

// Instrument wraps an inner service and records its behavior into the core
// metrics of a metric.Registry under a service name label.
type Instrument[Req, Resp any] struct {
	inner service.Service[Req, Resp]
	name  string
	core  *metric.Metrics
}

// New instruments inner, labeling all metrics with name
func New[Req, Resp any](inner service.Service[Req, Resp], registry *metric.Registry, name string) *Instrument[Req, Resp] {
	return &Instrument[Req, Resp]{
		inner: inner,
		name:  name,
		core:  registry.Core(),
	}
}

// PollReady delegates to the inner service, counting polls that observe
// backpressure
func (i *Instrument[Req, Resp]) PollReady(w service.Waker) (service.Readiness, error) {
	r, err := i.inner.PollReady(w)
	if err == nil && r == service.Pending {
		i.core.NotReadyTotal.WithLabelValues(i.name).Inc()
	}
	return r, err
}

// Call dispatches to the inner service and records outcome, latency, and
// in-flight count when the computation settles
func (i *Instrument[Req, Resp]) Call(req Req) *service.Future[Resp] {
	start := time.Now()
	i.core.InFlight.WithLabelValues(i.name).Inc()

	fut := i.inner.Call(req)

	go func() {
		<-fut.Done()
		i.core.InFlight.WithLabelValues(i.name).Dec()
		i.core.RequestDuration.WithLabelValues(i.name).Observe(time.Since(start).Seconds())

		status := metric.StatusOK
		if fut.Canceled() {
			status = metric.StatusCanceled
		} else if _, err := fut.Result(); err != nil {
			status = metric.StatusError
		}
		i.core.RequestsTotal.WithLabelValues(i.name, status).Inc()
	}()

	return fut
}

// Clone duplicates the instrument for an independent call site; clones
// record into the same metrics
func (i *Instrument[Req, Resp]) Clone() service.Service[Req, Resp] {
	return &Instrument[Req, Resp]{
		inner: service.Clone(i.inner),
		name:  i.name,
		core:  i.core,
	}
}
