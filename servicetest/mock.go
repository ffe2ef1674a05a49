package servicetest

import (
	"sync"

	"github.com/c360/conduit/service"
)

// Mock is a scripted Service for testing middleware. Readiness must be
// granted explicitly via Allow; a Call that was not preceded by a Ready
// panics, making acceptance-contract violations detectable in tests.
type Mock[Req, Resp any] struct {
	mu       sync.Mutex
	allowed  int
	reserved bool
	denyErr  error
	wakers   []service.Waker
	calls    []*Handle[Req, Resp]
}

// Handle represents one dispatched request. The test side uses it to
// inspect the request and resolve or fail the computation.
type Handle[Req, Resp any] struct {
	Request Req
	fut     *service.Future[Resp]
}

// Respond resolves the call successfully
func (h *Handle[Req, Resp]) Respond(resp Resp) {
	h.fut.Complete(resp, nil)
}

// Fail resolves the call with an error
func (h *Handle[Req, Resp]) Fail(err error) {
	var zero Resp
	h.fut.Complete(zero, err)
}

// Canceled reports whether the caller abandoned this computation
func (h *Handle[Req, Resp]) Canceled() bool {
	return h.fut.Canceled()
}

// Future returns the underlying future, for tests that poll it directly
func (h *Handle[Req, Resp]) Future() *service.Future[Resp] {
	return h.fut
}

// NewMock creates a Mock with no readiness granted; the first PollReady
// reports Pending until Allow is called.
func NewMock[Req, Resp any]() *Mock[Req, Resp] {
	return &Mock[Req, Resp]{}
}

// Allow grants n readiness tokens and wakes parked pollers
func (m *Mock[Req, Resp]) Allow(n int) {
	m.mu.Lock()
	m.allowed += n
	wakers := m.wakers
	m.wakers = nil
	m.mu.Unlock()

	for _, w := range wakers {
		w()
	}
}

// Deny makes every subsequent PollReady report the given permanent error
func (m *Mock[Req, Resp]) Deny(err error) {
	m.mu.Lock()
	m.denyErr = err
	wakers := m.wakers
	m.wakers = nil
	m.mu.Unlock()

	for _, w := range wakers {
		w()
	}
}

// PollReady implements service.Service. A granted Ready stays reserved
// across re-polls until the next Call consumes it.
func (m *Mock[Req, Resp]) PollReady(w service.Waker) (service.Readiness, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.denyErr != nil {
		return service.Pending, m.denyErr
	}
	if m.reserved {
		return service.Ready, nil
	}
	if m.allowed > 0 {
		m.allowed--
		m.reserved = true
		return service.Ready, nil
	}
	if w != nil {
		m.wakers = append(m.wakers, w)
	}
	return service.Pending, nil
}

// Call implements service.Service. It panics if no readiness was reserved,
// which is exactly the acceptance-contract violation tests need to detect.
func (m *Mock[Req, Resp]) Call(req Req) *service.Future[Resp] {
	m.mu.Lock()
	if !m.reserved {
		m.mu.Unlock()
		panic("servicetest: Call without a prior Ready from PollReady")
	}
	m.reserved = false

	h := &Handle[Req, Resp]{
		Request: req,
		fut:     service.NewFuture[Resp](),
	}
	m.calls = append(m.calls, h)
	m.mu.Unlock()

	return h.fut
}

// CallCount returns the number of accepted calls so far
func (m *Mock[Req, Resp]) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

// LastCall returns the handle for the most recent call, or nil if none
func (m *Mock[Req, Resp]) LastCall() *Handle[Req, Resp] {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.calls) == 0 {
		return nil
	}
	return m.calls[len(m.calls)-1]
}

// Calls returns a snapshot of every handle in call order
func (m *Mock[Req, Resp]) Calls() []*Handle[Req, Resp] {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*Handle[Req, Resp], len(m.calls))
	copy(out, m.calls)
	return out
}
