package service

// Waker is invoked when a condition that previously returned Pending may
// have cleared. It must be safe to call from any goroutine and may fire
// spuriously; the poller reacts by polling again, never by assuming
// readiness.
type Waker func()

// Readiness is the result of a non-blocking readiness check
type Readiness int

// Possible readiness values
const (
	// Pending means the service cannot accept a request right now; the
	// caller must park until the waker fires and then poll again
	Pending Readiness = iota
	// Ready means capacity is reserved for exactly one subsequent Call
	Ready
)

// String returns the string representation of Readiness
func (r Readiness) String() string {
	switch r {
	case Pending:
		return "pending"
	case Ready:
		return "ready"
	default:
		return "unknown"
	}
}

// Service is an asynchronous request/response transformer with explicit
// readiness signaling. See the package documentation for the full contract.
type Service[Req, Resp any] interface {
	// PollReady reports whether the service can accept one more request
	// right now. It never blocks. Ready reserves capacity for exactly one
	// Call; Pending registers w for notification; a non-nil error means
	// the service is permanently unusable. Safe to call repeatedly -
	// re-polling while a reservation is held keeps that same reservation.
	PollReady(w Waker) (Readiness, error)

	// Call consumes the reservation made by the last Ready and begins
	// processing req. Calling without a prior Ready is a contract
	// violation. The returned Future resolving to an error does not
	// invalidate the service itself.
	Call(req Req) *Future[Resp]
}

// Cloner is implemented by services that hold per-call-site state (such as
// a readiness reservation) and therefore need more than a shallow copy to
// duplicate. Clone must be cheap; state shared between clones (semaphores,
// queues) must be internally synchronized.
type Cloner[Req, Resp any] interface {
	Service[Req, Resp]
	Clone() Service[Req, Resp]
}

// Clone duplicates a service for use by an independent call site. Services
// implementing Cloner get a fresh per-instance state; anything else is
// treated as trivially duplicable and returned as-is.
func Clone[Req, Resp any](svc Service[Req, Resp]) Service[Req, Resp] {
	if c, ok := svc.(Cloner[Req, Resp]); ok {
		return c.Clone()
	}
	return svc
}

// Func adapts a plain function into an always-ready Service. Each Call runs
// the function in its own goroutine, so a Func imposes no capacity limit of
// its own - wrap it in middleware/limit when one is needed.
type Func[Req, Resp any] func(Req) (Resp, error)

// PollReady always reports Ready; a Func has no capacity limit
func (f Func[Req, Resp]) PollReady(Waker) (Readiness, error) {
	return Ready, nil
}

// Call runs the function asynchronously and resolves the returned Future
// with its result. Cancellation of the Future discards the result but does
// not interrupt the function.
func (f Func[Req, Resp]) Call(req Req) *Future[Resp] {
	fut := NewFuture[Resp]()
	go func() {
		fut.Complete(f(req))
	}()
	return fut
}
