package buffer

import (
	"log/slog"
	"sync"

	"github.com/eapache/queue"

	"github.com/c360/conduit/errors"
	"github.com/c360/conduit/pkg/semaphore"
	"github.com/c360/conduit/service"
)

// entry is one queued request. The slot release is guarded by a Once so
// that cancellation and worker dequeue cannot double-free the reservation.
type entry[Req, Resp any] struct {
	req  Req
	fut  *service.Future[Resp]
	free sync.Once
}

// shared is the state owned jointly by every clone of a Buffer: the bounded
// queue, its capacity semaphore, and the dispatch worker's channels.
type shared[Req, Resp any] struct {
	inner  service.Service[Req, Resp]
	slots  *semaphore.Semaphore
	logger *slog.Logger

	mu      sync.Mutex
	q       *queue.Queue // of *entry[Req, Resp]
	drained bool         // set once drain starts; no entry may be queued after

	notify  chan struct{}
	closing chan struct{}
	done    chan struct{}
	once    sync.Once
}

func newShared[Req, Resp any](inner service.Service[Req, Resp], capacity int, logger *slog.Logger) *shared[Req, Resp] {
	return &shared[Req, Resp]{
		inner:   inner,
		slots:   semaphore.New(capacity),
		logger:  logger,
		q:       queue.New(),
		notify:  make(chan struct{}, 1),
		closing: make(chan struct{}),
		done:    make(chan struct{}),
	}
}

func (s *shared[Req, Resp]) isClosed() bool {
	select {
	case <-s.closing:
		return true
	default:
		return false
	}
}

func (s *shared[Req, Resp]) close() {
	s.once.Do(func() { close(s.closing) })
}

// enqueue adds a request to the queue and returns its future. The caller
// has already reserved a slot; the entry carries the obligation to return
// it.
func (s *shared[Req, Resp]) enqueue(req Req) *service.Future[Resp] {
	e := &entry[Req, Resp]{req: req, fut: service.NewFuture[Resp]()}

	// Cancellation before dispatch returns the slot immediately; the
	// worker later discards the dead entry.
	e.fut.OnCancel(func() {
		e.free.Do(s.slots.Release)
	})

	s.mu.Lock()
	if s.drained {
		// The worker has already emptied the queue and exited; an entry
		// added now would never be dequeued. Fail it instead of queueing.
		s.mu.Unlock()
		e.free.Do(s.slots.Release)
		var zero Resp
		e.fut.Complete(zero, errors.ErrServiceClosed)
		return e.fut
	}
	s.q.Add(e)
	s.mu.Unlock()

	select {
	case s.notify <- struct{}{}:
	default:
	}

	return e.fut
}

func (s *shared[Req, Resp]) dequeue() *entry[Req, Resp] {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.q.Length() == 0 {
		return nil
	}
	return s.q.Remove().(*entry[Req, Resp])
}

// run is the dispatch loop. It owns the inner service: readiness is awaited
// here, in the worker's own scheduling domain, so callers never block on
// the inner service's backpressure - they only see the queue bound.
func (s *shared[Req, Resp]) run() {
	defer close(s.done)
	s.logger.Debug("dispatch worker started")

	for {
		e := s.dequeue()
		if e == nil {
			select {
			case <-s.notify:
				continue
			case <-s.closing:
				s.drain()
				s.logger.Debug("dispatch worker stopped")
				return
			}
		}

		s.dispatch(e)
	}
}

// dispatch forwards one entry to the inner service and wires result and
// cancellation through to the caller's future.
func (s *shared[Req, Resp]) dispatch(e *entry[Req, Resp]) {
	if e.fut.Canceled() {
		e.free.Do(s.slots.Release)
		s.logger.Debug("skipping canceled entry")
		return
	}

	if err := s.awaitInnerReady(); err != nil {
		e.free.Do(s.slots.Release)
		var zero Resp
		e.fut.Complete(zero, errors.Wrap(err, "buffer", "dispatch", "inner readiness"))
		return
	}

	innerFut := s.inner.Call(e.req)
	e.free.Do(s.slots.Release)

	// From here on, abandoning the caller's future abandons the inner
	// computation too.
	e.fut.OnCancel(innerFut.Cancel)

	go func() {
		<-innerFut.Done()
		e.fut.Complete(innerFut.Result())
	}()
}

// awaitInnerReady blocks the worker until the inner service reports Ready,
// a permanent failure, or the buffer starts closing.
func (s *shared[Req, Resp]) awaitInnerReady() error {
	wake := make(chan struct{}, 1)
	w := service.Waker(func() {
		select {
		case wake <- struct{}{}:
		default:
		}
	})

	for {
		r, err := s.inner.PollReady(w)
		if err != nil {
			return err
		}
		if r == service.Ready {
			return nil
		}
		select {
		case <-wake:
		case <-s.closing:
			return errors.ErrShuttingDown
		}
	}
}

// drain fails every still-queued entry after close. Entries that race in
// while draining either land in the queue and are failed here, or see the
// drained flag in enqueue and are failed there.
func (s *shared[Req, Resp]) drain() {
	s.mu.Lock()
	s.drained = true
	s.mu.Unlock()

	for {
		e := s.dequeue()
		if e == nil {
			return
		}
		e.free.Do(s.slots.Release)
		var zero Resp
		e.fut.Complete(zero, errors.ErrServiceClosed)
	}
}
