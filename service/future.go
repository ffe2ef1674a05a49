package service

import (
	"context"
	"sync"

	"github.com/c360/conduit/errors"
)

// future states
const (
	futurePending int32 = iota
	futureResolved
	futureCanceled
)

// Future represents an in-flight asynchronous computation producing a
// response or an error. It is created per invocation and owned exclusively
// by the caller until it resolves or is canceled.
//
// Implementors of Service complete a Future via Complete; callers consume it
// via Poll, Wait, or Done+Result. Cancel is the caller's drop: it runs every
// registered release hook synchronously so reserved capacity is returned
// before Cancel returns.
type Future[Resp any] struct {
	mu       sync.Mutex
	state    int32
	resp     Resp
	err      error
	done     chan struct{}
	wakers   []Waker
	onCancel []func()
}

// NewFuture creates an unresolved Future
func NewFuture[Resp any]() *Future[Resp] {
	return &Future[Resp]{done: make(chan struct{})}
}

// ResolvedFuture returns a Future already completed with resp
func ResolvedFuture[Resp any](resp Resp) *Future[Resp] {
	f := NewFuture[Resp]()
	f.Complete(resp, nil)
	return f
}

// FailedFuture returns a Future already completed with err
func FailedFuture[Resp any](err error) *Future[Resp] {
	f := NewFuture[Resp]()
	var zero Resp
	f.Complete(zero, err)
	return f
}

// Complete resolves the Future with the given result. Only the first
// resolution wins; completion after cancellation is discarded. Returns true
// if this call resolved the Future.
func (f *Future[Resp]) Complete(resp Resp, err error) bool {
	f.mu.Lock()
	if f.state != futurePending {
		f.mu.Unlock()
		return false
	}
	f.state = futureResolved
	f.resp = resp
	f.err = err
	wakers := f.wakers
	f.wakers = nil
	f.onCancel = nil
	close(f.done)
	f.mu.Unlock()

	for _, w := range wakers {
		w()
	}
	return true
}

// Cancel abandons the computation. It is idempotent and a no-op after
// resolution. Registered release hooks run synchronously, in registration
// order, before Cancel returns; a later Complete is discarded.
func (f *Future[Resp]) Cancel() {
	f.mu.Lock()
	if f.state != futurePending {
		f.mu.Unlock()
		return
	}
	f.state = futureCanceled
	f.err = errors.ErrCanceled
	hooks := f.onCancel
	f.onCancel = nil
	wakers := f.wakers
	f.wakers = nil
	close(f.done)
	f.mu.Unlock()

	for _, hook := range hooks {
		hook()
	}
	for _, w := range wakers {
		w()
	}
}

// OnCancel registers a release hook to run if the Future is canceled before
// it resolves. If the Future is already canceled the hook runs immediately;
// if it already resolved the hook is dropped.
func (f *Future[Resp]) OnCancel(hook func()) {
	f.mu.Lock()
	switch f.state {
	case futurePending:
		f.onCancel = append(f.onCancel, hook)
		f.mu.Unlock()
		return
	case futureCanceled:
		f.mu.Unlock()
		hook()
		return
	default:
		f.mu.Unlock()
	}
}

// Poll performs a non-blocking check for completion. If the Future is still
// pending it registers w for notification and returns done=false. Wakeups
// may be spurious; callers must re-poll.
func (f *Future[Resp]) Poll(w Waker) (done bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != futurePending {
		return true
	}
	if w != nil {
		f.wakers = append(f.wakers, w)
	}
	return false
}

// Done returns a channel closed when the Future resolves or is canceled
func (f *Future[Resp]) Done() <-chan struct{} {
	return f.done
}

// Result returns the outcome. Valid only after Done is closed (or Poll
// returned true); before that it returns the zero response and ErrNotReady.
// A canceled Future reports errors.ErrCanceled.
func (f *Future[Resp]) Result() (Resp, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state == futurePending {
		var zero Resp
		return zero, errors.ErrNotReady
	}
	return f.resp, f.err
}

// Wait blocks until the Future resolves or ctx is done. Context expiry
// cancels the Future (releasing its reservations) and returns ctx.Err().
func (f *Future[Resp]) Wait(ctx context.Context) (Resp, error) {
	select {
	case <-f.done:
		return f.Result()
	case <-ctx.Done():
		f.Cancel()
		var zero Resp
		return zero, ctx.Err()
	}
}

// Resolved reports whether the Future completed (successfully or not)
func (f *Future[Resp]) Resolved() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state == futureResolved
}

// Canceled reports whether the Future was canceled before resolving
func (f *Future[Resp]) Canceled() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state == futureCanceled
}
