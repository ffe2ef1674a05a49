package semaphore

import (
	"sync"

	"github.com/eapache/queue"

	"github.com/c360/conduit/service"
)

// Semaphore is a counting semaphore with poll-based acquisition and FIFO
// wake order. Safe for concurrent use; typically shared by every clone of a
// capacity-limited service.
type Semaphore struct {
	mu        sync.Mutex
	available int
	waiters   *queue.Queue // of service.Waker
}

// New creates a Semaphore with the given number of permits
func New(permits int) *Semaphore {
	if permits <= 0 {
		permits = 1 // A zero-permit semaphore could never report ready
	}
	return &Semaphore{
		available: permits,
		waiters:   queue.New(),
	}
}

// PollAcquire attempts to take one permit without blocking. On success it
// returns true. On failure it registers w (if non-nil) to fire on a future
// Release and returns false; the woken caller must poll again.
func (s *Semaphore) PollAcquire(w service.Waker) bool {
	s.mu.Lock()
	if s.available > 0 {
		s.available--
		s.mu.Unlock()
		return true
	}
	if w != nil {
		s.waiters.Add(w)
	}
	s.mu.Unlock()
	return false
}

// Release returns one permit and wakes the longest-waiting poller, if any.
// Releasing more permits than were acquired is a programming error; the
// count is not capped.
func (s *Semaphore) Release() {
	s.mu.Lock()
	s.available++
	var w service.Waker
	if s.waiters.Length() > 0 {
		w = s.waiters.Remove().(service.Waker)
	}
	s.mu.Unlock()

	if w != nil {
		w()
	}
}

// Available returns the number of unclaimed permits
func (s *Semaphore) Available() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.available
}

// Waiting returns the number of registered waiters. Mostly useful in tests
// and debug probes.
func (s *Semaphore) Waiting() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.waiters.Length()
}
