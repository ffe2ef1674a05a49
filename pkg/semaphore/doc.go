// Package semaphore provides a poll-style counting semaphore for building
// capacity-limiting middleware.
//
// Unlike blocking semaphores, acquisition here follows the readiness
// contract: PollAcquire never blocks, and when no permit is available it
// registers a waker that fires on the next Release. Wakeups may be spurious
// (another poller can win the permit first), so a woken caller must poll
// again rather than assume success. Waiters are woken in FIFO order.
package semaphore
