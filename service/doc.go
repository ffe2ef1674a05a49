// Package service defines the capability contract at the heart of conduit:
// an asynchronous request/response transformer with explicit, poll-based
// readiness signaling.
//
// # The Contract
//
// A Service is driven in two phases. First the caller polls readiness:
//
//	r, err := svc.PollReady(wake)
//
// PollReady never blocks. Ready reserves capacity for exactly one subsequent
// Call. Pending means the caller must park and retry when the waker fires;
// busy-polling without yielding is a contract violation. A non-nil error
// means the service is permanently unusable and must be discarded.
//
// Only after observing Ready may the caller invoke:
//
//	fut := svc.Call(req)
//
// Call consumes the reservation and returns a Future that resolves to the
// response or an error. Calling without a prior Ready is a contract
// violation; implementations may panic or reject, and the test doubles in
// package servicetest panic deliberately so violations surface in tests.
//
// # Futures and Cancellation
//
// A Future is owned by the caller until it resolves or is canceled. Cancel
// is the sole cancellation mechanism: it synchronously runs every registered
// release hook (timers stopped, permits returned, buffered slots freed), so
// reserved capacity never outlives an abandoned request.
//
// # Clones and Concurrency
//
// A single instance is not reentrant: one readiness-then-call sequence at a
// time. Concurrency is achieved by cloning; clones are cheap, and state
// shared between them (a semaphore, a queue) is internally synchronized.
// Polling one un-cloned instance from multiple goroutines concurrently is
// unsupported.
package service
