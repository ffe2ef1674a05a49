// Package servicetest provides testing utilities for conduit services and
// middleware.
//
// # Core Components
//
// Mock - a scripted service for driving middleware under test:
//   - Readiness is granted explicitly (Allow) or failed permanently (Deny)
//   - Panics when Call arrives without a prior Ready, so contract
//     violations fail tests loudly instead of passing silently
//   - Every call yields a Handle the test uses to respond, fail, or
//     observe cancellation
//   - Thread-safe for concurrent use
//
// Latency - a leaf service that always succeeds (or fails) after a fixed
// delay, with atomic counters for started/completed/canceled requests.
// Useful for timeout and cancellation assertions where "the inner
// computation was abandoned" must be observable.
package servicetest
