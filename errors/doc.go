// Package errors provides standardized error handling patterns for conduit
// services and middleware. It includes error classification, standard error
// variables, and helper functions for consistent error wrapping across a
// middleware stack.
//
// # Error Erasure
//
// A stack of middleware must not produce a combinatorially nested error type.
// Conduit erases behind Go's error interface: every middleware either
// forwards the inner error unchanged or replaces it with its own
// distinguished error value, and callers recover a specific kind with
// errors.As (or the Is* helpers here). Wrapping a known error kind and
// downcasting it returns the original value unchanged.
//
// # Classification
//
// Errors fall into three classes that determine how a caller should react:
//
//   - Transient: per-request failure; the service remains usable and the
//     request may be retried after re-checking readiness.
//   - Invalid: the request itself was unacceptable; retrying the same
//     request will not help.
//   - Permanent: the service is no longer usable and should be discarded.
//     PollReady returning an error always signals this class.
//
// Wrap helpers follow the "component.method: action failed: %w" convention
// so log lines and error chains stay greppable.
package errors
