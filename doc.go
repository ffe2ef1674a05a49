// Package conduit provides composable middleware for asynchronous
// request/response services with explicit backpressure.
//
// # Philosophy: Readiness Before Work
//
// Conduit is built around one contract: a service must declare that it can
// accept a request before it is handed one. Readiness is polled, never
// assumed, and a Ready answer reserves capacity for exactly one call. This
// turns backpressure into a first-class signal that flows through a stack of
// middleware instead of disappearing into unbounded queues.
//
// Conduit MUST NOT contain:
//   - Wire protocols or transports (HTTP, NATS, WebSocket clients)
//   - Business logic of any kind
//   - Assumptions about request or response payloads
//
// Leaf capabilities (network clients, storage adapters) belong in separate
// modules built on top of the service contract.
//
// # Architecture
//
//	┌─────────────────────────────────────┐
//	│            Caller                   │  PollReady / Call / Wait
//	└─────────────────────────────────────┘
//	           ↓ drives
//	┌─────────────────────────────────────┐
//	│          Middleware                 │  timeout, limit, buffer,
//	│   (assembled via layer.Stack)       │  metrics
//	└─────────────────────────────────────┘
//	           ↓ delegates to
//	┌─────────────────────────────────────┐
//	│         Leaf service                │  the actual work
//	└─────────────────────────────────────┘
//
// # Packages
//
//   - service: the Service contract, Future, and caller helpers
//   - layer: constructor-time composition (Layer, Chain, Stack)
//   - middleware/timeout: deadline racing with a distinguished Elapsed error
//   - middleware/limit: bounded in-flight concurrency shared across clones
//   - middleware/buffer: queued dispatch through a dedicated worker
//   - middleware/metrics: prometheus instrumentation
//   - errors: error classification and wrapping conventions
//   - servicetest: strict test doubles for contract verification
//
// # Backpressure Discipline
//
// A middleware that imposes no capacity limit of its own delegates PollReady
// to its inner service unchanged. A middleware that does impose a limit
// reports Ready only when both its own capacity and the inner service's
// readiness are secured, and it releases its reservation if the call never
// happens or the returned computation is canceled before completion.
// Reserved capacity must never leak on early cancellation.
package conduit
