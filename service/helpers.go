package service

import (
	"context"

	"github.com/c360/conduit/errors"
)

// AwaitReady drives PollReady until the service reports Ready, parking the
// goroutine between polls. It is the bridge from the poll/waker contract to
// blocking Go code. Returns the service's permanent error, or ctx.Err() if
// the context ends first.
//
// On success, capacity for exactly one Call is reserved. Callers that then
// decide not to call must release the reservation through whatever surface
// the service provides (e.g. Close on middleware/limit).
func AwaitReady[Req, Resp any](ctx context.Context, svc Service[Req, Resp]) error {
	wake := make(chan struct{}, 1)
	w := Waker(func() {
		select {
		case wake <- struct{}{}:
		default:
		}
	})

	for {
		r, err := svc.PollReady(w)
		if err != nil {
			return errors.WrapPermanent(err, "service", "AwaitReady", "readiness poll")
		}
		if r == Ready {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-wake:
		}
	}
}

// Do is the full readiness-then-call convenience: await readiness, dispatch
// the request, and wait for the result. Context expiry at any point cancels
// the in-flight computation and returns ctx.Err().
func Do[Req, Resp any](ctx context.Context, svc Service[Req, Resp], req Req) (Resp, error) {
	if err := AwaitReady(ctx, svc); err != nil {
		var zero Resp
		return zero, err
	}
	return svc.Call(req).Wait(ctx)
}
