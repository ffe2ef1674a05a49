package layer

import (
	"github.com/c360/conduit/service"
)

// Layer transforms one service into another at stack-assembly time.
// Wrap must be pure: no I/O, no blocking, no per-request work.
type Layer[Req, Resp any] interface {
	Wrap(inner service.Service[Req, Resp]) service.Service[Req, Resp]
}

// Func adapts a plain function into a Layer
type Func[Req, Resp any] func(service.Service[Req, Resp]) service.Service[Req, Resp]

// Wrap implements Layer
func (f Func[Req, Resp]) Wrap(inner service.Service[Req, Resp]) service.Service[Req, Resp] {
	return f(inner)
}

// Identity returns a Layer that wraps nothing, returning the inner service
// unchanged. Useful as a default when a layer slot is optional.
func Identity[Req, Resp any]() Layer[Req, Resp] {
	return Func[Req, Resp](func(inner service.Service[Req, Resp]) service.Service[Req, Resp] {
		return inner
	})
}

// Chain combines layers into a single Layer. The first layer becomes the
// outermost wrapper:
//
//	Chain(a, b).Wrap(svc) == a.Wrap(b.Wrap(svc))
func Chain[Req, Resp any](layers ...Layer[Req, Resp]) Layer[Req, Resp] {
	return Func[Req, Resp](func(inner service.Service[Req, Resp]) service.Service[Req, Resp] {
		svc := inner
		for i := len(layers) - 1; i >= 0; i-- {
			svc = layers[i].Wrap(svc)
		}
		return svc
	})
}
