package buffer

import (
	"github.com/c360/conduit/layer"
	"github.com/c360/conduit/service"
)

// NewLayer returns a Layer placing a bounded dispatch queue in front of the
// service it wraps. Note that the layer starts a worker per wrapped
// service; use Close on the built service to stop it.
func NewLayer[Req, Resp any](capacity int, opts ...Option) layer.Layer[Req, Resp] {
	return layer.Func[Req, Resp](func(inner service.Service[Req, Resp]) service.Service[Req, Resp] {
		return New(inner, capacity, opts...)
	})
}
