package metrics

import (
	"github.com/c360/conduit/layer"
	"github.com/c360/conduit/metric"
	"github.com/c360/conduit/service"
)

// NewLayer returns a Layer instrumenting the service it wraps
func NewLayer[Req, Resp any](registry *metric.Registry, name string) layer.Layer[Req, Resp] {
	return layer.Func[Req, Resp](func(inner service.Service[Req, Resp]) service.Service[Req, Resp] {
		return New(inner, registry, name)
	})
}
