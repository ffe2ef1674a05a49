package limit

import (
	"github.com/c360/conduit/layer"
	"github.com/c360/conduit/service"
)

// NewLayer returns a Layer bounding in-flight requests to max
func NewLayer[Req, Resp any](max int) layer.Layer[Req, Resp] {
	return layer.Func[Req, Resp](func(inner service.Service[Req, Resp]) service.Service[Req, Resp] {
		return New(inner, max)
	})
}
