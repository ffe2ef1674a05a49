package timeout

import (
	"time"

	"github.com/c360/conduit/layer"
	"github.com/c360/conduit/service"
)

// NewLayer returns a Layer applying the given deadline to every request
func NewLayer[Req, Resp any](d time.Duration) layer.Layer[Req, Resp] {
	return layer.Func[Req, Resp](func(inner service.Service[Req, Resp]) service.Service[Req, Resp] {
		return New(inner, d)
	})
}
