package layer

import (
	"github.com/c360/conduit/service"
)

// Stack accumulates layers and assembles them around a leaf service.
// Layers added first end up outermost, so a stack reads top-down the way
// requests flow.
type Stack[Req, Resp any] struct {
	layers []Layer[Req, Resp]
}

// NewStack creates an empty Stack
func NewStack[Req, Resp any]() *Stack[Req, Resp] {
	return &Stack[Req, Resp]{}
}

// Use appends a layer to the stack and returns the stack for chaining
func (s *Stack[Req, Resp]) Use(l Layer[Req, Resp]) *Stack[Req, Resp] {
	s.layers = append(s.layers, l)
	return s
}

// UseFunc appends a function layer to the stack
func (s *Stack[Req, Resp]) UseFunc(f func(service.Service[Req, Resp]) service.Service[Req, Resp]) *Stack[Req, Resp] {
	return s.Use(Func[Req, Resp](f))
}

// Len returns the number of layers accumulated so far
func (s *Stack[Req, Resp]) Len() int {
	return len(s.layers)
}

// Build wraps inner with every accumulated layer and returns the assembled
// service. The stack itself is reusable; Build does not consume it.
func (s *Stack[Req, Resp]) Build(inner service.Service[Req, Resp]) service.Service[Req, Resp] {
	return Chain(s.layers...).Wrap(inner)
}
