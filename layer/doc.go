// Package layer provides constructor-time composition of services.
//
// A Layer transforms one service into another, usually by wrapping it in
// middleware. Layers run once, when a stack is assembled, and never on the
// request path; this keeps "what behavior is added" separate from "in what
// order behaviors compose", so a linear chain of layers becomes a single
// service without any behavior knowing about the others.
//
//	svc := layer.Chain(
//		timeout.NewLayer[Req, Resp](time.Second),
//		limit.NewLayer[Req, Resp](64),
//	).Wrap(leaf)
//
// The first layer in a Chain (or the first Use on a Stack) becomes the
// outermost wrapper: it sees requests first and responses last.
package layer
