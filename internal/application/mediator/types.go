package mediator

import "context"

// Request is a command or query value. Handlers are looked up by its dynamic type.
type Request interface{}

// Response is whatever a handler returns for its request
type Response interface{}

// RequestHandler handles one request type
type RequestHandler interface {
	Handle(ctx context.Context, request Request) (Response, error)
}

// HandlerFunc is the continuation passed to middleware
type HandlerFunc func(ctx context.Context, request Request) (Response, error)

// Handle lets a plain function be registered as a RequestHandler
func (f HandlerFunc) Handle(ctx context.Context, request Request) (Response, error) {
	return f(ctx, request)
}

// Middleware wraps handler execution. The simulation registers command
// logging and Prometheus timing this way.
type Middleware func(ctx context.Context, request Request, next HandlerFunc) (Response, error)
