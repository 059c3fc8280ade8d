package middleware

import (
	"net/http"
)

// An Adapter allows chaining middlewares together.
type Adapter func(http.Handler) http.Handler

// Chain glues the set of adapters to the handler.
// The first adapter is the outermost, so it sees the request first.
func Chain(handler http.Handler, adapters ...Adapter) http.Handler {
	// NOTE: loop in reverse to preserve middleware order
	for i := len(adapters) - 1; i >= 0; i-- {
		if adapters[i] == nil {
			continue
		}
		handler = adapters[i](handler)
	}

	return handler
}

// NoopAdapter returns the handler unchanged.
func NoopAdapter(h http.Handler) http.Handler { return h }
