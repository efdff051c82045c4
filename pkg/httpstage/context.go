// Package httpstage plugs stages into a net/http middleware chain.
//
// A stage built through this package is constructed once, when the chain is
// assembled with common.MiddlewareChain.Then, and invoked for every request.
// The stage's continuation serves the next http.Handler of the chain.
package httpstage

import (
	"net/http"
)

// Context is the request context threaded through HTTP stages. A hook may
// replace Request, for example with Request.WithContext; the continuation and
// every later handler see the replacement.
type Context struct {
	Writer  http.ResponseWriter
	Request *http.Request
}

// Resolver produces the services a hook needs for one request. The services
// are borrowed for the duration of the invocation.
type Resolver[S any] func(r *http.Request) (S, error)

// Static resolves to the same service for every request.
func Static[S any](s S) Resolver[S] {
	return func(*http.Request) (S, error) {
		return s, nil
	}
}
