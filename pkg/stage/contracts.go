// Package stage provides the building blocks for request-pipeline stages.
//
// A stage runs a hook and then hands the request to its continuation, the
// rest of the pipeline. The hook may depend on zero to five services that the
// host resolves per request and passes in on every invocation. Stages come in
// two flavours: an ordinary stage, whose hook runs on every request, and a
// one-time stage, whose hook runs at most once for the lifetime of the stage
// while the continuation still runs on every request.
//
// The core is transport agnostic: C is whatever request context the host
// threads through its pipeline. See package httpstage for a net/http host.
package stage

import "context"

// Middleware is implemented by every stage regardless of how many services
// its hook needs. Hosts can use it to hold stages of different arity together.
type Middleware interface {
	// Arity returns the number of services the stage expects per invocation.
	Arity() int
}

// Invoker is the arity-erased invocation contract. S is a service tuple such
// as Services2[A, B].
type Invoker[C any, S any] interface {
	Middleware
	Invoke(ctx context.Context, c C, s S) error
}

// Middleware0 is a stage whose hook needs no services.
type Middleware0[C any] interface {
	Middleware
	Invoke(ctx context.Context, c C) error
}

// Middleware1 is a stage whose hook needs one service.
type Middleware1[C, S0 any] interface {
	Middleware
	Invoke(ctx context.Context, c C, s0 S0) error
}

// Middleware2 is a stage whose hook needs two services.
type Middleware2[C, S0, S1 any] interface {
	Middleware
	Invoke(ctx context.Context, c C, s0 S0, s1 S1) error
}

// Middleware3 is a stage whose hook needs three services.
type Middleware3[C, S0, S1, S2 any] interface {
	Middleware
	Invoke(ctx context.Context, c C, s0 S0, s1 S1, s2 S2) error
}

// Middleware4 is a stage whose hook needs four services.
type Middleware4[C, S0, S1, S2, S3 any] interface {
	Middleware
	Invoke(ctx context.Context, c C, s0 S0, s1 S1, s2 S2, s3 S3) error
}

// Middleware5 is a stage whose hook needs five services.
type Middleware5[C, S0, S1, S2, S3, S4 any] interface {
	Middleware
	Invoke(ctx context.Context, c C, s0 S0, s1 S1, s2 S2, s3 S3, s4 S4) error
}
