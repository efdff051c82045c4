// Package common provides shared types used across the SPipeline packages.
package common

import (
	"context"
	"net/http"
)

// Middleware is a function that wraps an http.Handler.
// It is the shape a host net/http pipeline uses to chain stages together.
type Middleware func(http.Handler) http.Handler

// Handler is the continuation of a pipeline: everything that runs after the
// current stage. It receives the shared request context c and returns nil on
// success or the error raised by a downstream stage.
//
// A Handler may be called concurrently from many requests; implementations
// must be safe for that.
type Handler[C any] func(ctx context.Context, c C) error
