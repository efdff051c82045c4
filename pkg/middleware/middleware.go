// Package middleware provides ready-made pipeline stages for net/http hosts.
//
// Every constructor returns a common.Middleware whose behavior is a stage
// hook: it runs before the rest of the chain and either lets the request
// through or fails it. Hooks that need a service receive it through an
// httpstage.Resolver.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/Suhaibinator/SPipeline/pkg/common"
	"github.com/Suhaibinator/SPipeline/pkg/httpstage"
	"github.com/Suhaibinator/SPipeline/pkg/stage"
	"go.uber.org/zap"
)

// Middleware is an alias for common.Middleware
type Middleware = common.Middleware

// Chain chains multiple middlewares together. The first one runs first.
func Chain(middlewares ...Middleware) Middleware {
	return func(next http.Handler) http.Handler {
		return common.NewMiddlewareChain(middlewares...).Then(next)
	}
}

// options builds the adapter options shared by the built-in stages
func options(name string, logger *zap.Logger) []httpstage.Option {
	if logger == nil {
		logger = zap.NewNop()
	}
	return []httpstage.Option{
		httpstage.WithLogger(logger),
		httpstage.WithStageOptions(stage.WithName(name)),
	}
}

// MaxBodySize is a stage that limits the size of the request body
func MaxBodySize(maxSize int64) Middleware {
	return httpstage.Use0(func(_ context.Context, c *httpstage.Context) error {
		if maxSize > 0 {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxSize)
		}
		return nil
	}, options("max_body_size", nil)...)
}

// CORSConfig defines the CORS headers written by the CORS stage
type CORSConfig struct {
	Origins []string
	Methods []string
	Headers []string
}

// CORS is a stage that adds CORS headers to the response. Preflight requests
// are answered directly and do not reach the rest of the chain.
func CORS(config CORSConfig) Middleware {
	origins := strings.Join(config.Origins, ", ")
	methods := strings.Join(config.Methods, ", ")
	headers := strings.Join(config.Headers, ", ")

	return httpstage.Use0(func(_ context.Context, c *httpstage.Context) error {
		h := c.Writer.Header()
		if origins != "" {
			h.Set("Access-Control-Allow-Origin", origins)
		}
		if methods != "" {
			h.Set("Access-Control-Allow-Methods", methods)
		}
		if headers != "" {
			h.Set("Access-Control-Allow-Headers", headers)
		}

		if c.Request.Method == http.MethodOptions {
			c.Writer.WriteHeader(http.StatusOK)
			return httpstage.ErrResponseWritten
		}
		return nil
	}, options("cors", nil)...)
}
