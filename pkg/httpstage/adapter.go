package httpstage

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Suhaibinator/SPipeline/pkg/common"
	"github.com/Suhaibinator/SPipeline/pkg/stage"
	"go.uber.org/zap"
)

// Factory builds a stage around the continuation supplied by the chain.
type Factory[S any] func(next common.Handler[*Context]) (stage.Invoker[*Context, S], error)

// Option configures the adapter.
type Option func(*config)

type config struct {
	logger       *zap.Logger
	errorHandler ErrorHandler
	stageOpts    []stage.Option
}

func newConfig(opts []Option) config {
	c := config{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&c)
	}
	if c.errorHandler == nil {
		c.errorHandler = DefaultErrorHandler(c.logger)
	}
	return c
}

// WithLogger sets the logger used by the adapter and, unless overridden by a
// stage option, by the stage itself.
func WithLogger(logger *zap.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithErrorHandler replaces DefaultErrorHandler.
func WithErrorHandler(h ErrorHandler) Option {
	return func(c *config) {
		c.errorHandler = h
	}
}

// WithStageOptions passes options through to the stage constructor used by
// Use and UseOnce.
func WithStageOptions(opts ...stage.Option) Option {
	return func(c *config) {
		c.stageOpts = append(c.stageOpts, opts...)
	}
}

// Adapt turns a stage factory into a net/http middleware. The factory runs
// once per chain assembly. A factory error panics at assembly time, before
// any request is served.
func Adapt[S any](factory Factory[S], resolve Resolver[S], opts ...Option) common.Middleware {
	cfg := newConfig(opts)
	if factory == nil || resolve == nil {
		panic("httpstage: factory and resolver must not be nil")
	}

	return func(next http.Handler) http.Handler {
		var cont common.Handler[*Context]
		if next != nil {
			cont = func(_ context.Context, c *Context) error {
				next.ServeHTTP(c.Writer, c.Request)
				return nil
			}
		}

		st, err := factory(cont)
		if err != nil {
			cfg.logger.Error("Failed to build stage", zap.Error(err))
			panic(fmt.Sprintf("httpstage: %v", err))
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			svc, err := resolve(r)
			if err != nil {
				cfg.errorHandler(w, r, err)
				return
			}

			c := &Context{Writer: w, Request: r}
			if err := st.Invoke(r.Context(), c, svc); err != nil {
				cfg.errorHandler(w, c.Request, err)
			}
		})
	}
}

// Use adapts an ordinary hook.
func Use[S any](hook stage.Hook[*Context, S], resolve Resolver[S], opts ...Option) common.Middleware {
	cfg := newConfig(opts)
	stageOpts := append([]stage.Option{stage.WithLogger(cfg.logger)}, cfg.stageOpts...)
	return Adapt(func(next common.Handler[*Context]) (stage.Invoker[*Context, S], error) {
		return stage.New(next, hook, stageOpts...)
	}, resolve, opts...)
}

// UseOnce adapts a one-time hook. Each assembled chain gets its own guard.
func UseOnce[S any](first stage.FirstHook[*Context, S], resolve Resolver[S], opts ...Option) common.Middleware {
	cfg := newConfig(opts)
	stageOpts := append([]stage.Option{stage.WithLogger(cfg.logger)}, cfg.stageOpts...)
	return Adapt(func(next common.Handler[*Context]) (stage.Invoker[*Context, S], error) {
		return stage.NewOneTime(next, first, stageOpts...)
	}, resolve, opts...)
}

// Use0 adapts a hook that needs no services.
func Use0(hook stage.Hook0[*Context], opts ...Option) common.Middleware {
	var h stage.Hook[*Context, stage.Services0]
	if hook != nil {
		h = func(ctx context.Context, c *Context, _ stage.Services0) error {
			return hook(ctx, c)
		}
	}
	return Use(h, None(), opts...)
}

// Use1 adapts a hook that needs one service.
func Use1[S0 any](hook stage.Hook1[*Context, S0], r0 Resolver[S0], opts ...Option) common.Middleware {
	var h stage.Hook[*Context, stage.Services1[S0]]
	if hook != nil {
		h = func(ctx context.Context, c *Context, s stage.Services1[S0]) error {
			return hook(ctx, c, s.S0)
		}
	}
	return Use(h, Resolve1(r0), opts...)
}

// UseOnce0 adapts a one-time hook that needs no services.
func UseOnce0(first stage.FirstHook0[*Context], opts ...Option) common.Middleware {
	var f stage.FirstHook[*Context, stage.Services0]
	if first != nil {
		f = func(c *Context, _ stage.Services0) error {
			return first(c)
		}
	}
	return UseOnce(f, None(), opts...)
}
