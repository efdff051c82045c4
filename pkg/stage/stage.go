package stage

import (
	"context"
	"runtime/debug"
	"time"

	"github.com/Suhaibinator/SPipeline/pkg/common"
	"go.uber.org/zap"
)

// Hook is the custom behavior of a stage. It runs before the continuation on
// every invocation and may block, mutate c, or fail. A failing hook stops the
// request from reaching the continuation.
type Hook[C any, S any] func(ctx context.Context, c C, s S) error

// Stage runs a hook and then its continuation. S is the service tuple the
// hook needs; use Services0 for a hook that needs none.
//
// A Stage holds no per-request state and is safe for concurrent use.
type Stage[C any, S any] struct {
	next  common.Handler[C]
	hook  Hook[C, S]
	arity int
	opts  options
}

// New creates a stage that runs hook and then next. It fails with an error
// matching ErrConfiguration when either is nil.
func New[C any, S any](next common.Handler[C], hook Hook[C, S], opts ...Option) (*Stage[C, S], error) {
	if next == nil {
		return nil, ErrNilContinuation
	}
	if hook == nil {
		return nil, ErrNilHook
	}
	return &Stage[C, S]{
		next:  next,
		hook:  hook,
		arity: arityOf[S](),
		opts:  newOptions(opts),
	}, nil
}

// Name returns the name of the stage.
func (s *Stage[C, S]) Name() string {
	return s.opts.name
}

// Arity returns the number of services the hook takes.
func (s *Stage[C, S]) Arity() int {
	return s.arity
}

// Invoke runs the hook to completion and, if it succeeded, the continuation.
// Errors from either side are returned as they were raised. Effects of the
// hook are not undone when the continuation fails.
func (s *Stage[C, S]) Invoke(ctx context.Context, c C, svc S) error {
	if err := s.runHook(ctx, c, svc); err != nil {
		s.opts.logger.Debug("Stage hook failed, continuation skipped",
			zap.String("stage", s.opts.name),
			zap.Error(err),
		)
		return err
	}

	err := s.next(ctx, c)
	s.opts.recorder.ObserveNext(s.opts.name, err)
	if err != nil {
		s.opts.logger.Debug("Stage continuation failed",
			zap.String("stage", s.opts.name),
			zap.Error(err),
		)
	}
	return err
}

func (s *Stage[C, S]) runHook(ctx context.Context, c C, svc S) (err error) {
	start := time.Now()
	defer func() {
		s.opts.recorder.ObserveHook(s.opts.name, time.Since(start), err)
	}()

	if s.opts.recover {
		defer func() {
			if rec := recover(); rec != nil {
				stack := debug.Stack()
				s.opts.logger.Error("Stage hook panic recovered",
					zap.String("stage", s.opts.name),
					zap.Any("panic", rec),
					zap.String("stack", string(stack)),
				)
				err = &PanicError{Stage: s.opts.name, Value: rec, Stack: stack}
			}
		}()
	}

	return s.hook(ctx, c, svc)
}
