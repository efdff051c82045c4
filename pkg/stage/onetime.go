package stage

import (
	"context"

	"github.com/Suhaibinator/SPipeline/pkg/common"
	"go.uber.org/zap"
)

// FirstHook is the hook of a one-time stage. It is synchronous and runs at
// most once per stage; its error is returned from the invocation that ran it.
type FirstHook[C any, S any] func(c C, s S) error

// Guarded turns a first-hook into an ordinary hook that only runs while g is
// pending. Any stage can be made one-time this way.
func Guarded[C any, S any](g *Guard, first FirstHook[C, S]) Hook[C, S] {
	if g == nil || first == nil {
		return nil
	}
	return func(_ context.Context, c C, s S) error {
		_, err := g.Do(func() error {
			return first(c, s)
		})
		return err
	}
}

// Once is Guarded with a fresh guard using the given policy.
func Once[C any, S any](first FirstHook[C, S], policy FailurePolicy) Hook[C, S] {
	return Guarded(NewGuard(policy), first)
}

// OneTimeStage is a stage whose hook runs at most once while its continuation
// runs on every invocation.
type OneTimeStage[C any, S any] struct {
	*Stage[C, S]
	guard *Guard
}

// NewOneTime creates a one-time stage. The failure policy is taken from
// WithFailurePolicy and defaults to RetryOnFailure.
func NewOneTime[C any, S any](next common.Handler[C], first FirstHook[C, S], opts ...Option) (*OneTimeStage[C, S], error) {
	o := newOptions(opts)
	guard := NewGuard(o.policy)

	var hook Hook[C, S]
	if first != nil {
		hook = func(_ context.Context, c C, s S) error {
			_, err := guard.Do(func() (err error) {
				panicked := true
				defer func() {
					if panicked {
						err = ErrHookPanic
					}
					observeFirstRun(o, guard, err)
				}()
				err = first(c, s)
				panicked = false
				return err
			})
			return err
		}
	}

	s, err := New(next, hook, opts...)
	if err != nil {
		return nil, err
	}
	return &OneTimeStage[C, S]{Stage: s, guard: guard}, nil
}

// observeFirstRun records and logs a run of a one-time hook. It also runs
// while a panicking hook unwinds, with err set to ErrHookPanic.
func observeFirstRun(o options, g *Guard, err error) {
	o.recorder.ObserveFirstRun(o.name, err)
	if err == nil {
		o.logger.Info("One-time hook executed", zap.String("stage", o.name))
		return
	}
	state := Pending
	if g.Policy() == ConsumeOnFailure {
		state = Executed
	}
	o.logger.Warn("One-time hook failed",
		zap.String("stage", o.name),
		zap.Stringer("policy", g.Policy()),
		zap.Stringer("state", state),
		zap.Error(err),
	)
}

// State returns the state of the execution guard.
func (s *OneTimeStage[C, S]) State() GuardState {
	return s.guard.State()
}

// FirstHook0 is the first-hook of a one-time stage that needs no services.
type FirstHook0[C any] func(c C) error

// FirstHook1 is the first-hook of a one-time stage that needs one service.
type FirstHook1[C, S0 any] func(c C, s0 S0) error

// FirstHook2 is the first-hook of a one-time stage that needs two services.
type FirstHook2[C, S0, S1 any] func(c C, s0 S0, s1 S1) error

// FirstHook3 is the first-hook of a one-time stage that needs three services.
type FirstHook3[C, S0, S1, S2 any] func(c C, s0 S0, s1 S1, s2 S2) error

// FirstHook4 is the first-hook of a one-time stage that needs four services.
type FirstHook4[C, S0, S1, S2, S3 any] func(c C, s0 S0, s1 S1, s2 S2, s3 S3) error

// FirstHook5 is the first-hook of a one-time stage that needs five services.
type FirstHook5[C, S0, S1, S2, S3, S4 any] func(c C, s0 S0, s1 S1, s2 S2, s3 S3, s4 S4) error

// OneTime0 is a one-time stage whose hook needs no services.
type OneTime0[C any] struct {
	Stage0[C]
	guard *Guard
}

// NewOneTime0 creates a OneTime0.
func NewOneTime0[C any](next common.Handler[C], first FirstHook0[C], opts ...Option) (*OneTime0[C], error) {
	var f FirstHook[C, Services0]
	if first != nil {
		f = func(c C, _ Services0) error { return first(c) }
	}
	s, err := NewOneTime(next, f, opts...)
	if err != nil {
		return nil, err
	}
	return &OneTime0[C]{Stage0: Stage0[C]{Stage: s.Stage}, guard: s.guard}, nil
}

// State returns the state of the execution guard.
func (s *OneTime0[C]) State() GuardState { return s.guard.State() }

// OneTime1 is a one-time stage whose hook needs one service.
type OneTime1[C, S0 any] struct {
	Stage1[C, S0]
	guard *Guard
}

// NewOneTime1 creates a OneTime1.
func NewOneTime1[C, S0 any](next common.Handler[C], first FirstHook1[C, S0], opts ...Option) (*OneTime1[C, S0], error) {
	var f FirstHook[C, Services1[S0]]
	if first != nil {
		f = func(c C, s Services1[S0]) error { return first(c, s.S0) }
	}
	s, err := NewOneTime(next, f, opts...)
	if err != nil {
		return nil, err
	}
	return &OneTime1[C, S0]{Stage1: Stage1[C, S0]{Stage: s.Stage}, guard: s.guard}, nil
}

// State returns the state of the execution guard.
func (s *OneTime1[C, S0]) State() GuardState { return s.guard.State() }

// OneTime2 is a one-time stage whose hook needs two services.
type OneTime2[C, S0, S1 any] struct {
	Stage2[C, S0, S1]
	guard *Guard
}

// NewOneTime2 creates a OneTime2.
func NewOneTime2[C, S0, S1 any](next common.Handler[C], first FirstHook2[C, S0, S1], opts ...Option) (*OneTime2[C, S0, S1], error) {
	var f FirstHook[C, Services2[S0, S1]]
	if first != nil {
		f = func(c C, s Services2[S0, S1]) error { return first(c, s.S0, s.S1) }
	}
	s, err := NewOneTime(next, f, opts...)
	if err != nil {
		return nil, err
	}
	return &OneTime2[C, S0, S1]{Stage2: Stage2[C, S0, S1]{Stage: s.Stage}, guard: s.guard}, nil
}

// State returns the state of the execution guard.
func (s *OneTime2[C, S0, S1]) State() GuardState { return s.guard.State() }

// OneTime3 is a one-time stage whose hook needs three services.
type OneTime3[C, S0, S1, S2 any] struct {
	Stage3[C, S0, S1, S2]
	guard *Guard
}

// NewOneTime3 creates a OneTime3.
func NewOneTime3[C, S0, S1, S2 any](next common.Handler[C], first FirstHook3[C, S0, S1, S2], opts ...Option) (*OneTime3[C, S0, S1, S2], error) {
	var f FirstHook[C, Services3[S0, S1, S2]]
	if first != nil {
		f = func(c C, s Services3[S0, S1, S2]) error { return first(c, s.S0, s.S1, s.S2) }
	}
	s, err := NewOneTime(next, f, opts...)
	if err != nil {
		return nil, err
	}
	return &OneTime3[C, S0, S1, S2]{Stage3: Stage3[C, S0, S1, S2]{Stage: s.Stage}, guard: s.guard}, nil
}

// State returns the state of the execution guard.
func (s *OneTime3[C, S0, S1, S2]) State() GuardState { return s.guard.State() }

// OneTime4 is a one-time stage whose hook needs four services.
type OneTime4[C, S0, S1, S2, S3 any] struct {
	Stage4[C, S0, S1, S2, S3]
	guard *Guard
}

// NewOneTime4 creates a OneTime4.
func NewOneTime4[C, S0, S1, S2, S3 any](next common.Handler[C], first FirstHook4[C, S0, S1, S2, S3], opts ...Option) (*OneTime4[C, S0, S1, S2, S3], error) {
	var f FirstHook[C, Services4[S0, S1, S2, S3]]
	if first != nil {
		f = func(c C, s Services4[S0, S1, S2, S3]) error { return first(c, s.S0, s.S1, s.S2, s.S3) }
	}
	s, err := NewOneTime(next, f, opts...)
	if err != nil {
		return nil, err
	}
	return &OneTime4[C, S0, S1, S2, S3]{Stage4: Stage4[C, S0, S1, S2, S3]{Stage: s.Stage}, guard: s.guard}, nil
}

// State returns the state of the execution guard.
func (s *OneTime4[C, S0, S1, S2, S3]) State() GuardState { return s.guard.State() }

// OneTime5 is a one-time stage whose hook needs five services.
type OneTime5[C, S0, S1, S2, S3, S4 any] struct {
	Stage5[C, S0, S1, S2, S3, S4]
	guard *Guard
}

// NewOneTime5 creates a OneTime5.
func NewOneTime5[C, S0, S1, S2, S3, S4 any](next common.Handler[C], first FirstHook5[C, S0, S1, S2, S3, S4], opts ...Option) (*OneTime5[C, S0, S1, S2, S3, S4], error) {
	var f FirstHook[C, Services5[S0, S1, S2, S3, S4]]
	if first != nil {
		f = func(c C, s Services5[S0, S1, S2, S3, S4]) error { return first(c, s.S0, s.S1, s.S2, s.S3, s.S4) }
	}
	s, err := NewOneTime(next, f, opts...)
	if err != nil {
		return nil, err
	}
	return &OneTime5[C, S0, S1, S2, S3, S4]{Stage5: Stage5[C, S0, S1, S2, S3, S4]{Stage: s.Stage}, guard: s.guard}, nil
}

// State returns the state of the execution guard.
func (s *OneTime5[C, S0, S1, S2, S3, S4]) State() GuardState { return s.guard.State() }
