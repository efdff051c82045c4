package stage

import (
	"context"

	"github.com/Suhaibinator/SPipeline/pkg/common"
)

// Hook0 is the hook of a stage that needs no services.
type Hook0[C any] func(ctx context.Context, c C) error

// Hook1 is the hook of a stage that needs one service.
type Hook1[C, S0 any] func(ctx context.Context, c C, s0 S0) error

// Hook2 is the hook of a stage that needs two services.
type Hook2[C, S0, S1 any] func(ctx context.Context, c C, s0 S0, s1 S1) error

// Hook3 is the hook of a stage that needs three services.
type Hook3[C, S0, S1, S2 any] func(ctx context.Context, c C, s0 S0, s1 S1, s2 S2) error

// Hook4 is the hook of a stage that needs four services.
type Hook4[C, S0, S1, S2, S3 any] func(ctx context.Context, c C, s0 S0, s1 S1, s2 S2, s3 S3) error

// Hook5 is the hook of a stage that needs five services.
type Hook5[C, S0, S1, S2, S3, S4 any] func(ctx context.Context, c C, s0 S0, s1 S1, s2 S2, s3 S3, s4 S4) error

// Stage0 is a stage whose hook needs no services.
type Stage0[C any] struct {
	*Stage[C, Services0]
}

// New0 creates a Stage0.
func New0[C any](next common.Handler[C], hook Hook0[C], opts ...Option) (*Stage0[C], error) {
	var h Hook[C, Services0]
	if hook != nil {
		h = func(ctx context.Context, c C, _ Services0) error {
			return hook(ctx, c)
		}
	}
	s, err := New(next, h, opts...)
	if err != nil {
		return nil, err
	}
	return &Stage0[C]{Stage: s}, nil
}

// Invoke runs the hook and then the continuation.
func (s *Stage0[C]) Invoke(ctx context.Context, c C) error {
	return s.Stage.Invoke(ctx, c, Services0{})
}

// Stage1 is a stage whose hook needs one service.
type Stage1[C, S0 any] struct {
	*Stage[C, Services1[S0]]
}

// New1 creates a Stage1.
func New1[C, S0 any](next common.Handler[C], hook Hook1[C, S0], opts ...Option) (*Stage1[C, S0], error) {
	var h Hook[C, Services1[S0]]
	if hook != nil {
		h = func(ctx context.Context, c C, s Services1[S0]) error {
			return hook(ctx, c, s.S0)
		}
	}
	s, err := New(next, h, opts...)
	if err != nil {
		return nil, err
	}
	return &Stage1[C, S0]{Stage: s}, nil
}

// Invoke runs the hook with s0 and then the continuation.
func (s *Stage1[C, S0]) Invoke(ctx context.Context, c C, s0 S0) error {
	return s.Stage.Invoke(ctx, c, Services1[S0]{S0: s0})
}

// Stage2 is a stage whose hook needs two services.
type Stage2[C, S0, S1 any] struct {
	*Stage[C, Services2[S0, S1]]
}

// New2 creates a Stage2.
func New2[C, S0, S1 any](next common.Handler[C], hook Hook2[C, S0, S1], opts ...Option) (*Stage2[C, S0, S1], error) {
	var h Hook[C, Services2[S0, S1]]
	if hook != nil {
		h = func(ctx context.Context, c C, s Services2[S0, S1]) error {
			return hook(ctx, c, s.S0, s.S1)
		}
	}
	s, err := New(next, h, opts...)
	if err != nil {
		return nil, err
	}
	return &Stage2[C, S0, S1]{Stage: s}, nil
}

// Invoke runs the hook with the services and then the continuation.
func (s *Stage2[C, S0, S1]) Invoke(ctx context.Context, c C, s0 S0, s1 S1) error {
	return s.Stage.Invoke(ctx, c, Services2[S0, S1]{S0: s0, S1: s1})
}

// Stage3 is a stage whose hook needs three services.
type Stage3[C, S0, S1, S2 any] struct {
	*Stage[C, Services3[S0, S1, S2]]
}

// New3 creates a Stage3.
func New3[C, S0, S1, S2 any](next common.Handler[C], hook Hook3[C, S0, S1, S2], opts ...Option) (*Stage3[C, S0, S1, S2], error) {
	var h Hook[C, Services3[S0, S1, S2]]
	if hook != nil {
		h = func(ctx context.Context, c C, s Services3[S0, S1, S2]) error {
			return hook(ctx, c, s.S0, s.S1, s.S2)
		}
	}
	s, err := New(next, h, opts...)
	if err != nil {
		return nil, err
	}
	return &Stage3[C, S0, S1, S2]{Stage: s}, nil
}

// Invoke runs the hook with the services and then the continuation.
func (s *Stage3[C, S0, S1, S2]) Invoke(ctx context.Context, c C, s0 S0, s1 S1, s2 S2) error {
	return s.Stage.Invoke(ctx, c, Services3[S0, S1, S2]{S0: s0, S1: s1, S2: s2})
}

// Stage4 is a stage whose hook needs four services.
type Stage4[C, S0, S1, S2, S3 any] struct {
	*Stage[C, Services4[S0, S1, S2, S3]]
}

// New4 creates a Stage4.
func New4[C, S0, S1, S2, S3 any](next common.Handler[C], hook Hook4[C, S0, S1, S2, S3], opts ...Option) (*Stage4[C, S0, S1, S2, S3], error) {
	var h Hook[C, Services4[S0, S1, S2, S3]]
	if hook != nil {
		h = func(ctx context.Context, c C, s Services4[S0, S1, S2, S3]) error {
			return hook(ctx, c, s.S0, s.S1, s.S2, s.S3)
		}
	}
	s, err := New(next, h, opts...)
	if err != nil {
		return nil, err
	}
	return &Stage4[C, S0, S1, S2, S3]{Stage: s}, nil
}

// Invoke runs the hook with the services and then the continuation.
func (s *Stage4[C, S0, S1, S2, S3]) Invoke(ctx context.Context, c C, s0 S0, s1 S1, s2 S2, s3 S3) error {
	return s.Stage.Invoke(ctx, c, Services4[S0, S1, S2, S3]{S0: s0, S1: s1, S2: s2, S3: s3})
}

// Stage5 is a stage whose hook needs five services.
type Stage5[C, S0, S1, S2, S3, S4 any] struct {
	*Stage[C, Services5[S0, S1, S2, S3, S4]]
}

// New5 creates a Stage5.
func New5[C, S0, S1, S2, S3, S4 any](next common.Handler[C], hook Hook5[C, S0, S1, S2, S3, S4], opts ...Option) (*Stage5[C, S0, S1, S2, S3, S4], error) {
	var h Hook[C, Services5[S0, S1, S2, S3, S4]]
	if hook != nil {
		h = func(ctx context.Context, c C, s Services5[S0, S1, S2, S3, S4]) error {
			return hook(ctx, c, s.S0, s.S1, s.S2, s.S3, s.S4)
		}
	}
	s, err := New(next, h, opts...)
	if err != nil {
		return nil, err
	}
	return &Stage5[C, S0, S1, S2, S3, S4]{Stage: s}, nil
}

// Invoke runs the hook with the services and then the continuation.
func (s *Stage5[C, S0, S1, S2, S3, S4]) Invoke(ctx context.Context, c C, s0 S0, s1 S1, s2 S2, s3 S3, s4 S4) error {
	return s.Stage.Invoke(ctx, c, Services5[S0, S1, S2, S3, S4]{S0: s0, S1: s1, S2: s2, S3: s3, S4: s4})
}
