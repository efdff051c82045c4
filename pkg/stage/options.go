package stage

import (
	"time"

	"go.uber.org/zap"
)

// DefaultName is used for stages built without WithName.
const DefaultName = "stage"

// Recorder receives measurements from stages. Implementations must be safe
// for concurrent use; package metrics provides a Prometheus implementation.
type Recorder interface {
	// ObserveHook is called after every hook run with its duration and result.
	ObserveHook(stage string, d time.Duration, err error)
	// ObserveNext is called after every continuation run.
	ObserveNext(stage string, err error)
	// ObserveFirstRun is called when a one-time hook actually runs.
	ObserveFirstRun(stage string, err error)
}

type nopRecorder struct{}

func (nopRecorder) ObserveHook(string, time.Duration, error) {}
func (nopRecorder) ObserveNext(string, error)                {}
func (nopRecorder) ObserveFirstRun(string, error)            {}

// FailurePolicy decides what a failing one-time hook does to the guard.
type FailurePolicy int

const (
	// RetryOnFailure leaves the guard pending when the hook fails, so the next
	// request runs the hook again. This is the default.
	RetryOnFailure FailurePolicy = iota

	// ConsumeOnFailure marks the guard executed even when the hook fails.
	ConsumeOnFailure
)

func (p FailurePolicy) String() string {
	switch p {
	case RetryOnFailure:
		return "retry_on_failure"
	case ConsumeOnFailure:
		return "consume_on_failure"
	default:
		return "unknown"
	}
}

// Config is the declarative form of the stage options.
type Config struct {
	Name          string        // Name used in logs and metrics
	Logger        *zap.Logger   // Logger for stage events; a no-op logger when nil
	Recorder      Recorder      // Metrics sink; measurements are dropped when nil
	FailurePolicy FailurePolicy // Guard policy for one-time stages
	Recover       bool          // Convert hook panics into errors
}

// Options converts the config into the equivalent option list.
func (c Config) Options() []Option {
	opts := []Option{WithFailurePolicy(c.FailurePolicy), WithRecover(c.Recover)}
	if c.Name != "" {
		opts = append(opts, WithName(c.Name))
	}
	if c.Logger != nil {
		opts = append(opts, WithLogger(c.Logger))
	}
	if c.Recorder != nil {
		opts = append(opts, WithRecorder(c.Recorder))
	}
	return opts
}

// Option configures a stage.
type Option func(*options)

type options struct {
	name     string
	logger   *zap.Logger
	recorder Recorder
	policy   FailurePolicy
	recover  bool
}

func newOptions(opts []Option) options {
	o := options{
		name:     DefaultName,
		logger:   zap.NewNop(),
		recorder: nopRecorder{},
		policy:   RetryOnFailure,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

// WithName sets the name the stage reports in logs and metrics.
func WithName(name string) Option {
	return func(o *options) {
		if name != "" {
			o.name = name
		}
	}
}

// WithLogger sets the logger used by the stage.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithRecorder sets the metrics sink used by the stage.
func WithRecorder(r Recorder) Option {
	return func(o *options) {
		if r != nil {
			o.recorder = r
		}
	}
}

// WithFailurePolicy sets the guard policy of a one-time stage. Ordinary
// stages ignore it.
func WithFailurePolicy(p FailurePolicy) Option {
	return func(o *options) {
		o.policy = p
	}
}

// WithRecover makes the stage turn a panicking hook into an error matching
// ErrHookPanic instead of letting the panic unwind into the host.
func WithRecover(enabled bool) Option {
	return func(o *options) {
		o.recover = enabled
	}
}
