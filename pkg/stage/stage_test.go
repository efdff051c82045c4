package stage

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// reqCtx is a minimal mutable request context used by the tests
type reqCtx struct {
	values map[string]string
}

func newReqCtx() *reqCtx {
	return &reqCtx{values: make(map[string]string)}
}

// countingRecorder records every observation it receives
type countingRecorder struct {
	mu         sync.Mutex
	hooks      int
	hookErrs   int
	nexts      int
	nextErrs   int
	firstRuns  int
	firstFails int
}

func (r *countingRecorder) ObserveHook(_ string, _ time.Duration, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.hooks++
	if err != nil {
		r.hookErrs++
	}
}

func (r *countingRecorder) ObserveNext(_ string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nexts++
	if err != nil {
		r.nextErrs++
	}
}

func (r *countingRecorder) ObserveFirstRun(_ string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.firstRuns++
	if err != nil {
		r.firstFails++
	}
}

func noopNext(context.Context, *reqCtx) error { return nil }

func noopHook(context.Context, *reqCtx, Services0) error { return nil }

// TestNewNilContinuation tests that a stage cannot be built without a continuation
func TestNewNilContinuation(t *testing.T) {
	s, err := New[*reqCtx, Services0](nil, noopHook)
	if s != nil {
		t.Errorf("Expected no stage, got %v", s)
	}
	if !errors.Is(err, ErrNilContinuation) {
		t.Errorf("Expected ErrNilContinuation, got %v", err)
	}
	if !errors.Is(err, ErrConfiguration) {
		t.Errorf("Expected error to match ErrConfiguration, got %v", err)
	}
}

// TestNewNilHook tests that a stage cannot be built without a hook
func TestNewNilHook(t *testing.T) {
	s, err := New[*reqCtx, Services0](noopNext, nil)
	if s != nil {
		t.Errorf("Expected no stage, got %v", s)
	}
	if !errors.Is(err, ErrNilHook) || !errors.Is(err, ErrConfiguration) {
		t.Errorf("Expected ErrNilHook, got %v", err)
	}
}

// TestInvokeHookBeforeContinuation tests that the hook finishes before the continuation starts
func TestInvokeHookBeforeContinuation(t *testing.T) {
	var hookStart, hookEnd, nextStart, nextEnd time.Time

	hook := func(ctx context.Context, c *reqCtx, _ Services0) error {
		hookStart = time.Now()
		time.Sleep(5 * time.Millisecond)
		c.values["hook"] = "done"
		hookEnd = time.Now()
		return nil
	}
	var seen string
	next := func(ctx context.Context, c *reqCtx) error {
		nextStart = time.Now()
		seen = c.values["hook"]
		nextEnd = time.Now()
		return nil
	}

	s, err := New(next, hook)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if err := s.Invoke(context.Background(), newReqCtx(), Services0{}); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if hookStart.IsZero() || nextEnd.IsZero() {
		t.Fatal("Expected both hook and continuation to run")
	}
	if nextStart.Before(hookEnd) {
		t.Errorf("Continuation started at %v before hook ended at %v", nextStart, hookEnd)
	}
	if seen != "done" {
		t.Errorf("Expected continuation to see hook mutation, got %q", seen)
	}
}

// TestInvokeHookFailureSkipsContinuation tests that a failing hook short-circuits the pipeline
func TestInvokeHookFailureSkipsContinuation(t *testing.T) {
	hookErr := errors.New("hook failed")
	calls := 0

	s, err := New(func(context.Context, *reqCtx) error {
		calls++
		return nil
	}, func(context.Context, *reqCtx, Services0) error {
		return hookErr
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	err = s.Invoke(context.Background(), newReqCtx(), Services0{})
	if err != hookErr {
		t.Errorf("Expected hook error to be returned unchanged, got %v", err)
	}
	if calls != 0 {
		t.Errorf("Expected continuation not to run, ran %d times", calls)
	}
}

// TestInvokeContinuationFailure tests that continuation errors propagate and hook effects stay
func TestInvokeContinuationFailure(t *testing.T) {
	nextErr := errors.New("downstream failed")
	rec := &countingRecorder{}

	s, err := New(func(context.Context, *reqCtx) error {
		return nextErr
	}, func(_ context.Context, c *reqCtx, _ Services0) error {
		c.values["touched"] = "yes"
		return nil
	}, WithRecorder(rec))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	c := newReqCtx()
	err = s.Invoke(context.Background(), c, Services0{})
	if err != nextErr {
		t.Errorf("Expected continuation error to be returned unchanged, got %v", err)
	}
	if c.values["touched"] != "yes" {
		t.Errorf("Expected hook side effect to remain after continuation failure")
	}
	if rec.hooks != 1 || rec.hookErrs != 0 || rec.nexts != 1 || rec.nextErrs != 1 {
		t.Errorf("Unexpected recorder state: %+v", rec)
	}
}

// TestInvokeStateless tests that repeated invocations are independent
func TestInvokeStateless(t *testing.T) {
	s, err := New(noopNext, noopHook)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	first, second := newReqCtx(), newReqCtx()
	if err := s.Invoke(context.Background(), first, Services0{}); err != nil {
		t.Errorf("First invocation failed: %v", err)
	}
	if err := s.Invoke(context.Background(), second, Services0{}); err != nil {
		t.Errorf("Second invocation failed: %v", err)
	}
	if len(first.values) != 0 || len(second.values) != 0 {
		t.Errorf("Expected no state to leak between calls")
	}
}

// TestInvokeRecover tests that hook panics become errors when recovery is enabled
func TestInvokeRecover(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	calls := 0

	s, err := New(func(context.Context, *reqCtx) error {
		calls++
		return nil
	}, func(context.Context, *reqCtx, Services0) error {
		panic("boom")
	}, WithRecover(true), WithLogger(zap.New(core)), WithName("panicky"))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	err = s.Invoke(context.Background(), newReqCtx(), Services0{})
	if !errors.Is(err, ErrHookPanic) {
		t.Fatalf("Expected ErrHookPanic, got %v", err)
	}
	var pe *PanicError
	if !errors.As(err, &pe) || pe.Value != "boom" || pe.Stage != "panicky" {
		t.Errorf("Expected PanicError carrying the panic value, got %#v", err)
	}
	if calls != 0 {
		t.Errorf("Expected continuation not to run after a panic")
	}
	if logs.FilterMessage("Stage hook panic recovered").Len() != 1 {
		t.Errorf("Expected the panic to be logged")
	}
}

// TestInvokeLogsFailures tests that failures are logged with the stage name
func TestInvokeLogsFailures(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	hookErr := errors.New("nope")

	s, err := New(noopNext, func(context.Context, *reqCtx, Services0) error {
		return hookErr
	}, WithLogger(zap.New(core)), WithName("auth"))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	_ = s.Invoke(context.Background(), newReqCtx(), Services0{})

	entries := logs.FilterMessage("Stage hook failed, continuation skipped").All()
	if len(entries) != 1 {
		t.Fatalf("Expected 1 log entry, got %d", len(entries))
	}
	if entries[0].ContextMap()["stage"] != "auth" {
		t.Errorf("Expected stage field %q, got %v", "auth", entries[0].ContextMap()["stage"])
	}
}

// TestConfigOptions tests that Config maps onto the option list
func TestConfigOptions(t *testing.T) {
	rec := &countingRecorder{}
	cfg := Config{Name: "configured", Recorder: rec, FailurePolicy: ConsumeOnFailure}

	s, err := New(noopNext, noopHook, cfg.Options()...)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if s.Name() != "configured" {
		t.Errorf("Expected name %q, got %q", "configured", s.Name())
	}
	if s.opts.policy != ConsumeOnFailure {
		t.Errorf("Expected policy %v, got %v", ConsumeOnFailure, s.opts.policy)
	}
	_ = s.Invoke(context.Background(), newReqCtx(), Services0{})
	if rec.hooks != 1 {
		t.Errorf("Expected recorder to observe the hook")
	}

	d, _ := New(noopNext, noopHook, nil)
	if d.Name() != DefaultName {
		t.Errorf("Expected default name %q, got %q", DefaultName, d.Name())
	}
}
