package stage

import (
	"sync"

	"go.uber.org/atomic"
)

// GuardState is the state of a Guard.
type GuardState int

const (
	// Pending means the guarded function has not completed a run that counts.
	Pending GuardState = iota
	// Executed is terminal: the guarded function will not run again.
	Executed
)

func (s GuardState) String() string {
	if s == Executed {
		return "executed"
	}
	return "pending"
}

// Guard runs a function at most once for its lifetime. Unlike sync.Once it
// reports failures and, under RetryOnFailure, lets a failed run be retried.
//
// The check-and-set happens under a mutex, so concurrent first callers see
// exactly one run; callers arriving while it is in progress block until it
// finishes. Once executed, Do is a single atomic load.
type Guard struct {
	done   atomic.Bool
	mu     sync.Mutex
	policy FailurePolicy
}

// NewGuard returns a pending guard with the given failure policy.
func NewGuard(policy FailurePolicy) *Guard {
	return &Guard{policy: policy}
}

// Do runs fn if the guard is still pending. ran reports whether fn was
// called by this invocation and err is whatever fn returned.
//
// A panic in fn propagates to the caller; the guard stays pending unless the
// policy is ConsumeOnFailure.
func (g *Guard) Do(fn func() error) (ran bool, err error) {
	if g.done.Load() {
		return false, nil
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if g.done.Load() {
		return false, nil
	}

	completed := false
	defer func() {
		if (completed && err == nil) || g.policy == ConsumeOnFailure {
			g.done.Store(true)
		}
	}()

	err = fn()
	completed = true
	return true, err
}

// State returns the current state of the guard.
func (g *Guard) State() GuardState {
	if g.done.Load() {
		return Executed
	}
	return Pending
}

// Executed reports whether the guard reached its terminal state.
func (g *Guard) Executed() bool {
	return g.done.Load()
}

// Policy returns the failure policy of the guard.
func (g *Guard) Policy() FailurePolicy {
	return g.policy
}
