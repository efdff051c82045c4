package stage

import (
	"errors"
	"fmt"
)

// ErrConfiguration is matched by every error returned while constructing a
// stage. A stage that fails construction is never returned.
var ErrConfiguration = errors.New("stage: invalid configuration")

var (
	// ErrNilContinuation is returned when a stage is built without a continuation.
	ErrNilContinuation = fmt.Errorf("%w: continuation must not be nil", ErrConfiguration)

	// ErrNilHook is returned when a stage is built without a hook.
	ErrNilHook = fmt.Errorf("%w: hook must not be nil", ErrConfiguration)
)

// ErrHookPanic is matched by the error a stage returns when its hook panics
// and panic recovery is enabled with WithRecover.
var ErrHookPanic = errors.New("stage: hook panicked")

// PanicError carries the value recovered from a panicking hook.
type PanicError struct {
	Stage string
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("stage %s: hook panicked: %v", e.Stage, e.Value)
}

// Unwrap lets errors.Is match ErrHookPanic.
func (e *PanicError) Unwrap() error {
	return ErrHookPanic
}
