package stage

import "reflect"

// Arity is implemented by service tuples and reports how many services the
// tuple carries.
type Arity interface {
	Arity() int
}

// Services0 is the empty service tuple.
type Services0 struct{}

// Services1 carries one borrowed service.
type Services1[S0 any] struct {
	S0 S0
}

// Services2 carries two borrowed services.
type Services2[S0, S1 any] struct {
	S0 S0
	S1 S1
}

// Services3 carries three borrowed services.
type Services3[S0, S1, S2 any] struct {
	S0 S0
	S1 S1
	S2 S2
}

// Services4 carries four borrowed services.
type Services4[S0, S1, S2, S3 any] struct {
	S0 S0
	S1 S1
	S2 S2
	S3 S3
}

// Services5 carries five borrowed services.
type Services5[S0, S1, S2, S3, S4 any] struct {
	S0 S0
	S1 S1
	S2 S2
	S3 S3
	S4 S4
}

func (Services0) Arity() int                     { return 0 }
func (Services1[S0]) Arity() int                 { return 1 }
func (Services2[S0, S1]) Arity() int             { return 2 }
func (Services3[S0, S1, S2]) Arity() int         { return 3 }
func (Services4[S0, S1, S2, S3]) Arity() int     { return 4 }
func (Services5[S0, S1, S2, S3, S4]) Arity() int { return 5 }

// arityOf reports the arity of a service tuple type. A pointer to a tuple
// has the tuple's arity; types that don't implement Arity count as a single
// service.
func arityOf[S any]() int {
	t := reflect.TypeFor[S]()
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if a, ok := reflect.Zero(t).Interface().(Arity); ok {
		return a.Arity()
	}
	return 1
}
