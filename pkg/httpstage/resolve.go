package httpstage

import (
	"net/http"

	"github.com/Suhaibinator/SPipeline/pkg/stage"
)

// None resolves the empty service tuple.
func None() Resolver[stage.Services0] {
	return Static(stage.Services0{})
}

// Resolve1 resolves a one-service tuple.
func Resolve1[S0 any](r0 Resolver[S0]) Resolver[stage.Services1[S0]] {
	return func(r *http.Request) (stage.Services1[S0], error) {
		var s stage.Services1[S0]
		var err error
		if s.S0, err = r0(r); err != nil {
			return s, err
		}
		return s, nil
	}
}

// Resolve2 resolves a two-service tuple. Resolution stops at the first error.
func Resolve2[S0, S1 any](r0 Resolver[S0], r1 Resolver[S1]) Resolver[stage.Services2[S0, S1]] {
	return func(r *http.Request) (stage.Services2[S0, S1], error) {
		var s stage.Services2[S0, S1]
		var err error
		if s.S0, err = r0(r); err != nil {
			return s, err
		}
		if s.S1, err = r1(r); err != nil {
			return s, err
		}
		return s, nil
	}
}

// Resolve3 resolves a three-service tuple.
func Resolve3[S0, S1, S2 any](r0 Resolver[S0], r1 Resolver[S1], r2 Resolver[S2]) Resolver[stage.Services3[S0, S1, S2]] {
	return func(r *http.Request) (stage.Services3[S0, S1, S2], error) {
		var s stage.Services3[S0, S1, S2]
		head, err := Resolve2(r0, r1)(r)
		if err != nil {
			return s, err
		}
		s.S0, s.S1 = head.S0, head.S1
		if s.S2, err = r2(r); err != nil {
			return s, err
		}
		return s, nil
	}
}

// Resolve4 resolves a four-service tuple.
func Resolve4[S0, S1, S2, S3 any](r0 Resolver[S0], r1 Resolver[S1], r2 Resolver[S2], r3 Resolver[S3]) Resolver[stage.Services4[S0, S1, S2, S3]] {
	return func(r *http.Request) (stage.Services4[S0, S1, S2, S3], error) {
		var s stage.Services4[S0, S1, S2, S3]
		head, err := Resolve3(r0, r1, r2)(r)
		if err != nil {
			return s, err
		}
		s.S0, s.S1, s.S2 = head.S0, head.S1, head.S2
		if s.S3, err = r3(r); err != nil {
			return s, err
		}
		return s, nil
	}
}

// Resolve5 resolves a five-service tuple.
func Resolve5[S0, S1, S2, S3, S4 any](r0 Resolver[S0], r1 Resolver[S1], r2 Resolver[S2], r3 Resolver[S3], r4 Resolver[S4]) Resolver[stage.Services5[S0, S1, S2, S3, S4]] {
	return func(r *http.Request) (stage.Services5[S0, S1, S2, S3, S4], error) {
		var s stage.Services5[S0, S1, S2, S3, S4]
		head, err := Resolve4(r0, r1, r2, r3)(r)
		if err != nil {
			return s, err
		}
		s.S0, s.S1, s.S2, s.S3 = head.S0, head.S1, head.S2, head.S3
		if s.S4, err = r4(r); err != nil {
			return s, err
		}
		return s, nil
	}
}
