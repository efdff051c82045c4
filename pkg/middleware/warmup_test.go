package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"
)

// TestWarmup tests that the warmup callback runs once and is retried until it succeeds
func TestWarmup(t *testing.T) {
	runs, calls := 0, 0
	handler := Warmup(func(r *http.Request) error {
		runs++
		if runs == 1 {
			return errors.New("cache not ready")
		}
		return nil
	}, zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusOK)
	}))

	codes := make([]int, 0, 4)
	for i := 0; i < 4; i++ {
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest("GET", "/test", nil))
		codes = append(codes, rr.Code)
	}

	expected := []int{http.StatusServiceUnavailable, http.StatusOK, http.StatusOK, http.StatusOK}
	for i, want := range expected {
		if codes[i] != want {
			t.Errorf("Request %d: expected status code %d, got %d", i, want, codes[i])
		}
	}
	if runs != 2 {
		t.Errorf("Expected warmup to run twice (failure + retry), ran %d times", runs)
	}
	if calls != 3 {
		t.Errorf("Expected 3 requests to reach the handler, got %d", calls)
	}
}

// TestWarmupNilPanics tests that a missing callback fails at assembly time
func TestWarmupNilPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("Expected a panic for a nil warmup callback")
		}
	}()
	Warmup(nil, nil)(http.NotFoundHandler())
}
