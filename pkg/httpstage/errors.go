package httpstage

import (
	"errors"
	"net/http"

	"go.uber.org/zap"
)

// ErrResponseWritten tells the error handler that the hook already wrote the
// response. The continuation is skipped and nothing else is written.
var ErrResponseWritten = errors.New("httpstage: response already written")

// StatusError attaches an HTTP status code to an error.
type StatusError struct {
	Code int
	Err  error
}

// WithStatus returns err annotated with an HTTP status code.
func WithStatus(code int, err error) error {
	if err == nil {
		return nil
	}
	return &StatusError{Code: code, Err: err}
}

func (e *StatusError) Error() string {
	return e.Err.Error()
}

// Unwrap returns the annotated error.
func (e *StatusError) Unwrap() error {
	return e.Err
}

// StatusCode returns the HTTP status code.
func (e *StatusError) StatusCode() int {
	return e.Code
}

// StatusCoder is implemented by errors that choose their own response status.
type StatusCoder interface {
	StatusCode() int
}

// ErrorHandler turns a failed invocation into a response. A hook that has
// already written to the response must return ErrResponseWritten (possibly
// wrapped); any other error makes DefaultErrorHandler write a second status.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

// StatusCode returns the status an error maps to: the code of the first
// StatusCoder in its chain, or 500.
func StatusCode(err error) int {
	var sc StatusCoder
	if errors.As(err, &sc) {
		if code := sc.StatusCode(); code >= 400 && code <= 599 {
			return code
		}
	}
	return http.StatusInternalServerError
}

// DefaultErrorHandler logs the failure and writes a plain status response.
func DefaultErrorHandler(logger *zap.Logger) ErrorHandler {
	return func(w http.ResponseWriter, r *http.Request, err error) {
		if errors.Is(err, ErrResponseWritten) {
			return
		}

		code := StatusCode(err)
		fields := []zap.Field{
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", code),
			zap.Error(err),
		}
		if code >= 500 {
			logger.Error("Stage failed", fields...)
		} else {
			logger.Warn("Stage rejected request", fields...)
		}

		http.Error(w, http.StatusText(code), code)
	}
}
