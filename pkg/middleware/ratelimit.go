package middleware

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"github.com/Suhaibinator/SPipeline/pkg/httpstage"
	"go.uber.org/ratelimit"
	"go.uber.org/zap"
)

// ErrRateLimitWait is returned when a request is cancelled while waiting for
// the rate limiter
var ErrRateLimitWait = errors.New("rate limit wait cancelled")

// RateLimiter paces requests per key. Wait blocks until the request identified
// by key may proceed.
type RateLimiter interface {
	Wait(ctx context.Context, key string) error
}

// UberRateLimiter implements RateLimiter with one go.uber.org/ratelimit
// leaky bucket per key
type UberRateLimiter struct {
	rps      int
	opts     []ratelimit.Option
	limiters sync.Map // map[string]ratelimit.Limiter
	mu       sync.Mutex
}

// NewUberRateLimiter creates a limiter allowing rps requests per second per key
func NewUberRateLimiter(rps int, opts ...ratelimit.Option) *UberRateLimiter {
	if rps < 1 {
		rps = 1
	}
	return &UberRateLimiter{rps: rps, opts: opts}
}

func (u *UberRateLimiter) limiter(key string) ratelimit.Limiter {
	if l, ok := u.limiters.Load(key); ok {
		return l.(ratelimit.Limiter)
	}

	u.mu.Lock()
	defer u.mu.Unlock()

	// Double-check after acquiring lock
	if l, ok := u.limiters.Load(key); ok {
		return l.(ratelimit.Limiter)
	}
	l := ratelimit.New(u.rps, u.opts...)
	u.limiters.Store(key, l)
	return l
}

// Wait takes a slot from the bucket for key. A context that is already done
// is reported without consuming a slot.
func (u *UberRateLimiter) Wait(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return errors.Join(ErrRateLimitWait, err)
	}
	u.limiter(key).Take()
	if err := ctx.Err(); err != nil {
		return errors.Join(ErrRateLimitWait, err)
	}
	return nil
}

// KeyFunc picks the rate limit key of a request
type KeyFunc func(r *http.Request) string

// ClientIPKeyFunc keys requests by the client IP from the ClientIP stage,
// falling back to RemoteAddr.
//
// With a ClientIP stage that trusts proxy headers the key is whatever the
// client puts in that header, so a client rotating it gets a fresh bucket
// per request. Use TrustProxy only behind a proxy that overwrites the
// header. UberRateLimiter keeps one bucket per key for its lifetime.
func ClientIPKeyFunc(r *http.Request) string {
	if ip := GetClientIP(r); ip != "" {
		return ip
	}
	return stripPort(r.RemoteAddr)
}

// RateLimit creates a stage that waits on the resolved RateLimiter before
// letting a request through. Requests cancelled while waiting fail with 503.
func RateLimit(limiter httpstage.Resolver[RateLimiter], key KeyFunc, logger *zap.Logger) Middleware {
	if key == nil {
		key = ClientIPKeyFunc
	}
	return httpstage.Use1(func(ctx context.Context, c *httpstage.Context, l RateLimiter) error {
		k := key(c.Request)
		if err := l.Wait(ctx, k); err != nil {
			if logger != nil {
				logger.Warn("Rate limit wait aborted",
					zap.String("key", k),
					zap.String("path", c.Request.URL.Path),
					zap.Error(err),
				)
			}
			return httpstage.WithStatus(http.StatusServiceUnavailable, err)
		}
		return nil
	}, limiter, options("rate_limit", logger)...)
}
