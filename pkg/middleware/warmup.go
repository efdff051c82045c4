package middleware

import (
	"net/http"

	"github.com/Suhaibinator/SPipeline/pkg/httpstage"
	"github.com/Suhaibinator/SPipeline/pkg/stage"
	"go.uber.org/zap"
)

// Warmup creates a one-time stage that runs init with the first request that
// reaches it. Until init succeeds every request retries it and fails with
// 503; afterwards requests pass straight through.
func Warmup(init func(r *http.Request) error, logger *zap.Logger) Middleware {
	var first stage.FirstHook0[*httpstage.Context]
	if init != nil {
		first = func(c *httpstage.Context) error {
			return httpstage.WithStatus(http.StatusServiceUnavailable, init(c.Request))
		}
	}
	return httpstage.UseOnce0(first, options("warmup", logger)...)
}
