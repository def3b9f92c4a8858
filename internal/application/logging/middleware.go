package logging

import (
	"context"
	"reflect"
	"time"

	"github.com/andrescamacho/voyageplanner-go/internal/application/mediator"
)

// Middleware puts logger into the request context unless one is already
// there, and logs every failed request at ERROR
func Middleware(logger Logger) mediator.Middleware {
	return func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
		if _, ok := ctx.Value(loggerKey).(Logger); !ok {
			ctx = WithLogger(ctx, logger)
		}

		start := time.Now()
		response, err := next(ctx, request)
		if err != nil {
			LoggerFromContext(ctx).Log("ERROR", "request failed", map[string]interface{}{
				"request":     reflect.TypeOf(request).String(),
				"error":       err.Error(),
				"duration_ms": time.Since(start).Milliseconds(),
			})
		}
		return response, err
	}
}
