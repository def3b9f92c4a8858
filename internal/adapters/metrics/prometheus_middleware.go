package metrics

import (
	"context"
	"reflect"
	"strings"
	"time"

	"github.com/andrescamacho/voyageplanner-go/internal/application/mediator"
)

// PrometheusMiddleware records the duration and outcome of every request
// dispatched through the mediator. A nil collector disables it.
func PrometheusMiddleware(collector *CommandMetricsCollector) mediator.Middleware {
	return func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
		if collector == nil {
			return next(ctx, request)
		}

		done := collector.Begin(requestName(request))
		start := time.Now()
		response, err := next(ctx, request)
		done(time.Since(start).Seconds(), err)

		return response, err
	}
}

// requestName strips the pointer and package prefix from a request type:
// "*commands.ScheduleVoyageCommand" becomes "ScheduleVoyageCommand"
func requestName(request mediator.Request) string {
	if request == nil {
		return "UnknownCommand"
	}

	name := strings.TrimPrefix(reflect.TypeOf(request).String(), "*")
	if i := strings.LastIndex(name, "."); i >= 0 {
		return name[i+1:]
	}
	return name
}
