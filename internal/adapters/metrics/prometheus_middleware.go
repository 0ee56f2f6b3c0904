package metrics

import (
	"context"
	"reflect"
	"time"

	"github.com/andrescamacho/cozyhearth-go/internal/application/mediator"
)

// PrometheusMiddleware records the duration and outcome of every request.
// A nil collector disables it.
func PrometheusMiddleware(collector *CommandMetricsCollector) mediator.Middleware {
	return func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
		if collector == nil {
			return next(ctx, request)
		}

		start := time.Now()
		response, err := next(ctx, request)
		collector.RecordCommandExecution(requestName(request), time.Since(start).Seconds(), err)

		return response, err
	}
}

// requestName is the bare type name, e.g. "BuyResourceCommand"
func requestName(request mediator.Request) string {
	if request == nil {
		return "Unknown"
	}
	t := reflect.TypeOf(request)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if name := t.Name(); name != "" {
		return name
	}
	return t.String()
}
