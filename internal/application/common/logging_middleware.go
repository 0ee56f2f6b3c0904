package common

import (
	"context"
	"reflect"
	"time"

	"github.com/andrescamacho/cozyhearth-go/internal/application/mediator"
	"github.com/andrescamacho/cozyhearth-go/internal/domain/shared"
)

// LoggingMiddleware puts logger on the request context and logs every
// dispatched command or query with its outcome and duration.
func LoggingMiddleware(logger shared.Logger) mediator.Middleware {
	logger = shared.LoggerOrNoOp(logger)
	return func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
		ctx = WithLogger(ctx, logger)
		name := requestName(request)
		start := time.Now()

		response, err := next(ctx, request)

		metadata := map[string]interface{}{
			"request":     name,
			"duration_ms": time.Since(start).Milliseconds(),
		}
		if err != nil {
			metadata["error"] = err.Error()
			logger.Log(shared.LevelWarn, "Request failed", metadata)
			return response, err
		}
		logger.Log(shared.LevelDebug, "Request handled", metadata)
		return response, nil
	}
}

func requestName(request mediator.Request) string {
	t := reflect.TypeOf(request)
	for t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t == nil || t.Name() == "" {
		return "UnknownRequest"
	}
	return t.Name()
}
