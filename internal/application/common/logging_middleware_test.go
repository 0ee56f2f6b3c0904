package common_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/cozyhearth-go/internal/application/common"
	"github.com/andrescamacho/cozyhearth-go/internal/application/mediator"
)

type entry struct {
	level    string
	message  string
	metadata map[string]interface{}
}

type captureLogger struct {
	entries []entry
}

func (c *captureLogger) Log(level, message string, metadata map[string]interface{}) {
	c.entries = append(c.entries, entry{level, message, metadata})
}

type brewCommand struct{}

func TestLoggingMiddleware_InjectsLoggerAndLogsOutcome(t *testing.T) {
	logger := &captureLogger{}
	mw := common.LoggingMiddleware(logger)

	var fromCtx interface{}
	_, err := mw(context.Background(), &brewCommand{}, func(ctx context.Context, request mediator.Request) (mediator.Response, error) {
		fromCtx = common.LoggerFromContext(ctx)
		return nil, nil
	})

	require.NoError(t, err)
	assert.Same(t, logger, fromCtx)
	require.Len(t, logger.entries, 1)
	assert.Equal(t, "DEBUG", logger.entries[0].level)
	assert.Equal(t, "brewCommand", logger.entries[0].metadata["request"])
}

func TestLoggingMiddleware_LogsFailuresAsWarnings(t *testing.T) {
	logger := &captureLogger{}
	mw := common.LoggingMiddleware(logger)

	_, err := mw(context.Background(), &brewCommand{}, func(ctx context.Context, request mediator.Request) (mediator.Response, error) {
		return nil, errors.New("kettle empty")
	})

	require.Error(t, err)
	require.Len(t, logger.entries, 1)
	assert.Equal(t, "WARNING", logger.entries[0].level)
	assert.Equal(t, "kettle empty", logger.entries[0].metadata["error"])
}

func TestLoggerFromContext_DefaultsToNoOp(t *testing.T) {
	logger := common.LoggerFromContext(context.Background())
	assert.NotNil(t, logger)
	logger.Log("INFO", "ignored", nil)
}
