package logging_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/voyageplanner-go/internal/application/logging"
	"github.com/andrescamacho/voyageplanner-go/internal/application/mediator"
)

type entry struct {
	level    string
	message  string
	metadata map[string]interface{}
}

type recordingLogger struct {
	entries []entry
}

func (r *recordingLogger) Log(level, message string, metadata map[string]interface{}) {
	r.entries = append(r.entries, entry{level, message, metadata})
}

func TestLoggerFromContext_DefaultsToNoOp(t *testing.T) {
	logger := logging.LoggerFromContext(context.Background())

	require.NotNil(t, logger)
	assert.NotPanics(t, func() { logger.Log("INFO", "ignored", nil) })
}

func TestWith_MergesFieldsAndEntryMetadataWins(t *testing.T) {
	// Arrange
	rec := &recordingLogger{}
	ctx := logging.WithLogger(context.Background(), logging.With(rec, map[string]interface{}{
		"voyage_id": int64(3),
		"mode":      "full",
	}))

	// Act
	logging.LoggerFromContext(ctx).Log("WARN", "degenerate leg", map[string]interface{}{"mode": "times"})

	// Assert
	require.Len(t, rec.entries, 1)
	assert.Equal(t, "WARN", rec.entries[0].level)
	assert.Equal(t, int64(3), rec.entries[0].metadata["voyage_id"])
	assert.Equal(t, "times", rec.entries[0].metadata["mode"])
}

func TestMiddleware_InjectsLoggerAndLogsFailures(t *testing.T) {
	// Arrange
	rec := &recordingLogger{}
	mw := logging.Middleware(rec)

	var seen logging.Logger
	failing := func(ctx context.Context, request mediator.Request) (mediator.Response, error) {
		seen = logging.LoggerFromContext(ctx)
		return nil, errors.New("boom")
	}

	// Act
	_, err := mw(context.Background(), &struct{}{}, failing)

	// Assert
	require.Error(t, err)
	assert.Same(t, rec, seen)
	require.Len(t, rec.entries, 1)
	assert.Equal(t, "ERROR", rec.entries[0].level)
	assert.Equal(t, "boom", rec.entries[0].metadata["error"])
}
