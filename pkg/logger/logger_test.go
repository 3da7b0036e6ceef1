package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yudhaa/portfolio/pkg/logger"
)

type ctxKey struct{}

func requestID(ctx context.Context) (slog.Attr, bool) {
	if id, ok := ctx.Value(ctxKey{}).(string); ok && id != "" {
		return slog.String("request_id", id), true
	}
	return slog.Attr{}, false
}

func decode(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("writes json with extracted attributes", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := logger.New(logger.WithWriter(&buf), logger.WithExtractors(requestID))

		ctx := context.WithValue(context.Background(), ctxKey{}, "req-1")
		log.InfoContext(ctx, "contact submitted", slog.String("outcome", "delivered"))

		entry := decode(t, &buf)
		assert.Equal(t, "contact submitted", entry["msg"])
		assert.Equal(t, "req-1", entry["request_id"])
		assert.Equal(t, "delivered", entry["outcome"])
	})

	t.Run("skips attributes the extractor does not find", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := logger.New(logger.WithWriter(&buf), logger.WithExtractors(requestID, nil))
		log.Info("no request")

		entry := decode(t, &buf)
		assert.NotContains(t, entry, "request_id")
	})

	t.Run("respects level", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := logger.New(logger.WithWriter(&buf), logger.WithLevel(slog.LevelWarn))
		log.Info("hidden")
		assert.Zero(t, buf.Len())

		log.Warn("shown")
		assert.Equal(t, "shown", decode(t, &buf)["msg"])
	})

	t.Run("keeps extractors through With", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := logger.New(logger.WithWriter(&buf), logger.WithExtractors(requestID)).
			With(slog.String("component", "contact"))

		ctx := context.WithValue(context.Background(), ctxKey{}, "req-2")
		log.InfoContext(ctx, "hello")

		entry := decode(t, &buf)
		assert.Equal(t, "contact", entry["component"])
		assert.Equal(t, "req-2", entry["request_id"])
	})
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		" warn ":  slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for name, want := range tests {
		assert.Equal(t, want, logger.ParseLevel(name), name)
	}
}

func TestNewWithSentry(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log, flush := logger.NewWithSentry(logger.SentryConfig{}, logger.WithWriter(&buf))
	require.NotNil(t, log)
	require.NotNil(t, flush)

	log.Error("stdout only")
	assert.Equal(t, "stdout only", decode(t, &buf)["msg"])
	assert.True(t, flush(time.Second))
}

func TestNewNope(t *testing.T) {
	t.Parallel()

	log := logger.NewNope()
	require.NotNil(t, log)
	assert.False(t, log.Enabled(context.Background(), slog.LevelError))
	log.Error("discarded")
}
