package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func newObservedLogger() (*zap.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zap.DebugLevel)
	return zap.New(core), logs
}

func TestWithContextAndFromContext(t *testing.T) {
	t.Run("round-trips a logger through context", func(t *testing.T) {
		log, _ := newObservedLogger()
		ctx := WithContext(context.Background(), log)

		assert.Equal(t, log, FromContext(ctx))
	})

	t.Run("returns no-op logger for bare context", func(t *testing.T) {
		log := FromContext(context.Background())

		assert.NotNil(t, log)
		// Must not panic
		log.Info("ignored")
	})
}

func TestWithRequestID(t *testing.T) {
	log, logs := newObservedLogger()
	ctx, enriched := WithRequestID(context.Background(), log, "req-123")

	assert.Equal(t, "req-123", GetRequestID(ctx))

	enriched.Info("hello")
	entries := logs.All()
	assert.Len(t, entries, 1)
	assert.Equal(t, "req-123", entries[0].ContextMap()["request_id"])
}

func TestWithUserID(t *testing.T) {
	log, logs := newObservedLogger()
	ctx, enriched := WithUserID(context.Background(), log, "user-42")

	assert.Equal(t, "user-42", GetUserID(ctx))

	enriched.Info("hello")
	entries := logs.All()
	assert.Len(t, entries, 1)
	assert.Equal(t, "user-42", entries[0].ContextMap()["user_id"])
}

func TestGetRequestIDMissing(t *testing.T) {
	assert.Equal(t, "", GetRequestID(context.Background()))
	assert.Equal(t, "", GetUserID(context.Background()))
}

func TestContextLogger(t *testing.T) {
	t.Run("L picks up logger and context fields", func(t *testing.T) {
		log, logs := newObservedLogger()
		ctx := WithContext(context.Background(), log)
		ctx = context.WithValue(ctx, RequestIDKey, "req-7")
		ctx = context.WithValue(ctx, UserIDKey, "user-7")

		L(ctx).Info("event")

		entries := logs.All()
		assert.Len(t, entries, 1)
		fields := entries[0].ContextMap()
		assert.Equal(t, "req-7", fields["request_id"])
		assert.Equal(t, "user-7", fields["user_id"])
	})

	t.Run("L on bare context does not panic", func(t *testing.T) {
		L(context.Background()).Info("ignored")
		L(context.Background()).Error("ignored")
	})

	t.Run("WithLogger uses the provided logger", func(t *testing.T) {
		log, logs := newObservedLogger()

		WithLogger(context.Background(), log).Warn("careful")

		entries := logs.All()
		assert.Len(t, entries, 1)
		assert.Equal(t, "careful", entries[0].Message)
	})

	t.Run("With adds fields to child logger", func(t *testing.T) {
		log, logs := newObservedLogger()

		WithLogger(context.Background(), log).
			With(zap.String("component", "storage")).
			Info("upload done")

		entries := logs.All()
		assert.Len(t, entries, 1)
		assert.Equal(t, "storage", entries[0].ContextMap()["component"])
	})
}
