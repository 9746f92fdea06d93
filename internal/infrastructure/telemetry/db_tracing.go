package telemetry

import (
	"context"
	"errors"
	"time"

	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DBTracingConfig controls the otelgorm integration.
type DBTracingConfig struct {
	SlowQueryThreshold time.Duration
	DBName             string
	RecordSQLVariables bool // bind variables end up in span attributes, keep off outside development
}

// DefaultDBTracingConfig matches the gorm logger's slow query threshold.
func DefaultDBTracingConfig() DBTracingConfig {
	return DBTracingConfig{
		SlowQueryThreshold: 200 * time.Millisecond,
		DBName:             "carhive",
	}
}

type queryStartKey struct{}

type dbTracer struct {
	threshold time.Duration
	log       *zap.Logger
}

// callbackRegistrar is the part of gorm's callback builder we need.
// gorm returns unexported types from Before/After, this keeps them loopable.
type callbackRegistrar interface {
	Register(name string, fn func(*gorm.DB)) error
}

// RegisterDBTracing installs the otelgorm plugin on db and adds per-operation
// callbacks that stamp spans with row counts, table names and slow query events.
func RegisterDBTracing(db *gorm.DB, cfg DBTracingConfig, log *zap.Logger) error {
	opts := []otelgorm.Option{otelgorm.WithDBName(cfg.DBName)}
	if !cfg.RecordSQLVariables {
		opts = append(opts, otelgorm.WithoutQueryVariables())
	}
	if err := db.Use(otelgorm.NewPlugin(opts...)); err != nil {
		return err
	}

	tracer := &dbTracer{threshold: cfg.SlowQueryThreshold, log: log}

	hooks := []struct {
		op     string
		before callbackRegistrar
		after  callbackRegistrar
	}{
		{"create", db.Callback().Create().Before("gorm:create"), db.Callback().Create().After("gorm:create")},
		{"query", db.Callback().Query().Before("gorm:query"), db.Callback().Query().After("gorm:query")},
		{"update", db.Callback().Update().Before("gorm:update"), db.Callback().Update().After("gorm:update")},
		{"delete", db.Callback().Delete().Before("gorm:delete"), db.Callback().Delete().After("gorm:delete")},
	}
	for _, h := range hooks {
		if err := h.before.Register("carhive_trace:start_"+h.op, tracer.markStart); err != nil {
			return err
		}
		if err := h.after.Register("carhive_trace:finish_"+h.op, tracer.annotate); err != nil {
			return err
		}
	}

	log.Info("Database tracing registered",
		zap.Duration("slow_query_threshold", cfg.SlowQueryThreshold))
	return nil
}

func (t *dbTracer) markStart(db *gorm.DB) {
	db.Statement.Context = context.WithValue(db.Statement.Context, queryStartKey{}, time.Now())
}

func (t *dbTracer) annotate(db *gorm.DB) {
	span := trace.SpanFromContext(db.Statement.Context)
	if !span.IsRecording() {
		return
	}

	span.SetAttributes(
		attribute.Int64("db.rows_affected", db.Statement.RowsAffected),
		attribute.String("db.sql.table", db.Statement.Table),
	)

	// Owner-scoped lookups miss routinely, a not-found result is not a span error.
	if err := db.Statement.Error; err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}

	start, ok := db.Statement.Context.Value(queryStartKey{}).(time.Time)
	if !ok {
		return
	}
	if elapsed := time.Since(start); t.threshold > 0 && elapsed >= t.threshold {
		span.AddEvent("slow_query", trace.WithAttributes(
			attribute.Int64("db.elapsed_ms", elapsed.Milliseconds()),
			attribute.Int64("db.threshold_ms", t.threshold.Milliseconds()),
		))
		t.log.Warn("Slow SQL span",
			zap.Duration("elapsed", elapsed),
			zap.String("table", db.Statement.Table))
	}
}
