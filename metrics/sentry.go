package metrics

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/getsentry/sentry-go"
)

// Init configures the global Sentry client. A missing DSN disables
// reporting without failing startup.
func Init(dsn, environment string) error {
	if dsn == "" {
		log.Printf("⚠️  Sentry DSN not configured, error reporting disabled")
		return nil
	}
	err := sentry.Init(sentry.ClientOptions{
		Dsn:              dsn,
		Environment:      environment,
		TracesSampleRate: 1.0,
	})
	if err != nil {
		return fmt.Errorf("failed to init sentry: %w", err)
	}
	return nil
}

// Flush drains pending events on shutdown.
func Flush() {
	sentry.Flush(2 * time.Second)
}

// ToolMetrics records spans for tool server operations.
type ToolMetrics struct {
	enabled bool
}

// NewToolMetrics creates a new tool metrics client.
func NewToolMetrics() *ToolMetrics {
	return &ToolMetrics{enabled: true}
}

// StartToolCall opens a transaction for one tool invocation. Finish the
// returned span when the call completes.
func (m *ToolMetrics) StartToolCall(ctx context.Context, tool, batchID string) *sentry.Span {
	transaction := sentry.StartTransaction(ctx, fmt.Sprintf("tool.%s", tool))
	transaction.SetTag("tool", tool)
	transaction.SetTag("batch_id", batchID)
	return transaction
}

// RecordParseOutcome tags the enclosing transaction with the notation
// parse result and emits a span for it.
func (m *ToolMetrics) RecordParseOutcome(ctx context.Context, voices, notes int, err error) {
	if !m.enabled {
		return
	}
	if transaction := sentry.TransactionFromContext(ctx); transaction != nil {
		transaction.SetTag("parse.ok", fmt.Sprintf("%t", err == nil))
		transaction.SetData("parse.voices", voices)
		transaction.SetData("parse.notes", notes)
	}
	span := sentry.StartSpan(ctx, "notation.parse")
	defer span.Finish()
	span.SetData("voices", voices)
	span.SetData("notes", notes)
	if err != nil {
		span.Status = sentry.SpanStatusInvalidArgument
		span.Description = err.Error()
	} else {
		span.Status = sentry.SpanStatusOK
	}
}

// RecordResolveOutcome records one path resolution attempt.
func (m *ToolMetrics) RecordResolveOutcome(ctx context.Context, path string, duration time.Duration, err error) {
	if !m.enabled {
		return
	}
	span := sentry.StartSpan(ctx, "live.resolve")
	defer span.Finish()
	span.SetTag("path", path)
	span.SetData("duration_ms", duration.Milliseconds())
	if err != nil {
		span.Status = sentry.SpanStatusNotFound
		span.Description = err.Error()
	} else {
		span.Status = sentry.SpanStatusOK
	}
}
