package telemetry

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/jsamuelsen/viewlink"

// Tracer returns the view link tracer from tp, or from the global provider when tp is nil.
func Tracer(tp trace.TracerProvider) trace.Tracer {
	if tp == nil {
		tp = otel.GetTracerProvider()
	}

	return tp.Tracer(instrumentationName)
}

// LogExporter is a span exporter that writes finished spans to a slog.Logger.
type LogExporter struct {
	logger *slog.Logger
}

var _ sdktrace.SpanExporter = (*LogExporter)(nil)

// NewLogExporter creates a span exporter backed by logger.
func NewLogExporter(logger *slog.Logger) *LogExporter {
	if logger == nil {
		logger = slog.Default()
	}

	return &LogExporter{logger: logger}
}

// ExportSpans logs one debug line per span.
func (e *LogExporter) ExportSpans(ctx context.Context, spans []sdktrace.ReadOnlySpan) error {
	for _, span := range spans {
		attrs := []any{
			slog.String("span", span.Name()),
			slog.String("trace_id", span.SpanContext().TraceID().String()),
			slog.Duration("duration", span.EndTime().Sub(span.StartTime())),
			slog.String("status", span.Status().Code.String()),
		}

		for _, kv := range span.Attributes() {
			attrs = append(attrs, slog.String(string(kv.Key), kv.Value.Emit()))
		}

		e.logger.DebugContext(ctx, "span finished", attrs...)
	}

	return nil
}

// Shutdown is a no-op; the logger is owned by the caller.
func (e *LogExporter) Shutdown(context.Context) error {
	return nil
}
