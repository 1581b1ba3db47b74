package observability

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/telhawk-systems/ocsf-mcp/internal/config"
	"github.com/telhawk-systems/ocsf-mcp/internal/logging"
)

// ShutdownFunc flushes and stops the tracer provider.
type ShutdownFunc func(context.Context) error

// Setup installs a global tracer provider when tracing is enabled. Finished
// spans are written to logger at debug level. With tracing disabled the
// global no-op provider is left in place.
func Setup(cfg config.TracingConfig, logger *logging.Logger) ShutdownFunc {
	if !cfg.Enabled {
		return func(context.Context) error { return nil }
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithResource(resource.NewSchemaless(
			attribute.String("service.name", cfg.ServiceName),
		)),
		sdktrace.WithBatcher(NewLogExporter(logger)),
	)
	otel.SetTracerProvider(tp)

	logger.Info("Tracing enabled", slog.String("service_name", cfg.ServiceName))
	return tp.Shutdown
}

// LogExporter is a span exporter that writes one log record per span.
type LogExporter struct {
	logger *logging.Logger
}

func NewLogExporter(logger *logging.Logger) *LogExporter {
	return &LogExporter{logger: logger}
}

func (e *LogExporter) ExportSpans(ctx context.Context, spans []sdktrace.ReadOnlySpan) error {
	for _, s := range spans {
		attrs := []any{
			slog.String("span", s.Name()),
			slog.String("trace_id", s.SpanContext().TraceID().String()),
			slog.String("span_id", s.SpanContext().SpanID().String()),
			logging.Duration(s.EndTime().Sub(s.StartTime()).Milliseconds()),
			slog.String("status", s.Status().Code.String()),
		}
		for _, kv := range s.Attributes() {
			attrs = append(attrs, slog.String(string(kv.Key), kv.Value.Emit()))
		}
		e.logger.DebugContext(ctx, "span finished", attrs...)
	}
	return nil
}

func (e *LogExporter) Shutdown(context.Context) error { return nil }
