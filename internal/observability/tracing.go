package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// TracerName identifies spans emitted by this module.
const TracerName = "github.com/telhawk-systems/ocsf-mcp"

// Span attribute keys.
const (
	AttrTool      = "ocsf.tool"
	AttrTransport = "ocsf.transport"
	AttrErrorKind = "ocsf.error_kind"
)

// StartToolSpan starts a span for one tool invocation. The global tracer
// provider is looked up on every call so providers installed later take effect.
func StartToolSpan(ctx context.Context, tool, transport string) (context.Context, trace.Span) {
	return otel.Tracer(TracerName).Start(ctx, "tool."+tool,
		trace.WithAttributes(
			attribute.String(AttrTool, tool),
			attribute.String(AttrTransport, transport),
		),
		trace.WithSpanKind(trace.SpanKindServer),
	)
}

// EndSpanWithError completes a span, recording err and its kind when set.
func EndSpanWithError(span trace.Span, err error, kind string) {
	if span == nil {
		return
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		if kind != "" {
			span.SetAttributes(attribute.String(AttrErrorKind, kind))
		}
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

// AddSpanEvent adds an event to the span in ctx when it is recording.
func AddSpanEvent(ctx context.Context, name string, attrs ...attribute.KeyValue) {
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}
	span.AddEvent(name, trace.WithAttributes(attrs...))
}
