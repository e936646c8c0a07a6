package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/fieldworks/cablesizer/internal/platform/requestctx"
)

var tracer = otel.Tracer("github.com/fieldworks/cablesizer/internal/platform/observability")

// StartSpan opens an internal span for a unit of computation and records the
// trace metadata on the context for log correlation. Spans are no-ops unless
// the embedding process installs an OpenTelemetry SDK.
func StartSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, span := tracer.Start(ctx, name, trace.WithSpanKind(trace.SpanKindInternal))
	if len(attrs) > 0 {
		span.SetAttributes(attrs...)
	}

	spanCtx := span.SpanContext()
	ctx = requestctx.WithTrace(ctx, requestctx.TraceInfo{
		TraceID: spanCtx.TraceID().String(),
		SpanID:  spanCtx.SpanID().String(),
		Sampled: spanCtx.IsSampled(),
	})

	return ctx, span
}
