package usecase

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var usecaseTracer = otel.Tracer("draft-league/internal/usecase")

// startUsecaseSpan opens a child span when the caller already carries a
// traced request. Untraced callers (background refresh, tests) pass
// through unchanged instead of minting root spans per service call.
func startUsecaseSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	parent := trace.SpanFromContext(ctx)
	if !parent.SpanContext().IsValid() {
		return ctx, parent
	}
	return usecaseTracer.Start(ctx, name,
		trace.WithAttributes(attribute.String("usecase.operation", name)))
}
