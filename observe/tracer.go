package observe

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/verifykit/outbound/client"
)

// callTracer emits one span per terminal call outcome.
//
// The resilience layer reports outcomes after the fact, so the span covers
// the whole logical call (gates, retries, backoff) rather than one transport
// attempt.
type callTracer struct {
	tracer trace.Tracer
}

func newCallTracer(t trace.Tracer) *callTracer {
	return &callTracer{tracer: t}
}

func (t *callTracer) record(ctx context.Context, ev client.CallEvent) {
	_, span := t.tracer.Start(ctx, "outbound.call."+ev.Resource,
		trace.WithAttributes(
			attribute.String("resource", ev.Resource),
			attribute.String("method", ev.Method),
			attribute.String("endpoint", ev.Endpoint),
			attribute.Bool("cached", ev.Cached),
			attribute.Int("attempts", ev.Attempts),
			attribute.Int("status_code", ev.StatusCode),
		),
		trace.WithSpanKind(trace.SpanKindClient),
		// Backdate the start so the span duration reflects the call's
		// actual wall time.
		trace.WithTimestamp(time.Now().Add(-ev.Elapsed)),
	)

	if ev.Success {
		span.SetStatus(codes.Ok, "")
	} else {
		span.SetStatus(codes.Error, ev.ErrorKind.String())
		span.SetAttributes(attribute.String("error_kind", ev.ErrorKind.String()))
	}
	span.End()
}
