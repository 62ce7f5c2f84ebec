package observe

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/verifykit/outbound/client"
)

// callMetrics holds the instruments for outbound call outcomes.
type callMetrics struct {
	total    metric.Int64Counter
	errors   metric.Int64Counter
	cached   metric.Int64Counter
	duration metric.Float64Histogram
	attempts metric.Int64Histogram
}

func newCallMetrics(meter metric.Meter) (*callMetrics, error) {
	total, err := meter.Int64Counter(
		"outbound.calls.total",
		metric.WithDescription("Total outbound calls, including gate rejections and cache hits"),
		metric.WithUnit("{call}"),
	)
	if err != nil {
		return nil, err
	}

	errCount, err := meter.Int64Counter(
		"outbound.calls.errors",
		metric.WithDescription("Outbound calls that did not succeed"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return nil, err
	}

	cached, err := meter.Int64Counter(
		"outbound.calls.cached",
		metric.WithDescription("Outbound calls served from the response cache"),
		metric.WithUnit("{call}"),
	)
	if err != nil {
		return nil, err
	}

	duration, err := meter.Float64Histogram(
		"outbound.call.duration_ms",
		metric.WithDescription("Outbound call wall time including retries and backoff"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	attempts, err := meter.Int64Histogram(
		"outbound.call.attempts",
		metric.WithDescription("Transport invocations per outbound call"),
		metric.WithUnit("{attempt}"),
	)
	if err != nil {
		return nil, err
	}

	return &callMetrics{
		total:    total,
		errors:   errCount,
		cached:   cached,
		duration: duration,
		attempts: attempts,
	}, nil
}

func (m *callMetrics) record(ctx context.Context, ev client.CallEvent) {
	opt := metric.WithAttributes(
		attribute.String("resource", ev.Resource),
		attribute.String("error_kind", ev.ErrorKind.String()),
		attribute.Bool("cached", ev.Cached),
	)

	m.total.Add(ctx, 1, opt)
	if !ev.Success {
		m.errors.Add(ctx, 1, opt)
	}
	if ev.Cached {
		m.cached.Add(ctx, 1, opt)
	}
	m.duration.Record(ctx, float64(ev.Elapsed.Milliseconds()), opt)
	m.attempts.Record(ctx, int64(ev.Attempts), opt)
}
