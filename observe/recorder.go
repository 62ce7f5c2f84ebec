package observe

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/verifykit/outbound/client"
	"github.com/verifykit/outbound/resilience"
)

// AuditEvent is the compliance record for one outbound call. Identity
// programs must be able to show which providers were consulted and when;
// the event carries call metadata only, never the payload.
type AuditEvent struct {
	ID         string        `json:"id"`
	Time       time.Time     `json:"time"`
	Resource   string        `json:"resource"`
	Method     string        `json:"method"`
	Endpoint   string        `json:"endpoint"`
	Success    bool          `json:"success"`
	Cached     bool          `json:"cached"`
	StatusCode int           `json:"status_code,omitempty"`
	ErrorKind  string        `json:"error_kind,omitempty"`
	Attempts   int           `json:"attempts"`
	Elapsed    time.Duration `json:"elapsed"`
}

// AuditSink receives audit events. Implementations must be safe for
// concurrent use and must not block.
type AuditSink interface {
	Publish(ctx context.Context, ev AuditEvent)
}

// CallRecorder fans one terminal call outcome out to metrics, the log
// stream, a call span, and the audit sink. It implements client.Recorder.
type CallRecorder struct {
	metrics *callMetrics
	tracer  *callTracer
	logger  Logger
	sink    AuditSink
}

// RecorderOption customizes a CallRecorder.
type RecorderOption func(*CallRecorder)

// WithAuditSink routes audit events to sink. Without it events are only
// logged.
func WithAuditSink(sink AuditSink) RecorderOption {
	return func(r *CallRecorder) {
		if sink != nil {
			r.sink = sink
		}
	}
}

// NewCallRecorder builds a recorder on top of the telemetry providers.
func NewCallRecorder(t *Telemetry, opts ...RecorderOption) (*CallRecorder, error) {
	metrics, err := newCallMetrics(t.Meter())
	if err != nil {
		return nil, err
	}

	r := &CallRecorder{
		metrics: metrics,
		tracer:  newCallTracer(t.Tracer()),
		logger:  t.Logger(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// RecordCall implements client.Recorder.
func (r *CallRecorder) RecordCall(ctx context.Context, ev client.CallEvent) {
	r.metrics.record(ctx, ev)
	r.tracer.record(ctx, ev)
	r.logCall(ctx, ev)

	if r.sink != nil {
		r.sink.Publish(ctx, AuditEvent{
			ID:         uuid.NewString(),
			Time:       time.Now().UTC(),
			Resource:   ev.Resource,
			Method:     ev.Method,
			Endpoint:   ev.Endpoint,
			Success:    ev.Success,
			Cached:     ev.Cached,
			StatusCode: ev.StatusCode,
			ErrorKind:  errorKindLabel(ev),
			Attempts:   ev.Attempts,
			Elapsed:    ev.Elapsed,
		})
	}
}

func (r *CallRecorder) logCall(ctx context.Context, ev client.CallEvent) {
	logger := r.logger.WithResource(ev.Resource)
	fields := []Field{
		{Key: "method", Value: ev.Method},
		{Key: "endpoint", Value: ev.Endpoint},
		{Key: "cached", Value: ev.Cached},
		{Key: "attempts", Value: ev.Attempts},
		{Key: "elapsed_ms", Value: ev.Elapsed.Milliseconds()},
	}

	if ev.Success {
		logger.Info(ctx, "outbound call succeeded", fields...)
		return
	}

	fields = append(fields,
		Field{Key: "error_kind", Value: ev.ErrorKind.String()},
		Field{Key: "status_code", Value: ev.StatusCode},
	)
	switch ev.ErrorKind {
	case client.KindCircuitOpen, client.KindRateLimited:
		// Gate rejections are expected under load; keep them out of the
		// error stream.
		logger.Warn(ctx, "outbound call rejected", fields...)
	default:
		logger.Error(ctx, "outbound call failed", fields...)
	}
}

func errorKindLabel(ev client.CallEvent) string {
	if ev.Success {
		return ""
	}
	return ev.ErrorKind.String()
}

// BreakerTransitionHook returns a circuit breaker state-change callback that
// logs the transition for the given provider. Open and half-open entries are
// warnings; a close back to healthy is informational.
//
// The callback runs while the breaker lock is held, so it only formats and
// writes a log line.
func BreakerTransitionHook(logger Logger, resource string) func(from, to resilience.State) {
	scoped := logger.WithResource(resource)
	return func(from, to resilience.State) {
		fields := []Field{
			{Key: "from", Value: from.String()},
			{Key: "to", Value: to.String()},
		}
		if to == resilience.StateClosed {
			scoped.Info(context.Background(), "circuit closed", fields...)
			return
		}
		scoped.Warn(context.Background(), "circuit state changed", fields...)
	}
}
