package observability

import (
	"fmt"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/signalsfoundry/ssc-conjunctions/internal/logging"
)

const tracerName = "github.com/signalsfoundry/ssc-conjunctions/internal/observability"

// InstrumentedTransport wraps an http.RoundTripper with a client span, W3C
// trace context propagation and per-operation metrics.
type InstrumentedTransport struct {
	Base      http.RoundTripper
	Collector *ClientCollector
}

// NewInstrumentedTransport wraps base, defaulting to http.DefaultTransport.
func NewInstrumentedTransport(base http.RoundTripper, c *ClientCollector) *InstrumentedTransport {
	return &InstrumentedTransport{Base: base, Collector: c}
}

func (t *InstrumentedTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}
	ctx := req.Context()
	op := OperationFromContext(ctx)

	attrs := []attribute.KeyValue{
		attribute.String("http.request.method", req.Method),
		attribute.String("url.full", req.URL.String()),
		attribute.String("ssc.operation", op),
	}
	if id := logging.RequestIDFromContext(ctx); id != "" {
		attrs = append(attrs, attribute.String("request_id", id))
	}
	ctx, span := otel.Tracer(tracerName).Start(ctx, fmt.Sprintf("SSC/%s", op),
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attrs...),
	)
	defer span.End()

	// RoundTrippers must not modify the caller's request.
	out := req.Clone(ctx)
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(out.Header))

	start := time.Now()
	resp, err := base.RoundTrip(out)
	elapsed := time.Since(start)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		t.Collector.ObserveCall(op, 0, elapsed)
		return nil, err
	}

	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))
	if resp.StatusCode >= http.StatusBadRequest {
		span.SetStatus(codes.Error, resp.Status)
	}
	t.Collector.ObserveCall(op, resp.StatusCode, elapsed)
	return resp, nil
}
