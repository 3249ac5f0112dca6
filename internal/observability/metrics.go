package observability

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// CodeTransportError labels calls that never produced an HTTP response.
const CodeTransportError = "transport_error"

// ClientCollector bundles Prometheus metrics for calls made to the SSC web
// service.
type ClientCollector struct {
	gatherer prometheus.Gatherer

	Requests    *prometheus.CounterVec
	Durations   *prometheus.HistogramVec
	ResultItems *prometheus.GaugeVec
}

// NewClientCollector registers client metrics against the provided
// registerer, defaulting to the global Prometheus registry when nil.
func NewClientCollector(reg prometheus.Registerer) (*ClientCollector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ssc_requests_total",
		Help: "Total number of SSC web service calls, labeled by operation and HTTP status code.",
	}, []string{"operation", "code"})
	requests, err := registerCounterVec(reg, requests, "ssc_requests_total")
	if err != nil {
		return nil, err
	}

	// SSC conjunction queries routinely take tens of seconds.
	durations := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "ssc_request_duration_seconds",
		Help:    "SSC web service call latency in seconds.",
		Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
	}, []string{"operation"})
	durations, err = registerHistogramVec(reg, durations, "ssc_request_duration_seconds")
	if err != nil {
		return nil, err
	}

	items := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "ssc_result_items",
		Help: "Number of items in the most recent result of each operation.",
	}, []string{"operation"})
	items, err = registerGaugeVec(reg, items, "ssc_result_items")
	if err != nil {
		return nil, err
	}

	return &ClientCollector{
		gatherer:    gatherer,
		Requests:    requests,
		Durations:   durations,
		ResultItems: items,
	}, nil
}

// ObserveCall records one completed call. statusCode <= 0 means no response
// was received.
func (c *ClientCollector) ObserveCall(operation string, statusCode int, elapsed time.Duration) {
	if c == nil {
		return
	}
	if operation == "" {
		operation = "unknown"
	}
	code := CodeTransportError
	if statusCode > 0 {
		code = strconv.Itoa(statusCode)
	}
	if c.Requests != nil {
		c.Requests.WithLabelValues(operation, code).Inc()
	}
	if c.Durations != nil {
		c.Durations.WithLabelValues(operation).Observe(elapsed.Seconds())
	}
}

// SetResultItems records the size of the latest decoded result.
func (c *ClientCollector) SetResultItems(operation string, n int) {
	if c == nil || c.ResultItems == nil {
		return
	}
	c.ResultItems.WithLabelValues(operation).Set(float64(n))
}

// Handler exposes a ready-to-use /metrics handler.
func (c *ClientCollector) Handler() http.Handler {
	gatherer := prometheus.DefaultGatherer
	if c != nil && c.gatherer != nil {
		gatherer = c.gatherer
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

type operationKey struct{}

// WithOperation tags ctx with the logical SSC operation so transport-level
// instrumentation can label what it sees.
func WithOperation(ctx context.Context, operation string) context.Context {
	return context.WithValue(ctx, operationKey{}, operation)
}

// OperationFromContext returns the operation set by WithOperation, or
// "unknown".
func OperationFromContext(ctx context.Context) string {
	if ctx != nil {
		if op, ok := ctx.Value(operationKey{}).(string); ok && op != "" {
			return op
		}
	}
	return "unknown"
}

func registerCounterVec(reg prometheus.Registerer, vec *prometheus.CounterVec, name string) (*prometheus.CounterVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerHistogramVec(reg prometheus.Registerer, vec *prometheus.HistogramVec, name string) (*prometheus.HistogramVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.HistogramVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerGaugeVec(reg prometheus.Registerer, vec *prometheus.GaugeVec, name string) (*prometheus.GaugeVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.GaugeVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}
