package observability

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestObserveCallRecordsMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	collector, err := NewClientCollector(reg)
	if err != nil {
		t.Fatalf("NewClientCollector: %v", err)
	}

	collector.ObserveCall("observatories", http.StatusOK, 20*time.Millisecond)

	if got := testutil.ToFloat64(collector.Requests.WithLabelValues("observatories", "200")); got != 1 {
		t.Fatalf("ssc_requests_total = %v, want 1", got)
	}
	if count := histogramSampleCount(t, reg, "ssc_request_duration_seconds", map[string]string{
		"operation": "observatories",
	}); count != 1 {
		t.Fatalf("ssc_request_duration_seconds sample_count = %d, want 1", count)
	}
}

func TestObserveCallTransportError(t *testing.T) {
	reg := prometheus.NewRegistry()
	collector, err := NewClientCollector(reg)
	if err != nil {
		t.Fatalf("NewClientCollector: %v", err)
	}
	collector.ObserveCall("conjunctions", 0, time.Millisecond)

	if got := testutil.ToFloat64(collector.Requests.WithLabelValues("conjunctions", CodeTransportError)); got != 1 {
		t.Fatalf("ssc_requests_total transport label = %v, want 1", got)
	}
}

func TestNewClientCollectorReusesRegistered(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, err := NewClientCollector(reg)
	if err != nil {
		t.Fatalf("NewClientCollector: %v", err)
	}
	second, err := NewClientCollector(reg)
	if err != nil {
		t.Fatalf("second NewClientCollector: %v", err)
	}
	if first.Requests != second.Requests {
		t.Fatalf("second collector did not reuse registered counter")
	}
}

func TestNilCollectorIsSafe(t *testing.T) {
	var c *ClientCollector
	c.ObserveCall("x", 200, time.Second)
	c.SetResultItems("x", 3)
}

func TestInstrumentedTransport(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	prevTP, prevProp := otel.GetTracerProvider(), otel.GetTextMapPropagator()
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})
	t.Cleanup(func() {
		otel.SetTracerProvider(prevTP)
		otel.SetTextMapPropagator(prevProp)
	})

	var traceparent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceparent = r.Header.Get("traceparent")
		w.WriteHeader(http.StatusTeapot)
	}))
	defer srv.Close()

	reg := prometheus.NewRegistry()
	collector, err := NewClientCollector(reg)
	if err != nil {
		t.Fatalf("NewClientCollector: %v", err)
	}
	client := &http.Client{Transport: NewInstrumentedTransport(nil, collector)}

	ctx := WithOperation(context.Background(), "groundStations")
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL, nil)
	if err != nil {
		t.Fatalf("NewRequest: %v", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("Do: %v", err)
	}
	resp.Body.Close()

	if traceparent == "" {
		t.Fatalf("traceparent header not propagated")
	}
	if req.Header.Get("traceparent") != "" {
		t.Fatalf("caller request was mutated")
	}
	if got := testutil.ToFloat64(collector.Requests.WithLabelValues("groundStations", "418")); got != 1 {
		t.Fatalf("ssc_requests_total = %v, want 1", got)
	}
	spans := exporter.GetSpans()
	if len(spans) != 1 || spans[0].Name != "SSC/groundStations" {
		t.Fatalf("spans = %+v, want one SSC/groundStations span", spans)
	}
}

type failingRoundTripper struct{}

func (failingRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return nil, errors.New("connection refused")
}

func TestInstrumentedTransportError(t *testing.T) {
	reg := prometheus.NewRegistry()
	collector, err := NewClientCollector(reg)
	if err != nil {
		t.Fatalf("NewClientCollector: %v", err)
	}
	rt := NewInstrumentedTransport(failingRoundTripper{}, collector)
	req := httptest.NewRequest(http.MethodGet, "http://ssc.invalid/observatories/", nil)
	req = req.WithContext(WithOperation(req.Context(), "observatories"))
	if _, err := rt.RoundTrip(req); err == nil {
		t.Fatalf("RoundTrip error = nil, want failure")
	}
	if got := testutil.ToFloat64(collector.Requests.WithLabelValues("observatories", CodeTransportError)); got != 1 {
		t.Fatalf("ssc_requests_total transport label = %v, want 1", got)
	}
}

func TestMetricsRouter(t *testing.T) {
	reg := prometheus.NewRegistry()
	collector, err := NewClientCollector(reg)
	if err != nil {
		t.Fatalf("NewClientCollector: %v", err)
	}
	collector.ObserveCall("conjunctions", 200, time.Second)
	collector.SetResultItems("conjunctions", 7)

	router := NewMetricsRouter(collector)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("/metrics status = %d, want 200", rr.Code)
	}
	body := rr.Body.String()
	for _, metric := range []string{
		"ssc_requests_total",
		"ssc_request_duration_seconds",
		`ssc_result_items{operation="conjunctions"} 7`,
	} {
		if !strings.Contains(body, metric) {
			t.Fatalf("expected %q in /metrics output", metric)
		}
	}

	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rr.Code != http.StatusOK || strings.TrimSpace(rr.Body.String()) != "ok" {
		t.Fatalf("/healthz = %d %q, want 200 ok", rr.Code, rr.Body.String())
	}
}

func TestMetricsServerLifecycle(t *testing.T) {
	collector, err := NewClientCollector(prometheus.NewRegistry())
	if err != nil {
		t.Fatalf("NewClientCollector: %v", err)
	}
	srv, err := StartMetricsServer("127.0.0.1:0", collector, nil)
	if err != nil {
		t.Fatalf("StartMetricsServer: %v", err)
	}
	resp, err := http.Get("http://" + srv.Addr() + "/healthz")
	if err != nil {
		t.Fatalf("GET /healthz: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("/healthz status = %d, want 200", resp.StatusCode)
	}
	if err := srv.Shutdown(context.Background()); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}
}

func TestMetricsServerTimeouts(t *testing.T) {
	if metricsShutdownTimeout != 5*time.Second {
		t.Fatalf("metricsShutdownTimeout = %v, want %v", metricsShutdownTimeout, 5*time.Second)
	}
	collector, err := NewClientCollector(prometheus.NewRegistry())
	if err != nil {
		t.Fatalf("NewClientCollector: %v", err)
	}
	srv, err := StartMetricsServer("127.0.0.1:0", collector, nil)
	if err != nil {
		t.Fatalf("StartMetricsServer: %v", err)
	}
	if got := srv.srv.ReadHeaderTimeout; got != metricsReadHeaderTimeout {
		t.Fatalf("ReadHeaderTimeout = %v, want %v", got, metricsReadHeaderTimeout)
	}
	start := time.Now()
	if err := srv.Shutdown(context.Background()); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}
	if elapsed := time.Since(start); elapsed >= metricsShutdownTimeout {
		t.Fatalf("idle Shutdown took %v, want under %v", elapsed, metricsShutdownTimeout)
	}
	var nilServer *MetricsServer
	if err := nilServer.Shutdown(context.Background()); err != nil {
		t.Fatalf("nil Shutdown = %v, want nil", err)
	}
}

func histogramSampleCount(t *testing.T, gatherer prometheus.Gatherer, name string, labels map[string]string) uint64 {
	t.Helper()

	metrics, err := gatherer.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}
	for _, mf := range metrics {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.Metric {
			if matchLabels(m.GetLabel(), labels) && m.GetHistogram() != nil {
				return m.GetHistogram().GetSampleCount()
			}
		}
	}
	return 0
}

func matchLabels(got []*dto.LabelPair, want map[string]string) bool {
	if len(got) < len(want) {
		return false
	}
	matched := 0
	for _, lp := range got {
		if val, ok := want[lp.GetName()]; ok && val == lp.GetValue() {
			matched++
		}
	}
	return matched == len(want)
}
