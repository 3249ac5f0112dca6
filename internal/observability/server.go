package observability

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/signalsfoundry/ssc-conjunctions/internal/logging"
)

const (
	metricsReadHeaderTimeout = 5 * time.Second
	metricsShutdownTimeout   = 5 * time.Second
)

// NewMetricsRouter serves /metrics from c and a trivial /healthz.
func NewMetricsRouter(c *ClientCollector) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Method(http.MethodGet, "/metrics", c.Handler())
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok\n"))
	})
	return r
}

// MetricsServer exposes the client metrics while a command runs.
type MetricsServer struct {
	srv *http.Server
	ln  net.Listener
	log logging.Logger
}

// StartMetricsServer listens on addr and serves NewMetricsRouter(c) in the
// background.
func StartMetricsServer(addr string, c *ClientCollector, log logging.Logger) (*MetricsServer, error) {
	if log == nil {
		log = logging.Noop()
	}
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	m := &MetricsServer{
		srv: &http.Server{
			Handler:           NewMetricsRouter(c),
			ReadHeaderTimeout: metricsReadHeaderTimeout,
		},
		ln:  ln,
		log: log,
	}
	go func() {
		if err := m.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error(context.Background(), "metrics server stopped", logging.Err(err))
		}
	}()
	log.Info(context.Background(), "metrics server listening", logging.String("addr", ln.Addr().String()))
	return m, nil
}

// Addr returns the bound listen address.
func (m *MetricsServer) Addr() string { return m.ln.Addr().String() }

// Shutdown stops the server, waiting at most metricsShutdownTimeout for
// in-flight scrapes.
func (m *MetricsServer) Shutdown(ctx context.Context) error {
	if m == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, metricsShutdownTimeout)
	defer cancel()
	return m.srv.Shutdown(ctx)
}
