// Command sscc queries the Satellite Situation Center web service for
// observatories, ground stations, conjunctions, locations and orbit plots.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/signalsfoundry/ssc-conjunctions/internal/catalog"
	"github.com/signalsfoundry/ssc-conjunctions/internal/config"
	"github.com/signalsfoundry/ssc-conjunctions/internal/logging"
	"github.com/signalsfoundry/ssc-conjunctions/internal/observability"
	"github.com/signalsfoundry/ssc-conjunctions/internal/query"
	"github.com/signalsfoundry/ssc-conjunctions/internal/render"
	"github.com/signalsfoundry/ssc-conjunctions/internal/ssc"
)

const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

// errUsage marks errors caused by bad arguments rather than the service.
var errUsage = errors.New("usage")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := execute(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// execute runs the command line in args and returns the process exit code.
func execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	root := newRootCmd(stdout, stderr)
	root.SetArgs(args)
	err := root.ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintln(stderr, "sscc:", err)
	}
	return exitCode(err)
}

func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, errUsage),
		errors.Is(err, config.ErrInvalidConfig),
		errors.Is(err, query.ErrInvalidQuery),
		errors.Is(err, catalog.ErrUnknownObservatory),
		errors.Is(err, catalog.ErrOutsideCoverage):
		return exitUsage
	default:
		return exitFailure
	}
}

func usagef(format string, args ...any) error {
	return fmt.Errorf("%w: %s", errUsage, fmt.Sprintf(format, args...))
}

// app is the per-invocation wiring shared by every command.
type app struct {
	cfg     *config.Config
	log     logging.Logger
	client  *ssc.Client
	metrics *observability.ClientCollector
	out     *render.Renderer
	stdout  io.Writer

	server   *observability.MetricsServer
	shutdown func(context.Context) error
}

// setup resolves configuration and builds the client. endpoint, when
// non-empty, overrides every configured endpoint.
func setup(cmd *cobra.Command, endpoint string, stdout, stderr io.Writer) (*app, error) {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return nil, err
	}
	if endpoint = strings.TrimRight(strings.TrimSpace(endpoint), "/"); endpoint != "" {
		cfg.Endpoint = endpoint
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}

	logCfg := cfg.Logging()
	logCfg.Output = stderr
	log := logging.New(logCfg).With(logging.String("endpoint", cfg.Endpoint))
	ctx := cmd.Context()

	metrics, err := observability.NewClientCollector(prometheus.NewRegistry())
	if err != nil {
		return nil, fmt.Errorf("init metrics: %w", err)
	}

	tracing := cfg.TracingSettings()
	tracing.Output = stderr
	shutdown, err := observability.InitTracing(ctx, tracing, log)
	if err != nil {
		return nil, fmt.Errorf("%w: init tracing: %v", config.ErrInvalidConfig, err)
	}

	a := &app{
		cfg:      cfg,
		log:      log,
		metrics:  metrics,
		out:      render.New(stdout),
		stdout:   stdout,
		shutdown: shutdown,
	}

	if cfg.MetricsAddr != "" {
		srv, err := observability.StartMetricsServer(cfg.MetricsAddr, metrics, log)
		if err != nil {
			a.close(ctx)
			return nil, fmt.Errorf("start metrics server: %w", err)
		}
		a.server = srv
	}

	opts := []ssc.Option{
		ssc.WithHTTPClient(&http.Client{
			Timeout:   cfg.Timeout,
			Transport: observability.NewInstrumentedTransport(nil, metrics),
		}),
		ssc.WithLogger(log),
		ssc.WithCollector(metrics),
		ssc.WithUserAgent(cfg.UserAgent),
	}
	if cfg.Diagnostics {
		opts = append(opts, ssc.WithDiagnostics(stdout))
	}
	client, err := ssc.NewClient(cfg.Endpoint, opts...)
	if err != nil {
		a.close(ctx)
		return nil, fmt.Errorf("%w: %v", config.ErrInvalidConfig, err)
	}
	a.client = client
	return a, nil
}

func (a *app) close(ctx context.Context) {
	if a.server != nil {
		if err := a.server.Shutdown(context.WithoutCancel(ctx)); err != nil {
			a.log.Warn(ctx, "metrics server shutdown", logging.Err(err))
		}
	}
	observability.ShutdownWithTimeout(context.WithoutCancel(ctx), a.shutdown, a.log)
}

// run wraps a command body with setup and teardown. The endpoint argument
// is only taken from the root command's positional argument.
func run(stdout, stderr io.Writer, body func(ctx context.Context, a *app, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		var endpoint string
		if !cmd.HasParent() && len(args) == 1 {
			endpoint = args[0]
		}
		a, err := setup(cmd, endpoint, stdout, stderr)
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		defer a.close(ctx)
		return body(ctx, a, args)
	}
}
