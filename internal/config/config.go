// Package config resolves client settings from flags, SSC_* environment
// variables, an optional YAML or TOML file and defaults, in that order.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/signalsfoundry/ssc-conjunctions/internal/logging"
	"github.com/signalsfoundry/ssc-conjunctions/internal/observability"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// EnvPrefix is prepended to every environment key, e.g. SSC_ENDPOINT.
const EnvPrefix = "SSC"

const (
	DefaultEndpoint  = "https://sscweb.gsfc.nasa.gov/WS/sscr/2"
	DefaultUserAgent = "ConjunctionExample"
	DefaultTimeout   = 5 * time.Minute
)

// Config is the resolved client configuration.
type Config struct {
	Endpoint    string        `mapstructure:"endpoint"`
	UserAgent   string        `mapstructure:"user_agent"`
	Timeout     time.Duration `mapstructure:"timeout"`
	Diagnostics bool          `mapstructure:"diagnostics"`
	MetricsAddr string        `mapstructure:"metrics_addr"`
	Log         LogConfig     `mapstructure:"log"`
	Tracing     TracingConfig `mapstructure:"tracing"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type TracingConfig struct {
	Enabled     bool    `mapstructure:"enabled"`
	Exporter    string  `mapstructure:"exporter"`
	Endpoint    string  `mapstructure:"endpoint"`
	SampleRatio float64 `mapstructure:"sample_ratio"`
	ServiceName string  `mapstructure:"service_name"`
}

// Logging converts the log section for logging.New.
func (c *Config) Logging() logging.Config {
	return logging.Config{Level: c.Log.Level, Format: c.Log.Format}
}

// TracingSettings converts the tracing section for observability.InitTracing.
func (c *Config) TracingSettings() observability.TracingConfig {
	return observability.TracingConfig{
		Enabled:     c.Tracing.Enabled,
		ServiceName: c.Tracing.ServiceName,
		Exporter:    c.Tracing.Exporter,
		Endpoint:    c.Tracing.Endpoint,
		SampleRatio: c.Tracing.SampleRatio,
	}
}

// Validate checks the resolved values.
func (c *Config) Validate() error {
	var problems []string
	u, err := url.Parse(c.Endpoint)
	switch {
	case strings.TrimSpace(c.Endpoint) == "":
		problems = append(problems, "endpoint is required")
	case err != nil:
		problems = append(problems, fmt.Sprintf("endpoint: %v", err))
	case u.Scheme != "http" && u.Scheme != "https" || u.Host == "":
		problems = append(problems, fmt.Sprintf("endpoint %q must be an absolute http(s) URL", c.Endpoint))
	}
	if c.Timeout <= 0 {
		problems = append(problems, fmt.Sprintf("timeout must be positive, got %s", c.Timeout))
	}
	if r := c.Tracing.SampleRatio; r < 0 || r > 1 {
		problems = append(problems, fmt.Sprintf("tracing sample ratio %v outside [0,1]", r))
	}
	switch strings.ToLower(c.Tracing.Exporter) {
	case "", "stdout", "otlp", "otlpgrpc":
	default:
		problems = append(problems, fmt.Sprintf("unknown tracing exporter %q", c.Tracing.Exporter))
	}
	switch strings.ToLower(c.Log.Format) {
	case "", "text", "json":
	default:
		problems = append(problems, fmt.Sprintf("unknown log format %q", c.Log.Format))
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}

// Flag names bound by RegisterFlags.
const (
	FlagConfig      = "config"
	FlagEndpoint    = "endpoint"
	FlagUserAgent   = "user-agent"
	FlagTimeout     = "timeout"
	FlagDiagnostics = "diagnostics"
	FlagMetricsAddr = "metrics-addr"
	FlagLogLevel    = "log-level"
	FlagLogFormat   = "log-format"
	FlagTracing     = "tracing"
	FlagTraceExp    = "tracing-exporter"
	FlagTraceAddr   = "tracing-endpoint"
)

// flagKeys maps flag names to configuration keys.
var flagKeys = map[string]string{
	FlagEndpoint:    "endpoint",
	FlagUserAgent:   "user_agent",
	FlagTimeout:     "timeout",
	FlagDiagnostics: "diagnostics",
	FlagMetricsAddr: "metrics_addr",
	FlagLogLevel:    "log.level",
	FlagLogFormat:   "log.format",
	FlagTracing:     "tracing.enabled",
	FlagTraceExp:    "tracing.exporter",
	FlagTraceAddr:   "tracing.endpoint",
}

// RegisterFlags adds the configuration flags to fs. Flag defaults are empty
// so that unset flags fall through to the environment and file.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String(FlagConfig, "", "path to a YAML or TOML config file")
	fs.String(FlagEndpoint, "", "SSC web service endpoint (default "+DefaultEndpoint+")")
	fs.String(FlagUserAgent, "", "User-Agent header value")
	fs.Duration(FlagTimeout, 0, "HTTP timeout per call (default "+DefaultTimeout.String()+")")
	fs.Bool(FlagDiagnostics, true, "print request and response XML to stdout")
	fs.String(FlagMetricsAddr, "", "serve Prometheus metrics on this address while running")
	fs.String(FlagLogLevel, "", "log level: debug, info, warn, error")
	fs.String(FlagLogFormat, "", "log format: text or json")
	fs.Bool(FlagTracing, false, "enable OpenTelemetry tracing")
	fs.String(FlagTraceExp, "", "tracing exporter: stdout or otlp")
	fs.String(FlagTraceAddr, "", "OTLP/gRPC collector address")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("endpoint", DefaultEndpoint)
	v.SetDefault("user_agent", DefaultUserAgent)
	v.SetDefault("timeout", DefaultTimeout)
	v.SetDefault("diagnostics", true)
	v.SetDefault("metrics_addr", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("tracing.enabled", false)
	v.SetDefault("tracing.exporter", "stdout")
	v.SetDefault("tracing.endpoint", "")
	v.SetDefault("tracing.sample_ratio", 1.0)
	v.SetDefault("tracing.service_name", "sscc")
}

// Load resolves the configuration. fs may be nil; only flags the user
// changed override lower layers.
func Load(fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if fs != nil {
		if f := fs.Lookup(FlagConfig); f != nil && f.Value.String() != "" {
			v.SetConfigFile(f.Value.String())
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("%w: read %s: %v", ErrInvalidConfig, f.Value.String(), err)
			}
		}
		for name, key := range flagKeys {
			f := fs.Lookup(name)
			if f == nil || !f.Changed {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("%w: bind %s: %v", ErrInvalidConfig, name, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	cfg.Endpoint = strings.TrimRight(cfg.Endpoint, "/")
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
