package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
)

func newFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs)
	if err := fs.Parse(args); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	return fs
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(newFlags(t))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Endpoint != DefaultEndpoint {
		t.Fatalf("Endpoint = %q, want %q", cfg.Endpoint, DefaultEndpoint)
	}
	if cfg.UserAgent != DefaultUserAgent {
		t.Fatalf("UserAgent = %q, want %q", cfg.UserAgent, DefaultUserAgent)
	}
	if cfg.Timeout != DefaultTimeout {
		t.Fatalf("Timeout = %v, want %v", cfg.Timeout, DefaultTimeout)
	}
	if !cfg.Diagnostics {
		t.Fatalf("Diagnostics = false, want true by default")
	}
	if cfg.Tracing.SampleRatio != 1 || cfg.Tracing.ServiceName != "sscc" {
		t.Fatalf("Tracing = %+v", cfg.Tracing)
	}
}

func TestPrecedence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sscc.yaml")
	const file = `
endpoint: https://file.example/WS/sscr/2
timeout: 45s
log:
  level: debug
tracing:
  sample_ratio: 0.25
`
	if err := os.WriteFile(path, []byte(file), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	t.Setenv("SSC_TIMEOUT", "90s")
	t.Setenv("SSC_LOG_LEVEL", "warn")

	cfg, err := Load(newFlags(t, "--config", path, "--log-level", "error", "--diagnostics=false"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Endpoint != "https://file.example/WS/sscr/2" {
		t.Fatalf("Endpoint = %q, want value from file", cfg.Endpoint)
	}
	if cfg.Timeout != 90*time.Second {
		t.Fatalf("Timeout = %v, want env value 90s", cfg.Timeout)
	}
	if cfg.Log.Level != "error" {
		t.Fatalf("Log.Level = %q, want flag value error", cfg.Log.Level)
	}
	if cfg.Diagnostics {
		t.Fatalf("Diagnostics = true, want flag value false")
	}
	if cfg.Tracing.SampleRatio != 0.25 {
		t.Fatalf("SampleRatio = %v, want 0.25", cfg.Tracing.SampleRatio)
	}
}

func TestLoadTOMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sscc.toml")
	if err := os.WriteFile(path, []byte("user_agent = \"sscc-test\"\n[tracing]\nexporter = \"otlp\"\n"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	cfg, err := Load(newFlags(t, "--config", path))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.UserAgent != "sscc-test" || cfg.Tracing.Exporter != "otlp" {
		t.Fatalf("cfg = %+v", cfg)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(newFlags(t, "--config", filepath.Join(t.TempDir(), "nope.yaml")))
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("Load error = %v, want ErrInvalidConfig", err)
	}
}

func TestValidate(t *testing.T) {
	base := func() Config {
		return Config{Endpoint: DefaultEndpoint, Timeout: time.Second, Tracing: TracingConfig{SampleRatio: 1}}
	}
	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"valid", func(*Config) {}, true},
		{"relative endpoint", func(c *Config) { c.Endpoint = "sscweb/WS" }, false},
		{"ftp endpoint", func(c *Config) { c.Endpoint = "ftp://sscweb.gsfc.nasa.gov" }, false},
		{"empty endpoint", func(c *Config) { c.Endpoint = "" }, false},
		{"zero timeout", func(c *Config) { c.Timeout = 0 }, false},
		{"ratio above one", func(c *Config) { c.Tracing.SampleRatio = 1.5 }, false},
		{"bad exporter", func(c *Config) { c.Tracing.Exporter = "jaeger" }, false},
		{"bad log format", func(c *Config) { c.Log.Format = "xml" }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := base()
			tt.mutate(&c)
			err := c.Validate()
			if tt.ok && err != nil {
				t.Fatalf("Validate = %v, want nil", err)
			}
			if !tt.ok && !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("Validate = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestEnvEndpointTrimmed(t *testing.T) {
	t.Setenv("SSC_ENDPOINT", "http://localhost:8080/WS/sscr/2/")
	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Endpoint != "http://localhost:8080/WS/sscr/2" {
		t.Fatalf("Endpoint = %q", cfg.Endpoint)
	}
}
