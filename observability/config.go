package observability

import (
	"time"

	"github.com/kbukum/rxkit/validation"
)

// Config is the observability section of a service configuration.
type Config struct {
	Metrics MetricsConfig `yaml:"metrics" mapstructure:"metrics"`
	Tracing TracingConfig `yaml:"tracing" mapstructure:"tracing"`
}

// MetricsConfig configures OTLP metric export.
type MetricsConfig struct {
	Enabled  bool          `yaml:"enabled" mapstructure:"enabled"`
	Endpoint string        `yaml:"endpoint" mapstructure:"endpoint" validate:"omitempty,hostname_port"`
	Insecure bool          `yaml:"insecure" mapstructure:"insecure"`
	Interval time.Duration `yaml:"interval" mapstructure:"interval" validate:"gte=0"`
}

// TracingConfig configures OTLP trace export.
type TracingConfig struct {
	Enabled    bool    `yaml:"enabled" mapstructure:"enabled"`
	Endpoint   string  `yaml:"endpoint" mapstructure:"endpoint" validate:"omitempty,hostname_port"`
	Insecure   bool    `yaml:"insecure" mapstructure:"insecure"`
	SampleRate float64 `yaml:"sample_rate" mapstructure:"sample_rate" validate:"gte=0,lte=1"`
}

// ApplyDefaults fills unset endpoints, the export interval and the sample rate.
func (c *Config) ApplyDefaults() {
	if c.Metrics.Endpoint == "" {
		c.Metrics.Endpoint = "localhost:4318"
	}
	if c.Metrics.Interval == 0 {
		c.Metrics.Interval = 15 * time.Second
	}
	if c.Tracing.Endpoint == "" {
		c.Tracing.Endpoint = "localhost:4318"
	}
	if c.Tracing.SampleRate == 0 {
		c.Tracing.SampleRate = 1.0
	}
}

// Validate validates observability configuration.
func (c *Config) Validate() error {
	return validation.Validate(c)
}

// MeterConfig builds the meter settings for serviceName.
func (c *Config) MeterConfig(serviceName, environment string) MeterConfig {
	cfg := DefaultMeterConfig(serviceName)
	cfg.Environment = environment
	cfg.Endpoint = c.Metrics.Endpoint
	cfg.Insecure = c.Metrics.Insecure
	cfg.Interval = c.Metrics.Interval
	return cfg
}

// TracerConfig builds the tracer settings for serviceName.
func (c *Config) TracerConfig(serviceName, environment string) TracerConfig {
	cfg := DefaultTracerConfig(serviceName)
	cfg.Environment = environment
	cfg.Endpoint = c.Tracing.Endpoint
	cfg.Insecure = c.Tracing.Insecure
	cfg.SampleRate = c.Tracing.SampleRate
	return cfg
}
