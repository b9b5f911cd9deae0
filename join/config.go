package join

import "github.com/kbukum/rxkit/validation"

// DefaultQueueWarnThreshold is the buffer depth at which a source is reported
// as growing without matches, unless configured otherwise.
const DefaultQueueWarnThreshold = 1024

// Config is the join section of a service configuration.
type Config struct {
	// Name labels the coordinator in logs, metrics and traces.
	Name string `yaml:"name" mapstructure:"name" validate:"required"`
	// QueueWarnThreshold is the per-source buffer depth that logs a warning.
	// Zero disables the warning.
	QueueWarnThreshold int  `yaml:"queue_warn_threshold" mapstructure:"queue_warn_threshold" validate:"gte=0"`
	MetricsEnabled     bool `yaml:"metrics_enabled" mapstructure:"metrics_enabled"`
	TracingEnabled     bool `yaml:"tracing_enabled" mapstructure:"tracing_enabled"`
}

// ApplyDefaults sets the coordinator name when unset.
func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = defaultName
	}
}

// Validate validates join configuration.
func (c *Config) Validate() error {
	return validation.Validate(c)
}
