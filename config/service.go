package config

import (
	"fmt"

	"github.com/kbukum/rxkit/errors"
	"github.com/kbukum/rxkit/join"
	"github.com/kbukum/rxkit/logger"
	"github.com/kbukum/rxkit/observability"
)

// ServiceConfig is the configuration of a service built on rxkit. Projects
// embed it and add their own sections:
//
//	type MyConfig struct {
//	    config.ServiceConfig `yaml:",inline" mapstructure:",squash"`
//	    Feeds FeedsConfig `yaml:"feeds" mapstructure:"feeds"`
//	}
type ServiceConfig struct {
	BaseConfig    `yaml:",inline" mapstructure:",squash"`
	Logging       logger.Config        `yaml:"logging" mapstructure:"logging"`
	Join          join.Config          `yaml:"join" mapstructure:"join"`
	Observability observability.Config `yaml:"observability" mapstructure:"observability"`
}

// GetServiceConfig returns the ServiceConfig. When embedded, it is promoted to
// the embedding struct.
func (c *ServiceConfig) GetServiceConfig() *ServiceConfig {
	return c
}

// ApplyDefaults applies defaults to every section. The service name is
// propagated to logging and to the join coordinator name when unset.
func (c *ServiceConfig) ApplyDefaults() {
	c.BaseConfig.ApplyDefaults()
	if c.Logging.ServiceName == "" {
		c.Logging.ServiceName = c.Name
	}
	if c.Debug && c.Logging.Level == "" {
		c.Logging.Level = "debug"
	}
	c.Logging.ApplyDefaults()
	if c.Join.Name == "" {
		c.Join.Name = c.Name
	}
	c.Join.ApplyDefaults()
	c.Observability.ApplyDefaults()
}

// Validate validates every section.
func (c *ServiceConfig) Validate() error {
	sections := []struct {
		name     string
		validate func() error
	}{
		{"base", c.BaseConfig.Validate},
		{"logging", c.Logging.Validate},
		{"join", c.Join.Validate},
		{"observability", c.Observability.Validate},
	}
	for _, s := range sections {
		if err := s.validate(); err != nil {
			return errors.InvalidConfig(fmt.Sprintf("%s: %v", s.name, err)).
				WithDetail("section", s.name).
				WithCause(err)
		}
	}
	return nil
}

// Load reads, defaults and validates a ServiceConfig.
func Load(serviceName string, opts ...LoaderOption) (*ServiceConfig, error) {
	cfg := &ServiceConfig{}
	if err := LoadConfig(serviceName, cfg, opts...); err != nil {
		return nil, err
	}
	if cfg.Name == "" {
		cfg.Name = serviceName
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Logger builds the service logger from the logging section.
func (c *ServiceConfig) Logger() *logger.Logger {
	return logger.New(&c.Logging, c.Name)
}

// JoinOptions returns coordinator options for the join section, logging
// through log.
func (c *ServiceConfig) JoinOptions(log *logger.Logger) []join.Option {
	opts := []join.Option{join.WithConfig(c.Join)}
	if log != nil {
		opts = append(opts, join.WithLogger(log.WithComponent("join")))
	}
	return opts
}
