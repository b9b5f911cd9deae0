// Package config loads service configuration for rxkit applications.
//
// LoadConfig fills any struct from a YAML file, a .env file and the process
// environment using Viper. Environment variables address nested keys with
// underscores, so JOIN_QUEUE_WARN_THRESHOLD sets join.queue_warn_threshold.
//
// # Usage
//
//	cfg, err := config.Load("billing", config.WithEnvPrefix("BILLING"))
//	if err != nil {
//	    return err
//	}
//	log := cfg.Logger()
//	coordinator, err := join.WhenAll(plans, cfg.JoinOptions(log)...)
package config
