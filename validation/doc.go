// Package validation validates configuration structs with struct tags.
//
//	type Config struct {
//	    Name      string `mapstructure:"name" validate:"required"`
//	    Threshold int    `mapstructure:"threshold" validate:"gte=0"`
//	}
//	err := validation.Validate(cfg)
//
// Field names in messages come from the mapstructure tag, so they match the
// keys written in config files.
package validation
