package validation

import (
	"strings"
	"testing"

	"github.com/kbukum/rxkit/errors"
)

type innerConfig struct {
	Endpoint string `mapstructure:"endpoint" validate:"required,hostname_port"`
}

type testConfig struct {
	Name      string      `mapstructure:"name" validate:"required"`
	Threshold int         `mapstructure:"threshold" validate:"gte=0"`
	Mode      string      `mapstructure:"mode" validate:"oneof=fast slow"`
	Ratio     float64     `mapstructure:"ratio" validate:"gte=0,lte=1"`
	Inner     innerConfig `mapstructure:"inner"`
	NoTag     string      `validate:"required"`
}

func validConfig() testConfig {
	return testConfig{
		Name:      "svc",
		Threshold: 3,
		Mode:      "fast",
		Ratio:     0.5,
		Inner:     innerConfig{Endpoint: "localhost:4318"},
		NoTag:     "x",
	}
}

func TestValidate_Valid(t *testing.T) {
	if err := Validate(validConfig()); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestValidate_Invalid(t *testing.T) {
	cfg := validConfig()
	cfg.Name = ""
	cfg.Threshold = -1
	cfg.Mode = "medium"
	cfg.Ratio = 2
	cfg.Inner.Endpoint = "not an address"
	cfg.NoTag = ""

	err := Validate(cfg)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.IsCode(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("expected INVALID_CONFIG, got %v", err)
	}

	msg := err.Error()
	for _, want := range []string{
		"name: is required",
		"threshold: must be >= 0",
		"mode: must be one of: fast slow",
		"ratio: must be <= 1",
		"inner.endpoint: must be a host:port address",
		"no_tag: is required",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("expected %q in %q", want, msg)
		}
	}

	appErr := err.(*errors.AppError)
	fields, ok := appErr.Details["fields"].([]FieldError)
	if !ok {
		t.Fatalf("expected []FieldError details, got %T", appErr.Details["fields"])
	}
	if len(fields) != 6 {
		t.Errorf("expected 6 field errors, got %d", len(fields))
	}
}

func TestValidate_NotAStruct(t *testing.T) {
	err := Validate("plain string")
	if err == nil {
		t.Fatal("expected error for non-struct input")
	}
	if !errors.IsCode(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("expected INVALID_CONFIG, got %v", err)
	}
}

func TestToSnakeCase(t *testing.T) {
	tests := map[string]string{
		"Name":               "name",
		"QueueWarnThreshold": "queue_warn_threshold",
		"already_snake":      "already_snake",
	}
	for in, want := range tests {
		if got := toSnakeCase(in); got != want {
			t.Errorf("toSnakeCase(%q): expected %q, got %q", in, want, got)
		}
	}
}
