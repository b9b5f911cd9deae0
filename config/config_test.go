package config

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/kbukum/rxkit/errors"
)

func TestBaseConfigApplyDefaults(t *testing.T) {
	t.Run("empty environment defaults to development", func(t *testing.T) {
		cfg := BaseConfig{Name: "svc"}
		cfg.ApplyDefaults()
		if cfg.Environment != EnvDevelopment {
			t.Errorf("expected 'development', got %q", cfg.Environment)
		}
		if !cfg.Debug {
			t.Error("expected debug=true for development")
		}
	})

	t.Run("production environment keeps debug false", func(t *testing.T) {
		cfg := BaseConfig{Name: "svc", Environment: EnvProduction}
		cfg.ApplyDefaults()
		if cfg.Debug {
			t.Error("expected debug=false for production")
		}
	})
}

func TestBaseConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     BaseConfig
		wantErr bool
	}{
		{"valid development", BaseConfig{Name: "svc", Environment: EnvDevelopment}, false},
		{"valid staging", BaseConfig{Name: "svc", Environment: EnvStaging}, false},
		{"valid production", BaseConfig{Name: "svc", Environment: EnvProduction}, false},
		{"missing name", BaseConfig{Environment: EnvProduction}, true},
		{"invalid environment", BaseConfig{Name: "svc", Environment: "invalid"}, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if tc.wantErr {
				if !errors.IsCode(err, errors.ErrCodeInvalidConfig) {
					t.Fatalf("expected %s, got %v", errors.ErrCodeInvalidConfig, err)
				}
			} else if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestServiceConfigDefaults(t *testing.T) {
	cfg := ServiceConfig{BaseConfig: BaseConfig{Name: "billing"}}
	cfg.ApplyDefaults()

	if cfg.Logging.ServiceName != "billing" {
		t.Errorf("expected logging service name 'billing', got %q", cfg.Logging.ServiceName)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected debug level in development, got %q", cfg.Logging.Level)
	}
	if cfg.Join.Name != "billing" {
		t.Errorf("expected join name 'billing', got %q", cfg.Join.Name)
	}
	if cfg.Observability.Tracing.SampleRate != 1.0 {
		t.Errorf("expected sample rate 1.0, got %v", cfg.Observability.Tracing.SampleRate)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestServiceConfigValidateNamesSection(t *testing.T) {
	cfg := ServiceConfig{BaseConfig: BaseConfig{Name: "billing"}}
	cfg.ApplyDefaults()
	cfg.Join.QueueWarnThreshold = -1

	err := cfg.Validate()
	if !errors.IsCode(err, errors.ErrCodeInvalidConfig) {
		t.Fatalf("expected %s, got %v", errors.ErrCodeInvalidConfig, err)
	}
	var appErr *errors.AppError
	if !stderrors.As(err, &appErr) || appErr.Details["section"] != "join" {
		t.Errorf("expected section 'join', got %v", err)
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

func TestLoadWithYAML(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yml")
	writeFile(t, configPath, `
name: test-service
environment: staging
version: "1.0.0"
logging:
  level: warn
  format: json
join:
  name: matcher
  queue_warn_threshold: 64
  metrics_enabled: true
`)

	cfg, err := Load("test-service", WithConfigFile(configPath), WithEnvPrefix("RXKIT_TEST_NONE"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Environment != EnvStaging || cfg.Version != "1.0.0" {
		t.Errorf("unexpected base config %+v", cfg.BaseConfig)
	}
	if cfg.Logging.Level != "warn" || cfg.Logging.Format != "json" {
		t.Errorf("unexpected logging config %+v", cfg.Logging)
	}
	if cfg.Join.Name != "matcher" || cfg.Join.QueueWarnThreshold != 64 || !cfg.Join.MetricsEnabled {
		t.Errorf("unexpected join config %+v", cfg.Join)
	}
	if len(cfg.JoinOptions(cfg.Logger())) != 2 {
		t.Error("expected config and logger join options")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yml")
	writeFile(t, configPath, "name: svc\njoin:\n  queue_warn_threshold: 10\n")
	envPath := filepath.Join(dir, ".env")
	writeFile(t, envPath, "RXKITTEST_JOIN_TRACING_ENABLED=true\n")
	t.Setenv("RXKITTEST_JOIN_QUEUE_WARN_THRESHOLD", "25")
	t.Cleanup(func() { os.Unsetenv("RXKITTEST_JOIN_TRACING_ENABLED") })

	cfg, err := Load("svc", WithConfigFile(configPath), WithEnvFile(envPath), WithEnvPrefix("RXKITTEST"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Join.QueueWarnThreshold != 25 {
		t.Errorf("expected threshold 25 from environment, got %d", cfg.Join.QueueWarnThreshold)
	}
	if !cfg.Join.TracingEnabled {
		t.Error("expected tracing enabled from .env file")
	}
}

func TestLoadInvalidConfig(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yml")
	writeFile(t, configPath, "name: svc\nenvironment: moon\n")

	_, err := Load("svc", WithConfigFile(configPath), WithEnvPrefix("RXKIT_TEST_NONE"))
	if !errors.IsCode(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("expected %s, got %v", errors.ErrCodeInvalidConfig, err)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	var cfg ServiceConfig
	err := LoadConfig("nonexistent-service", &cfg,
		WithConfigFile("/nonexistent/path.yml"),
		WithEnvPrefix("RXKIT_TEST_NONE"),
	)
	if err != nil {
		t.Fatalf("expected LoadConfig to succeed with missing file, got %v", err)
	}
}

type mockFS struct {
	files map[string]bool
}

func (m *mockFS) Exists(path string) bool { return m.files[path] }
func (m *mockFS) LoadEnv(string) error    { return nil }

func TestResolverWithMockFS(t *testing.T) {
	fs := &mockFS{files: map[string]bool{
		filepath.Join("cmd", "my-svc", "config.yml"): true,
		filepath.Join("config", ".env.my-svc"):      true,
	}}
	resolver := &Resolver{FileSystem: fs}
	files := resolver.ResolveFiles("my-svc", LoaderConfig{})
	if files.ConfigFile != filepath.Join("cmd", "my-svc", "config.yml") {
		t.Errorf("expected config file at cmd/my-svc/config.yml, got %q", files.ConfigFile)
	}
	if files.EnvFile != filepath.Join("config", ".env.my-svc") {
		t.Errorf("expected env file at config/.env.my-svc, got %q", files.EnvFile)
	}

	explicit := resolver.ResolveFiles("my-svc", LoaderConfig{ConfigFile: "x.yml"})
	if explicit.ConfigFile != "x.yml" {
		t.Errorf("expected explicit config file, got %q", explicit.ConfigFile)
	}
}

func TestEnvKeyVariants(t *testing.T) {
	got := envKeyVariants("JOIN_QUEUE_WARN_THRESHOLD")
	want := map[string]bool{
		"join_queue_warn_threshold": true,
		"join.queue.warn.threshold": true,
		"join.queue_warn_threshold": true,
		"join.queue.warn_threshold": true,
	}
	found := 0
	for _, v := range got {
		if want[v] {
			found++
		}
	}
	if found != len(want) {
		t.Errorf("expected variants %v, got %v", want, got)
	}
	if single := envKeyVariants("HOME"); len(single) != 1 || single[0] != "home" {
		t.Errorf("expected [home], got %v", single)
	}
}

func TestLoaderOptions(t *testing.T) {
	var lc LoaderConfig
	WithFileSystem(&mockFS{})(&lc)
	WithConfigFile("/path/to/config.yml")(&lc)
	WithEnvFile("/path/to/.env")(&lc)
	WithEnvPrefix("app_")(&lc)

	if lc.FileSystem == nil {
		t.Error("expected FileSystem to be set")
	}
	if lc.ConfigFile != "/path/to/config.yml" || lc.EnvFile != "/path/to/.env" {
		t.Errorf("unexpected paths %+v", lc)
	}
	if lc.EnvPrefix != "APP" {
		t.Errorf("expected prefix APP, got %q", lc.EnvPrefix)
	}
}
