package join

import (
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/kbukum/rxkit/logger"
	"github.com/kbukum/rxkit/observability"
)

const (
	defaultName       = "join"
	instrumentationID = "github.com/kbukum/rxkit/join"
)

type options struct {
	name      string
	log       *logger.Logger
	metrics   *observability.Metrics
	tracer    trace.Tracer
	queueWarn int
	err       error
}

func defaultOptions() *options {
	return &options{
		name:      defaultName,
		queueWarn: DefaultQueueWarnThreshold,
	}
}

// Option configures a Coordinator.
type Option func(*options)

// WithName labels the coordinator in logs, metrics and traces.
func WithName(name string) Option {
	return func(o *options) {
		if name != "" {
			o.name = name
		}
	}
}

// WithLogger sets the logger. The default is the global logger with the
// "join" component.
func WithLogger(l *logger.Logger) Option {
	return func(o *options) { o.log = l }
}

// WithMetrics records engine metrics on m. Metrics are off by default.
func WithMetrics(m *observability.Metrics) Option {
	return func(o *options) { o.metrics = m }
}

// WithTracer sets the tracer for subscription spans. The default uses the
// global tracer provider.
func WithTracer(t trace.Tracer) Option {
	return func(o *options) { o.tracer = t }
}

// WithQueueWarnThreshold sets the per-source buffer depth that logs a
// warning. Zero disables it.
func WithQueueWarnThreshold(n int) Option {
	return func(o *options) {
		if n >= 0 {
			o.queueWarn = n
		}
	}
}

// WithConfig applies a join configuration section. Invalid configuration is
// reported by When and WhenAll. Enabled metrics use the global meter
// provider; disabled tracing records no spans.
func WithConfig(cfg Config) Option {
	return func(o *options) {
		cfg.ApplyDefaults()
		if err := cfg.Validate(); err != nil {
			o.err = err
			return
		}
		o.name = cfg.Name
		o.queueWarn = cfg.QueueWarnThreshold
		if cfg.MetricsEnabled && o.metrics == nil {
			m, err := observability.NewMetrics(observability.Meter(instrumentationID))
			if err != nil {
				o.err = err
				return
			}
			o.metrics = m
		}
		if !cfg.TracingEnabled {
			o.tracer = noop.NewTracerProvider().Tracer(instrumentationID)
		}
	}
}

func (o *options) finish() {
	if o.log == nil {
		o.log = logger.WithComponent(defaultName)
	}
	if o.tracer == nil {
		o.tracer = observability.Tracer(instrumentationID)
	}
}
