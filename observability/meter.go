package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/kbukum/rxkit/logger"
)

// MeterConfig configures the OpenTelemetry meter provider.
type MeterConfig struct {
	// ServiceName is the name of the service.
	ServiceName string
	// ServiceVersion is the version of the service. Empty uses the build version.
	ServiceVersion string
	// Environment is the deployment environment (dev, staging, prod).
	Environment string
	// Endpoint is the OTLP HTTP endpoint host:port (e.g., "localhost:4318").
	Endpoint string
	// Insecure allows insecure connections (for development).
	Insecure bool
	// Interval is the metric export interval.
	Interval time.Duration
}

// DefaultMeterConfig returns sensible defaults for development.
func DefaultMeterConfig(serviceName string) MeterConfig {
	return MeterConfig{
		ServiceName: serviceName,
		Environment: "development",
		Endpoint:    "localhost:4318",
		Insecure:    true,
		Interval:    15 * time.Second,
	}
}

// InitMeter initializes the OpenTelemetry meter provider.
// Returns a MeterProvider that should be shut down on application exit.
func InitMeter(ctx context.Context, config MeterConfig) (*sdkmetric.MeterProvider, error) {
	opts := []otlpmetrichttp.Option{
		otlpmetrichttp.WithEndpoint(config.Endpoint),
	}
	if config.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}

	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}

	res, err := newResource(config.ServiceName, config.ServiceVersion, config.Environment)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	readerOpts := []sdkmetric.PeriodicReaderOption{}
	if config.Interval > 0 {
		readerOpts = append(readerOpts, sdkmetric.WithInterval(config.Interval))
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, readerOpts...)),
		sdkmetric.WithResource(res),
	)

	otel.SetMeterProvider(mp)

	logger.Info("meter initialized", logger.Fields(
		"service", config.ServiceName,
		"endpoint", config.Endpoint,
		"interval", config.Interval.String(),
	))

	return mp, nil
}

// Meter returns a named meter from the global provider.
func Meter(name string) metric.Meter {
	return otel.Meter(name)
}

// Group termination states.
const (
	StateCompleted = "completed"
	StateFailed    = "failed"
	StateDisposed  = "disposed"
)

// Metric attribute keys.
const (
	AttrCoordinator = "coordinator"
	AttrPlan        = "plan"
	AttrState       = "state"
)

// Metrics holds the instruments of the join engine.
// All methods are safe on a nil receiver.
type Metrics struct {
	subscriptions metric.Int64Counter
	activeGroups  metric.Int64UpDownCounter
	fires         metric.Int64Counter
	deactivations metric.Int64Counter
	terminations  metric.Int64Counter
	groupDuration metric.Float64Histogram
	queueDepth    metric.Int64Histogram
}

// NewMetrics creates metric instruments on the given meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	subscriptions, err := meter.Int64Counter("join.subscriptions",
		metric.WithDescription("Total number of coordinator subscriptions"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating join.subscriptions counter: %w", err)
	}

	activeGroups, err := meter.Int64UpDownCounter("join.groups.active",
		metric.WithDescription("Number of live subscription groups"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating join.groups.active gauge: %w", err)
	}

	fires, err := meter.Int64Counter("join.plan.fires",
		metric.WithDescription("Total number of plan matches that produced a result"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating join.plan.fires counter: %w", err)
	}

	deactivations, err := meter.Int64Counter("join.plan.deactivations",
		metric.WithDescription("Total number of plans that became permanently unmatchable"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating join.plan.deactivations counter: %w", err)
	}

	terminations, err := meter.Int64Counter("join.group.terminations",
		metric.WithDescription("Total number of terminated subscription groups by state"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating join.group.terminations counter: %w", err)
	}

	groupDuration, err := meter.Float64Histogram("join.group.duration",
		metric.WithDescription("Lifetime of subscription groups in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating join.group.duration histogram: %w", err)
	}

	queueDepth, err := meter.Int64Histogram("join.queue.depth",
		metric.WithDescription("Buffered elements per source, sampled at enqueue"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating join.queue.depth histogram: %w", err)
	}

	return &Metrics{
		subscriptions: subscriptions,
		activeGroups:  activeGroups,
		fires:         fires,
		deactivations: deactivations,
		terminations:  terminations,
		groupDuration: groupDuration,
		queueDepth:    queueDepth,
	}, nil
}

// RecordSubscribe records a new subscription group.
func (m *Metrics) RecordSubscribe(ctx context.Context, coordinator string) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String(AttrCoordinator, coordinator))
	m.subscriptions.Add(ctx, 1, attrs)
	m.activeGroups.Add(ctx, 1, attrs)
}

// RecordFire records one plan match.
func (m *Metrics) RecordFire(ctx context.Context, coordinator string, plan int) {
	if m == nil {
		return
	}
	m.fires.Add(ctx, 1, metric.WithAttributes(
		attribute.String(AttrCoordinator, coordinator),
		attribute.Int(AttrPlan, plan),
	))
}

// RecordDeactivation records a plan leaving the live set.
func (m *Metrics) RecordDeactivation(ctx context.Context, coordinator string, plan int) {
	if m == nil {
		return
	}
	m.deactivations.Add(ctx, 1, metric.WithAttributes(
		attribute.String(AttrCoordinator, coordinator),
		attribute.Int(AttrPlan, plan),
	))
}

// RecordTermination records the end of a subscription group.
func (m *Metrics) RecordTermination(ctx context.Context, coordinator, state string, lifetime time.Duration) {
	if m == nil {
		return
	}
	m.activeGroups.Add(ctx, -1, metric.WithAttributes(attribute.String(AttrCoordinator, coordinator)))
	m.terminations.Add(ctx, 1, metric.WithAttributes(
		attribute.String(AttrCoordinator, coordinator),
		attribute.String(AttrState, state),
	))
	m.groupDuration.Record(ctx, lifetime.Seconds(), metric.WithAttributes(
		attribute.String(AttrCoordinator, coordinator),
	))
}

// RecordQueueDepth samples the depth of one source buffer.
func (m *Metrics) RecordQueueDepth(ctx context.Context, coordinator string, depth int) {
	if m == nil {
		return
	}
	m.queueDepth.Record(ctx, int64(depth), metric.WithAttributes(
		attribute.String(AttrCoordinator, coordinator),
	))
}
