// Package observability provides OpenTelemetry tracing and metrics for rxkit.
//
// Exporters are OTLP over HTTP. Nothing is exported until InitMeter or
// InitTracer installs a global provider; until then the otel globals are
// no-ops and instrumented code pays almost nothing.
//
// Tracing:
//
//	tp, err := observability.InitTracer(ctx, observability.DefaultTracerConfig("my-service"))
//	defer tp.Shutdown(ctx)
//
// Metrics:
//
//	mp, err := observability.InitMeter(ctx, observability.DefaultMeterConfig("my-service"))
//	defer mp.Shutdown(ctx)
//
//	metrics, err := observability.NewMetrics(observability.Meter("rxkit/join"))
//	coordinator, err := join.WhenAll(plans, join.WithMetrics(metrics))
//
// A nil *Metrics is valid and records nothing.
package observability
