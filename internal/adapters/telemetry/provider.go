package telemetry

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/sitepipe/internal/core/ports"
)

// Provider owns the tracer provider, the metrics registry and the tracer tasks use.
type Provider struct {
	tp       *sdktrace.TracerProvider
	registry *prometheus.Registry
	tracer   *OTelTracer
}

// NewProvider configures the OpenTelemetry SDK with the logging bridge and
// registers it as the global provider.
func NewProvider(logger ports.Logger) *Provider {
	registry := prometheus.NewRegistry()
	bridge := NewBridge(logger, NewMetrics(registry))

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSpanProcessor(bridge),
	)
	otel.SetTracerProvider(tp)

	return &Provider{
		tp:       tp,
		registry: registry,
		tracer:   &OTelTracer{tracer: tp.Tracer(InstrumentationName)},
	}
}

// Tracer returns the tracer tasks are traced with.
func (p *Provider) Tracer() ports.Tracer {
	return p.tracer
}

// Registry returns the registry holding the task metrics. Other components
// register their collectors here so a single endpoint exposes everything.
func (p *Provider) Registry() *prometheus.Registry {
	return p.registry
}

// Shutdown flushes and stops the tracer provider.
func (p *Provider) Shutdown(ctx context.Context) error {
	return p.tp.Shutdown(ctx)
}
