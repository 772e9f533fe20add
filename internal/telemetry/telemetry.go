// Package telemetry sets up the OpenTelemetry providers used by the DeepPath MCP adapter.
package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
)

// Config is the configuration of the OpenTelemetry providers.
type Config struct {
	ServiceName    string
	ServiceVersion string
	Enabled        bool
}

// Providers holds the initialized OpenTelemetry providers.
// When telemetry is disabled, Meter is a no-op meter and Shutdown does nothing.
type Providers struct {
	Meter metric.Meter

	config        *Config
	meterProvider *sdkmetric.MeterProvider
}

// Init initializes the OpenTelemetry metric provider with a Prometheus exporter.
// Metrics are collected into the default Prometheus registry so they can be served with promhttp.
func Init(ctx context.Context, c *Config) (*Providers, error) {
	p := &Providers{config: c}

	if !c.Enabled {
		p.Meter = noop.NewMeterProvider().Meter(c.ServiceName)
		return p, nil
	}

	exporter, err := prometheus.New()
	if err != nil {
		return nil, fmt.Errorf("failed to create prometheus exporter: %w", err)
	}

	attrs := []attribute.KeyValue{attribute.String("service.name", c.ServiceName)}
	if c.ServiceVersion != "" {
		attrs = append(attrs, attribute.String("service.version", c.ServiceVersion))
	}
	res, err := resource.Merge(resource.Default(), resource.NewSchemaless(attrs...))
	if err != nil {
		return nil, fmt.Errorf("failed to create otel resource: %w", err)
	}

	p.meterProvider = sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(exporter),
		sdkmetric.WithResource(res),
	)
	otel.SetMeterProvider(p.meterProvider)

	p.Meter = p.meterProvider.Meter(c.ServiceName)
	return p, nil
}

// IsEnabled returns true if telemetry was enabled at initialization.
func (p *Providers) IsEnabled() bool {
	return p.config != nil && p.config.Enabled
}

// ServiceName returns the service name reported with every metric.
func (p *Providers) ServiceName() string {
	if p.config == nil {
		return ""
	}
	return p.config.ServiceName
}

// Shutdown flushes and stops the providers.
func (p *Providers) Shutdown(ctx context.Context) error {
	if p.meterProvider == nil {
		return nil
	}
	if err := p.meterProvider.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown meter provider: %w", err)
	}
	return nil
}
