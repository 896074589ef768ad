// Package telemetry provides OpenTelemetry tracing and Prometheus metrics.
//
// Nothing is exported over the network: finished spans are written to the
// structured logger and metrics can be dumped in the Prometheus text format
// for a node_exporter textfile collector.
package telemetry

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// Config holds telemetry configuration.
type Config struct {
	Enabled     bool
	ServiceName string
	Version     string
	Environment string
	Logger      *slog.Logger
}

// Provider holds the OpenTelemetry tracer provider.
type Provider struct {
	tracerProvider *sdktrace.TracerProvider
}

// New creates and configures the OpenTelemetry tracer provider.
// Returns a noop provider if tracing is disabled.
func New(cfg *Config) (*Provider, error) {
	if !cfg.Enabled {
		return &Provider{}, nil
	}

	res, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(cfg.ServiceName),
			semconv.ServiceVersion(cfg.Version),
			semconv.DeploymentEnvironment(cfg.Environment),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithResource(res),
		sdktrace.WithSpanProcessor(sdktrace.NewSimpleSpanProcessor(NewLogExporter(cfg.Logger))),
	)

	return &Provider{tracerProvider: tp}, nil
}

// TracerProvider returns the configured tracer provider, or a noop one.
func (p *Provider) TracerProvider() trace.TracerProvider {
	if p == nil || p.tracerProvider == nil {
		return noop.NewTracerProvider()
	}

	return p.tracerProvider
}

// Shutdown gracefully shuts down the tracer provider.
func (p *Provider) Shutdown(ctx context.Context) error {
	if p == nil || p.tracerProvider == nil {
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := p.tracerProvider.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down tracer provider: %w", err)
	}

	return nil
}
