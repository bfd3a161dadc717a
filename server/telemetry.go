package server

import (
	"context"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.10.0"
)

type ShutdownFn func(context.Context) error

func InitMeterProvider(ctx context.Context, name string, reader metric.Reader) ShutdownFn {
	res := telemetryResource(ctx, name)
	meterProvider := metric.NewMeterProvider(
		metric.WithResource(res),
		metric.WithReader(reader))
	otel.SetMeterProvider(meterProvider)
	return meterProvider.Shutdown
}

func telemetryResource(ctx context.Context, serviceName string) *resource.Resource {
	res, err := resource.New(ctx,
		resource.WithFromEnv(),
		resource.WithProcess(),
		resource.WithTelemetrySDK(),
		resource.WithHost(),
		resource.WithAttributes(
			// the service name used to display metrics in backend
			semconv.ServiceNameKey.String(serviceName),
		),
	)
	if err != nil {
		log.Fatal().Err(err).Msg("unable to initialize telemetry resource")
	}
	return res
}

func NewPrometheusExporter(ctx context.Context) *prometheus.Exporter {
	exporter, err := prometheus.New()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize prometheus exporter")
	}
	return exporter
}
