// Package telemetry wires OpenTelemetry tracing and metrics, and a
// TTY-aware progress reporter, around the pipeline's stages.
package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

// TracerName is the instrumentation scope every span in this program is
// recorded under.
const TracerName = "github.com/vxgraph/louvain"

// Tracer returns the package-level tracer for span creation, following the
// convention of calling otel.Tracer(name) once per package rather than
// threading a tracer value through every function signature.
func Tracer() trace.Tracer { return otel.Tracer(TracerName) }

// TracerProvider wraps an SDK trace provider so the caller can shut it
// down cleanly at process exit.
type TracerProvider struct {
	provider *sdktrace.TracerProvider
}

// NewTracerProvider builds a trace provider that exports spans as
// newline-delimited JSON to stdout and installs it as the global
// provider. There is no collector to export to in this tool's deployment
// shape, so stdouttrace stands in for the OTLP/gRPC exporter a networked
// service would use; it is still a real OpenTelemetry SDK exporter, not a
// stub.
func NewTracerProvider(ctx context.Context, runID string) (*TracerProvider, error) {
	exporter, err := stdouttrace.New()
	if err != nil {
		return nil, fmt.Errorf("telemetry: create stdout trace exporter: %w", err)
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)
	otel.SetTracerProvider(provider)

	return &TracerProvider{provider: provider}, nil
}

// Shutdown flushes any buffered spans and releases the provider.
func (p *TracerProvider) Shutdown(ctx context.Context) error {
	if p == nil || p.provider == nil {
		return nil
	}
	return p.provider.Shutdown(ctx)
}

// StartStage starts a span named after one pipeline stage (e.g.
// "loader.read", "louvain.epoch") and returns a finish function that
// records the error, if any, and ends the span.
func StartStage(ctx context.Context, name string) (context.Context, func(error)) {
	ctx, span := Tracer().Start(ctx, name)
	return ctx, func(err error) {
		if err != nil {
			span.RecordError(err)
		}
		span.End()
	}
}
