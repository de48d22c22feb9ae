// Package tracing installs an OpenTelemetry SDK tracer provider for the
// CLI's -trace flag. Without it, otel.Tracer falls back to its built-in
// no-op implementation, so every call site in the ground package can call
// otel.Tracer unconditionally regardless of whether tracing was enabled.
package tracing

import (
	"context"
	"io"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Enable installs a global TracerProvider that exports spans as indented
// JSON to w, and returns a shutdown func to flush and release it.
func Enable(w io.Writer) (shutdown func(context.Context) error, err error) {
	exporter, err := stdouttrace.New(stdouttrace.WithWriter(w), stdouttrace.WithPrettyPrint())
	if err != nil {
		return nil, err
	}
	provider := sdktrace.NewTracerProvider(sdktrace.WithBatcher(exporter))
	otel.SetTracerProvider(provider)
	return provider.Shutdown, nil
}
