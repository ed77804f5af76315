// Package tracing provides the tracer and span attributes used by the
// ingestion pipeline. Exporter setup is left to the process; without one the
// global provider is a no-op.
package tracing

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"rollcall/internal/votes/models"
)

const instrumentationName = "rollcall"

var (
	AttrRunID    = attribute.Key("rollcall.run.id")
	AttrPath     = attribute.Key("rollcall.file.path")
	AttrChamber  = attribute.Key("rollcall.chamber")
	AttrCongress = attribute.Key("rollcall.congress")
	AttrSession  = attribute.Key("rollcall.session")
	AttrRollcall = attribute.Key("rollcall.number")
	AttrFiles    = attribute.Key("rollcall.files")
	AttrVotes    = attribute.Key("rollcall.votes")
)

// Tracer returns the pipeline tracer from provider, or from the global
// provider when provider is nil.
func Tracer(provider trace.TracerProvider) trace.Tracer {
	if provider == nil {
		provider = otel.GetTracerProvider()
	}
	return provider.Tracer(instrumentationName)
}

// Position returns span attributes addressing one rollcall document.
func Position(pos models.Position) []attribute.KeyValue {
	return []attribute.KeyValue{
		AttrChamber.String(string(pos.Chamber)),
		AttrCongress.Int(int(pos.Congress)),
		AttrSession.Int(int(pos.Session)),
		AttrRollcall.Int64(int64(pos.Rollcall)),
	}
}

// End records err on span, if any, and ends it.
func End(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// Start is shorthand for Tracer(nil).Start.
func Start(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return Tracer(nil).Start(ctx, name, trace.WithAttributes(attrs...))
}
