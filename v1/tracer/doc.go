// Package tracer wires OpenTelemetry tracing for srclient components.
//
// NewClient builds an SDK TracerProvider (optionally exporting over OTLP/HTTP),
// installs it as the global provider and sets the W3C trace-context and baggage
// propagators. The returned *Tracer offers small helpers around the provider:
//
//	ctx, span := t.StartSpan(ctx, "sync-subjects")
//	defer span.End()
//
//	t.SetAttributes(span, map[string]interface{}{"subject": subject})
//	if err != nil {
//	    t.RecordErrorOnSpan(span, err)
//	}
//
// GetCarrier and SetCarrierOnContext move trace context in and out of plain
// string maps, for instance Kafka message headers.
//
// The OTLP exporter is configured through the standard OTEL_EXPORTER_OTLP_*
// environment variables.
//
// With fx, install FXModule next to logger.FXModule and provide a tracer.Config.
// The provider is shut down, and pending spans flushed, when the app stops.
package tracer
