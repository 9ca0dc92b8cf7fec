// Package schema_registry is a client for the Confluent-compatible schema
// registry REST API.
//
// The package is built from three layers:
//
//   - HTTPClient, the transport adapter. It joins the base URL and a relative
//     URI, encodes JSON bodies (whole-number floats keep their ".0"), adds basic
//     auth when both username and password are configured and sends the request
//     through any HTTPDoer, such as *http.Client.
//   - Classifier, which maps the "error_code" of a response body to a typed
//     *Error. CodeClassifier is the default.
//   - Client, one method per registry operation, implementing Registry.
//
// Basic Usage:
//
//	import "github.com/Aleph-Alpha/srclient/v1/schema_registry"
//
//	registry, err := schema_registry.NewClient(schema_registry.Config{
//	    URL:      "http://localhost:8081",
//	    Username: "user",     // Optional
//	    Password: "password", // Optional
//	    Timeout:  10 * time.Second,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	record, err := registry.RegisterVersion(ctx, "users-value", `{
//	    "type": "record",
//	    "name": "User",
//	    "fields": [{"name": "name", "type": "string"}]
//	}`)
//
//	ok, err := registry.CheckCompatibility(ctx, "users-value", newSchema, schema_registry.VersionLatest)
//
// Errors:
//
// Transport failures are returned as the transport produced them. Registry
// errors are *Error values carrying the numeric code and message; each kind
// unwraps to a sentinel so callers can write
//
//	if errors.Is(err, schema_registry.ErrSubjectNotFound) { ... }
//
// Some operations answer not-found errors themselves: CheckCompatibility
// treats a missing subject (or missing latest version) as compatible,
// GetSubjectCompatibility falls back to the global level and
// GetVersionForSchema reports "not registered" instead of failing.
//
// Nothing is cached and nothing is retried. Timeouts belong to the transport.
//
// Observability:
//
// HTTPClient accepts an optional Logger (*logger.Logger satisfies it), an
// observability.Observer (for example *metrics.Metrics) notified once per call,
// and a Tracer (*tracer.Tracer) that wraps each call in a span. The trace
// context of the call is propagated in the request headers.
//
// Wire format:
//
// EncodeSchemaID, DecodeSchemaID, NewKafkaMessage and SchemaIDFromMessage
// frame Kafka payloads as [0x0][schema id, 4 bytes big-endian][payload].
//
// Using with FX:
//
//	app := fx.New(
//	    logger.FXModule,
//	    schema_registry.FXModule,
//	    fx.Provide(schema_registry.NewConfigFromEnv),
//	    fx.Invoke(func(r schema_registry.Registry) { ... }),
//	)
package schema_registry
