package schema_registry

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"go.opentelemetry.io/otel/trace"
)

// Registry is the set of schema registry operations offered by Client.
// Every call is independent: nothing is cached and each call issues one or
// two sequential round-trips.
type Registry interface {
	// ListSubjects returns the registered subject names. includeDeleted must be
	// "", "true" or "false".
	ListSubjects(ctx context.Context, includeDeleted string) ([]string, error)

	// ListVersions returns the version numbers registered under subject.
	ListVersions(ctx context.Context, subject string) ([]int, error)

	// GetSchema returns a version record. An empty version means "latest".
	GetSchema(ctx context.Context, subject, version string) (*SchemaVersion, error)

	// GetSchemaDefinition returns only the schema of a version, either a
	// primitive type name or a structured definition.
	GetSchemaDefinition(ctx context.Context, subject, version string) (SchemaDefinition, error)

	// DeleteVersion deletes a version and returns its number, if the registry
	// reported one.
	DeleteVersion(ctx context.Context, subject, version string) (int, bool, error)

	// GetSchemaByID returns the schema text registered under a global id.
	GetSchemaByID(ctx context.Context, id int) (string, error)

	// RegisterVersion registers schema under subject.
	RegisterVersion(ctx context.Context, subject, schema string) (*SchemaVersion, error)

	// CheckCompatibility tests schema against a version of subject.
	CheckCompatibility(ctx context.Context, subject, schema, version string) (bool, error)

	// GetSubjectCompatibility returns the subject level, or the global default
	// when the subject has none.
	GetSubjectCompatibility(ctx context.Context, subject string) (CompatibilityLevel, error)

	// SetSubjectCompatibility sets the subject level. An empty level means FULL.
	SetSubjectCompatibility(ctx context.Context, subject string, level CompatibilityLevel) (bool, error)

	// GetDefaultCompatibility returns the global level.
	GetDefaultCompatibility(ctx context.Context) (CompatibilityLevel, error)

	// SetDefaultCompatibility sets the global level. An empty level means FULL.
	SetDefaultCompatibility(ctx context.Context, level CompatibilityLevel) (bool, error)

	// GetVersionForSchema looks schema up under subject. The boolean is false
	// when the subject or the schema is unknown.
	GetVersionForSchema(ctx context.Context, subject, schema string) (int, bool, error)

	// IsSchemaRegistered reports whether schema is registered under subject.
	IsSchemaRegistered(ctx context.Context, subject, schema string) (bool, error)

	// DeleteSubject deletes subject and returns the removed versions.
	DeleteSubject(ctx context.Context, subject string) ([]int, error)

	// GetLatestVersion returns the last entry of the subject's version list.
	GetLatestVersion(ctx context.Context, subject string) (int, bool, error)

	// SetImportMode switches the registry mode. It succeeds only when the
	// registry echoes the requested mode back.
	SetImportMode(ctx context.Context, mode Mode) (bool, error)

	// GetMode returns the global registry mode.
	GetMode(ctx context.Context) (Mode, error)
}

// Caller sends a single request to the registry and returns the raw JSON
// response after it has passed the error classifier. *HTTPClient implements it.
//
//go:generate mockgen -destination=mock_caller_test.go -package=schema_registry . Caller
type Caller interface {
	Call(ctx context.Context, method, uri string, body map[string]any, query url.Values) (json.RawMessage, error)
}

// HTTPDoer is the pluggable transport. *http.Client satisfies it.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Classifier turns a decoded response body into an error, or nil when the body
// is a success value. uri and req are only used to enrich error messages and
// may be empty.
type Classifier interface {
	Classify(body any, uri string, req *http.Request) error
}

// Logger is an interface that matches the v1/logger.Logger context methods.
type Logger interface {
	DebugWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})
	InfoWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})
	WarnWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})
	ErrorWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})
}

// Tracer is the subset of v1/tracer.Tracer used to trace registry calls.
type Tracer interface {
	StartSpan(ctx context.Context, name string) (context.Context, trace.Span)
	RecordErrorOnSpan(span trace.Span, err error)
}
