package schema_registry

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/Aleph-Alpha/srclient/v1/observability"
)

// HTTPClient is the transport adapter: it builds requests against the
// configured base URL, sends them through an HTTPDoer and runs every decoded
// response through a Classifier.
//
// HTTPClient holds only immutable configuration and is safe for concurrent
// use when its HTTPDoer is.
type HTTPClient struct {
	cfg        Config
	doer       HTTPDoer
	classifier Classifier

	logger   Logger
	observer observability.Observer
	tracer   Tracer
}

var _ Caller = (*HTTPClient)(nil)

// NewHTTPClient creates the transport adapter. A nil classifier selects
// CodeClassifier.
func NewHTTPClient(cfg Config, doer HTTPDoer, classifier Classifier) (*HTTPClient, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if doer == nil {
		return nil, fmt.Errorf("%w: HTTP transport is required", ErrInvalidArgument)
	}
	if classifier == nil {
		classifier = CodeClassifier{}
	}

	return &HTTPClient{
		cfg:        cfg,
		doer:       doer,
		classifier: classifier,
		logger:     cfg.Logger,
	}, nil
}

// WithLogger attaches a logger and returns the same instance.
func (h *HTTPClient) WithLogger(logger Logger) *HTTPClient {
	h.logger = logger
	return h
}

// WithObserver attaches an observer that is notified once per call and
// returns the same instance.
//
// Example:
//
//	client.WithObserver(metricsCollector)
func (h *HTTPClient) WithObserver(observer observability.Observer) *HTTPClient {
	h.observer = observer
	return h
}

// WithTracer attaches a tracer; each call then runs in its own span.
func (h *HTTPClient) WithTracer(tracer Tracer) *HTTPClient {
	h.tracer = tracer
	return h
}

// Call sends method uri with an optional JSON body and query string and
// returns the raw response body.
//
// Transport failures are returned unchanged. A body that is not a single valid
// JSON value yields an error wrapping ErrMalformedResponse. Otherwise the
// decoded body is passed to the classifier, whose error (if any) is returned.
func (h *HTTPClient) Call(ctx context.Context, method, uri string, body map[string]any, query url.Values) (raw json.RawMessage, err error) {
	start := time.Now()
	statusCode := 0

	var span trace.Span
	if h.tracer != nil {
		ctx, span = h.tracer.StartSpan(ctx, "schema_registry."+method)
		span.SetAttributes(
			attribute.String("http.request.method", method),
			attribute.String("schema_registry.uri", uri),
		)
		defer span.End()
	}

	defer func() {
		if span != nil {
			span.SetAttributes(attribute.Int("http.response.status_code", statusCode))
			if err != nil {
				h.tracer.RecordErrorOnSpan(span, err)
			}
		}
		h.observeOperation(method, uri, time.Since(start), err, int64(len(raw)), statusCode)
	}()

	req, err := h.newRequest(ctx, method, uri, body, query)
	if err != nil {
		return nil, err
	}

	h.logDebug(ctx, "sending schema registry request", nil, map[string]interface{}{
		"method": method,
		"uri":    uri,
	})

	resp, err := h.doer.Do(req)
	if err != nil {
		h.logError(ctx, "schema registry request failed", err, map[string]interface{}{
			"method": method,
			"uri":    uri,
		})
		return nil, err
	}
	defer resp.Body.Close()
	statusCode = resp.StatusCode

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	decoded, decodeErr := decodeJSON(data)
	if decodeErr != nil {
		return nil, fmt.Errorf("%w: %s %s returned status %d: %v", ErrMalformedResponse, method, uri, statusCode, decodeErr)
	}

	if err = h.classifier.Classify(decoded, uri, nil); err != nil {
		h.logDebug(ctx, "schema registry returned an error", err, map[string]interface{}{
			"method":      method,
			"uri":         uri,
			"status_code": statusCode,
		})
		return nil, err
	}

	return json.RawMessage(data), nil
}

// CloseIdleConnections closes idle keep-alive connections of the underlying
// transport when it supports doing so.
func (h *HTTPClient) CloseIdleConnections() {
	if closer, ok := h.doer.(interface{ CloseIdleConnections() }); ok {
		closer.CloseIdleConnections()
	}
}

func (h *HTTPClient) logDebug(ctx context.Context, msg string, err error, fields map[string]interface{}) {
	if h.logger != nil {
		h.logger.DebugWithContext(ctx, msg, err, fields)
	}
}

func (h *HTTPClient) logError(ctx context.Context, msg string, err error, fields map[string]interface{}) {
	if h.logger != nil {
		h.logger.ErrorWithContext(ctx, msg, err, fields)
	}
}

var _ HTTPDoer = (*http.Client)(nil)
