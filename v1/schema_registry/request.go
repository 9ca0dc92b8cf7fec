package schema_registry

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
)

// JoinURL joins base and uri with exactly one slash, whatever slashes either
// side carries: JoinURL("http://host/", "/path/") == JoinURL("http://host", "path").
func JoinURL(base, uri string) string {
	return strings.TrimRight(base, "/") + "/" + strings.Trim(uri, "/")
}

// newRequest builds the outgoing request for a Call.
func (h *HTTPClient) newRequest(ctx context.Context, method, uri string, body map[string]any, query url.Values) (*http.Request, error) {
	target := JoinURL(h.cfg.URL, uri)
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var payload []byte
	if len(body) > 0 {
		encoded, err := EncodeJSON(body)
		if err != nil {
			return nil, fmt.Errorf("%w: cannot encode request body: %v", ErrInvalidArgument, err)
		}
		payload = encoded
	}

	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, fmt.Errorf("%w: cannot create request: %v", ErrInvalidArgument, err)
	}

	if payload != nil {
		req.ContentLength = int64(len(payload))
		req.Header.Set("Content-Length", strconv.Itoa(len(payload)))
	}
	req.Header.Set("Content-Type", MediaType)
	req.Header.Set("Accept", MediaType)

	if h.cfg.hasCredentials() {
		req.SetBasicAuth(h.cfg.Username, h.cfg.Password)
	}

	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	return req, nil
}
