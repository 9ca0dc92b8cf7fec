package schema_registry

import (
	"time"

	"github.com/Aleph-Alpha/srclient/v1/observability"
)

// observeOperation notifies the observer about a registry call if one is
// configured.
//
// Notes:
//   - operation: the HTTP method
//   - resource: the relative URI that was called
func (h *HTTPClient) observeOperation(operation, resource string, duration time.Duration, err error, size int64, statusCode int) {
	if h == nil || h.observer == nil {
		return
	}

	h.observer.ObserveOperation(observability.OperationContext{
		Component: "schema_registry",
		Operation: operation,
		Resource:  resource,
		Duration:  duration,
		Error:     err,
		Size:      size,
		Metadata: map[string]interface{}{
			"status_code": statusCode,
		},
	})
}
