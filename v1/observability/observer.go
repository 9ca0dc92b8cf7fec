// Package observability defines the hook through which srclient components report
// the operations they perform.
//
// Components (such as schema_registry) call ObserveOperation once per completed
// operation. Implementations turn these notifications into metrics, traces or
// logs; the metrics package ships a Prometheus-backed implementation.
package observability

import "time"

// Observer receives a notification for every operation a component performs.
// Implementations must be safe for concurrent use.
type Observer interface {
	ObserveOperation(ctx OperationContext)
}

// OperationContext describes a single completed operation.
type OperationContext struct {
	// Component is the reporting package, e.g. "schema_registry".
	Component string

	// Operation is the action performed, e.g. "GET" or "register_version".
	Operation string

	// Resource is the primary target of the operation (a URI, a subject, a key).
	Resource string

	// SubResource gives additional context, such as a version.
	SubResource string

	// Duration is how long the operation took.
	Duration time.Duration

	// Error is the error the operation finished with, or nil.
	Error error

	// Size is the number of payload bytes involved, if known.
	Size int64

	// Metadata holds component specific details.
	Metadata map[string]interface{}
}

// ObserverFunc adapts an ordinary function to the Observer interface.
type ObserverFunc func(ctx OperationContext)

// ObserveOperation calls f(ctx).
func (f ObserverFunc) ObserveOperation(ctx OperationContext) {
	f(ctx)
}
