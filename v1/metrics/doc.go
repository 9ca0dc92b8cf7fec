// Package metrics provides Prometheus-based monitoring for srclient components.
//
// *Metrics owns an isolated Prometheus registry, an HTTP server exposing
// /metrics, and a set of operation metrics fed through the
// observability.Observer interface:
//
//	operations_total{component, operation, status}
//	operation_duration_seconds{component, operation}
//	operation_size_bytes_total{component, operation}
//
// Every metric carries a constant service label and, when Config.Namespace is
// set, a name prefix.
//
// # Direct Usage (Without FX)
//
//	m := metrics.NewMetrics(metrics.Config{
//		Address:                 ":9090",
//		EnableDefaultCollectors: true,
//		ServiceName:             "schema-sync",
//	})
//	go m.Server.ListenAndServe()
//
//	httpClient.WithObserver(m) // schema_registry.HTTPClient reports each call
//
// # FX Module Integration
//
// FXModule provides *Metrics, MetricsCollector and observability.Observer.
// Clients whose fx params declare an optional observability.Observer pick it
// up automatically.
//
// # Configuration
//
//	METRICS_ADDRESS=:9090
//	METRICS_ENABLE_DEFAULT_COLLECTORS=true
//	METRICS_NAMESPACE=pharia_data
//	METRICS_SERVICE_NAME=schema-sync
//
// # Thread Safety
//
// All methods are safe for concurrent use by multiple goroutines.
package metrics
