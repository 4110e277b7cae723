// Package metrics provides the centralized Prometheus metrics registry
// for the API client. All metrics are defined in pkg/client via
// promauto; this package documents them in one place.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Registry is the default Prometheus registry used by the API client.
// All metrics are automatically registered via promauto in pkg/client.
var Registry = prometheus.DefaultRegisterer

// Metrics Documentation
//
// Request Metrics (pkg/client):
//   - ilios_requests_total{entity, outcome} (Counter): Requests by entity
//     and outcome (ok, error, transport_error)
//   - ilios_request_duration_seconds{entity} (Histogram): Request duration
//   - ilios_errors_total{kind} (Counter): Classified failures by kind
//
// Loop Metrics (pkg/client):
//   - ilios_pages_fetched_total{entity} (Counter): Pages fetched by List
//   - ilios_id_batches_total{entity} (Counter): Batches issued by GetByIDs
//
// Example Prometheus Queries:
//
//   # Request Error Rate
//   rate(ilios_errors_total[5m])
//
//   # P95 Request Latency
//   histogram_quantile(0.95, rate(ilios_request_duration_seconds_bucket[5m]))
//
//   # Average Pages per List Call
//   rate(ilios_pages_fetched_total[5m]) / rate(ilios_requests_total{outcome="ok"}[5m])
