// Package metrics exposes Prometheus instruments for the stores and the
// durable namespace.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var Registry = prometheus.NewRegistry()

var (
	StoreOperations = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "moments",
		Name:      "store_operations_total",
		Help:      "Store operations by store, operation and outcome.",
	}, []string{"store", "operation", "result"})

	DurableBytesUsed = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "moments",
		Name:      "durable_bytes_used",
		Help:      "Bytes counted against the durable namespace quota.",
	})

	ExternalChanges = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "moments",
		Name:      "external_changes_total",
		Help:      "Durable keys changed by another process.",
	}, []string{"key"})
)

func init() {
	Registry.MustRegister(StoreOperations, DurableBytesUsed, ExternalChanges)
}

// ObserveStoreOperation records one operation. result is "ok" or the failure
// classifier of the returned error.
func ObserveStoreOperation(store string, operation string, result string) {
	if result == "" {
		result = "ok"
	}
	StoreOperations.WithLabelValues(store, operation, result).Inc()
}

func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}
