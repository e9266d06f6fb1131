package metrics

import "github.com/prometheus/client_golang/prometheus"

// Catalog Prometheus metrics.
var (
	CatalogEntries = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "lexdex",
			Name:      "catalog_entries",
			Help:      "Number of entries in the current catalog snapshot",
		},
	)

	CatalogTags = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "lexdex",
			Name:      "catalog_tags",
			Help:      "Size of the tag universe in the current catalog snapshot",
		},
	)

	CatalogRebuildsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "lexdex",
			Name:      "catalog_rebuilds_total",
			Help:      "Total catalog snapshot rebuilds",
		},
		[]string{"feed"}, // "source" / "cache" / "empty" / "direct"
	)

	FilterOperationsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "lexdex",
			Name:      "filter_operations_total",
			Help:      "Total filter operations evaluated",
		},
	)
)

var catalogMetricsRegistered bool

// RegisterCatalogMetrics registers Prometheus catalog metrics. Must be called once from main.
func RegisterCatalogMetrics() {
	if catalogMetricsRegistered {
		return
	}
	prometheus.MustRegister(CatalogEntries)
	prometheus.MustRegister(CatalogTags)
	prometheus.MustRegister(CatalogRebuildsTotal)
	prometheus.MustRegister(FilterOperationsTotal)
	catalogMetricsRegistered = true
}

// ObserveRebuild records a snapshot rebuild and the resulting catalog size.
func ObserveRebuild(feed string, entries, tags int) {
	CatalogRebuildsTotal.WithLabelValues(feed).Inc()
	CatalogEntries.Set(float64(entries))
	CatalogTags.Set(float64(tags))
}
