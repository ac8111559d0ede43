package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// BusinessMetrics holds Prometheus metrics for cart and catalog activity.
type BusinessMetrics struct {
	// Cart
	CartMutations    *prometheus.CounterVec
	CartItemsAdded   prometheus.Counter
	CartLinesRemoved *prometheus.CounterVec
	CartCreated      prometheus.Counter
	CartValue        prometheus.Histogram

	// Events
	EventsPublished *prometheus.CounterVec

	// Catalog
	ProductsCreated *prometheus.CounterVec
	CatalogCache    *prometheus.CounterVec
}

// NewBusinessMetrics creates business metrics and registers them with reg.
// A nil reg registers with the default Prometheus registry.
func NewBusinessMetrics(namespace string, reg prometheus.Registerer) *BusinessMetrics {
	if namespace == "" {
		namespace = "vendas"
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	factory := promauto.With(reg)
	subsystem := "business"

	return &BusinessMetrics{
		// =======================================================================
		// Cart
		// =======================================================================
		CartMutations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "cart_mutations_total",
				Help:      "Total cart mutations by operation and outcome",
			},
			[]string{"operation", "outcome"}, // operation: add, remove; outcome: success, client_error, error
		),
		CartItemsAdded: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "cart_items_added_total",
				Help:      "Total units added to carts",
			},
		),
		CartLinesRemoved: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "cart_removals_total",
				Help:      "Total successful removals by mode",
			},
			[]string{"mode"}, // mode: partial, line
		),
		CartCreated: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "carts_created_total",
				Help:      "Total carts created on first add",
			},
		),
		CartValue: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "cart_total_value",
				Help:      "Cart total after each mutation",
				Buckets:   []float64{0, 10, 25, 50, 100, 250, 500, 1000, 2500},
			},
		),

		// =======================================================================
		// Events
		// =======================================================================
		EventsPublished: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "cart_events_published_total",
				Help:      "Cart events handed to the publisher",
			},
			[]string{"type", "outcome"}, // outcome: success, error
		),

		// =======================================================================
		// Catalog
		// =======================================================================
		ProductsCreated: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "products_created_total",
				Help:      "Total products created by category",
			},
			[]string{"category"},
		),
		CatalogCache: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "catalog_cache_requests_total",
				Help:      "Catalog cache lookups by result",
			},
			[]string{"operation", "result"}, // result: hit, miss, error
		),
	}
}

// Global instance for easy access from handlers
var Business *BusinessMetrics

// InitBusinessMetrics initializes the global business metrics instance
func InitBusinessMetrics(namespace string) *BusinessMetrics {
	Business = NewBusinessMetrics(namespace, nil)
	return Business
}
