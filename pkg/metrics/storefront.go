package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// StorefrontMetrics records cart and catalog activity.
type StorefrontMetrics struct {
	cartMutations    *prometheus.CounterVec
	snapshotFailures *prometheus.CounterVec
	catalogResults   prometheus.Histogram
	ordersPlaced     prometheus.Counter
}

// NewStorefrontMetrics registers the storefront metrics on the provided registerer.
// A nil registerer yields a no-op collector.
func NewStorefrontMetrics(reg prometheus.Registerer) *StorefrontMetrics {
	if reg == nil {
		return &StorefrontMetrics{}
	}
	cartMutations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cart_mutations_total",
		Help: "Cart operations applied, by operation and outcome.",
	}, []string{"op", "outcome"})
	snapshotFailures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cart_snapshot_failures_total",
		Help: "Cart snapshot reads or writes that fell back to session-only state.",
	}, []string{"op"})
	catalogResults := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "catalog_filter_results",
		Help:    "Number of products returned by a catalog filter query.",
		Buckets: []float64{0, 1, 2, 5, 10, 20, 50, 100},
	})
	ordersPlaced := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "checkout_orders_placed_total",
		Help: "Simulated orders confirmed at checkout.",
	})
	reg.MustRegister(cartMutations, snapshotFailures, catalogResults, ordersPlaced)
	return &StorefrontMetrics{
		cartMutations:    cartMutations,
		snapshotFailures: snapshotFailures,
		catalogResults:   catalogResults,
		ordersPlaced:     ordersPlaced,
	}
}

// IncCartMutation counts an applied cart operation.
func (m *StorefrontMetrics) IncCartMutation(op, outcome string) {
	if m == nil || m.cartMutations == nil {
		return
	}
	m.cartMutations.WithLabelValues(normalizeLabel(op), normalizeLabel(outcome)).Inc()
}

// IncSnapshotFailure counts a snapshot read or write that did not reach the store.
func (m *StorefrontMetrics) IncSnapshotFailure(op string) {
	if m == nil || m.snapshotFailures == nil {
		return
	}
	m.snapshotFailures.WithLabelValues(normalizeLabel(op)).Inc()
}

// ObserveCatalogResults records the size of a filtered catalog view.
func (m *StorefrontMetrics) ObserveCatalogResults(n int) {
	if m == nil || m.catalogResults == nil {
		return
	}
	m.catalogResults.Observe(float64(n))
}

// IncOrdersPlaced counts a confirmed checkout.
func (m *StorefrontMetrics) IncOrdersPlaced() {
	if m == nil || m.ordersPlaced == nil {
		return
	}
	m.ordersPlaced.Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
