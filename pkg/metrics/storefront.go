package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// StorefrontMetrics records catalog fetches, cart mutations and discarded
// stale loads. A nil *StorefrontMetrics is a valid no-op recorder.
type StorefrontMetrics struct {
	catalogDuration *prometheus.HistogramVec
	catalogFailure  *prometheus.CounterVec
	cartMutations   *prometheus.CounterVec
	staleResponses  *prometheus.CounterVec
}

// NewStorefrontMetrics registers the storefront metrics on the provided registerer.
func NewStorefrontMetrics(reg prometheus.Registerer) *StorefrontMetrics {
	if reg == nil {
		return &StorefrontMetrics{}
	}
	catalogDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "catalog_fetch_duration_seconds",
		Help:    "Duration of catalog API calls in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"endpoint"})
	catalogFailure := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_fetch_failures_total",
		Help: "Catalog API calls that failed at the network or parse boundary.",
	}, []string{"endpoint"})
	cartMutations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cart_mutations_total",
		Help: "Cart store mutations by operation.",
	}, []string{"op"})
	staleResponses := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "stale_responses_discarded_total",
		Help: "Loads discarded because a newer request was issued for the same view.",
	}, []string{"view"})
	reg.MustRegister(catalogDuration, catalogFailure, cartMutations, staleResponses)
	return &StorefrontMetrics{
		catalogDuration: catalogDuration,
		catalogFailure:  catalogFailure,
		cartMutations:   cartMutations,
		staleResponses:  staleResponses,
	}
}

// ObserveCatalogFetch records the duration of one catalog call.
func (m *StorefrontMetrics) ObserveCatalogFetch(endpoint string, d time.Duration) {
	if m == nil || m.catalogDuration == nil {
		return
	}
	m.catalogDuration.WithLabelValues(normalizeLabel(endpoint)).Observe(d.Seconds())
}

// IncCatalogFailure counts a failed catalog call.
func (m *StorefrontMetrics) IncCatalogFailure(endpoint string) {
	if m == nil || m.catalogFailure == nil {
		return
	}
	m.catalogFailure.WithLabelValues(normalizeLabel(endpoint)).Inc()
}

// IncCartMutation counts one cart operation.
func (m *StorefrontMetrics) IncCartMutation(op string) {
	if m == nil || m.cartMutations == nil {
		return
	}
	m.cartMutations.WithLabelValues(normalizeLabel(op)).Inc()
}

// IncStaleResponse counts a load dropped by the sequence guard.
func (m *StorefrontMetrics) IncStaleResponse(view string) {
	if m == nil || m.staleResponses == nil {
		return
	}
	m.staleResponses.WithLabelValues(normalizeLabel(view)).Inc()
}

func normalizeLabel(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}
