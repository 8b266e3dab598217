package metrics

import (
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestStorefrontMetricsExportsCountersAndHistogram(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewStorefrontMetrics(reg)

	m.ObserveCatalogFetch("list", 120*time.Millisecond)
	m.IncCatalogFailure("detail")
	m.IncCartMutation("add")
	m.IncCartMutation("add")
	m.IncStaleResponse("listing")

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}

	if got, err := fetchCounterValue(mfs, "cart_mutations_total", "op", "add"); err != nil {
		t.Fatalf("fetch cart mutations: %v", err)
	} else if got != 2 {
		t.Fatalf("expected cart add=2, got %f", got)
	}

	if got, err := fetchCounterValue(mfs, "catalog_fetch_failures_total", "endpoint", "detail"); err != nil {
		t.Fatalf("fetch failures: %v", err)
	} else if got != 1 {
		t.Fatalf("expected failures=1, got %f", got)
	}

	if got, err := fetchCounterValue(mfs, "stale_responses_discarded_total", "view", "listing"); err != nil {
		t.Fatalf("fetch stale: %v", err)
	} else if got != 1 {
		t.Fatalf("expected stale=1, got %f", got)
	}

	if got, err := fetchHistogramSum(mfs, "catalog_fetch_duration_seconds", "endpoint", "list"); err != nil {
		t.Fatalf("fetch duration: %v", err)
	} else if got <= 0 {
		t.Fatalf("expected duration sum > 0, got %f", got)
	}
}

func TestStorefrontMetricsNilIsNoop(t *testing.T) {
	var m *StorefrontMetrics
	m.ObserveCatalogFetch("list", time.Second)
	m.IncCatalogFailure("list")
	m.IncCartMutation("add")
	m.IncStaleResponse("listing")

	unregistered := NewStorefrontMetrics(nil)
	unregistered.IncCartMutation("add")
}

func fetchCounterValue(mfs []*dto.MetricFamily, name, label, value string) (float64, error) {
	mf := findMetricFamily(mfs, name)
	if mf == nil {
		return 0, fmt.Errorf("metric %q not found", name)
	}
	for _, metric := range mf.GetMetric() {
		if matchesLabel(metric.GetLabel(), label, value) {
			return metric.GetCounter().GetValue(), nil
		}
	}
	return 0, fmt.Errorf("metric %q missing label %s=%s", name, label, value)
}

func fetchHistogramSum(mfs []*dto.MetricFamily, name, label, value string) (float64, error) {
	mf := findMetricFamily(mfs, name)
	if mf == nil {
		return 0, fmt.Errorf("metric %q not found", name)
	}
	for _, metric := range mf.GetMetric() {
		if matchesLabel(metric.GetLabel(), label, value) {
			return metric.GetHistogram().GetSampleSum(), nil
		}
	}
	return 0, fmt.Errorf("metric %q missing label %s=%s", name, label, value)
}

func findMetricFamily(mfs []*dto.MetricFamily, name string) *dto.MetricFamily {
	for _, mf := range mfs {
		if mf.GetName() == name {
			return mf
		}
	}
	return nil
}

func matchesLabel(labels []*dto.LabelPair, name, value string) bool {
	for _, l := range labels {
		if l.GetName() == name && l.GetValue() == value {
			return true
		}
	}
	return false
}
